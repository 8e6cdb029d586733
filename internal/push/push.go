package push

import (
	"context"
	"errors"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/sony/gobreaker"

	"belediyeBack/internal/logger"
	"belediyeBack/internal/metrics"
)

type Message struct {
	Title string
	Body  string
	Link  string
	Data  map[string]string
}

// Sender delivers a message to each device token and reports how many
// deliveries succeeded and failed.
type Sender interface {
	Send(ctx context.Context, tokens []string, msg Message) (sent, failed int)
}

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type FCMSender struct {
	client messagingClient
	cb     *gobreaker.CircuitBreaker
	log    logger.ILogger
}

func NewFCMSender(client messagingClient, log logger.ILogger) *FCMSender {
	s := &FCMSender{client: client, log: log}
	s.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "fcm",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.PushBreakerState.Set(float64(to))
			log.Warning("circuit breaker state changed",
				logger.String("component", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		},
	})
	return s
}

func (s *FCMSender) Send(ctx context.Context, tokens []string, msg Message) (int, int) {
	var sent, failed int
	for _, token := range tokens {
		_, err := s.cb.Execute(func() (interface{}, error) {
			return s.client.Send(ctx, buildMessage(token, msg))
		})
		if err != nil {
			failed++
			metrics.PushSentTotal.WithLabelValues("failed").Inc()
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				s.log.Warning("push skipped, circuit open", logger.Int("remaining", len(tokens)-sent-failed))
				failed += len(tokens) - sent - failed
				metrics.PushSentTotal.WithLabelValues("skipped").Inc()
				break
			}
			s.log.Error("push send failed", logger.Error(err))
			continue
		}
		sent++
		metrics.PushSentTotal.WithLabelValues("sent").Inc()
	}
	return sent, failed
}

func buildMessage(token string, msg Message) *messaging.Message {
	data := map[string]string{"link": msg.Link}
	for k, v := range msg.Data {
		data[k] = v
	}
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: msg.Title,
						Body:  msg.Body,
					},
					Sound: "default",
				},
			},
		},
	}
}

// LogSender only logs. Used when Firebase credentials are not configured.
type LogSender struct {
	Log logger.ILogger
}

func (s LogSender) Send(_ context.Context, tokens []string, msg Message) (int, int) {
	s.Log.Info("push delivery disabled", logger.String("title", msg.Title), logger.Int("tokens", len(tokens)))
	return 0, len(tokens)
}
