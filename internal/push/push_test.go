package push

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/logger"
)

type stubClient struct {
	fail  map[string]bool
	calls []*messaging.Message
}

func (c *stubClient) Send(_ context.Context, m *messaging.Message) (string, error) {
	c.calls = append(c.calls, m)
	if c.fail[m.Token] {
		return "", errors.New("unregistered")
	}
	return "projects/x/messages/1", nil
}

func TestFCMSenderCountsResults(t *testing.T) {
	client := &stubClient{fail: map[string]bool{"bad": true}}
	s := NewFCMSender(client, logger.NewNop())

	sent, failed := s.Send(context.Background(), []string{"a", "bad", "b"}, Message{Title: "Su kesintisi", Body: "Yarın 09:00-12:00", Link: "/announcements/3"})

	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)
	require.Len(t, client.calls, 3)
	assert.Equal(t, "/announcements/3", client.calls[0].Data["link"])
	assert.Equal(t, "Su kesintisi", client.calls[0].Notification.Title)
}

func TestFCMSenderStopsWhenBreakerOpens(t *testing.T) {
	tokens := make([]string, 8)
	fail := map[string]bool{}
	for i := range tokens {
		tokens[i] = string(rune('a' + i))
		fail[tokens[i]] = true
	}
	client := &stubClient{fail: fail}
	s := NewFCMSender(client, logger.NewNop())

	sent, failed := s.Send(context.Background(), tokens, Message{Title: "t"})

	assert.Equal(t, 0, sent)
	assert.Equal(t, len(tokens), failed)
	assert.Len(t, client.calls, 5)
}

func TestLogSenderReportsAllFailed(t *testing.T) {
	sent, failed := LogSender{Log: logger.NewNop()}.Send(context.Background(), []string{"a", "b"}, Message{})
	assert.Equal(t, 0, sent)
	assert.Equal(t, 2, failed)
}
