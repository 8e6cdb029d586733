package services

import (
	"context"
	"strings"

	"belediyeBack/internal/logger"
	"belediyeBack/internal/models"
	"belediyeBack/internal/push"
)

type NotificationStore interface {
	UpsertDeviceToken(ctx context.Context, t models.DeviceToken) error
	DeleteDeviceToken(ctx context.Context, token string) error
	GetTokensByUserID(ctx context.Context, userID int64) ([]string, error)
	GetAllTokens(ctx context.Context) ([]string, error)
	CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	ListNotifications(ctx context.Context, p models.Page) ([]models.Notification, int, error)
}

type NotificationService struct {
	NotificationRepo NotificationStore
	Sender           push.Sender
	Log              logger.ILogger
}

// RegisterDevice stores a push token. Re-registering moves it to the caller.
func (s *NotificationService) RegisterDevice(ctx context.Context, caller *models.Identity, t models.DeviceToken) error {
	t.Token = strings.TrimSpace(t.Token)
	t.Platform = strings.ToLower(strings.TrimSpace(t.Platform))
	t.UserID = nil
	if caller != nil {
		id := caller.UserID
		t.UserID = &id
	}
	if err := validateStruct(t); err != nil {
		return err
	}
	return s.NotificationRepo.UpsertDeviceToken(ctx, t)
}

func (s *NotificationService) UnregisterDevice(ctx context.Context, token string) error {
	return s.NotificationRepo.DeleteDeviceToken(ctx, strings.TrimSpace(token))
}

// SendNotification delivers n synchronously and records the delivery counts.
func (s *NotificationService) SendNotification(ctx context.Context, sender models.Identity, n models.Notification) (models.Notification, error) {
	n.ID = 0
	n.CreatedBy = sender.UserID
	if n.Target != models.NotificationTargetUser {
		n.UserID = nil
	}
	if err := validateStruct(n); err != nil {
		return models.Notification{}, err
	}

	tokens, err := s.tokensFor(ctx, n.Target, n.UserID)
	if err != nil {
		return models.Notification{}, err
	}
	n.SentCount, n.FailedCount = s.Sender.Send(ctx, tokens, push.Message{Title: n.Title, Body: n.Body, Link: n.Link})

	return s.NotificationRepo.CreateNotification(ctx, n)
}

func (s *NotificationService) ListNotifications(ctx context.Context, p models.Page) (models.List[models.Notification], error) {
	items, total, err := s.NotificationRepo.ListNotifications(ctx, p)
	if err != nil {
		return models.List[models.Notification]{}, err
	}
	return toList(items, total), nil
}

// NotifyAll sends msg to every registered device in the background.
func (s *NotificationService) NotifyAll(ctx context.Context, msg push.Message) {
	go s.deliver(context.WithoutCancel(ctx), models.NotificationTargetAll, nil, msg)
}

// NotifyUser sends msg to the user's devices in the background.
func (s *NotificationService) NotifyUser(ctx context.Context, userID int64, msg push.Message) {
	go s.deliver(context.WithoutCancel(ctx), models.NotificationTargetUser, &userID, msg)
}

func (s *NotificationService) deliver(ctx context.Context, target string, userID *int64, msg push.Message) {
	tokens, err := s.tokensFor(ctx, target, userID)
	if err != nil {
		s.log().Error("load push tokens", logger.String("target", target), logger.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}
	sent, failed := s.Sender.Send(ctx, tokens, msg)
	s.log().Info("push delivered",
		logger.String("target", target),
		logger.String("title", msg.Title),
		logger.Int("sent", sent),
		logger.Int("failed", failed))
}

func (s *NotificationService) tokensFor(ctx context.Context, target string, userID *int64) ([]string, error) {
	if target == models.NotificationTargetUser {
		if userID == nil {
			return nil, nil
		}
		return s.NotificationRepo.GetTokensByUserID(ctx, *userID)
	}
	return s.NotificationRepo.GetAllTokens(ctx)
}

func (s *NotificationService) log() logger.ILogger {
	if s.Log == nil {
		return logger.NewNop()
	}
	return s.Log
}
