package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
	"belediyeBack/internal/push"
)

const announcementsEntity = "announcements"

type AnnouncementStore interface {
	CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error)
	GetAnnouncementByID(ctx context.Context, id int64) (models.Announcement, error)
	GetPublishedAnnouncement(ctx context.Context, id int64, now time.Time) (models.Announcement, error)
	ListAnnouncements(ctx context.Context, f models.AnnouncementFilter) ([]models.Announcement, int, error)
	ListPublished(ctx context.Context, f models.AnnouncementFilter, now time.Time) ([]models.Announcement, int, error)
	UpdateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
	IncrementViewCount(ctx context.Context, id int64) error
}

// Notifier fans a push message out to devices. Implementations must not block the caller.
type Notifier interface {
	NotifyAll(ctx context.Context, msg push.Message)
	NotifyUser(ctx context.Context, userID int64, msg push.Message)
}

type AnnouncementService struct {
	AnnouncementRepo AnnouncementStore
	Notifier         Notifier
	Cache            cache.Cache
	Clock            clockwork.Clock
}

func (s *AnnouncementService) ListPublished(ctx context.Context, f models.AnnouncementFilter) (models.List[models.Announcement], error) {
	key, at := windowKey(s.Clock, announcementsEntity, "published", f)
	return cache.Remember(ctx, cacheOrNoop(s.Cache), announcementsEntity, key, func() (models.List[models.Announcement], error) {
		items, total, err := s.AnnouncementRepo.ListPublished(ctx, f, at)
		return toList(items, total), err
	})
}

// ViewAnnouncement returns a published announcement and counts the view.
func (s *AnnouncementService) ViewAnnouncement(ctx context.Context, id int64) (models.Announcement, error) {
	a, err := s.AnnouncementRepo.GetPublishedAnnouncement(ctx, id, now(s.Clock))
	if err != nil {
		return models.Announcement{}, err
	}
	if err := s.AnnouncementRepo.IncrementViewCount(ctx, id); err != nil {
		return models.Announcement{}, err
	}
	a.ViewCount++
	return a, nil
}

func (s *AnnouncementService) ListAnnouncements(ctx context.Context, f models.AnnouncementFilter) (models.List[models.Announcement], error) {
	items, total, err := s.AnnouncementRepo.ListAnnouncements(ctx, f)
	if err != nil {
		return models.List[models.Announcement]{}, err
	}
	return toList(items, total), nil
}

func (s *AnnouncementService) GetAnnouncementByID(ctx context.Context, id int64) (models.Announcement, error) {
	return s.AnnouncementRepo.GetAnnouncementByID(ctx, id)
}

func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	a.ID = 0
	a.ViewCount = 0
	if err := s.prepare(&a); err != nil {
		return models.Announcement{}, err
	}

	created, err := s.AnnouncementRepo.CreateAnnouncement(ctx, a)
	if err != nil {
		return models.Announcement{}, err
	}
	invalidate(ctx, s.Cache, announcementsEntity)

	if created.IsPublished && a.Notify {
		s.notify(ctx, created)
	}
	return created, nil
}

func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, id int64, patch []byte) (models.Announcement, error) {
	a, err := s.AnnouncementRepo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return models.Announcement{}, err
	}
	wasPublished := a.IsPublished

	if err := mergePatch(&a, patch); err != nil {
		return models.Announcement{}, err
	}
	a.ID = id
	if err := s.prepare(&a); err != nil {
		return models.Announcement{}, err
	}

	updated, err := s.AnnouncementRepo.UpdateAnnouncement(ctx, a)
	if err != nil {
		return models.Announcement{}, err
	}
	invalidate(ctx, s.Cache, announcementsEntity)

	if !wasPublished && updated.IsPublished && a.Notify {
		s.notify(ctx, updated)
	}
	return updated, nil
}

func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id int64) error {
	if err := s.AnnouncementRepo.DeleteAnnouncement(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, announcementsEntity)
	return nil
}

// prepare validates a and stamps published_at when publishing without one.
func (s *AnnouncementService) prepare(a *models.Announcement) error {
	a.Title = strings.TrimSpace(a.Title)
	if err := validateStruct(*a); err != nil {
		return err
	}
	if a.IsPublished && a.PublishedAt == nil {
		t := now(s.Clock)
		a.PublishedAt = &t
	}
	if a.ExpiresAt != nil && a.PublishedAt != nil && !a.ExpiresAt.After(*a.PublishedAt) {
		return models.NewValidationError("expires_at", "must be after published_at")
	}
	return nil
}

func (s *AnnouncementService) notify(ctx context.Context, a models.Announcement) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.NotifyAll(ctx, push.Message{
		Title: a.Title,
		Body:  excerpt(a.Content, 140),
		Link:  fmt.Sprintf("/announcements/%d", a.ID),
		Data:  map[string]string{"type": "announcement"},
	})
}

func excerpt(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
