package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
)

type fakeAnnouncementStore struct {
	AnnouncementStore
	items map[int64]models.Announcement
	views int
}

func (s *fakeAnnouncementStore) CreateAnnouncement(_ context.Context, a models.Announcement) (models.Announcement, error) {
	a.ID = int64(len(s.items) + 1)
	a.Notify = false
	s.items[a.ID] = a
	return a, nil
}

func (s *fakeAnnouncementStore) GetAnnouncementByID(_ context.Context, id int64) (models.Announcement, error) {
	a, ok := s.items[id]
	if !ok {
		return models.Announcement{}, models.ErrNoRecord
	}
	return a, nil
}

func (s *fakeAnnouncementStore) GetPublishedAnnouncement(ctx context.Context, id int64, _ time.Time) (models.Announcement, error) {
	a, err := s.GetAnnouncementByID(ctx, id)
	if err == nil && !a.IsPublished {
		return models.Announcement{}, models.ErrNoRecord
	}
	return a, err
}

func (s *fakeAnnouncementStore) UpdateAnnouncement(_ context.Context, a models.Announcement) (models.Announcement, error) {
	notify := a.Notify
	a.Notify = false
	s.items[a.ID] = a
	a.Notify = notify
	return a, nil
}

func (s *fakeAnnouncementStore) IncrementViewCount(_ context.Context, id int64) error {
	s.views++
	a := s.items[id]
	a.ViewCount++
	s.items[id] = a
	return nil
}

func TestCreateAnnouncementStampsAndNotifies(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	svc := &AnnouncementService{
		AnnouncementRepo: &fakeAnnouncementStore{items: map[int64]models.Announcement{}},
		Notifier:         notifier,
		Clock:            clock,
	}

	a, err := svc.CreateAnnouncement(context.Background(), models.Announcement{
		Title: "Su kesintisi", Content: "Yarın 10:00-14:00 arası su kesintisi olacaktır.",
		IsPublished: true, Notify: true,
	})

	require.NoError(t, err)
	require.NotNil(t, a.PublishedAt)
	assert.Equal(t, clock.Now(), *a.PublishedAt)
	require.Len(t, notifier.all, 1)
	assert.Equal(t, "Su kesintisi", notifier.all[0].Title)
	assert.Equal(t, "/announcements/1", notifier.all[0].Link)
}

func TestCreateDraftDoesNotNotify(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := &AnnouncementService{
		AnnouncementRepo: &fakeAnnouncementStore{items: map[int64]models.Announcement{}},
		Notifier:         notifier,
	}

	a, err := svc.CreateAnnouncement(context.Background(), models.Announcement{
		Title: "Taslak", Content: "Henüz yayında değil", Notify: true,
	})

	require.NoError(t, err)
	assert.Nil(t, a.PublishedAt)
	assert.Empty(t, notifier.all)
}

func TestAnnouncementExpiryMustFollowPublish(t *testing.T) {
	published := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	expires := published.Add(-time.Hour)
	svc := &AnnouncementService{AnnouncementRepo: &fakeAnnouncementStore{items: map[int64]models.Announcement{}}}

	_, err := svc.CreateAnnouncement(context.Background(), models.Announcement{
		Title: "Duyuru", Content: "İçerik", IsPublished: true,
		PublishedAt: &published, ExpiresAt: &expires,
	})

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "expires_at")
}

func TestPublishingDraftNotifiesOnce(t *testing.T) {
	store := &fakeAnnouncementStore{items: map[int64]models.Announcement{
		1: {ID: 1, Title: "Konser", Content: "Cumartesi meydanda"},
	}}
	notifier := &recordingNotifier{}
	svc := &AnnouncementService{AnnouncementRepo: store, Notifier: notifier, Clock: clockwork.NewFakeClock()}
	ctx := context.Background()

	_, err := svc.UpdateAnnouncement(ctx, 1, []byte(`{"is_published":true,"notify":true}`))
	require.NoError(t, err)
	_, err = svc.UpdateAnnouncement(ctx, 1, []byte(`{"title":"Konser (güncel)","notify":true}`))
	require.NoError(t, err)

	assert.Len(t, notifier.all, 1)
}

func TestViewAnnouncementCountsViews(t *testing.T) {
	store := &fakeAnnouncementStore{items: map[int64]models.Announcement{
		1: {ID: 1, IsPublished: true, ViewCount: 4},
		2: {ID: 2},
	}}
	svc := &AnnouncementService{AnnouncementRepo: store}
	ctx := context.Background()

	a, err := svc.ViewAnnouncement(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.ViewCount)

	_, err = svc.ViewAnnouncement(ctx, 2)
	assert.ErrorIs(t, err, models.ErrNoRecord)
	assert.Equal(t, 1, store.views)
}

type mapCache map[string][]byte

func (m mapCache) Get(_ context.Context, key string, dest interface{}) bool {
	b, ok := m[key]
	return ok && json.Unmarshal(b, dest) == nil
}

func (m mapCache) Set(_ context.Context, key string, value interface{}) {
	m[key], _ = json.Marshal(value)
}

func (m mapCache) Invalidate(context.Context, string) {}

func (s *fakeAnnouncementStore) ListPublished(_ context.Context, _ models.AnnouncementFilter, now time.Time) ([]models.Announcement, int, error) {
	var out []models.Announcement
	for _, a := range s.items {
		if a.IsPublished && a.PublishedAt != nil && !a.PublishedAt.After(now) {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func TestListPublishedCacheFollowsClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 2, 8, 59, 10, 0, time.UTC))
	scheduled := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store := &fakeAnnouncementStore{items: map[int64]models.Announcement{
		1: {ID: 1, Title: "Su kesintisi", IsPublished: true, PublishedAt: &scheduled},
	}}
	cached := mapCache{}
	svc := &AnnouncementService{AnnouncementRepo: store, Cache: cached, Clock: clock}
	f := models.AnnouncementFilter{Page: models.NewPage(1, 20)}

	list, err := svc.ListPublished(context.Background(), f)
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	clock.Advance(time.Minute)
	list, err = svc.ListPublished(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Len(t, cached, 2)
}
