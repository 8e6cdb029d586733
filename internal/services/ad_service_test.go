package services

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
)

type fakeAdStore struct {
	AdStore
	ads      map[int64]models.Ad
	expireAt time.Time
}

func (s *fakeAdStore) CreateAd(_ context.Context, ad models.Ad) (models.Ad, error) {
	ad.ID = int64(len(s.ads) + 1)
	s.ads[ad.ID] = ad
	return ad, nil
}

func (s *fakeAdStore) GetAdByID(_ context.Context, id int64) (models.Ad, error) {
	ad, ok := s.ads[id]
	if !ok {
		return models.Ad{}, models.ErrNoRecord
	}
	return ad, nil
}

func (s *fakeAdStore) DeleteAd(_ context.Context, id int64) error {
	delete(s.ads, id)
	return nil
}

func (s *fakeAdStore) ExpireAds(_ context.Context, now time.Time) (int64, error) {
	s.expireAt = now
	return 2, nil
}

func newAd() models.Ad {
	return models.Ad{
		Title: "Satılık bisiklet", Description: "Az kullanılmış", Category: " Vehicles ",
		ContactName: "Ali", ContactPhone: "+905551112233", Status: models.AdStatusApproved,
	}
}

func TestSubmitAdIsPendingWithExpiry(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	store := &fakeAdStore{ads: map[int64]models.Ad{}}
	svc := &AdService{AdRepo: store, Clock: clock, TTL: 30 * 24 * time.Hour}

	ad, err := svc.SubmitAd(context.Background(), citizen, newAd())

	require.NoError(t, err)
	assert.Equal(t, models.AdStatusPending, ad.Status)
	require.NotNil(t, ad.UserID)
	assert.Equal(t, citizen.UserID, *ad.UserID)
	assert.Equal(t, "vehicles", ad.Category)
	require.NotNil(t, ad.ExpiresAt)
	assert.Equal(t, time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC), *ad.ExpiresAt)
}

func TestDeleteOwnAd(t *testing.T) {
	store := &fakeAdStore{ads: map[int64]models.Ad{}}
	svc := &AdService{AdRepo: store, Clock: clockwork.NewFakeClock(), TTL: time.Hour}
	ctx := context.Background()

	ad, err := svc.SubmitAd(ctx, citizen, newAd())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteOwn(ctx, neighbor, ad.ID), models.ErrForbidden)
	assert.Contains(t, store.ads, ad.ID)

	require.NoError(t, svc.DeleteOwn(ctx, citizen, ad.ID))
	assert.NotContains(t, store.ads, ad.ID)

	assert.ErrorIs(t, svc.DeleteOwn(ctx, citizen, ad.ID), models.ErrNoRecord)
}

func TestStaffMayDeleteAnyAd(t *testing.T) {
	store := &fakeAdStore{ads: map[int64]models.Ad{1: {ID: 1}}}
	svc := &AdService{AdRepo: store}

	require.NoError(t, svc.DeleteOwn(context.Background(), editor, 1))
	assert.Empty(t, store.ads)
}

func TestModerateAdValidatesStatus(t *testing.T) {
	svc := &AdService{AdRepo: &fakeAdStore{ads: map[int64]models.Ad{}}}

	_, err := svc.ModerateAd(context.Background(), 1, models.AdStatusRequest{Status: models.AdStatusExpired})

	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestExpireAdsUsesClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	store := &fakeAdStore{ads: map[int64]models.Ad{}}
	svc := &AdService{AdRepo: store, Clock: clock}

	n, err := svc.ExpireAds(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, clock.Now(), store.expireAt)
}
