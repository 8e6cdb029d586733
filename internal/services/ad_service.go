package services

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
)

const adsEntity = "ads"

type AdStore interface {
	CreateAd(ctx context.Context, ad models.Ad) (models.Ad, error)
	GetAdByID(ctx context.Context, id int64) (models.Ad, error)
	GetVisibleAd(ctx context.Context, id int64, now time.Time) (models.Ad, error)
	ListAds(ctx context.Context, f models.AdFilter, now time.Time) ([]models.Ad, int, error)
	UpdateAd(ctx context.Context, ad models.Ad) (models.Ad, error)
	UpdateAdStatus(ctx context.Context, id int64, status string) error
	DeleteAd(ctx context.Context, id int64) error
	ExpireAds(ctx context.Context, now time.Time) (int64, error)
}

type AdService struct {
	AdRepo AdStore
	Cache  cache.Cache
	Clock  clockwork.Clock
	// TTL is how long a submitted ad stays listed.
	TTL time.Duration
}

// ListPublic lists approved, unexpired ads.
func (s *AdService) ListPublic(ctx context.Context, f models.AdFilter) (models.List[models.Ad], error) {
	f.Status = models.AdStatusApproved
	f.UserID = 0
	key, at := windowKey(s.Clock, adsEntity, "public", f)
	return cache.Remember(ctx, cacheOrNoop(s.Cache), adsEntity, key, func() (models.List[models.Ad], error) {
		items, total, err := s.AdRepo.ListAds(ctx, f, at)
		return toList(items, total), err
	})
}

func (s *AdService) GetPublic(ctx context.Context, id int64) (models.Ad, error) {
	return s.AdRepo.GetVisibleAd(ctx, id, now(s.Clock))
}

// SubmitAd files a citizen's ad for moderation.
func (s *AdService) SubmitAd(ctx context.Context, owner models.Identity, ad models.Ad) (models.Ad, error) {
	ad.ID = 0
	ad.UserID = &owner.UserID
	ad.Status = models.AdStatusPending
	expires := now(s.Clock).Add(s.TTL)
	ad.ExpiresAt = &expires
	if err := validateAd(&ad); err != nil {
		return models.Ad{}, err
	}

	created, err := s.AdRepo.CreateAd(ctx, ad)
	if err != nil {
		return models.Ad{}, err
	}
	invalidate(ctx, s.Cache, adsEntity)
	return created, nil
}

func (s *AdService) ListOwn(ctx context.Context, owner models.Identity, page models.Page) (models.List[models.Ad], error) {
	items, total, err := s.AdRepo.ListAds(ctx, models.AdFilter{UserID: owner.UserID, Page: page}, time.Time{})
	if err != nil {
		return models.List[models.Ad]{}, err
	}
	return toList(items, total), nil
}

// DeleteOwn removes an ad on behalf of its author. Staff may remove any ad.
func (s *AdService) DeleteOwn(ctx context.Context, actor models.Identity, id int64) error {
	ad, err := s.AdRepo.GetAdByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsStaff() && (ad.UserID == nil || *ad.UserID != actor.UserID) {
		return models.ErrForbidden
	}
	return s.DeleteAd(ctx, id)
}

func (s *AdService) ListAds(ctx context.Context, f models.AdFilter) (models.List[models.Ad], error) {
	items, total, err := s.AdRepo.ListAds(ctx, f, time.Time{})
	if err != nil {
		return models.List[models.Ad]{}, err
	}
	return toList(items, total), nil
}

func (s *AdService) GetAdByID(ctx context.Context, id int64) (models.Ad, error) {
	return s.AdRepo.GetAdByID(ctx, id)
}

// CreateAd stores an ad entered by staff. It is approved unless a status is given.
func (s *AdService) CreateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	ad.ID = 0
	if ad.Status == "" {
		ad.Status = models.AdStatusApproved
	}
	if ad.ExpiresAt == nil {
		expires := now(s.Clock).Add(s.TTL)
		ad.ExpiresAt = &expires
	}
	if err := validateAd(&ad); err != nil {
		return models.Ad{}, err
	}

	created, err := s.AdRepo.CreateAd(ctx, ad)
	if err != nil {
		return models.Ad{}, err
	}
	invalidate(ctx, s.Cache, adsEntity)
	return created, nil
}

func (s *AdService) UpdateAd(ctx context.Context, id int64, patch []byte) (models.Ad, error) {
	ad, err := s.AdRepo.GetAdByID(ctx, id)
	if err != nil {
		return models.Ad{}, err
	}
	owner := ad.UserID
	if err := mergePatch(&ad, patch); err != nil {
		return models.Ad{}, err
	}
	ad.ID = id
	ad.UserID = owner
	if err := validateAd(&ad); err != nil {
		return models.Ad{}, err
	}

	updated, err := s.AdRepo.UpdateAd(ctx, ad)
	if err != nil {
		return models.Ad{}, err
	}
	invalidate(ctx, s.Cache, adsEntity)
	return updated, nil
}

// ModerateAd approves or rejects an ad.
func (s *AdService) ModerateAd(ctx context.Context, id int64, req models.AdStatusRequest) (models.Ad, error) {
	if err := validateStruct(req); err != nil {
		return models.Ad{}, err
	}
	if err := s.AdRepo.UpdateAdStatus(ctx, id, req.Status); err != nil {
		return models.Ad{}, err
	}
	invalidate(ctx, s.Cache, adsEntity)
	return s.AdRepo.GetAdByID(ctx, id)
}

func (s *AdService) DeleteAd(ctx context.Context, id int64) error {
	if err := s.AdRepo.DeleteAd(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, adsEntity)
	return nil
}

// ExpireAds marks approved ads past their expiry as expired.
func (s *AdService) ExpireAds(ctx context.Context) (int64, error) {
	n, err := s.AdRepo.ExpireAds(ctx, now(s.Clock))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		invalidate(ctx, s.Cache, adsEntity)
	}
	return n, nil
}

func validateAd(ad *models.Ad) error {
	ad.Title = strings.TrimSpace(ad.Title)
	ad.Category = strings.ToLower(strings.TrimSpace(ad.Category))
	return validateStruct(*ad)
}
