package services

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
)

const campaignsEntity = "campaigns"

type CampaignStore interface {
	CreateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error)
	GetCampaignByID(ctx context.Context, id int64) (models.Campaign, error)
	GetRunningCampaign(ctx context.Context, id int64, now time.Time) (models.Campaign, error)
	ListCampaigns(ctx context.Context, f models.CampaignFilter, now time.Time) ([]models.Campaign, int, error)
	UpdateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error)
	DeleteCampaign(ctx context.Context, id int64) error
}

type CampaignService struct {
	CampaignRepo CampaignStore
	Cache        cache.Cache
	Clock        clockwork.Clock
}

// ListRunning lists active campaigns whose window contains now.
func (s *CampaignService) ListRunning(ctx context.Context, f models.CampaignFilter) (models.List[models.Campaign], error) {
	key, at := windowKey(s.Clock, campaignsEntity, "running", f)
	return cache.Remember(ctx, cacheOrNoop(s.Cache), campaignsEntity, key, func() (models.List[models.Campaign], error) {
		items, total, err := s.CampaignRepo.ListCampaigns(ctx, f, at)
		return toList(items, total), err
	})
}

func (s *CampaignService) GetRunning(ctx context.Context, id int64) (models.Campaign, error) {
	return s.CampaignRepo.GetRunningCampaign(ctx, id, now(s.Clock))
}

func (s *CampaignService) ListCampaigns(ctx context.Context, f models.CampaignFilter) (models.List[models.Campaign], error) {
	items, total, err := s.CampaignRepo.ListCampaigns(ctx, f, time.Time{})
	if err != nil {
		return models.List[models.Campaign]{}, err
	}
	return toList(items, total), nil
}

func (s *CampaignService) GetCampaignByID(ctx context.Context, id int64) (models.Campaign, error) {
	return s.CampaignRepo.GetCampaignByID(ctx, id)
}

func (s *CampaignService) CreateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	c.ID = 0
	if err := validateCampaign(&c); err != nil {
		return models.Campaign{}, err
	}
	created, err := s.CampaignRepo.CreateCampaign(ctx, c)
	if err != nil {
		return models.Campaign{}, err
	}
	invalidate(ctx, s.Cache, campaignsEntity)
	return created, nil
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, id int64, patch []byte) (models.Campaign, error) {
	c, err := s.CampaignRepo.GetCampaignByID(ctx, id)
	if err != nil {
		return models.Campaign{}, err
	}
	if err := mergePatch(&c, patch); err != nil {
		return models.Campaign{}, err
	}
	c.ID = id
	if err := validateCampaign(&c); err != nil {
		return models.Campaign{}, err
	}
	updated, err := s.CampaignRepo.UpdateCampaign(ctx, c)
	if err != nil {
		return models.Campaign{}, err
	}
	invalidate(ctx, s.Cache, campaignsEntity)
	return updated, nil
}

func (s *CampaignService) DeleteCampaign(ctx context.Context, id int64) error {
	if err := s.CampaignRepo.DeleteCampaign(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, campaignsEntity)
	return nil
}

func validateCampaign(c *models.Campaign) error {
	c.Title = strings.TrimSpace(c.Title)
	c.BusinessName = strings.TrimSpace(c.BusinessName)
	if err := validateStruct(*c); err != nil {
		return err
	}
	if c.EndsAt.Before(c.StartsAt) {
		return models.NewValidationError("ends_at", "must not precede starts_at")
	}
	return nil
}
