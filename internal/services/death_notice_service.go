package services

import (
	"context"
	"strings"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
)

const deathNoticesEntity = "death_notices"

type DeathNoticeStore interface {
	CreateDeathNotice(ctx context.Context, d models.DeathNotice) (models.DeathNotice, error)
	GetDeathNoticeByID(ctx context.Context, id int64) (models.DeathNotice, error)
	ListDeathNotices(ctx context.Context, f models.DeathNoticeFilter) ([]models.DeathNotice, int, error)
	UpdateDeathNotice(ctx context.Context, d models.DeathNotice) (models.DeathNotice, error)
	DeleteDeathNotice(ctx context.Context, id int64) error
}

type DeathNoticeService struct {
	DeathNoticeRepo DeathNoticeStore
	Cache           cache.Cache
}

func (s *DeathNoticeService) ListDeathNotices(ctx context.Context, f models.DeathNoticeFilter) (models.List[models.DeathNotice], error) {
	key := cache.QueryKey(deathNoticesEntity, "list", f)
	return cache.Remember(ctx, cacheOrNoop(s.Cache), deathNoticesEntity, key, func() (models.List[models.DeathNotice], error) {
		items, total, err := s.DeathNoticeRepo.ListDeathNotices(ctx, f)
		return toList(items, total), err
	})
}

func (s *DeathNoticeService) GetDeathNoticeByID(ctx context.Context, id int64) (models.DeathNotice, error) {
	return s.DeathNoticeRepo.GetDeathNoticeByID(ctx, id)
}

func (s *DeathNoticeService) CreateDeathNotice(ctx context.Context, d models.DeathNotice) (models.DeathNotice, error) {
	d.ID = 0
	if err := validateDeathNotice(&d); err != nil {
		return models.DeathNotice{}, err
	}
	created, err := s.DeathNoticeRepo.CreateDeathNotice(ctx, d)
	if err != nil {
		return models.DeathNotice{}, err
	}
	invalidate(ctx, s.Cache, deathNoticesEntity)
	return created, nil
}

func (s *DeathNoticeService) UpdateDeathNotice(ctx context.Context, id int64, patch []byte) (models.DeathNotice, error) {
	d, err := s.DeathNoticeRepo.GetDeathNoticeByID(ctx, id)
	if err != nil {
		return models.DeathNotice{}, err
	}
	if err := mergePatch(&d, patch); err != nil {
		return models.DeathNotice{}, err
	}
	d.ID = id
	if err := validateDeathNotice(&d); err != nil {
		return models.DeathNotice{}, err
	}
	updated, err := s.DeathNoticeRepo.UpdateDeathNotice(ctx, d)
	if err != nil {
		return models.DeathNotice{}, err
	}
	invalidate(ctx, s.Cache, deathNoticesEntity)
	return updated, nil
}

func (s *DeathNoticeService) DeleteDeathNotice(ctx context.Context, id int64) error {
	if err := s.DeathNoticeRepo.DeleteDeathNotice(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, deathNoticesEntity)
	return nil
}

func validateDeathNotice(d *models.DeathNotice) error {
	d.FullName = strings.TrimSpace(d.FullName)
	if err := validateStruct(*d); err != nil {
		return err
	}
	if d.FuneralAt != nil && d.FuneralAt.Before(d.DiedAt) {
		return models.NewValidationError("funeral_at", "must not precede died_at")
	}
	return nil
}
