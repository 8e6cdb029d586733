package services

import (
	"context"
	"strings"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
)

const neighborhoodsEntity = "neighborhoods"

type NeighborhoodStore interface {
	CreateNeighborhood(ctx context.Context, n models.Neighborhood) (models.Neighborhood, error)
	GetNeighborhoods(ctx context.Context) ([]models.Neighborhood, error)
	GetNeighborhoodByID(ctx context.Context, id int64) (models.Neighborhood, error)
	UpdateNeighborhood(ctx context.Context, n models.Neighborhood) (models.Neighborhood, error)
	DeleteNeighborhood(ctx context.Context, id int64) error
}

type NeighborhoodService struct {
	NeighborhoodRepo NeighborhoodStore
	Cache            cache.Cache
}

func (s *NeighborhoodService) GetNeighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	return cache.Remember(ctx, cacheOrNoop(s.Cache), neighborhoodsEntity, cache.Key(neighborhoodsEntity, "all"),
		func() ([]models.Neighborhood, error) {
			items, err := s.NeighborhoodRepo.GetNeighborhoods(ctx)
			if items == nil {
				items = []models.Neighborhood{}
			}
			return items, err
		})
}

func (s *NeighborhoodService) GetNeighborhoodByID(ctx context.Context, id int64) (models.Neighborhood, error) {
	return s.NeighborhoodRepo.GetNeighborhoodByID(ctx, id)
}

func (s *NeighborhoodService) CreateNeighborhood(ctx context.Context, n models.Neighborhood) (models.Neighborhood, error) {
	n.ID = 0
	n.Name = strings.TrimSpace(n.Name)
	if err := validateStruct(n); err != nil {
		return models.Neighborhood{}, err
	}
	created, err := s.NeighborhoodRepo.CreateNeighborhood(ctx, n)
	if err != nil {
		return models.Neighborhood{}, err
	}
	invalidate(ctx, s.Cache, neighborhoodsEntity)
	return created, nil
}

func (s *NeighborhoodService) UpdateNeighborhood(ctx context.Context, id int64, patch []byte) (models.Neighborhood, error) {
	n, err := s.NeighborhoodRepo.GetNeighborhoodByID(ctx, id)
	if err != nil {
		return models.Neighborhood{}, err
	}
	if err := mergePatch(&n, patch); err != nil {
		return models.Neighborhood{}, err
	}
	n.ID = id
	n.Name = strings.TrimSpace(n.Name)
	if err := validateStruct(n); err != nil {
		return models.Neighborhood{}, err
	}
	updated, err := s.NeighborhoodRepo.UpdateNeighborhood(ctx, n)
	if err != nil {
		return models.Neighborhood{}, err
	}
	invalidate(ctx, s.Cache, neighborhoodsEntity)
	return updated, nil
}

// DeleteNeighborhood fails with models.ErrReferenced while any record points at it.
func (s *NeighborhoodService) DeleteNeighborhood(ctx context.Context, id int64) error {
	if err := s.NeighborhoodRepo.DeleteNeighborhood(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, neighborhoodsEntity)
	return nil
}
