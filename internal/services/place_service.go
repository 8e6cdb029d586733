package services

import (
	"context"
	"strings"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
)

const (
	placesEntity     = "places"
	categoriesEntity = "place_categories"
)

type PlaceStore interface {
	CreateCategory(ctx context.Context, c models.PlaceCategory) (models.PlaceCategory, error)
	GetCategoryByID(ctx context.Context, id int64) (models.PlaceCategory, error)
	GetCategories(ctx context.Context) ([]models.PlaceCategory, error)
	UpdateCategory(ctx context.Context, c models.PlaceCategory) (models.PlaceCategory, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreatePlace(ctx context.Context, p models.Place) (models.Place, error)
	GetPlaceByID(ctx context.Context, id int64) (models.Place, error)
	ListPlaces(ctx context.Context, f models.PlaceFilter) ([]models.Place, int, error)
	UpdatePlace(ctx context.Context, p models.Place) (models.Place, error)
	DeletePlace(ctx context.Context, id int64) error
}

type PlaceService struct {
	PlaceRepo PlaceStore
	Cache     cache.Cache
}

func (s *PlaceService) GetCategories(ctx context.Context) ([]models.PlaceCategory, error) {
	return cache.Remember(ctx, cacheOrNoop(s.Cache), categoriesEntity, cache.Key(categoriesEntity, "all"),
		func() ([]models.PlaceCategory, error) {
			items, err := s.PlaceRepo.GetCategories(ctx)
			if items == nil {
				items = []models.PlaceCategory{}
			}
			return items, err
		})
}

func (s *PlaceService) GetCategoryByID(ctx context.Context, id int64) (models.PlaceCategory, error) {
	return s.PlaceRepo.GetCategoryByID(ctx, id)
}

func (s *PlaceService) CreateCategory(ctx context.Context, c models.PlaceCategory) (models.PlaceCategory, error) {
	c.ID = 0
	c.Name = strings.TrimSpace(c.Name)
	if err := validateStruct(c); err != nil {
		return models.PlaceCategory{}, err
	}
	created, err := s.PlaceRepo.CreateCategory(ctx, c)
	if err != nil {
		return models.PlaceCategory{}, err
	}
	invalidate(ctx, s.Cache, categoriesEntity)
	return created, nil
}

func (s *PlaceService) UpdateCategory(ctx context.Context, id int64, patch []byte) (models.PlaceCategory, error) {
	c, err := s.PlaceRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return models.PlaceCategory{}, err
	}
	if err := mergePatch(&c, patch); err != nil {
		return models.PlaceCategory{}, err
	}
	c.ID = id
	c.Name = strings.TrimSpace(c.Name)
	if err := validateStruct(c); err != nil {
		return models.PlaceCategory{}, err
	}
	updated, err := s.PlaceRepo.UpdateCategory(ctx, c)
	if err != nil {
		return models.PlaceCategory{}, err
	}
	invalidate(ctx, s.Cache, categoriesEntity)
	return updated, nil
}

// DeleteCategory fails with models.ErrReferenced while live places use the category.
func (s *PlaceService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.PlaceRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, categoriesEntity, placesEntity)
	return nil
}

func (s *PlaceService) ListPlaces(ctx context.Context, f models.PlaceFilter) (models.List[models.Place], error) {
	key := cache.QueryKey(placesEntity, "list", f)
	return cache.Remember(ctx, cacheOrNoop(s.Cache), placesEntity, key, func() (models.List[models.Place], error) {
		items, total, err := s.PlaceRepo.ListPlaces(ctx, f)
		return toList(items, total), err
	})
}

func (s *PlaceService) GetPlaceByID(ctx context.Context, id int64) (models.Place, error) {
	return cache.Remember(ctx, cacheOrNoop(s.Cache), placesEntity, cache.Key(placesEntity, "id", itoa(id)),
		func() (models.Place, error) {
			return s.PlaceRepo.GetPlaceByID(ctx, id)
		})
}

func (s *PlaceService) CreatePlace(ctx context.Context, p models.Place) (models.Place, error) {
	p.ID = 0
	p.Name = strings.TrimSpace(p.Name)
	if err := validateStruct(p); err != nil {
		return models.Place{}, err
	}
	created, err := s.PlaceRepo.CreatePlace(ctx, p)
	if err != nil {
		return models.Place{}, err
	}
	invalidate(ctx, s.Cache, placesEntity, categoriesEntity)
	return created, nil
}

func (s *PlaceService) UpdatePlace(ctx context.Context, id int64, patch []byte) (models.Place, error) {
	p, err := s.PlaceRepo.GetPlaceByID(ctx, id)
	if err != nil {
		return models.Place{}, err
	}
	if err := mergePatch(&p, patch); err != nil {
		return models.Place{}, err
	}
	p.ID = id
	p.Name = strings.TrimSpace(p.Name)
	if err := validateStruct(p); err != nil {
		return models.Place{}, err
	}
	updated, err := s.PlaceRepo.UpdatePlace(ctx, p)
	if err != nil {
		return models.Place{}, err
	}
	invalidate(ctx, s.Cache, placesEntity, categoriesEntity)
	return updated, nil
}

func (s *PlaceService) DeletePlace(ctx context.Context, id int64) error {
	if err := s.PlaceRepo.DeletePlace(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, placesEntity, categoriesEntity)
	return nil
}
