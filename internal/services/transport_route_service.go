package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
)

const routesEntity = "transport_routes"

type TransportRouteStore interface {
	CreateRoute(ctx context.Context, rt models.TransportRoute) (models.TransportRoute, error)
	GetRouteByID(ctx context.Context, id int64) (models.TransportRoute, error)
	ListRoutes(ctx context.Context, f models.RouteFilter) ([]models.TransportRoute, int, error)
	UpdateRoute(ctx context.Context, rt models.TransportRoute) (models.TransportRoute, error)
	DeleteRoute(ctx context.Context, id int64) error
}

type TransportRouteService struct {
	RouteRepo TransportRouteStore
	Cache     cache.Cache
}

func (s *TransportRouteService) ListPublic(ctx context.Context, f models.RouteFilter) (models.List[models.TransportRoute], error) {
	f.OnlyActive = true
	key := cache.QueryKey(routesEntity, "public", f)
	return cache.Remember(ctx, cacheOrNoop(s.Cache), routesEntity, key, func() (models.List[models.TransportRoute], error) {
		items, total, err := s.RouteRepo.ListRoutes(ctx, f)
		return toList(items, total), err
	})
}

// GetPublic returns an active route. Inactive routes are reported as missing.
func (s *TransportRouteService) GetPublic(ctx context.Context, id int64) (models.TransportRoute, error) {
	rt, err := s.RouteRepo.GetRouteByID(ctx, id)
	if err != nil {
		return models.TransportRoute{}, err
	}
	if !rt.IsActive {
		return models.TransportRoute{}, models.ErrNoRecord
	}
	return rt, nil
}

func (s *TransportRouteService) ListRoutes(ctx context.Context, f models.RouteFilter) (models.List[models.TransportRoute], error) {
	items, total, err := s.RouteRepo.ListRoutes(ctx, f)
	if err != nil {
		return models.List[models.TransportRoute]{}, err
	}
	return toList(items, total), nil
}

func (s *TransportRouteService) GetRouteByID(ctx context.Context, id int64) (models.TransportRoute, error) {
	return s.RouteRepo.GetRouteByID(ctx, id)
}

func (s *TransportRouteService) CreateRoute(ctx context.Context, rt models.TransportRoute) (models.TransportRoute, error) {
	rt.ID = 0
	if err := prepareRoute(&rt); err != nil {
		return models.TransportRoute{}, err
	}
	created, err := s.RouteRepo.CreateRoute(ctx, rt)
	if err != nil {
		return models.TransportRoute{}, err
	}
	invalidate(ctx, s.Cache, routesEntity)
	return created, nil
}

// UpdateRoute applies a partial update. A "stops" key in the body replaces all stops.
func (s *TransportRouteService) UpdateRoute(ctx context.Context, id int64, patch []byte) (models.TransportRoute, error) {
	rt, err := s.RouteRepo.GetRouteByID(ctx, id)
	if err != nil {
		return models.TransportRoute{}, err
	}
	// Lists are replaced, not merged element by element.
	stops, times := rt.Stops, rt.DepartureTimes
	rt.Stops, rt.DepartureTimes = nil, nil
	if err := mergePatch(&rt, patch); err != nil {
		return models.TransportRoute{}, err
	}
	if rt.Stops == nil {
		rt.Stops = stops
	}
	if rt.DepartureTimes == nil {
		rt.DepartureTimes = times
	}
	rt.ID = id
	if err := prepareRoute(&rt); err != nil {
		return models.TransportRoute{}, err
	}
	updated, err := s.RouteRepo.UpdateRoute(ctx, rt)
	if err != nil {
		return models.TransportRoute{}, err
	}
	invalidate(ctx, s.Cache, routesEntity)
	return updated, nil
}

func (s *TransportRouteService) DeleteRoute(ctx context.Context, id int64) error {
	if err := s.RouteRepo.DeleteRoute(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, routesEntity)
	return nil
}

// prepareRoute validates rt, rewrites departure times as sorted unique HH:MM
// and numbers stops 0..n-1 in input order.
func prepareRoute(rt *models.TransportRoute) error {
	rt.Code = strings.ToUpper(strings.TrimSpace(rt.Code))
	rt.Name = strings.TrimSpace(rt.Name)
	if err := validateStruct(*rt); err != nil {
		return err
	}

	seen := make(map[string]bool, len(rt.DepartureTimes))
	times := make([]string, 0, len(rt.DepartureTimes))
	for _, v := range rt.DepartureTimes {
		t, err := time.Parse("15:04", strings.TrimSpace(v))
		if err != nil {
			return models.NewValidationError("departure_times", "must match the format 15:04")
		}
		hhmm := t.Format("15:04")
		if !seen[hhmm] {
			seen[hhmm] = true
			times = append(times, hhmm)
		}
	}
	sort.Strings(times)
	rt.DepartureTimes = times

	if rt.Stops == nil {
		rt.Stops = []models.RouteStop{}
	}
	for i := range rt.Stops {
		rt.Stops[i].ID = 0
		rt.Stops[i].RouteID = rt.ID
		rt.Stops[i].Position = i
	}
	return nil
}
