package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
)

type fakeRouteStore struct {
	routes map[int64]models.TransportRoute
}

func (s *fakeRouteStore) CreateRoute(_ context.Context, rt models.TransportRoute) (models.TransportRoute, error) {
	rt.ID = int64(len(s.routes) + 1)
	s.routes[rt.ID] = rt
	return rt, nil
}

func (s *fakeRouteStore) GetRouteByID(_ context.Context, id int64) (models.TransportRoute, error) {
	rt, ok := s.routes[id]
	if !ok {
		return models.TransportRoute{}, models.ErrNoRecord
	}
	return rt, nil
}

func (s *fakeRouteStore) ListRoutes(context.Context, models.RouteFilter) ([]models.TransportRoute, int, error) {
	return nil, 0, nil
}

func (s *fakeRouteStore) UpdateRoute(_ context.Context, rt models.TransportRoute) (models.TransportRoute, error) {
	s.routes[rt.ID] = rt
	return rt, nil
}

func (s *fakeRouteStore) DeleteRoute(context.Context, int64) error { return nil }

func TestCreateRouteNormalizesTimesAndStops(t *testing.T) {
	svc := &TransportRouteService{RouteRepo: &fakeRouteStore{routes: map[int64]models.TransportRoute{}}}

	rt, err := svc.CreateRoute(context.Background(), models.TransportRoute{
		Code:           " 12a ",
		Name:           "Otogar - Hastane",
		RouteType:      "bus",
		DepartureTimes: []string{"18:30", "7:05", "12:00", "07:05"},
		Stops: []models.RouteStop{
			{Name: "Otogar", Position: 7},
			{Name: "Çarşı", Position: 3},
			{Name: "Devlet Hastanesi", Position: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "12A", rt.Code)
	assert.Equal(t, []string{"07:05", "12:00", "18:30"}, rt.DepartureTimes)
	require.Len(t, rt.Stops, 3)
	for i, stop := range rt.Stops {
		assert.Equal(t, i, stop.Position)
	}
	assert.Equal(t, "Otogar", rt.Stops[0].Name)
}

func TestCreateRouteRejectsBadTime(t *testing.T) {
	svc := &TransportRouteService{RouteRepo: &fakeRouteStore{routes: map[int64]models.TransportRoute{}}}

	_, err := svc.CreateRoute(context.Background(), models.TransportRoute{
		Code: "5", Name: "Sanayi", RouteType: "minibus", DepartureTimes: []string{"24:10"},
	})

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "departure_times[0]")
}

func TestUpdateRouteReplacesStopsOnlyWhenGiven(t *testing.T) {
	store := &fakeRouteStore{routes: map[int64]models.TransportRoute{
		1: {
			ID: 1, Code: "3", Name: "Merkez", RouteType: "bus", IsActive: true,
			DepartureTimes: []string{"08:00"},
			Stops:          []models.RouteStop{{Name: "A"}, {Name: "B", Position: 1}},
		},
	}}
	svc := &TransportRouteService{RouteRepo: store}
	ctx := context.Background()

	rt, err := svc.UpdateRoute(ctx, 1, []byte(`{"name":"Merkez Hattı"}`))
	require.NoError(t, err)
	assert.Equal(t, "Merkez Hattı", rt.Name)
	assert.Len(t, rt.Stops, 2)

	rt, err = svc.UpdateRoute(ctx, 1, []byte(`{"stops":[{"name":"C"}]}`))
	require.NoError(t, err)
	require.Len(t, rt.Stops, 1)
	assert.Equal(t, "C", rt.Stops[0].Name)
	assert.Equal(t, []string{"08:00"}, rt.DepartureTimes)
}

func TestGetPublicHidesInactiveRoutes(t *testing.T) {
	store := &fakeRouteStore{routes: map[int64]models.TransportRoute{
		1: {ID: 1, IsActive: false},
	}}
	svc := &TransportRouteService{RouteRepo: store}

	_, err := svc.GetPublic(context.Background(), 1)

	assert.ErrorIs(t, err, models.ErrNoRecord)
}
