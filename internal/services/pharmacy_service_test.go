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

type fakePharmacyStore struct {
	PharmacyStore
	duties   map[int64]models.PharmacyDuty
	nextID   int64
	lastDate string
	batches  int
}

func newFakePharmacyStore() *fakePharmacyStore {
	return &fakePharmacyStore{duties: map[int64]models.PharmacyDuty{}}
}

func (s *fakePharmacyStore) conflicts(d models.PharmacyDuty) bool {
	for _, existing := range s.duties {
		if existing.ID != d.ID && existing.PharmacyID == d.PharmacyID && existing.DutyDate == d.DutyDate {
			return true
		}
	}
	return false
}

func (s *fakePharmacyStore) CreateDuty(_ context.Context, d models.PharmacyDuty) (models.PharmacyDuty, error) {
	if s.conflicts(d) {
		return models.PharmacyDuty{}, &models.DuplicateError{Field: "duty_date"}
	}
	s.nextID++
	d.ID = s.nextID
	s.duties[d.ID] = d
	return d, nil
}

func (s *fakePharmacyStore) CreateDuties(ctx context.Context, duties []models.PharmacyDuty) (int, error) {
	s.batches++
	for _, d := range duties {
		if s.conflicts(d) {
			return 0, &models.DuplicateError{Field: "duty_date"}
		}
	}
	for _, d := range duties {
		if _, err := s.CreateDuty(ctx, d); err != nil {
			return 0, err
		}
	}
	return len(duties), nil
}

func (s *fakePharmacyStore) DutiesOn(_ context.Context, date string) ([]models.PharmacyDuty, error) {
	s.lastDate = date
	var out []models.PharmacyDuty
	for _, d := range s.duties {
		if d.DutyDate == date {
			out = append(out, d)
		}
	}
	return out, nil
}

func istanbul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	return loc
}

func TestOnDutyDefaultsToTodayInConfiguredZone(t *testing.T) {
	// 22:30 UTC on April 30th is already May 1st in Istanbul.
	clock := clockwork.NewFakeClockAt(time.Date(2024, 4, 30, 22, 30, 0, 0, time.UTC))
	store := newFakePharmacyStore()
	store.duties[1] = models.PharmacyDuty{ID: 1, PharmacyID: 5, DutyDate: "2024-05-01"}
	svc := &PharmacyService{PharmacyRepo: store, Clock: clock, Location: istanbul(t)}

	duties, err := svc.OnDuty(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", store.lastDate)
	require.Len(t, duties, 1)
	assert.Equal(t, int64(5), duties[0].PharmacyID)
}

func TestOnDutyExplicitDate(t *testing.T) {
	store := newFakePharmacyStore()
	svc := &PharmacyService{PharmacyRepo: store, Clock: clockwork.NewFakeClock()}

	duties, err := svc.OnDuty(context.Background(), "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", store.lastDate)
	assert.NotNil(t, duties)

	_, err = svc.OnDuty(context.Background(), "29.02.2024")
	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCreateDutyRejectsSecondDutySameDay(t *testing.T) {
	store := newFakePharmacyStore()
	svc := &PharmacyService{PharmacyRepo: store}
	ctx := context.Background()

	_, err := svc.CreateDuty(ctx, models.PharmacyDuty{PharmacyID: 5, DutyDate: "2024-05-01", StartsAt: "18:00", EndsAt: "08:00"})
	require.NoError(t, err)

	_, err = svc.CreateDuty(ctx, models.PharmacyDuty{PharmacyID: 5, DutyDate: "2024-05-01"})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = svc.CreateDuty(ctx, models.PharmacyDuty{PharmacyID: 6, DutyDate: "2024-05-01"})
	assert.NoError(t, err)
}

func TestCreateDutyValidatesFormats(t *testing.T) {
	svc := &PharmacyService{PharmacyRepo: newFakePharmacyStore()}

	_, err := svc.CreateDuty(context.Background(), models.PharmacyDuty{PharmacyID: 5, DutyDate: "01/05/2024", StartsAt: "25:00"})

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "duty_date")
	assert.Contains(t, ve.Fields, "starts_at")
}

func TestCreateDutiesRejectsDuplicateInsideBatch(t *testing.T) {
	store := newFakePharmacyStore()
	svc := &PharmacyService{PharmacyRepo: store}

	_, err := svc.CreateDuties(context.Background(), models.BulkDutyRequest{Duties: []models.PharmacyDuty{
		{PharmacyID: 5, DutyDate: "2024-05-01"},
		{PharmacyID: 6, DutyDate: "2024-05-01"},
		{PharmacyID: 5, DutyDate: "2024-05-01"},
	}})

	assert.ErrorIs(t, err, models.ErrDuplicate)
	assert.Equal(t, 0, store.batches)
	assert.Empty(t, store.duties)
}

func TestCreateDutiesIsAllOrNothing(t *testing.T) {
	store := newFakePharmacyStore()
	store.duties[1] = models.PharmacyDuty{ID: 1, PharmacyID: 6, DutyDate: "2024-05-02"}
	store.nextID = 1
	svc := &PharmacyService{PharmacyRepo: store}

	_, err := svc.CreateDuties(context.Background(), models.BulkDutyRequest{Duties: []models.PharmacyDuty{
		{PharmacyID: 5, DutyDate: "2024-05-01"},
		{PharmacyID: 6, DutyDate: "2024-05-02"},
	}})

	assert.ErrorIs(t, err, models.ErrDuplicate)
	assert.Len(t, store.duties, 1)

	n, err := svc.CreateDuties(context.Background(), models.BulkDutyRequest{Duties: []models.PharmacyDuty{
		{PharmacyID: 5, DutyDate: "2024-05-01"},
		{PharmacyID: 6, DutyDate: "2024-05-03"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCreateDutiesRequiresEntries(t *testing.T) {
	svc := &PharmacyService{PharmacyRepo: newFakePharmacyStore()}

	_, err := svc.CreateDuties(context.Background(), models.BulkDutyRequest{})

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "duties")
}
