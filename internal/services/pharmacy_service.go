package services

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
)

const pharmaciesEntity = "pharmacies"

type PharmacyStore interface {
	CreatePharmacy(ctx context.Context, p models.Pharmacy) (models.Pharmacy, error)
	GetPharmacyByID(ctx context.Context, id int64) (models.Pharmacy, error)
	ListPharmacies(ctx context.Context, f models.PharmacyFilter) ([]models.Pharmacy, int, error)
	UpdatePharmacy(ctx context.Context, p models.Pharmacy) (models.Pharmacy, error)
	DeletePharmacy(ctx context.Context, id int64) error

	CreateDuty(ctx context.Context, d models.PharmacyDuty) (models.PharmacyDuty, error)
	CreateDuties(ctx context.Context, duties []models.PharmacyDuty) (int, error)
	GetDutyByID(ctx context.Context, id int64) (models.PharmacyDuty, error)
	ListDuties(ctx context.Context, f models.DutyFilter) ([]models.PharmacyDuty, int, error)
	DutiesOn(ctx context.Context, date string) ([]models.PharmacyDuty, error)
	UpdateDuty(ctx context.Context, d models.PharmacyDuty) (models.PharmacyDuty, error)
	DeleteDuty(ctx context.Context, id int64) error
}

type PharmacyService struct {
	PharmacyRepo PharmacyStore
	Cache        cache.Cache
	Clock        clockwork.Clock
	// Location decides which calendar day "today" is.
	Location *time.Location
}

func (s *PharmacyService) ListPharmacies(ctx context.Context, f models.PharmacyFilter) (models.List[models.Pharmacy], error) {
	key := cache.QueryKey(pharmaciesEntity, "list", f)
	return cache.Remember(ctx, cacheOrNoop(s.Cache), pharmaciesEntity, key, func() (models.List[models.Pharmacy], error) {
		items, total, err := s.PharmacyRepo.ListPharmacies(ctx, f)
		return toList(items, total), err
	})
}

func (s *PharmacyService) GetPharmacyByID(ctx context.Context, id int64) (models.Pharmacy, error) {
	return s.PharmacyRepo.GetPharmacyByID(ctx, id)
}

func (s *PharmacyService) CreatePharmacy(ctx context.Context, p models.Pharmacy) (models.Pharmacy, error) {
	p.ID = 0
	p.Name = strings.TrimSpace(p.Name)
	if err := validateStruct(p); err != nil {
		return models.Pharmacy{}, err
	}
	created, err := s.PharmacyRepo.CreatePharmacy(ctx, p)
	if err != nil {
		return models.Pharmacy{}, err
	}
	invalidate(ctx, s.Cache, pharmaciesEntity)
	return created, nil
}

func (s *PharmacyService) UpdatePharmacy(ctx context.Context, id int64, patch []byte) (models.Pharmacy, error) {
	p, err := s.PharmacyRepo.GetPharmacyByID(ctx, id)
	if err != nil {
		return models.Pharmacy{}, err
	}
	if err := mergePatch(&p, patch); err != nil {
		return models.Pharmacy{}, err
	}
	p.ID = id
	p.Name = strings.TrimSpace(p.Name)
	if err := validateStruct(p); err != nil {
		return models.Pharmacy{}, err
	}
	updated, err := s.PharmacyRepo.UpdatePharmacy(ctx, p)
	if err != nil {
		return models.Pharmacy{}, err
	}
	invalidate(ctx, s.Cache, pharmaciesEntity)
	return updated, nil
}

func (s *PharmacyService) DeletePharmacy(ctx context.Context, id int64) error {
	if err := s.PharmacyRepo.DeletePharmacy(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, pharmaciesEntity)
	return nil
}

// Today is the current date in the municipality's timezone.
func (s *PharmacyService) Today() string {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return now(s.Clock).In(loc).Format(time.DateOnly)
}

// OnDuty lists the pharmacies on duty on date (YYYY-MM-DD), or today when date is empty.
func (s *PharmacyService) OnDuty(ctx context.Context, date string) ([]models.PharmacyDuty, error) {
	if date == "" {
		date = s.Today()
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, models.NewValidationError("date", "must match the format 2006-01-02")
	}

	return cache.Remember(ctx, cacheOrNoop(s.Cache), pharmaciesEntity, cache.Key(pharmaciesEntity, "on_duty", date),
		func() ([]models.PharmacyDuty, error) {
			items, err := s.PharmacyRepo.DutiesOn(ctx, date)
			if items == nil {
				items = []models.PharmacyDuty{}
			}
			return items, err
		})
}

func (s *PharmacyService) ListDuties(ctx context.Context, f models.DutyFilter) (models.List[models.PharmacyDuty], error) {
	for field, v := range map[string]string{"from": f.From, "to": f.To} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, v); err != nil {
			return models.List[models.PharmacyDuty]{}, models.NewValidationError(field, "must match the format 2006-01-02")
		}
	}
	items, total, err := s.PharmacyRepo.ListDuties(ctx, f)
	if err != nil {
		return models.List[models.PharmacyDuty]{}, err
	}
	return toList(items, total), nil
}

func (s *PharmacyService) GetDutyByID(ctx context.Context, id int64) (models.PharmacyDuty, error) {
	return s.PharmacyRepo.GetDutyByID(ctx, id)
}

// CreateDuty fails with a *models.DuplicateError when the pharmacy already has a duty that day.
func (s *PharmacyService) CreateDuty(ctx context.Context, d models.PharmacyDuty) (models.PharmacyDuty, error) {
	d.ID = 0
	d.Pharmacy = nil
	if err := validateStruct(d); err != nil {
		return models.PharmacyDuty{}, err
	}
	created, err := s.PharmacyRepo.CreateDuty(ctx, d)
	if err != nil {
		return models.PharmacyDuty{}, err
	}
	invalidate(ctx, s.Cache, pharmaciesEntity)
	return created, nil
}

// CreateDuties stores a whole roster or nothing.
func (s *PharmacyService) CreateDuties(ctx context.Context, req models.BulkDutyRequest) (int, error) {
	if err := validateStruct(req); err != nil {
		return 0, err
	}

	type dutyKey struct {
		pharmacyID int64
		date       string
	}
	seen := make(map[dutyKey]bool, len(req.Duties))
	for i := range req.Duties {
		d := &req.Duties[i]
		d.ID = 0
		d.Pharmacy = nil
		k := dutyKey{d.PharmacyID, d.DutyDate}
		if seen[k] {
			return 0, &models.DuplicateError{Field: "duty_date"}
		}
		seen[k] = true
	}

	n, err := s.PharmacyRepo.CreateDuties(ctx, req.Duties)
	if err != nil {
		return 0, err
	}
	invalidate(ctx, s.Cache, pharmaciesEntity)
	return n, nil
}

func (s *PharmacyService) UpdateDuty(ctx context.Context, id int64, patch []byte) (models.PharmacyDuty, error) {
	d, err := s.PharmacyRepo.GetDutyByID(ctx, id)
	if err != nil {
		return models.PharmacyDuty{}, err
	}
	if err := mergePatch(&d, patch); err != nil {
		return models.PharmacyDuty{}, err
	}
	d.ID = id
	d.Pharmacy = nil
	if err := validateStruct(d); err != nil {
		return models.PharmacyDuty{}, err
	}
	updated, err := s.PharmacyRepo.UpdateDuty(ctx, d)
	if err != nil {
		return models.PharmacyDuty{}, err
	}
	invalidate(ctx, s.Cache, pharmaciesEntity)
	return updated, nil
}

func (s *PharmacyService) DeleteDuty(ctx context.Context, id int64) error {
	if err := s.PharmacyRepo.DeleteDuty(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.Cache, pharmaciesEntity)
	return nil
}
