package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"belediyeBack/internal/models"
)

type TaxiDriverStore interface {
	CreateDriver(ctx context.Context, d models.TaxiDriver) (models.TaxiDriver, error)
	GetDriverByID(ctx context.Context, id int64) (models.TaxiDriver, error)
	ListDrivers(ctx context.Context, f models.TaxiFilter) ([]models.TaxiDriver, int, error)
	ListAllDrivers(ctx context.Context, f models.TaxiFilter) ([]models.TaxiDriver, error)
	UpdateDriver(ctx context.Context, d models.TaxiDriver) (models.TaxiDriver, error)
	DeleteDriver(ctx context.Context, id int64) error
	PlateExists(ctx context.Context, plate string, excludeID int64) (bool, error)
	IncrementCallCount(ctx context.Context, id int64) (models.TaxiCall, error)
}

// Shuffler permutes n elements in place through swap.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// TaxiDriverService keeps the public driver list in a fresh random order on
// every request so no driver is permanently on top. Results are never cached.
type TaxiDriverService struct {
	TaxiRepo TaxiDriverStore
	Shuffler Shuffler
}

type lockedShuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewShuffler(seed uint64) Shuffler {
	return &lockedShuffler{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedShuffler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}

// NormalizePlate upper-cases a plate and collapses runs of whitespace.
func NormalizePlate(plate string) string {
	return strings.Join(strings.Fields(strings.ToUpper(plate)), " ")
}

// ListPublic returns one page of a random permutation of the active drivers matching f.
func (s *TaxiDriverService) ListPublic(ctx context.Context, f models.TaxiFilter) (models.List[models.TaxiDriver], error) {
	f.OnlyActive = true
	drivers, err := s.TaxiRepo.ListAllDrivers(ctx, f)
	if err != nil {
		return models.List[models.TaxiDriver]{}, err
	}

	s.shuffler().Shuffle(len(drivers), func(i, j int) {
		drivers[i], drivers[j] = drivers[j], drivers[i]
	})

	total := len(drivers)
	start := min(max(f.Page.Offset(), 0), total)
	end := total
	if f.Page.Limit > 0 && f.Page.Limit < total-start {
		end = start + f.Page.Limit
	}
	return toList(drivers[start:end], total), nil
}

var defaultShuffler = NewShuffler(uint64(time.Now().UnixNano()))

func (s *TaxiDriverService) shuffler() Shuffler {
	if s.Shuffler == nil {
		return defaultShuffler
	}
	return s.Shuffler
}

// Call counts one call to an active driver and returns the number to dial.
func (s *TaxiDriverService) Call(ctx context.Context, id int64) (models.TaxiCall, error) {
	return s.TaxiRepo.IncrementCallCount(ctx, id)
}

func (s *TaxiDriverService) ListDrivers(ctx context.Context, f models.TaxiFilter) (models.List[models.TaxiDriver], error) {
	items, total, err := s.TaxiRepo.ListDrivers(ctx, f)
	if err != nil {
		return models.List[models.TaxiDriver]{}, err
	}
	return toList(items, total), nil
}

func (s *TaxiDriverService) GetDriverByID(ctx context.Context, id int64) (models.TaxiDriver, error) {
	return s.TaxiRepo.GetDriverByID(ctx, id)
}

func (s *TaxiDriverService) CreateDriver(ctx context.Context, d models.TaxiDriver) (models.TaxiDriver, error) {
	d.ID = 0
	d.CallCount = 0
	if err := s.checkDriver(ctx, &d); err != nil {
		return models.TaxiDriver{}, err
	}
	return s.TaxiRepo.CreateDriver(ctx, d)
}

func (s *TaxiDriverService) UpdateDriver(ctx context.Context, id int64, patch []byte) (models.TaxiDriver, error) {
	d, err := s.TaxiRepo.GetDriverByID(ctx, id)
	if err != nil {
		return models.TaxiDriver{}, err
	}
	calls := d.CallCount
	if err := mergePatch(&d, patch); err != nil {
		return models.TaxiDriver{}, err
	}
	d.ID = id
	d.CallCount = calls
	if err := s.checkDriver(ctx, &d); err != nil {
		return models.TaxiDriver{}, err
	}
	return s.TaxiRepo.UpdateDriver(ctx, d)
}

func (s *TaxiDriverService) DeleteDriver(ctx context.Context, id int64) error {
	return s.TaxiRepo.DeleteDriver(ctx, id)
}

func (s *TaxiDriverService) checkDriver(ctx context.Context, d *models.TaxiDriver) error {
	d.Plate = NormalizePlate(d.Plate)
	d.FullName = strings.TrimSpace(d.FullName)
	d.StandName = strings.TrimSpace(d.StandName)
	if err := validateStruct(*d); err != nil {
		return err
	}

	taken, err := s.TaxiRepo.PlateExists(ctx, d.Plate, d.ID)
	if err != nil {
		return err
	}
	if taken {
		return &models.DuplicateError{Field: "plate"}
	}
	return nil
}
