package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
)

func newTaxiRepo(t *testing.T) (*TaxiDriverRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &TaxiDriverRepository{DB: db}, mock
}

func TestIncrementCallCount(t *testing.T) {
	repo, mock := newTaxiRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE taxi_drivers SET call_count = call_count + 1 WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT phone, call_count FROM taxi_drivers WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"phone", "call_count"}).AddRow("+905321112233", 12))

	call, err := repo.IncrementCallCount(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, models.TaxiCall{DriverID: 4, Phone: "+905321112233", CallCount: 12}, call)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementCallCountInactiveDriver(t *testing.T) {
	repo, mock := newTaxiRepo(t)
	mock.ExpectExec("UPDATE taxi_drivers SET call_count").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.IncrementCallCount(context.Background(), 4)

	assert.ErrorIs(t, err, models.ErrNoRecord)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDriverIsSoft(t *testing.T) {
	repo, mock := newTaxiRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE taxi_drivers SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE taxi_drivers SET deleted_at = NOW()")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteDriver(context.Background(), 2))
	assert.ErrorIs(t, repo.DeleteDriver(context.Background(), 2), models.ErrNoRecord)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDriversFiltersAndPages(t *testing.T) {
	repo, mock := newTaxiRepo(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f := models.TaxiFilter{NeighborhoodID: 3, Query: "ali", Page: models.NewPage(2, 10)}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM taxi_drivers WHERE deleted_at IS NULL AND neighborhood_id = ? AND (full_name LIKE ? OR plate LIKE ?)")).
		WithArgs(int64(3), "%ali%", "%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id LIMIT ? OFFSET ?")).
		WithArgs(int64(3), "%ali%", "%ali%", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "phone", "plate", "stand_name", "neighborhood_id", "photo_url", "is_active", "call_count", "created_at", "updated_at",
		}).AddRow(11, "Ali Kaya", "+905301234567", "34 ALI 01", "Merkez", 3, "", true, 7, now, nil))

	drivers, total, err := repo.ListDrivers(context.Background(), f)

	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, drivers, 1)
	assert.Equal(t, "34 ALI 01", drivers[0].Plate)
	assert.Equal(t, int64(7), drivers[0].CallCount)
	assert.Nil(t, drivers[0].UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
