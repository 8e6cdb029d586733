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

var complaintRowColumns = []string{
	"id", "user_id", "tracking_code", "category", "description", "address", "latitude", "longitude",
	"photo_url", "neighborhood_id", "status", "admin_note", "resolved_at", "created_at", "updated_at", "name", "phone",
}

func newComplaintRepo(t *testing.T) (*ComplaintRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &ComplaintRepository{DB: db}, mock
}

const updateComplaintStatusSQL = "UPDATE complaints SET status = ?, admin_note = ?, resolved_at = ?, updated_at = NOW()"

func TestUpdateComplaintStatusRequiresExpectedStatus(t *testing.T) {
	repo, mock := newComplaintRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(updateComplaintStatusSQL)+`\s+`+regexp.QuoteMeta("WHERE id = ? AND status = ? AND deleted_at IS NULL")).
		WithArgs(models.ComplaintStatusInReview, "ekip yolda", nil, int64(5), models.ComplaintStatusNew).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateComplaintStatus(context.Background(), 5, models.ComplaintStatusNew, models.ComplaintStatusInReview, "ekip yolda", nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateComplaintStatusLostRace(t *testing.T) {
	repo, mock := newComplaintRepo(t)
	created := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(updateComplaintStatusSQL)).
		WithArgs(models.ComplaintStatusInReview, "", nil, int64(5), models.ComplaintStatusNew).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = ? AND c.deleted_at IS NULL")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(complaintRowColumns).AddRow(
			5, 2, "AB12CD34", "yol", "Kaldırımda çukur var", "", nil, nil,
			"", nil, models.ComplaintStatusRejected, "", nil, created, nil, "", ""))

	err := repo.UpdateComplaintStatus(context.Background(), 5, models.ComplaintStatusNew, models.ComplaintStatusInReview, "", nil)

	assert.ErrorIs(t, err, models.ErrStaleStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateComplaintStatusMissing(t *testing.T) {
	repo, mock := newComplaintRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(updateComplaintStatusSQL)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = ? AND c.deleted_at IS NULL")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(complaintRowColumns))

	err := repo.UpdateComplaintStatus(context.Background(), 9, models.ComplaintStatusNew, models.ComplaintStatusRejected, "", nil)

	assert.ErrorIs(t, err, models.ErrNoRecord)
	assert.NoError(t, mock.ExpectationsWereMet())
}
