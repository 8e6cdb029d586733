package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"belediyeBack/internal/models"
)

type ComplaintRepository struct {
	DB *sql.DB
}

const complaintColumns = `c.id, c.user_id, c.tracking_code, c.category, c.description, c.address, c.latitude, c.longitude,
	c.photo_url, c.neighborhood_id, c.status, c.admin_note, c.resolved_at, c.created_at, c.updated_at,
	COALESCE(u.name, ''), COALESCE(u.phone, '')`

const complaintFrom = ` FROM complaints c LEFT JOIN users u ON u.id = c.user_id`

func scanComplaint(s scanner) (models.Complaint, error) {
	var c models.Complaint
	var user models.ComplaintUser
	err := s.Scan(&c.ID, &c.UserID, &c.TrackingCode, &c.Category, &c.Description, &c.Address, &c.Latitude, &c.Longitude,
		&c.PhotoURL, &c.NeighborhoodID, &c.Status, &c.AdminNote, &c.ResolvedAt, &c.CreatedAt, &c.UpdatedAt,
		&user.Name, &user.Phone)
	if user.Name != "" || user.Phone != "" {
		c.User = &user
	}
	return c, err
}

func (r *ComplaintRepository) CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	query := `INSERT INTO complaints (user_id, tracking_code, category, description, address, latitude, longitude, photo_url,
		neighborhood_id, status, admin_note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '', NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, c.UserID, c.TrackingCode, c.Category, c.Description, c.Address, c.Latitude,
		c.Longitude, c.PhotoURL, c.NeighborhoodID, c.Status)
	if err != nil {
		return models.Complaint{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Complaint{}, err
	}
	return r.GetComplaintByID(ctx, id)
}

func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id int64) (models.Complaint, error) {
	query := `SELECT ` + complaintColumns + complaintFrom + ` WHERE c.id = ? AND c.deleted_at IS NULL`
	c, err := scanComplaint(r.DB.QueryRowContext(ctx, query, id))
	return c, mapError(err)
}

func (r *ComplaintRepository) GetComplaintByTrackingCode(ctx context.Context, code string) (models.Complaint, error) {
	query := `SELECT ` + complaintColumns + complaintFrom + ` WHERE c.tracking_code = ? AND c.deleted_at IS NULL`
	c, err := scanComplaint(r.DB.QueryRowContext(ctx, query, code))
	return c, mapError(err)
}

func (r *ComplaintRepository) ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, int, error) {
	where := &whereBuilder{}
	where.add("c.deleted_at IS NULL")
	if f.Status != "" {
		where.add("c.status = ?", f.Status)
	}
	if f.Category != "" {
		where.add("c.category = ?", f.Category)
	}
	if f.NeighborhoodID > 0 {
		where.add("c.neighborhood_id = ?", f.NeighborhoodID)
	}
	if f.UserID > 0 {
		where.add("c.user_id = ?", f.UserID)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where.add("(c.description LIKE ? OR c.tracking_code LIKE ?)", p, p)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints c`+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + complaintColumns + complaintFrom + where.String() + ` ORDER BY c.created_at DESC, c.id DESC LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	complaints := []models.Complaint{}
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, err
		}
		complaints = append(complaints, c)
	}
	return complaints, total, rows.Err()
}

// UpdateComplaintStatus moves a complaint only while it is still in status from.
// ErrStaleStatus means another reviewer changed it first.
func (r *ComplaintRepository) UpdateComplaintStatus(ctx context.Context, id int64, from, status, note string, resolvedAt *time.Time) error {
	query := `UPDATE complaints SET status = ?, admin_note = ?, resolved_at = ?, updated_at = NOW()
		WHERE id = ? AND status = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, status, note, resolvedAt, id, from)
	err = expectAffected(res, err)
	if errors.Is(err, models.ErrNoRecord) {
		if _, getErr := r.GetComplaintByID(ctx, id); getErr == nil {
			return models.ErrStaleStatus
		}
	}
	return err
}

func (r *ComplaintRepository) DeleteComplaint(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE complaints SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}

func (r *ComplaintRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL AND status = ?", status)
	return countRows(ctx, r.DB, "complaints", where)
}
