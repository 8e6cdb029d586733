package repositories

import (
	"context"
	"database/sql"
	"time"

	"belediyeBack/internal/models"
)

type AdRepository struct {
	DB *sql.DB
}

const adColumns = `id, user_id, title, description, category, price, contact_name, contact_phone, image_url, status, expires_at, created_at, updated_at`

func scanAd(s scanner) (models.Ad, error) {
	var a models.Ad
	err := s.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Category, &a.Price, &a.ContactName, &a.ContactPhone,
		&a.ImageURL, &a.Status, &a.ExpiresAt, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *AdRepository) CreateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	query := `INSERT INTO ads (user_id, title, description, category, price, contact_name, contact_phone, image_url, status, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, ad.UserID, ad.Title, ad.Description, ad.Category, ad.Price,
		ad.ContactName, ad.ContactPhone, ad.ImageURL, ad.Status, ad.ExpiresAt)
	if err != nil {
		return models.Ad{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Ad{}, err
	}
	return r.GetAdByID(ctx, id)
}

func (r *AdRepository) GetAdByID(ctx context.Context, id int64) (models.Ad, error) {
	ad, err := scanAd(r.DB.QueryRowContext(ctx, `SELECT `+adColumns+` FROM ads WHERE id = ? AND deleted_at IS NULL`, id))
	return ad, mapError(err)
}

func (r *AdRepository) GetVisibleAd(ctx context.Context, id int64, now time.Time) (models.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads WHERE id = ? AND deleted_at IS NULL AND status = ? AND (expires_at IS NULL OR expires_at > ?)`
	ad, err := scanAd(r.DB.QueryRowContext(ctx, query, id, models.AdStatusApproved, now))
	return ad, mapError(err)
}

// ListAds filters by status/category/owner. A zero now disables the expiry check.
func (r *AdRepository) ListAds(ctx context.Context, f models.AdFilter, now time.Time) ([]models.Ad, int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	if f.Status != "" {
		where.add("status = ?", f.Status)
	}
	if f.Category != "" {
		where.add("category = ?", f.Category)
	}
	if f.UserID > 0 {
		where.add("user_id = ?", f.UserID)
	}
	if !now.IsZero() {
		where.add("(expires_at IS NULL OR expires_at > ?)", now)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where.add("(title LIKE ? OR description LIKE ?)", p, p)
	}

	total, err := countRows(ctx, r.DB, "ads", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + adColumns + ` FROM ads` + where.String() + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	ads := []models.Ad{}
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, 0, err
		}
		ads = append(ads, ad)
	}
	return ads, total, rows.Err()
}

func (r *AdRepository) UpdateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	query := `UPDATE ads SET title = ?, description = ?, category = ?, price = ?, contact_name = ?, contact_phone = ?,
		image_url = ?, status = ?, expires_at = ?, updated_at = NOW() WHERE id = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, ad.Title, ad.Description, ad.Category, ad.Price, ad.ContactName,
		ad.ContactPhone, ad.ImageURL, ad.Status, ad.ExpiresAt, ad.ID)
	if err := expectAffected(res, err); err != nil {
		return models.Ad{}, err
	}
	return r.GetAdByID(ctx, ad.ID)
}

func (r *AdRepository) UpdateAdStatus(ctx context.Context, id int64, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE ads SET status = ?, updated_at = NOW() WHERE id = ? AND deleted_at IS NULL`, status, id)
	return expectAffected(res, err)
}

func (r *AdRepository) DeleteAd(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE ads SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}

// ExpireAds flips approved ads whose expiry passed to expired and reports how many changed.
func (r *AdRepository) ExpireAds(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE ads SET status = ?, updated_at = NOW() WHERE status = ? AND expires_at IS NOT NULL AND expires_at <= ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, models.AdStatusExpired, models.AdStatusApproved, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *AdRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL AND status = ?", status)
	return countRows(ctx, r.DB, "ads", where)
}
