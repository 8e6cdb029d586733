package repositories

import (
	"context"
	"database/sql"
	"time"

	"belediyeBack/internal/models"
)

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, title, description, business_name, image_url, starts_at, ends_at, is_active, created_at, updated_at`

const runningCampaign = "deleted_at IS NULL AND is_active = 1 AND starts_at <= ? AND ends_at >= ?"

func scanCampaign(s scanner) (models.Campaign, error) {
	var c models.Campaign
	err := s.Scan(&c.ID, &c.Title, &c.Description, &c.BusinessName, &c.ImageURL, &c.StartsAt, &c.EndsAt, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	query := `INSERT INTO campaigns (title, description, business_name, image_url, starts_at, ends_at, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, c.Title, c.Description, c.BusinessName, c.ImageURL, c.StartsAt, c.EndsAt, c.IsActive)
	if err != nil {
		return models.Campaign{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Campaign{}, err
	}
	return r.GetCampaignByID(ctx, id)
}

func (r *CampaignRepository) GetCampaignByID(ctx context.Context, id int64) (models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = ? AND deleted_at IS NULL`
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, id))
	return c, mapError(err)
}

func (r *CampaignRepository) GetRunningCampaign(ctx context.Context, id int64, now time.Time) (models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = ? AND ` + runningCampaign
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, id, now, now))
	return c, mapError(err)
}

// ListCampaigns returns every campaign when now is zero, otherwise only the running ones.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, f models.CampaignFilter, now time.Time) ([]models.Campaign, int, error) {
	where := &whereBuilder{}
	if now.IsZero() {
		where.add("deleted_at IS NULL")
	} else {
		where.add(runningCampaign, now, now)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where.add("(title LIKE ? OR business_name LIKE ?)", p, p)
	}

	total, err := countRows(ctx, r.DB, "campaigns", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns` + where.String() + ` ORDER BY ends_at, id LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, total, rows.Err()
}

func (r *CampaignRepository) UpdateCampaign(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	query := `UPDATE campaigns SET title = ?, description = ?, business_name = ?, image_url = ?, starts_at = ?, ends_at = ?,
		is_active = ?, updated_at = NOW() WHERE id = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, c.Title, c.Description, c.BusinessName, c.ImageURL, c.StartsAt, c.EndsAt, c.IsActive, c.ID)
	if err := expectAffected(res, err); err != nil {
		return models.Campaign{}, err
	}
	return r.GetCampaignByID(ctx, c.ID)
}

func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE campaigns SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}

func (r *CampaignRepository) CountRunning(ctx context.Context, now time.Time) (int, error) {
	where := &whereBuilder{}
	where.add(runningCampaign, now, now)
	return countRows(ctx, r.DB, "campaigns", where)
}
