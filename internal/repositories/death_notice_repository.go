package repositories

import (
	"context"
	"database/sql"

	"belediyeBack/internal/models"
)

type DeathNoticeRepository struct {
	DB *sql.DB
}

const deathNoticeColumns = `id, full_name, father_name, mother_name, age, died_at, funeral_at, funeral_place, burial_place,
	neighborhood_id, photo_url, created_at, updated_at`

func scanDeathNotice(s scanner) (models.DeathNotice, error) {
	var d models.DeathNotice
	err := s.Scan(&d.ID, &d.FullName, &d.FatherName, &d.MotherName, &d.Age, &d.DiedAt, &d.FuneralAt, &d.FuneralPlace,
		&d.BurialPlace, &d.NeighborhoodID, &d.PhotoURL, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *DeathNoticeRepository) CreateDeathNotice(ctx context.Context, d models.DeathNotice) (models.DeathNotice, error) {
	query := `INSERT INTO death_notices (full_name, father_name, mother_name, age, died_at, funeral_at, funeral_place,
		burial_place, neighborhood_id, photo_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, d.FullName, d.FatherName, d.MotherName, d.Age, d.DiedAt, d.FuneralAt,
		d.FuneralPlace, d.BurialPlace, d.NeighborhoodID, d.PhotoURL)
	if err != nil {
		return models.DeathNotice{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.DeathNotice{}, err
	}
	return r.GetDeathNoticeByID(ctx, id)
}

func (r *DeathNoticeRepository) GetDeathNoticeByID(ctx context.Context, id int64) (models.DeathNotice, error) {
	query := `SELECT ` + deathNoticeColumns + ` FROM death_notices WHERE id = ? AND deleted_at IS NULL`
	d, err := scanDeathNotice(r.DB.QueryRowContext(ctx, query, id))
	return d, mapError(err)
}

func (r *DeathNoticeRepository) ListDeathNotices(ctx context.Context, f models.DeathNoticeFilter) ([]models.DeathNotice, int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	if f.NeighborhoodID > 0 {
		where.add("neighborhood_id = ?", f.NeighborhoodID)
	}
	if f.Query != "" {
		where.add("full_name LIKE ?", likePattern(f.Query))
	}

	total, err := countRows(ctx, r.DB, "death_notices", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + deathNoticeColumns + ` FROM death_notices` + where.String() + ` ORDER BY died_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notices := []models.DeathNotice{}
	for rows.Next() {
		d, err := scanDeathNotice(rows)
		if err != nil {
			return nil, 0, err
		}
		notices = append(notices, d)
	}
	return notices, total, rows.Err()
}

func (r *DeathNoticeRepository) UpdateDeathNotice(ctx context.Context, d models.DeathNotice) (models.DeathNotice, error) {
	query := `UPDATE death_notices SET full_name = ?, father_name = ?, mother_name = ?, age = ?, died_at = ?, funeral_at = ?,
		funeral_place = ?, burial_place = ?, neighborhood_id = ?, photo_url = ?, updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, d.FullName, d.FatherName, d.MotherName, d.Age, d.DiedAt, d.FuneralAt,
		d.FuneralPlace, d.BurialPlace, d.NeighborhoodID, d.PhotoURL, d.ID)
	if err := expectAffected(res, err); err != nil {
		return models.DeathNotice{}, err
	}
	return r.GetDeathNoticeByID(ctx, d.ID)
}

func (r *DeathNoticeRepository) DeleteDeathNotice(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE death_notices SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}
