package repositories

import (
	"context"
	"database/sql"

	"belediyeBack/internal/models"
)

type TaxiDriverRepository struct {
	DB *sql.DB
}

const taxiDriverColumns = `id, full_name, phone, plate, stand_name, neighborhood_id, photo_url, is_active, call_count, created_at, updated_at`

func scanTaxiDriver(s scanner) (models.TaxiDriver, error) {
	var d models.TaxiDriver
	err := s.Scan(&d.ID, &d.FullName, &d.Phone, &d.Plate, &d.StandName, &d.NeighborhoodID, &d.PhotoURL, &d.IsActive,
		&d.CallCount, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func taxiWhere(f models.TaxiFilter) *whereBuilder {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	if f.OnlyActive {
		where.add("is_active = 1")
	}
	if f.NeighborhoodID > 0 {
		where.add("neighborhood_id = ?", f.NeighborhoodID)
	}
	if f.Stand != "" {
		where.add("stand_name = ?", f.Stand)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where.add("(full_name LIKE ? OR plate LIKE ?)", p, p)
	}
	return where
}

func (r *TaxiDriverRepository) CreateDriver(ctx context.Context, d models.TaxiDriver) (models.TaxiDriver, error) {
	query := `INSERT INTO taxi_drivers (full_name, phone, plate, stand_name, neighborhood_id, photo_url, is_active, call_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, d.FullName, d.Phone, d.Plate, d.StandName, d.NeighborhoodID, d.PhotoURL, d.IsActive)
	if err != nil {
		return models.TaxiDriver{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TaxiDriver{}, err
	}
	return r.GetDriverByID(ctx, id)
}

func (r *TaxiDriverRepository) GetDriverByID(ctx context.Context, id int64) (models.TaxiDriver, error) {
	query := `SELECT ` + taxiDriverColumns + ` FROM taxi_drivers WHERE id = ? AND deleted_at IS NULL`
	d, err := scanTaxiDriver(r.DB.QueryRowContext(ctx, query, id))
	return d, mapError(err)
}

func (r *TaxiDriverRepository) ListDrivers(ctx context.Context, f models.TaxiFilter) ([]models.TaxiDriver, int, error) {
	where := taxiWhere(f)
	total, err := countRows(ctx, r.DB, "taxi_drivers", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + taxiDriverColumns + ` FROM taxi_drivers` + where.String() + ` ORDER BY id LIMIT ? OFFSET ?`
	drivers, err := r.queryDrivers(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	return drivers, total, err
}

// ListAllDrivers returns the whole filtered set without paging; callers shuffle it.
func (r *TaxiDriverRepository) ListAllDrivers(ctx context.Context, f models.TaxiFilter) ([]models.TaxiDriver, error) {
	where := taxiWhere(f)
	return r.queryDrivers(ctx, `SELECT `+taxiDriverColumns+` FROM taxi_drivers`+where.String()+` ORDER BY id`, where.args...)
}

func (r *TaxiDriverRepository) queryDrivers(ctx context.Context, query string, args ...interface{}) ([]models.TaxiDriver, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := []models.TaxiDriver{}
	for rows.Next() {
		d, err := scanTaxiDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *TaxiDriverRepository) UpdateDriver(ctx context.Context, d models.TaxiDriver) (models.TaxiDriver, error) {
	query := `UPDATE taxi_drivers SET full_name = ?, phone = ?, plate = ?, stand_name = ?, neighborhood_id = ?, photo_url = ?,
		is_active = ?, updated_at = NOW() WHERE id = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, d.FullName, d.Phone, d.Plate, d.StandName, d.NeighborhoodID, d.PhotoURL, d.IsActive, d.ID)
	if err := expectAffected(res, err); err != nil {
		return models.TaxiDriver{}, err
	}
	return r.GetDriverByID(ctx, d.ID)
}

func (r *TaxiDriverRepository) DeleteDriver(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE taxi_drivers SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}

// PlateExists checks live drivers only; excludeID lets an update keep its own plate.
func (r *TaxiDriverRepository) PlateExists(ctx context.Context, plate string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM taxi_drivers WHERE plate = ? AND id <> ? AND deleted_at IS NULL)`
	err := r.DB.QueryRowContext(ctx, query, plate, excludeID).Scan(&exists)
	return exists, err
}

// IncrementCallCount bumps the counter in a single statement so concurrent
// calls never lose an increment.
func (r *TaxiDriverRepository) IncrementCallCount(ctx context.Context, id int64) (models.TaxiCall, error) {
	query := `UPDATE taxi_drivers SET call_count = call_count + 1 WHERE id = ? AND is_active = 1 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err := expectAffected(res, err); err != nil {
		return models.TaxiCall{}, err
	}

	call := models.TaxiCall{DriverID: id}
	err = r.DB.QueryRowContext(ctx, `SELECT phone, call_count FROM taxi_drivers WHERE id = ?`, id).Scan(&call.Phone, &call.CallCount)
	return call, mapError(err)
}

func (r *TaxiDriverRepository) CountActive(ctx context.Context) (int, error) {
	return countRows(ctx, r.DB, "taxi_drivers", taxiWhere(models.TaxiFilter{OnlyActive: true}))
}
