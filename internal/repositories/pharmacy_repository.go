package repositories

import (
	"context"
	"database/sql"

	"belediyeBack/internal/models"
)

type PharmacyRepository struct {
	DB *sql.DB
}

const pharmacyColumns = `id, name, pharmacist, phone, address, latitude, longitude, neighborhood_id, created_at, updated_at`

func scanPharmacy(s scanner) (models.Pharmacy, error) {
	var p models.Pharmacy
	err := s.Scan(&p.ID, &p.Name, &p.Pharmacist, &p.Phone, &p.Address, &p.Latitude, &p.Longitude, &p.NeighborhoodID,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PharmacyRepository) CreatePharmacy(ctx context.Context, p models.Pharmacy) (models.Pharmacy, error) {
	query := `INSERT INTO pharmacies (name, pharmacist, phone, address, latitude, longitude, neighborhood_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, p.Name, p.Pharmacist, p.Phone, p.Address, p.Latitude, p.Longitude, p.NeighborhoodID)
	if err != nil {
		return models.Pharmacy{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Pharmacy{}, err
	}
	return r.GetPharmacyByID(ctx, id)
}

func (r *PharmacyRepository) GetPharmacyByID(ctx context.Context, id int64) (models.Pharmacy, error) {
	query := `SELECT ` + pharmacyColumns + ` FROM pharmacies WHERE id = ? AND deleted_at IS NULL`
	p, err := scanPharmacy(r.DB.QueryRowContext(ctx, query, id))
	return p, mapError(err)
}

func (r *PharmacyRepository) ListPharmacies(ctx context.Context, f models.PharmacyFilter) ([]models.Pharmacy, int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	if f.NeighborhoodID > 0 {
		where.add("neighborhood_id = ?", f.NeighborhoodID)
	}
	if f.Query != "" {
		where.add("name LIKE ?", likePattern(f.Query))
	}

	total, err := countRows(ctx, r.DB, "pharmacies", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + pharmacyColumns + ` FROM pharmacies` + where.String() + ` ORDER BY name LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	pharmacies := []models.Pharmacy{}
	for rows.Next() {
		p, err := scanPharmacy(rows)
		if err != nil {
			return nil, 0, err
		}
		pharmacies = append(pharmacies, p)
	}
	return pharmacies, total, rows.Err()
}

func (r *PharmacyRepository) UpdatePharmacy(ctx context.Context, p models.Pharmacy) (models.Pharmacy, error) {
	query := `UPDATE pharmacies SET name = ?, pharmacist = ?, phone = ?, address = ?, latitude = ?, longitude = ?,
		neighborhood_id = ?, updated_at = NOW() WHERE id = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, p.Name, p.Pharmacist, p.Phone, p.Address, p.Latitude, p.Longitude, p.NeighborhoodID, p.ID)
	if err := expectAffected(res, err); err != nil {
		return models.Pharmacy{}, err
	}
	return r.GetPharmacyByID(ctx, p.ID)
}

func (r *PharmacyRepository) DeletePharmacy(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE pharmacies SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}

const dutyColumns = `d.id, d.pharmacy_id, DATE_FORMAT(d.duty_date, '%Y-%m-%d'), COALESCE(TIME_FORMAT(d.starts_at, '%H:%i'), ''),
	COALESCE(TIME_FORMAT(d.ends_at, '%H:%i'), ''), d.note, d.created_at, d.updated_at,
	p.id, p.name, p.pharmacist, p.phone, p.address, p.latitude, p.longitude, p.neighborhood_id, p.created_at, p.updated_at`

const dutyFrom = ` FROM pharmacy_duties d JOIN pharmacies p ON p.id = d.pharmacy_id AND p.deleted_at IS NULL`

func scanDuty(s scanner) (models.PharmacyDuty, error) {
	var d models.PharmacyDuty
	var p models.Pharmacy
	err := s.Scan(&d.ID, &d.PharmacyID, &d.DutyDate, &d.StartsAt, &d.EndsAt, &d.Note, &d.CreatedAt, &d.UpdatedAt,
		&p.ID, &p.Name, &p.Pharmacist, &p.Phone, &p.Address, &p.Latitude, &p.Longitude, &p.NeighborhoodID, &p.CreatedAt, &p.UpdatedAt)
	d.Pharmacy = &p
	return d, err
}

const insertDuty = `INSERT INTO pharmacy_duties (pharmacy_id, duty_date, starts_at, ends_at, note, created_at, updated_at)
	VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, NOW(), NOW())`

func (r *PharmacyRepository) CreateDuty(ctx context.Context, d models.PharmacyDuty) (models.PharmacyDuty, error) {
	res, err := r.DB.ExecContext(ctx, insertDuty, d.PharmacyID, d.DutyDate, d.StartsAt, d.EndsAt, d.Note)
	if err != nil {
		return models.PharmacyDuty{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.PharmacyDuty{}, err
	}
	return r.GetDutyByID(ctx, id)
}

// CreateDuties inserts the whole roster in one transaction; one bad row rolls back all.
func (r *PharmacyRepository) CreateDuties(ctx context.Context, duties []models.PharmacyDuty) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertDuty)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, d := range duties {
		if _, err := stmt.ExecContext(ctx, d.PharmacyID, d.DutyDate, d.StartsAt, d.EndsAt, d.Note); err != nil {
			return 0, mapError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(duties), nil
}

func (r *PharmacyRepository) GetDutyByID(ctx context.Context, id int64) (models.PharmacyDuty, error) {
	d, err := scanDuty(r.DB.QueryRowContext(ctx, `SELECT `+dutyColumns+dutyFrom+` WHERE d.id = ?`, id))
	return d, mapError(err)
}

func (r *PharmacyRepository) ListDuties(ctx context.Context, f models.DutyFilter) ([]models.PharmacyDuty, int, error) {
	where := &whereBuilder{}
	if f.From != "" {
		where.add("d.duty_date >= ?", f.From)
	}
	if f.To != "" {
		where.add("d.duty_date <= ?", f.To)
	}
	if f.PharmacyID > 0 {
		where.add("d.pharmacy_id = ?", f.PharmacyID)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*)`+dutyFrom+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + dutyColumns + dutyFrom + where.String() + ` ORDER BY d.duty_date, p.name LIMIT ? OFFSET ?`
	duties, err := r.queryDuties(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	return duties, total, err
}

// DutiesOn lists every pharmacy on duty for a YYYY-MM-DD date.
func (r *PharmacyRepository) DutiesOn(ctx context.Context, date string) ([]models.PharmacyDuty, error) {
	return r.queryDuties(ctx, `SELECT `+dutyColumns+dutyFrom+` WHERE d.duty_date = ? ORDER BY p.name`, date)
}

func (r *PharmacyRepository) queryDuties(ctx context.Context, query string, args ...interface{}) ([]models.PharmacyDuty, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	duties := []models.PharmacyDuty{}
	for rows.Next() {
		d, err := scanDuty(rows)
		if err != nil {
			return nil, err
		}
		duties = append(duties, d)
	}
	return duties, rows.Err()
}

func (r *PharmacyRepository) UpdateDuty(ctx context.Context, d models.PharmacyDuty) (models.PharmacyDuty, error) {
	query := `UPDATE pharmacy_duties SET pharmacy_id = ?, duty_date = ?, starts_at = NULLIF(?, ''), ends_at = NULLIF(?, ''),
		note = ?, updated_at = NOW() WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, query, d.PharmacyID, d.DutyDate, d.StartsAt, d.EndsAt, d.Note, d.ID)
	if err := expectAffected(res, err); err != nil {
		return models.PharmacyDuty{}, err
	}
	return r.GetDutyByID(ctx, d.ID)
}

func (r *PharmacyRepository) DeleteDuty(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM pharmacy_duties WHERE id = ?`, id)
	return expectAffected(res, err)
}
