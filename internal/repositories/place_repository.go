package repositories

import (
	"context"
	"database/sql"

	"belediyeBack/internal/models"
)

type PlaceRepository struct {
	DB *sql.DB
}

func (r *PlaceRepository) CreateCategory(ctx context.Context, c models.PlaceCategory) (models.PlaceCategory, error) {
	query := `INSERT INTO place_categories (name, icon, position, created_at, updated_at) VALUES (?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, c.Name, c.Icon, c.Position)
	if err != nil {
		return models.PlaceCategory{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.PlaceCategory{}, err
	}
	return r.GetCategoryByID(ctx, id)
}

const categoryColumns = `pc.id, pc.name, pc.icon, pc.position, pc.created_at, pc.updated_at,
	(SELECT COUNT(*) FROM places p WHERE p.category_id = pc.id AND p.deleted_at IS NULL)`

func scanCategory(s scanner) (models.PlaceCategory, error) {
	var c models.PlaceCategory
	err := s.Scan(&c.ID, &c.Name, &c.Icon, &c.Position, &c.CreatedAt, &c.UpdatedAt, &c.PlaceCount)
	return c, err
}

func (r *PlaceRepository) GetCategoryByID(ctx context.Context, id int64) (models.PlaceCategory, error) {
	c, err := scanCategory(r.DB.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM place_categories pc WHERE pc.id = ?`, id))
	return c, mapError(err)
}

func (r *PlaceRepository) GetCategories(ctx context.Context) ([]models.PlaceCategory, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+categoryColumns+` FROM place_categories pc ORDER BY pc.position, pc.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.PlaceCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PlaceRepository) UpdateCategory(ctx context.Context, c models.PlaceCategory) (models.PlaceCategory, error) {
	query := `UPDATE place_categories SET name = ?, icon = ?, position = ?, updated_at = NOW() WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, query, c.Name, c.Icon, c.Position, c.ID)
	if err := expectAffected(res, err); err != nil {
		return models.PlaceCategory{}, err
	}
	return r.GetCategoryByID(ctx, c.ID)
}

// DeleteCategory refuses while live places still use the category.
// Soft-deleted places are detached first so they do not block the foreign key.
func (r *PlaceRepository) DeleteCategory(ctx context.Context, id int64) error {
	var live int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM places WHERE category_id = ? AND deleted_at IS NULL`, id).Scan(&live)
	if err != nil {
		return err
	}
	if live > 0 {
		return models.ErrReferenced
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM places WHERE category_id = ? AND deleted_at IS NOT NULL`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM place_categories WHERE id = ?`, id)
	if err := expectAffected(res, err); err != nil {
		return err
	}
	return tx.Commit()
}

const placeColumns = `id, category_id, name, description, address, phone, website, latitude, longitude, image_url, working_hours,
	created_at, updated_at`

func scanPlace(s scanner) (models.Place, error) {
	var p models.Place
	err := s.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Address, &p.Phone, &p.Website, &p.Latitude, &p.Longitude,
		&p.ImageURL, &p.WorkingHours, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PlaceRepository) CreatePlace(ctx context.Context, p models.Place) (models.Place, error) {
	query := `INSERT INTO places (category_id, name, description, address, phone, website, latitude, longitude, image_url,
		working_hours, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, p.CategoryID, p.Name, p.Description, p.Address, p.Phone, p.Website, p.Latitude,
		p.Longitude, p.ImageURL, p.WorkingHours)
	if err != nil {
		return models.Place{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Place{}, err
	}
	return r.GetPlaceByID(ctx, id)
}

func (r *PlaceRepository) GetPlaceByID(ctx context.Context, id int64) (models.Place, error) {
	p, err := scanPlace(r.DB.QueryRowContext(ctx, `SELECT `+placeColumns+` FROM places WHERE id = ? AND deleted_at IS NULL`, id))
	return p, mapError(err)
}

func (r *PlaceRepository) ListPlaces(ctx context.Context, f models.PlaceFilter) ([]models.Place, int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	if f.CategoryID > 0 {
		where.add("category_id = ?", f.CategoryID)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where.add("(name LIKE ? OR address LIKE ?)", p, p)
	}

	total, err := countRows(ctx, r.DB, "places", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + placeColumns + ` FROM places` + where.String() + ` ORDER BY name LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, 0, err
		}
		places = append(places, p)
	}
	return places, total, rows.Err()
}

func (r *PlaceRepository) UpdatePlace(ctx context.Context, p models.Place) (models.Place, error) {
	query := `UPDATE places SET category_id = ?, name = ?, description = ?, address = ?, phone = ?, website = ?, latitude = ?,
		longitude = ?, image_url = ?, working_hours = ?, updated_at = NOW() WHERE id = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, p.CategoryID, p.Name, p.Description, p.Address, p.Phone, p.Website, p.Latitude,
		p.Longitude, p.ImageURL, p.WorkingHours, p.ID)
	if err := expectAffected(res, err); err != nil {
		return models.Place{}, err
	}
	return r.GetPlaceByID(ctx, p.ID)
}

func (r *PlaceRepository) DeletePlace(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE places SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}
