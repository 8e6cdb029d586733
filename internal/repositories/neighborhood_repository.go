package repositories

import (
	"context"
	"database/sql"

	"belediyeBack/internal/models"
)

type NeighborhoodRepository struct {
	DB *sql.DB
}

const neighborhoodColumns = `id, name, headman_name, headman_phone, population, created_at, updated_at`

func scanNeighborhood(s scanner) (models.Neighborhood, error) {
	var n models.Neighborhood
	err := s.Scan(&n.ID, &n.Name, &n.HeadmanName, &n.HeadmanPhone, &n.Population, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *NeighborhoodRepository) CreateNeighborhood(ctx context.Context, n models.Neighborhood) (models.Neighborhood, error) {
	query := `INSERT INTO neighborhoods (name, headman_name, headman_phone, population, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, n.Name, n.HeadmanName, n.HeadmanPhone, n.Population)
	if err != nil {
		return models.Neighborhood{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Neighborhood{}, err
	}
	return r.GetNeighborhoodByID(ctx, id)
}

func (r *NeighborhoodRepository) GetNeighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+neighborhoodColumns+` FROM neighborhoods ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	neighborhoods := []models.Neighborhood{}
	for rows.Next() {
		n, err := scanNeighborhood(rows)
		if err != nil {
			return nil, err
		}
		neighborhoods = append(neighborhoods, n)
	}
	return neighborhoods, rows.Err()
}

func (r *NeighborhoodRepository) GetNeighborhoodByID(ctx context.Context, id int64) (models.Neighborhood, error) {
	n, err := scanNeighborhood(r.DB.QueryRowContext(ctx, `SELECT `+neighborhoodColumns+` FROM neighborhoods WHERE id = ?`, id))
	return n, mapError(err)
}

func (r *NeighborhoodRepository) UpdateNeighborhood(ctx context.Context, n models.Neighborhood) (models.Neighborhood, error) {
	query := `UPDATE neighborhoods SET name = ?, headman_name = ?, headman_phone = ?, population = ?, updated_at = NOW() WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, query, n.Name, n.HeadmanName, n.HeadmanPhone, n.Population, n.ID)
	if err := expectAffected(res, err); err != nil {
		return models.Neighborhood{}, err
	}
	return r.GetNeighborhoodByID(ctx, n.ID)
}

// DeleteNeighborhood is a hard delete; the foreign keys refuse it while
// drivers, pharmacies, notices or complaints still point here.
func (r *NeighborhoodRepository) DeleteNeighborhood(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM neighborhoods WHERE id = ?`, id)
	return expectAffected(res, err)
}
