package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"belediyeBack/internal/models"
)

type TransportRouteRepository struct {
	DB *sql.DB
}

const routeColumns = `id, code, name, description, route_type, fare, departure_times, is_active, created_at, updated_at`

func scanRoute(s scanner) (models.TransportRoute, error) {
	var rt models.TransportRoute
	var times []byte
	err := s.Scan(&rt.ID, &rt.Code, &rt.Name, &rt.Description, &rt.RouteType, &rt.Fare, &times, &rt.IsActive,
		&rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return rt, err
	}
	rt.DepartureTimes = []string{}
	if len(times) > 0 {
		if err := json.Unmarshal(times, &rt.DepartureTimes); err != nil {
			return rt, err
		}
	}
	return rt, nil
}

func (r *TransportRouteRepository) CreateRoute(ctx context.Context, rt models.TransportRoute) (models.TransportRoute, error) {
	times, err := json.Marshal(rt.DepartureTimes)
	if err != nil {
		return models.TransportRoute{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.TransportRoute{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO transport_routes (code, name, description, route_type, fare, departure_times, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := tx.ExecContext(ctx, query, rt.Code, rt.Name, rt.Description, rt.RouteType, rt.Fare, string(times), rt.IsActive)
	if err != nil {
		return models.TransportRoute{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TransportRoute{}, err
	}
	if err := replaceStops(ctx, tx, id, rt.Stops); err != nil {
		return models.TransportRoute{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.TransportRoute{}, err
	}
	return r.GetRouteByID(ctx, id)
}

// replaceStops drops the route's stops and writes the new list with positions 0..n-1.
func replaceStops(ctx context.Context, tx *sql.Tx, routeID int64, stops []models.RouteStop) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM route_stops WHERE route_id = ?`, routeID); err != nil {
		return err
	}
	if len(stops) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO route_stops (route_id, name, latitude, longitude, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range stops {
		if _, err := stmt.ExecContext(ctx, routeID, s.Name, s.Latitude, s.Longitude, i); err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (r *TransportRouteRepository) GetRouteByID(ctx context.Context, id int64) (models.TransportRoute, error) {
	query := `SELECT ` + routeColumns + ` FROM transport_routes WHERE id = ? AND deleted_at IS NULL`
	rt, err := scanRoute(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return rt, mapError(err)
	}

	stops, err := r.stopsFor(ctx, []int64{id})
	if err != nil {
		return rt, err
	}
	rt.Stops = stops[id]
	if rt.Stops == nil {
		rt.Stops = []models.RouteStop{}
	}
	return rt, nil
}

func (r *TransportRouteRepository) ListRoutes(ctx context.Context, f models.RouteFilter) ([]models.TransportRoute, int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	if f.OnlyActive {
		where.add("is_active = 1")
	}
	if f.RouteType != "" {
		where.add("route_type = ?", f.RouteType)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where.add("(code LIKE ? OR name LIKE ?)", p, p)
	}

	total, err := countRows(ctx, r.DB, "transport_routes", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + routeColumns + ` FROM transport_routes` + where.String() + ` ORDER BY code LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	routes := []models.TransportRoute{}
	var ids []int64
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, 0, err
		}
		routes = append(routes, rt)
		ids = append(ids, rt.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	stops, err := r.stopsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range routes {
		routes[i].Stops = stops[routes[i].ID]
		if routes[i].Stops == nil {
			routes[i].Stops = []models.RouteStop{}
		}
	}
	return routes, total, nil
}

func (r *TransportRouteRepository) stopsFor(ctx context.Context, routeIDs []int64) (map[int64][]models.RouteStop, error) {
	result := make(map[int64][]models.RouteStop, len(routeIDs))
	if len(routeIDs) == 0 {
		return result, nil
	}

	args := make([]interface{}, 0, len(routeIDs))
	for _, id := range routeIDs {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(routeIDs)), ",")

	query := `SELECT id, route_id, name, latitude, longitude, position FROM route_stops WHERE route_id IN (` +
		placeholders + `) ORDER BY route_id, position`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s models.RouteStop
		if err := rows.Scan(&s.ID, &s.RouteID, &s.Name, &s.Latitude, &s.Longitude, &s.Position); err != nil {
			return nil, err
		}
		result[s.RouteID] = append(result[s.RouteID], s)
	}
	return result, rows.Err()
}

func (r *TransportRouteRepository) UpdateRoute(ctx context.Context, rt models.TransportRoute) (models.TransportRoute, error) {
	times, err := json.Marshal(rt.DepartureTimes)
	if err != nil {
		return models.TransportRoute{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.TransportRoute{}, err
	}
	defer tx.Rollback()

	query := `UPDATE transport_routes SET code = ?, name = ?, description = ?, route_type = ?, fare = ?, departure_times = ?,
		is_active = ?, updated_at = NOW() WHERE id = ? AND deleted_at IS NULL`
	res, err := tx.ExecContext(ctx, query, rt.Code, rt.Name, rt.Description, rt.RouteType, rt.Fare, string(times), rt.IsActive, rt.ID)
	if err := expectAffected(res, err); err != nil {
		return models.TransportRoute{}, err
	}
	if err := replaceStops(ctx, tx, rt.ID, rt.Stops); err != nil {
		return models.TransportRoute{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.TransportRoute{}, err
	}
	return r.GetRouteByID(ctx, rt.ID)
}

func (r *TransportRouteRepository) DeleteRoute(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE transport_routes SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}
