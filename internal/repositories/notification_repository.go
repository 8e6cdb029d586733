package repositories

import (
	"context"
	"database/sql"

	"belediyeBack/internal/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

// UpsertDeviceToken registers a token or re-binds an existing one to the current user.
func (r *NotificationRepository) UpsertDeviceToken(ctx context.Context, t models.DeviceToken) error {
	query := `INSERT INTO device_tokens (user_id, token, platform, created_at) VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE user_id = VALUES(user_id), platform = VALUES(platform)`
	_, err := r.DB.ExecContext(ctx, query, t.UserID, t.Token, t.Platform)
	return mapError(err)
}

func (r *NotificationRepository) DeleteDeviceToken(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM device_tokens WHERE token = ?`, token)
	return expectAffected(res, err)
}

func (r *NotificationRepository) GetTokensByUserID(ctx context.Context, userID int64) ([]string, error) {
	return r.tokens(ctx, `SELECT token FROM device_tokens WHERE user_id = ?`, userID)
}

func (r *NotificationRepository) GetAllTokens(ctx context.Context) ([]string, error) {
	return r.tokens(ctx, `SELECT token FROM device_tokens`)
}

func (r *NotificationRepository) tokens(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	query := `INSERT INTO notifications (title, body, link, target, user_id, sent_count, failed_count, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`
	res, err := r.DB.ExecContext(ctx, query, n.Title, n.Body, n.Link, n.Target, n.UserID, n.SentCount, n.FailedCount, n.CreatedBy)
	if err != nil {
		return models.Notification{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Notification{}, err
	}
	n.ID = id
	return n, nil
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, p models.Page) ([]models.Notification, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, title, body, link, target, user_id, sent_count, failed_count, created_by, created_at
		FROM notifications ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Link, &n.Target, &n.UserID, &n.SentCount, &n.FailedCount,
			&n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}
