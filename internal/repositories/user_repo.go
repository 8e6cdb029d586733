package repositories

import (
	"context"
	"database/sql"
	"time"

	"belediyeBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, phone, COALESCE(email, ''), role, password_hash, created_at, updated_at`

func scanUser(s scanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `INSERT INTO users (name, phone, email, role, password_hash, created_at, updated_at)
		VALUES (?, ?, NULLIF(?, ''), ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, user.Name, user.Phone, user.Email, user.Role, user.PasswordHash)
	if err != nil {
		return models.User{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return r.GetUserByID(ctx, id)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? AND deleted_at IS NULL`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	return u, mapError(err)
}

// GetUserByLogin finds a user by phone number or e-mail address.
func (r *UserRepository) GetUserByLogin(ctx context.Context, login string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE (phone = ? OR email = ?) AND deleted_at IS NULL LIMIT 1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, login, login))
	return u, mapError(err)
}

func (r *UserRepository) ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	if f.Role != "" {
		where.add("role = ?", f.Role)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		where.add("(name LIKE ? OR phone LIKE ? OR email LIKE ?)", p, p, p)
	}

	total, err := countRows(ctx, r.DB, "users", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + where.String() + ` ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// UpdateUser keeps the stored password hash when user.PasswordHash is empty.
func (r *UserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `UPDATE users SET name = ?, phone = ?, email = NULLIF(?, ''), role = ?,
		password_hash = IF(? = '', password_hash, ?), updated_at = NOW()
		WHERE id = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, user.Name, user.Phone, user.Email, user.Role,
		user.PasswordHash, user.PasswordHash, user.ID)
	if err := expectAffected(res, err); err != nil {
		return models.User{}, err
	}
	return r.GetUserByID(ctx, user.ID)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}

func (r *UserRepository) CreateSession(ctx context.Context, session models.Session) error {
	query := `INSERT INTO sessions (user_id, refresh_token, expires_at, created_at) VALUES (?, ?, ?, NOW())`
	_, err := r.DB.ExecContext(ctx, query, session.UserID, session.RefreshToken, session.ExpiresAt)
	return mapError(err)
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, token string) (models.Session, error) {
	query := `SELECT s.id, s.user_id, u.role, s.refresh_token, s.expires_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.refresh_token = ? AND u.deleted_at IS NULL`
	var s models.Session
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&s.ID, &s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	return s, mapError(err)
}

func (r *UserRepository) DeleteSession(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE refresh_token = ?`, token)
	return expectAffected(res, err)
}

func (r *UserRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
