package repositories

import (
	"context"
	"database/sql"

	"belediyeBack/internal/models"
)

type FileRepository struct {
	DB *sql.DB
}

const fileColumns = `id, owner_id, original_name, stored_key, url, mime_type, size, created_at`

func scanFile(s scanner) (models.File, error) {
	var f models.File
	err := s.Scan(&f.ID, &f.OwnerID, &f.OriginalName, &f.StoredKey, &f.URL, &f.MimeType, &f.Size, &f.CreatedAt)
	return f, err
}

func (r *FileRepository) CreateFile(ctx context.Context, f models.File) (models.File, error) {
	query := `INSERT INTO files (owner_id, original_name, stored_key, url, mime_type, size, created_at) VALUES (?, ?, ?, ?, ?, ?, NOW())`
	res, err := r.DB.ExecContext(ctx, query, f.OwnerID, f.OriginalName, f.StoredKey, f.URL, f.MimeType, f.Size)
	if err != nil {
		return models.File{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.File{}, err
	}
	return r.GetFileByID(ctx, id)
}

func (r *FileRepository) GetFileByID(ctx context.Context, id int64) (models.File, error) {
	f, err := scanFile(r.DB.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = ? AND deleted_at IS NULL`, id))
	return f, mapError(err)
}

func (r *FileRepository) ListFiles(ctx context.Context, f models.FileFilter) ([]models.File, int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	if f.OwnerID > 0 {
		where.add("owner_id = ?", f.OwnerID)
	}

	total, err := countRows(ctx, r.DB, "files", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + fileColumns + ` FROM files` + where.String() + ` ORDER BY id DESC LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, 0, err
		}
		files = append(files, file)
	}
	return files, total, rows.Err()
}

func (r *FileRepository) DeleteFile(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE files SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}
