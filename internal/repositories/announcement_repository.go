package repositories

import (
	"context"
	"database/sql"
	"time"

	"belediyeBack/internal/models"
)

type AnnouncementRepository struct {
	DB *sql.DB
}

const announcementColumns = `id, title, content, image_url, is_published, published_at, expires_at, view_count, created_at, updated_at`

const publishedAnnouncement = "deleted_at IS NULL AND is_published = 1 AND published_at <= ? AND (expires_at IS NULL OR expires_at > ?)"

func scanAnnouncement(s scanner) (models.Announcement, error) {
	var a models.Announcement
	err := s.Scan(&a.ID, &a.Title, &a.Content, &a.ImageURL, &a.IsPublished, &a.PublishedAt, &a.ExpiresAt,
		&a.ViewCount, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	query := `INSERT INTO announcements (title, content, image_url, is_published, published_at, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.DB.ExecContext(ctx, query, a.Title, a.Content, a.ImageURL, a.IsPublished, a.PublishedAt, a.ExpiresAt)
	if err != nil {
		return models.Announcement{}, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Announcement{}, err
	}
	return r.GetAnnouncementByID(ctx, id)
}

func (r *AnnouncementRepository) GetAnnouncementByID(ctx context.Context, id int64) (models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = ? AND deleted_at IS NULL`
	a, err := scanAnnouncement(r.DB.QueryRowContext(ctx, query, id))
	return a, mapError(err)
}

func (r *AnnouncementRepository) GetPublishedAnnouncement(ctx context.Context, id int64, now time.Time) (models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = ? AND ` + publishedAnnouncement
	a, err := scanAnnouncement(r.DB.QueryRowContext(ctx, query, id, now, now))
	return a, mapError(err)
}

func (r *AnnouncementRepository) ListAnnouncements(ctx context.Context, f models.AnnouncementFilter) ([]models.Announcement, int, error) {
	where := &whereBuilder{}
	where.add("deleted_at IS NULL")
	return r.list(ctx, where, f, "id DESC")
}

func (r *AnnouncementRepository) ListPublished(ctx context.Context, f models.AnnouncementFilter, now time.Time) ([]models.Announcement, int, error) {
	where := &whereBuilder{}
	where.add(publishedAnnouncement, now, now)
	return r.list(ctx, where, f, "published_at DESC, id DESC")
}

func (r *AnnouncementRepository) list(ctx context.Context, where *whereBuilder, f models.AnnouncementFilter, order string) ([]models.Announcement, int, error) {
	if f.Query != "" {
		where.add("title LIKE ?", likePattern(f.Query))
	}

	total, err := countRows(ctx, r.DB, "announcements", where)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + announcementColumns + ` FROM announcements` + where.String() + ` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, query, append(where.args, f.Page.Limit, f.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	query := `UPDATE announcements SET title = ?, content = ?, image_url = ?, is_published = ?, published_at = ?,
		expires_at = ?, updated_at = NOW() WHERE id = ? AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, a.Title, a.Content, a.ImageURL, a.IsPublished, a.PublishedAt, a.ExpiresAt, a.ID)
	if err := expectAffected(res, err); err != nil {
		return models.Announcement{}, err
	}
	return r.GetAnnouncementByID(ctx, a.ID)
}

func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE announcements SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL`, id)
	return expectAffected(res, err)
}

func (r *AnnouncementRepository) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE announcements SET view_count = view_count + 1 WHERE id = ?`, id)
	return err
}

func (r *AnnouncementRepository) CountPublished(ctx context.Context, now time.Time) (int, error) {
	where := &whereBuilder{}
	where.add(publishedAnnouncement, now, now)
	return countRows(ctx, r.DB, "announcements", where)
}
