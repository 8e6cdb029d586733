package services

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"belediyeBack/internal/logger"
	"belediyeBack/internal/models"
)

const DefaultMaxUploadSize = 10 << 20

// allowedUploads maps a sniffed content type to the stored file extension.
var allowedUploads = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

var folderPattern = regexp.MustCompile(`^[a-z0-9_-]{1,40}$`)

type FileStore interface {
	CreateFile(ctx context.Context, f models.File) (models.File, error)
	GetFileByID(ctx context.Context, id int64) (models.File, error)
	ListFiles(ctx context.Context, f models.FileFilter) ([]models.File, int, error)
	DeleteFile(ctx context.Context, id int64) error
}

// ObjectStorage is where uploaded bytes live.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type FileService struct {
	FileRepo FileStore
	Storage  ObjectStorage
	MaxSize  int64
	Log      logger.ILogger
}

func (s *FileService) maxSize() int64 {
	if s.MaxSize <= 0 {
		return DefaultMaxUploadSize
	}
	return s.MaxSize
}

// Upload sniffs data, stores it under <folder>/<uuid><ext> and records it.
func (s *FileService) Upload(ctx context.Context, owner models.Identity, folder, name string, data []byte) (models.File, error) {
	if len(data) == 0 {
		return models.File{}, models.NewValidationError("file", "is empty")
	}
	if int64(len(data)) > s.maxSize() {
		return models.File{}, models.NewValidationError("file", fmt.Sprintf("must be at most %d MB", s.maxSize()>>20))
	}

	folder = strings.ToLower(strings.TrimSpace(folder))
	if folder == "" {
		folder = "uploads"
	}
	if !folderPattern.MatchString(folder) {
		return models.File{}, models.NewValidationError("folder", "may contain only a-z, 0-9, _ and -")
	}

	mime := http.DetectContentType(data)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	ext, ok := allowedUploads[mime]
	if !ok {
		return models.File{}, models.NewValidationError("file", "type "+mime+" is not allowed")
	}

	key := folder + "/" + uuid.NewString() + ext
	url, err := s.Storage.Put(ctx, key, data, mime)
	if err != nil {
		return models.File{}, err
	}

	f, err := s.FileRepo.CreateFile(ctx, models.File{
		OwnerID:      owner.UserID,
		OriginalName: filepath.Base(name),
		StoredKey:    key,
		URL:          url,
		MimeType:     mime,
		Size:         int64(len(data)),
	})
	if err != nil {
		if derr := s.Storage.Delete(ctx, key); derr != nil {
			s.log().Error("orphaned upload", logger.String("key", key), logger.Error(derr))
		}
		return models.File{}, err
	}
	return f, nil
}

func (s *FileService) ListFiles(ctx context.Context, f models.FileFilter) (models.List[models.File], error) {
	items, total, err := s.FileRepo.ListFiles(ctx, f)
	if err != nil {
		return models.List[models.File]{}, err
	}
	return toList(items, total), nil
}

// DeleteFile removes the record, then the object. A failed object delete is only logged.
func (s *FileService) DeleteFile(ctx context.Context, id int64) error {
	f, err := s.FileRepo.GetFileByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.FileRepo.DeleteFile(ctx, id); err != nil {
		return err
	}
	if err := s.Storage.Delete(ctx, f.StoredKey); err != nil {
		s.log().Error("delete stored object", logger.String("key", f.StoredKey), logger.Error(err))
	}
	return nil
}

func (s *FileService) log() logger.ILogger {
	if s.Log == nil {
		return logger.NewNop()
	}
	return s.Log
}
