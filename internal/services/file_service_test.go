package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeObjectStorage struct {
	objects map[string][]byte
	deleted []string
}

func (s *fakeObjectStorage) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.objects[key] = data
	return "https://cdn.example.org/" + key, nil
}

func (s *fakeObjectStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeFileStore struct {
	FileStore
	files map[int64]models.File
	err   error
}

func (s *fakeFileStore) CreateFile(_ context.Context, f models.File) (models.File, error) {
	if s.err != nil {
		return models.File{}, s.err
	}
	f.ID = int64(len(s.files) + 1)
	s.files[f.ID] = f
	return f, nil
}

func (s *fakeFileStore) GetFileByID(_ context.Context, id int64) (models.File, error) {
	f, ok := s.files[id]
	if !ok {
		return models.File{}, models.ErrNoRecord
	}
	return f, nil
}

func (s *fakeFileStore) DeleteFile(_ context.Context, id int64) error {
	delete(s.files, id)
	return nil
}

func newFileService() (*FileService, *fakeFileStore, *fakeObjectStorage) {
	store := &fakeFileStore{files: map[int64]models.File{}}
	storage := &fakeObjectStorage{objects: map[string][]byte{}}
	return &FileService{FileRepo: store, Storage: storage}, store, storage
}

func TestUploadStoresUnderFolder(t *testing.T) {
	svc, _, storage := newFileService()

	f, err := svc.Upload(context.Background(), editor, "Pharmacies", "../../logo.png", pngHeader)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^pharmacies/[0-9a-f-]{36}\.png$`), f.StoredKey)
	assert.Equal(t, "image/png", f.MimeType)
	assert.Equal(t, "logo.png", f.OriginalName)
	assert.Equal(t, editor.UserID, f.OwnerID)
	assert.Equal(t, "https://cdn.example.org/"+f.StoredKey, f.URL)
	assert.Contains(t, storage.objects, f.StoredKey)
}

func TestUploadRejects(t *testing.T) {
	tests := []struct {
		name   string
		folder string
		data   []byte
		field  string
	}{
		{name: "empty", data: nil, field: "file"},
		{name: "plain text", data: []byte("merhaba dünya"), field: "file"},
		{name: "bad folder", folder: "../etc", data: pngHeader, field: "folder"},
		{name: "too large", data: append(append([]byte{}, pngHeader...), make([]byte, 64)...), field: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, storage := newFileService()
			svc.MaxSize = 32

			_, err := svc.Upload(context.Background(), editor, tt.folder, "x", tt.data)

			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
			assert.Empty(t, storage.objects)
		})
	}
}

func TestUploadRemovesObjectWhenRecordFails(t *testing.T) {
	svc, store, storage := newFileService()
	store.err = errors.New("db down")

	_, err := svc.Upload(context.Background(), editor, "", "a.png", pngHeader)

	require.Error(t, err)
	assert.Empty(t, storage.objects)
	assert.Len(t, storage.deleted, 1)
}

func TestDeleteFileRemovesObject(t *testing.T) {
	svc, store, storage := newFileService()
	ctx := context.Background()
	f, err := svc.Upload(ctx, editor, "news", "a.png", pngHeader)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(ctx, f.ID))

	assert.Empty(t, store.files)
	assert.Equal(t, []string{f.StoredKey}, storage.deleted)
	assert.ErrorIs(t, svc.DeleteFile(ctx, f.ID), models.ErrNoRecord)
}
