package handlers

import (
	"errors"
	"io"
	"net/http"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type FileHandler struct {
	Service *services.FileService
	// MaxSize caps the accepted file; the multipart envelope gets 1 MiB on top.
	MaxSize int64
}

type uploadResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

func (h *FileHandler) maxSize() int64 {
	if h.MaxSize <= 0 {
		return services.DefaultMaxUploadSize
	}
	return h.MaxSize
}

// Upload accepts multipart field "file" and an optional "folder" value.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize()+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			WriteError(w, models.NewValidationError("file", "is too large"))
			return
		}
		writeClientError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, models.NewValidationError("file", "is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxSize()+1))
	if err != nil {
		writeClientError(w, http.StatusBadRequest, "could not read file")
		return
	}

	f, err := h.Service.Upload(r.Context(), caller, r.FormValue("folder"), header.Filename, data)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, uploadResponse{ID: f.ID, URL: f.URL})
}

func (h *FileHandler) GetFiles(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := int64Query(w, r, "owner_id")
	if !ok {
		return
	}
	f := models.FileFilter{OwnerID: ownerID, Page: pageParam(r)}
	list, err := h.Service.ListFiles(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteFile(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
