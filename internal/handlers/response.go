package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"belediyeBack/internal/logger"
	"belediyeBack/internal/models"
)

var handlerLog logger.ILogger = logger.NewNop()

// SetLogger sets the logger used to report server errors.
func SetLogger(l logger.ILogger) {
	if l != nil {
		handlerLog = l
	}
}

type envelope struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Meta    *models.Meta `json:"meta,omitempty"`
	Error   *errorBody   `json:"error,omitempty"`
}

type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		handlerLog.Error("encode response", logger.Error(err))
	}
}

func writeOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeList writes a page of items with its pagination meta.
func writeList[T any](w http.ResponseWriter, list models.List[T], p models.Page) {
	items := list.Items
	if items == nil {
		items = []T{}
	}
	meta := models.NewMeta(p, list.Total)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: items, Meta: &meta})
}

func writeClientError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Error: &errorBody{Message: message}})
}

// WriteError maps err onto an HTTP status and writes the error envelope.
// Unknown errors are logged and reported as 500 without details.
func WriteError(w http.ResponseWriter, err error) {
	var (
		ve  *models.ValidationError
		dup *models.DuplicateError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, envelope{Error: &errorBody{Message: "validation failed", Fields: ve.Fields}})
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, envelope{Error: &errorBody{
			Message: "duplicate " + dup.Field,
			Fields:  map[string]string{dup.Field: "already exists"},
		}})
	case errors.Is(err, models.ErrDuplicate):
		writeClientError(w, http.StatusConflict, "record already exists")
	case errors.Is(err, models.ErrReferenced):
		writeClientError(w, http.StatusConflict, "record is still in use")
	case errors.Is(err, models.ErrMissingReference):
		writeClientError(w, http.StatusBadRequest, "referenced record does not exist")
	case errors.Is(err, models.ErrStaleStatus):
		writeClientError(w, http.StatusConflict, "record was changed by another request")
	case errors.Is(err, models.ErrNoRecord):
		writeClientError(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrForbidden):
		writeClientError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, models.ErrInvalidCredentials):
		writeClientError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, models.ErrUnauthorized):
		writeClientError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, models.ErrRateLimited):
		writeClientError(w, http.StatusTooManyRequests, "too many requests")
	default:
		handlerLog.Error("server error", logger.Error(err))
		writeClientError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeClientError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// readPatch returns the raw body of a PATCH request after checking it is a JSON object.
func readPatch(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeClientError(w, http.StatusBadRequest, "could not read body")
		return nil, false
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil {
		writeClientError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	return body, true
}
