package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *models.Meta    `json:"meta"`
	Error   *struct {
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.NewValidationError("name", "is required"), http.StatusBadRequest},
		{&models.DuplicateError{Field: "plate"}, http.StatusConflict},
		{fmt.Errorf("insert: %w", models.ErrDuplicate), http.StatusConflict},
		{models.ErrReferenced, http.StatusConflict},
		{models.ErrStaleStatus, http.StatusConflict},
		{models.ErrMissingReference, http.StatusBadRequest},
		{fmt.Errorf("get: %w", models.ErrNoRecord), http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{models.ErrRateLimited, http.StatusTooManyRequests},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.NotEmpty(t, env.Error.Message)
		})
	}
}

func TestWriteErrorFields(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, &models.DuplicateError{Field: "plate"})
	env := decodeEnvelope(t, rec)
	assert.Equal(t, map[string]string{"plate": "already exists"}, env.Error.Fields)

	rec = httptest.NewRecorder()
	WriteError(rec, errors.New("dial tcp: secret host"))
	env = decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", env.Error.Message)
	assert.Empty(t, env.Error.Fields)
}

func TestWriteListMeta(t *testing.T) {
	rec := httptest.NewRecorder()

	writeList(rec, models.List[string]{Items: nil, Total: 41}, models.NewPage(3, 20))

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))
	require.NotNil(t, env.Meta)
	assert.Equal(t, models.Meta{Page: 3, Limit: 20, Total: 41, TotalPages: 3}, *env.Meta)
}

func TestWriteOKHasNoMeta(t *testing.T) {
	rec := httptest.NewRecorder()

	writeOK(rec, map[string]int{"id": 1})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":1}}`, rec.Body.String())
}
