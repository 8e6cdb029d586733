package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bmizerany/pat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type stubTaxiStore struct {
	services.TaxiDriverStore
	drivers []models.TaxiDriver
	calls   map[int64]int64
}

func (s *stubTaxiStore) ListAllDrivers(context.Context, models.TaxiFilter) ([]models.TaxiDriver, error) {
	return append([]models.TaxiDriver(nil), s.drivers...), nil
}

func (s *stubTaxiStore) IncrementCallCount(_ context.Context, id int64) (models.TaxiCall, error) {
	for _, d := range s.drivers {
		if d.ID == id {
			s.calls[id]++
			return models.TaxiCall{DriverID: id, Phone: d.Phone, CallCount: s.calls[id]}, nil
		}
	}
	return models.TaxiCall{}, models.ErrNoRecord
}

func (s *stubTaxiStore) PlateExists(context.Context, string, int64) (bool, error) {
	return true, nil
}

func newTaxiRouter(store *stubTaxiStore) http.Handler {
	h := &TaxiDriverHandler{Service: &services.TaxiDriverService{TaxiRepo: store, Shuffler: services.NewShuffler(1)}}
	mux := pat.New()
	mux.Get("/taxi", http.HandlerFunc(h.ListPublic))
	mux.Post("/taxi/:id/call", http.HandlerFunc(h.Call))
	mux.Post("/admin/taxi", http.HandlerFunc(h.CreateDriver))
	return mux
}

func TestTaxiListPublicPaginates(t *testing.T) {
	store := &stubTaxiStore{calls: map[int64]int64{}}
	for i := int64(1); i <= 5; i++ {
		store.drivers = append(store.drivers, models.TaxiDriver{ID: i, FullName: "Sürücü", IsActive: true})
	}
	rec := httptest.NewRecorder()

	newTaxiRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/taxi?page=2&limit=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	env := decodeEnvelope(t, rec)
	var drivers []models.TaxiDriver
	require.NoError(t, json.Unmarshal(env.Data, &drivers))
	assert.Len(t, drivers, 2)
	assert.Equal(t, models.Meta{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, *env.Meta)
}

func TestTaxiCall(t *testing.T) {
	store := &stubTaxiStore{
		drivers: []models.TaxiDriver{{ID: 9, Phone: "+905321112233", IsActive: true}},
		calls:   map[int64]int64{},
	}
	router := newTaxiRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/taxi/9/call", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"driver_id":9,"phone":"+905321112233","call_count":1}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/taxi/10/call", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/taxi/abc/call", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaxiCreateDuplicatePlate(t *testing.T) {
	store := &stubTaxiStore{calls: map[int64]int64{}}
	body := `{"full_name":"Mehmet Yılmaz","phone":"+905321112233","plate":"34 abc 12","stand_name":"Merkez"}`
	rec := httptest.NewRecorder()

	newTaxiRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/taxi", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error.Fields, "plate")
}

func TestTaxiCreateRejectsBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	newTaxiRouter(&stubTaxiStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/taxi", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaxiListPublicHugePage(t *testing.T) {
	store := &stubTaxiStore{drivers: []models.TaxiDriver{{ID: 1, IsActive: true}}, calls: map[int64]int64{}}
	rec := httptest.NewRecorder()

	newTaxiRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/taxi?page=100000000000000000&limit=100", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `[]`, string(env.Data))
	assert.Equal(t, models.MaxPage, env.Meta.Page)
	assert.Equal(t, 1, env.Meta.Total)
}
