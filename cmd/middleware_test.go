package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bmizerany/pat"
	"github.com/jonboulle/clockwork"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"belediyeBack/internal/handlers"
	"belediyeBack/internal/logger"
	"belediyeBack/internal/metrics"
	"belediyeBack/internal/models"
	"belediyeBack/utils"
)

const testSecret = "test-secret"

func testApp(t *testing.T) (*application, *utils.Manager) {
	t.Helper()
	tokens, err := utils.NewManager(testSecret)
	require.NoError(t, err)
	return &application{
		log:       logger.NewNop(),
		clock:     clockwork.NewFakeClock(),
		jwtSecret: testSecret,
	}, tokens
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	id, _ := handlers.IdentityFrom(r.Context())
	_ = json.NewEncoder(w).Encode(id)
}

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

func TestJWTMiddlewareRoles(t *testing.T) {
	app, tokens := testApp(t)
	valid := time.Now().Add(time.Hour)

	sign := func(role string, exp time.Time) string {
		tok, err := tokens.NewJWT(7, role, exp)
		require.NoError(t, err)
		return "Bearer " + tok
	}

	tests := []struct {
		name     string
		required string
		header   string
		want     int
	}{
		{name: "missing token", required: roleCitizen, header: "", want: http.StatusUnauthorized},
		{name: "garbage token", required: roleCitizen, header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "expired token", required: roleCitizen, header: sign(models.RoleCitizen, time.Now().Add(-time.Minute)), want: http.StatusUnauthorized},
		{name: "citizen on citizen route", required: roleCitizen, header: sign(models.RoleCitizen, valid), want: http.StatusOK},
		{name: "citizen on staff route", required: roleStaff, header: sign(models.RoleCitizen, valid), want: http.StatusForbidden},
		{name: "editor on staff route", required: roleStaff, header: sign(models.RoleEditor, valid), want: http.StatusOK},
		{name: "editor on admin route", required: roleAdmin, header: sign(models.RoleEditor, valid), want: http.StatusForbidden},
		{name: "admin on admin route", required: roleAdmin, header: sign(models.RoleAdmin, valid), want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := app.JWTMiddleware(http.HandlerFunc(whoAmI), tt.required)
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusOK {
				var body errorEnvelope
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.False(t, body.Success)
				assert.NotEmpty(t, body.Error.Message)
				return
			}
			var id models.Identity
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &id))
			assert.Equal(t, int64(7), id.UserID)
		})
	}
}

func TestJWTMiddlewareRejectsForeignSecret(t *testing.T) {
	app, _ := testApp(t)
	other, err := utils.NewManager("another-secret")
	require.NoError(t, err)
	tok, err := other.NewJWT(1, models.RoleAdmin, time.Now().Add(time.Hour))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	app.JWTMiddleware(http.HandlerFunc(whoAmI), roleAdmin).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	app, tokens := testApp(t)
	tok, err := tokens.NewJWT(3, models.RoleCitizen, time.Now().Add(time.Hour))
	require.NoError(t, err)

	anon := httptest.NewRecorder()
	app.optionalAuth(http.HandlerFunc(whoAmI)).ServeHTTP(anon, httptest.NewRequest(http.MethodPost, "/devices", nil))
	assert.Equal(t, http.StatusOK, anon.Code)
	assert.JSONEq(t, `{"UserID":0,"Role":""}`, anon.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/devices", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	signed := httptest.NewRecorder()
	app.optionalAuth(http.HandlerFunc(whoAmI)).ServeHTTP(signed, req)
	assert.JSONEq(t, `{"UserID":3,"Role":"citizen"}`, signed.Body.String())
}

func TestIPRateLimiter(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := newIPRateLimiter(1, 2, clock.Now)
	h := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/complaints", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2"))

	clock.Advance(time.Minute)
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))

	clock.Advance(time.Hour)
	assert.Equal(t, 2, limiter.prune(30*time.Minute))
}

func TestRecoverPanicWritesEnvelope(t *testing.T) {
	app, _ := testApp(t)
	h := app.recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"message":"internal server error"}}`, rec.Body.String())
}

func TestLogRequestLabelsRoutePattern(t *testing.T) {
	app, _ := testApp(t)
	mux := router{pat.New()}
	mux.Post("/taxi/:id/call", alice.New(app.logRequest).ThenFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/taxi/:id/call", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"3", "41"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/taxi/"+id+"/call", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRouteFromUnmatched(t *testing.T) {
	assert.Equal(t, "unmatched", routeFrom(httptest.NewRequest(http.MethodGet, "/nope", nil)))
}
