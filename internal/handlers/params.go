package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"belediyeBack/internal/models"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// idParam parses a positive integer path parameter and writes a 400 when it is not one.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(getParam(r, name), 10, 64)
	if err != nil || id < 1 {
		writeClientError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// pageParam reads ?page= and ?limit=. Unparseable values fall back to the defaults.
func pageParam(r *http.Request) models.Page {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return models.NewPage(page, limit)
}

func queryParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("q"))
}

// int64Query reads an optional integer filter. A missing value is 0.
func int64Query(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		writeClientError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}
