package handlers

import (
	"net/http"
	"strings"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type TaxiDriverHandler struct {
	Service *services.TaxiDriverService
}

func taxiFilter(w http.ResponseWriter, r *http.Request) (models.TaxiFilter, bool) {
	neighborhoodID, ok := int64Query(w, r, "neighborhood_id")
	if !ok {
		return models.TaxiFilter{}, false
	}
	return models.TaxiFilter{
		NeighborhoodID: neighborhoodID,
		Stand:          strings.TrimSpace(r.URL.Query().Get("stand")),
		Query:          queryParam(r),
		Page:           pageParam(r),
	}, true
}

// ListPublic returns active drivers in a fresh random order on every request.
func (h *TaxiDriverHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	f, ok := taxiFilter(w, r)
	if !ok {
		return
	}
	list, err := h.Service.ListPublic(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeList(w, list, f.Page)
}

func (h *TaxiDriverHandler) Call(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	call, err := h.Service.Call(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, call)
}

func (h *TaxiDriverHandler) GetDrivers(w http.ResponseWriter, r *http.Request) {
	f, ok := taxiFilter(w, r)
	if !ok {
		return
	}
	list, err := h.Service.ListDrivers(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *TaxiDriverHandler) GetDriverByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	d, err := h.Service.GetDriverByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, d)
}

func (h *TaxiDriverHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var d models.TaxiDriver
	if !decodeJSON(w, r, &d) {
		return
	}
	created, err := h.Service.CreateDriver(r.Context(), d)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *TaxiDriverHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	d, err := h.Service.UpdateDriver(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, d)
}

func (h *TaxiDriverHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteDriver(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
