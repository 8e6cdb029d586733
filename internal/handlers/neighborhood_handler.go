package handlers

import (
	"net/http"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type NeighborhoodHandler struct {
	Service *services.NeighborhoodService
}

func (h *NeighborhoodHandler) GetNeighborhoods(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetNeighborhoods(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if items == nil {
		items = []models.Neighborhood{}
	}
	writeOK(w, items)
}

func (h *NeighborhoodHandler) GetNeighborhoodByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	n, err := h.Service.GetNeighborhoodByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, n)
}

func (h *NeighborhoodHandler) CreateNeighborhood(w http.ResponseWriter, r *http.Request) {
	var n models.Neighborhood
	if !decodeJSON(w, r, &n) {
		return
	}
	created, err := h.Service.CreateNeighborhood(r.Context(), n)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *NeighborhoodHandler) UpdateNeighborhood(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	n, err := h.Service.UpdateNeighborhood(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, n)
}

func (h *NeighborhoodHandler) DeleteNeighborhood(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteNeighborhood(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
