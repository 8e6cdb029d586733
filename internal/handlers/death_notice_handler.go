package handlers

import (
	"net/http"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type DeathNoticeHandler struct {
	Service *services.DeathNoticeService
}

func (h *DeathNoticeHandler) GetDeathNotices(w http.ResponseWriter, r *http.Request) {
	neighborhoodID, ok := int64Query(w, r, "neighborhood_id")
	if !ok {
		return
	}
	f := models.DeathNoticeFilter{NeighborhoodID: neighborhoodID, Query: queryParam(r), Page: pageParam(r)}
	list, err := h.Service.ListDeathNotices(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *DeathNoticeHandler) GetDeathNoticeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	d, err := h.Service.GetDeathNoticeByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, d)
}

func (h *DeathNoticeHandler) CreateDeathNotice(w http.ResponseWriter, r *http.Request) {
	var d models.DeathNotice
	if !decodeJSON(w, r, &d) {
		return
	}
	created, err := h.Service.CreateDeathNotice(r.Context(), d)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *DeathNoticeHandler) UpdateDeathNotice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	d, err := h.Service.UpdateDeathNotice(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, d)
}

func (h *DeathNoticeHandler) DeleteDeathNotice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteDeathNotice(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
