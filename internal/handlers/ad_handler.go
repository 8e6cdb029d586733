package handlers

import (
	"net/http"
	"strings"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type AdHandler struct {
	Service *services.AdService
}

func adFilter(r *http.Request) models.AdFilter {
	q := r.URL.Query()
	return models.AdFilter{
		Status:   strings.TrimSpace(q.Get("status")),
		Category: strings.ToLower(strings.TrimSpace(q.Get("category"))),
		Query:    queryParam(r),
		Page:     pageParam(r),
	}
}

func (h *AdHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	f := adFilter(r)
	list, err := h.Service.ListPublic(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *AdHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	ad, err := h.Service.GetPublic(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, ad)
}

func (h *AdHandler) SubmitAd(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	var ad models.Ad
	if !decodeJSON(w, r, &ad) {
		return
	}
	created, err := h.Service.SubmitAd(r.Context(), caller, ad)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *AdHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	p := pageParam(r)
	list, err := h.Service.ListOwn(r.Context(), caller, p)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, p)
}

func (h *AdHandler) DeleteOwn(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteOwn(r.Context(), caller, id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *AdHandler) GetAds(w http.ResponseWriter, r *http.Request) {
	f := adFilter(r)
	list, err := h.Service.ListAds(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *AdHandler) GetAdByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	ad, err := h.Service.GetAdByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, ad)
}

func (h *AdHandler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var ad models.Ad
	if !decodeJSON(w, r, &ad) {
		return
	}
	created, err := h.Service.CreateAd(r.Context(), ad)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *AdHandler) UpdateAd(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	ad, err := h.Service.UpdateAd(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, ad)
}

func (h *AdHandler) ModerateAd(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req models.AdStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ad, err := h.Service.ModerateAd(r.Context(), id, req)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, ad)
}

func (h *AdHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteAd(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
