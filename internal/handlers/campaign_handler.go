package handlers

import (
	"net/http"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type CampaignHandler struct {
	Service *services.CampaignService
}

func (h *CampaignHandler) ListRunning(w http.ResponseWriter, r *http.Request) {
	f := models.CampaignFilter{Query: queryParam(r), Page: pageParam(r)}
	list, err := h.Service.ListRunning(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *CampaignHandler) GetRunning(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Service.GetRunning(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, c)
}

func (h *CampaignHandler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	f := models.CampaignFilter{Query: queryParam(r), Page: pageParam(r)}
	list, err := h.Service.ListCampaigns(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *CampaignHandler) GetCampaignByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Service.GetCampaignByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, c)
}

func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var c models.Campaign
	if !decodeJSON(w, r, &c) {
		return
	}
	created, err := h.Service.CreateCampaign(r.Context(), c)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	c, err := h.Service.UpdateCampaign(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, c)
}

func (h *CampaignHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteCampaign(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
