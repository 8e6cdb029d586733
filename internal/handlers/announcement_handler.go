package handlers

import (
	"net/http"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type AnnouncementHandler struct {
	Service *services.AnnouncementService
}

func announcementFilter(r *http.Request) models.AnnouncementFilter {
	return models.AnnouncementFilter{Query: queryParam(r), Page: pageParam(r)}
}

func (h *AnnouncementHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	f := announcementFilter(r)
	list, err := h.Service.ListPublished(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *AnnouncementHandler) ViewAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	a, err := h.Service.ViewAnnouncement(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, a)
}

func (h *AnnouncementHandler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	f := announcementFilter(r)
	list, err := h.Service.ListAnnouncements(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *AnnouncementHandler) GetAnnouncementByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	a, err := h.Service.GetAnnouncementByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, a)
}

func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var a models.Announcement
	if !decodeJSON(w, r, &a) {
		return
	}
	created, err := h.Service.CreateAnnouncement(r.Context(), a)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *AnnouncementHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	a, err := h.Service.UpdateAnnouncement(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, a)
}

func (h *AnnouncementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteAnnouncement(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
