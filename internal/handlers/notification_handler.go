package handlers

import (
	"net/http"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

// RegisterDevice works with or without a token; signed-in callers own the device.
func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var t models.DeviceToken
	if !decodeJSON(w, r, &t) {
		return
	}
	var caller *models.Identity
	if id, ok := IdentityFrom(r.Context()); ok {
		caller = &id
	}
	if err := h.Service.RegisterDevice(r.Context(), caller, t); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *NotificationHandler) UnregisterDevice(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.UnregisterDevice(r.Context(), getParam(r, "token")); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	var n models.Notification
	if !decodeJSON(w, r, &n) {
		return
	}
	sent, err := h.Service.SendNotification(r.Context(), caller, n)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, sent)
}

func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	p := pageParam(r)
	list, err := h.Service.ListNotifications(r.Context(), p)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, p)
}
