package handlers

import (
	"net/http"

	"belediyeBack/internal/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	d, err := h.Service.Summary(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, d)
}
