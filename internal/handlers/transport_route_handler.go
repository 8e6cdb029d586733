package handlers

import (
	"net/http"
	"strings"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type TransportRouteHandler struct {
	Service *services.TransportRouteService
}

func routeFilter(r *http.Request) models.RouteFilter {
	return models.RouteFilter{
		RouteType: strings.TrimSpace(r.URL.Query().Get("route_type")),
		Query:     queryParam(r),
		Page:      pageParam(r),
	}
}

func (h *TransportRouteHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	f := routeFilter(r)
	list, err := h.Service.ListPublic(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *TransportRouteHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	rt, err := h.Service.GetPublic(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, rt)
}

func (h *TransportRouteHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	f := routeFilter(r)
	list, err := h.Service.ListRoutes(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *TransportRouteHandler) GetRouteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	rt, err := h.Service.GetRouteByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, rt)
}

func (h *TransportRouteHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var rt models.TransportRoute
	if !decodeJSON(w, r, &rt) {
		return
	}
	created, err := h.Service.CreateRoute(r.Context(), rt)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *TransportRouteHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	rt, err := h.Service.UpdateRoute(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, rt)
}

func (h *TransportRouteHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteRoute(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
