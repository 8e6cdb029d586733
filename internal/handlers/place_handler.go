package handlers

import (
	"net/http"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type PlaceHandler struct {
	Service *services.PlaceService
}

func (h *PlaceHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetCategories(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if items == nil {
		items = []models.PlaceCategory{}
	}
	writeOK(w, items)
}

func (h *PlaceHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Service.GetCategoryByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, c)
}

func (h *PlaceHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.PlaceCategory
	if !decodeJSON(w, r, &c) {
		return
	}
	created, err := h.Service.CreateCategory(r.Context(), c)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *PlaceHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	c, err := h.Service.UpdateCategory(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, c)
}

func (h *PlaceHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *PlaceHandler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := int64Query(w, r, "category_id")
	if !ok {
		return
	}
	f := models.PlaceFilter{CategoryID: categoryID, Query: queryParam(r), Page: pageParam(r)}
	list, err := h.Service.ListPlaces(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *PlaceHandler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Service.GetPlaceByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, p)
}

func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var p models.Place
	if !decodeJSON(w, r, &p) {
		return
	}
	created, err := h.Service.CreatePlace(r.Context(), p)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	p, err := h.Service.UpdatePlace(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, p)
}

func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeletePlace(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
