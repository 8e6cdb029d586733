package handlers

import (
	"net/http"
	"strings"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type PharmacyHandler struct {
	Service *services.PharmacyService
}

func (h *PharmacyHandler) GetPharmacies(w http.ResponseWriter, r *http.Request) {
	neighborhoodID, ok := int64Query(w, r, "neighborhood_id")
	if !ok {
		return
	}
	f := models.PharmacyFilter{NeighborhoodID: neighborhoodID, Query: queryParam(r), Page: pageParam(r)}
	list, err := h.Service.ListPharmacies(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *PharmacyHandler) GetPharmacyByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Service.GetPharmacyByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, p)
}

// OnDuty lists the duties of ?date=YYYY-MM-DD, today when omitted.
func (h *PharmacyHandler) OnDuty(w http.ResponseWriter, r *http.Request) {
	duties, err := h.Service.OnDuty(r.Context(), strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		WriteError(w, err)
		return
	}
	if duties == nil {
		duties = []models.PharmacyDuty{}
	}
	writeOK(w, duties)
}

func (h *PharmacyHandler) CreatePharmacy(w http.ResponseWriter, r *http.Request) {
	var p models.Pharmacy
	if !decodeJSON(w, r, &p) {
		return
	}
	created, err := h.Service.CreatePharmacy(r.Context(), p)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *PharmacyHandler) UpdatePharmacy(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	p, err := h.Service.UpdatePharmacy(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, p)
}

func (h *PharmacyHandler) DeletePharmacy(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeletePharmacy(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *PharmacyHandler) GetDuties(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := int64Query(w, r, "pharmacy_id")
	if !ok {
		return
	}
	q := r.URL.Query()
	f := models.DutyFilter{
		From:       strings.TrimSpace(q.Get("from")),
		To:         strings.TrimSpace(q.Get("to")),
		PharmacyID: pharmacyID,
		Page:       pageParam(r),
	}
	list, err := h.Service.ListDuties(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *PharmacyHandler) GetDutyByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	d, err := h.Service.GetDutyByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, d)
}

func (h *PharmacyHandler) CreateDuty(w http.ResponseWriter, r *http.Request) {
	var d models.PharmacyDuty
	if !decodeJSON(w, r, &d) {
		return
	}
	created, err := h.Service.CreateDuty(r.Context(), d)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *PharmacyHandler) CreateDuties(w http.ResponseWriter, r *http.Request) {
	var req models.BulkDutyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := h.Service.CreateDuties(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, map[string]int{"created": n})
}

func (h *PharmacyHandler) UpdateDuty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	d, err := h.Service.UpdateDuty(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, d)
}

func (h *PharmacyHandler) DeleteDuty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteDuty(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
