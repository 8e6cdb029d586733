package handlers

import (
	"net/http"
	"strings"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type ComplaintHandler struct {
	Service *services.ComplaintService
}

func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	var c models.Complaint
	if !decodeJSON(w, r, &c) {
		return
	}
	created, err := h.Service.CreateComplaint(r.Context(), caller, c)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *ComplaintHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
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

func (h *ComplaintHandler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Service.GetComplaint(r.Context(), caller, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, c)
}

func (h *ComplaintHandler) WithdrawComplaint(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.WithdrawComplaint(r.Context(), caller, id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}

// Track is the anonymous status lookup by tracking code.
func (h *ComplaintHandler) Track(w http.ResponseWriter, r *http.Request) {
	t, err := h.Service.Track(r.Context(), getParam(r, "code"))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, t)
}

func (h *ComplaintHandler) GetComplaints(w http.ResponseWriter, r *http.Request) {
	neighborhoodID, ok := int64Query(w, r, "neighborhood_id")
	if !ok {
		return
	}
	q := r.URL.Query()
	f := models.ComplaintFilter{
		Status:         strings.TrimSpace(q.Get("status")),
		Category:       strings.ToLower(strings.TrimSpace(q.Get("category"))),
		NeighborhoodID: neighborhoodID,
		Query:          queryParam(r),
		Page:           pageParam(r),
	}
	list, err := h.Service.ListComplaints(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, f.Page)
}

func (h *ComplaintHandler) ReviewComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var review models.ComplaintReview
	if !decodeJSON(w, r, &review) {
		return
	}
	c, err := h.Service.ReviewComplaint(r.Context(), id, review)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, c)
}
