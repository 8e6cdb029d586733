package handlers

import (
	"net/http"

	"belediyeBack/internal/models"
	"belediyeBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tokens, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, tokens)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tokens, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, tokens)
}

func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		WriteError(w, models.NewValidationError("refresh_token", "is required"))
		return
	}
	tokens, err := h.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, tokens)
}

func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Service.SignOut(r.Context(), req.RefreshToken); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	user, err := h.Service.GetUserByID(r.Context(), caller.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, user)
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	p := pageParam(r)
	list, err := h.Service.ListUsers(r.Context(), models.UserFilter{
		Role:  r.URL.Query().Get("role"),
		Query: queryParam(r),
		Page:  p,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeList(w, list, p)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	user, err := h.Service.GetUserByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, user)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !decodeJSON(w, r, &user) {
		return
	}
	created, err := h.Service.CreateUser(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeCreated(w, created)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	patch, ok := readPatch(w, r)
	if !ok {
		return
	}
	user, err := h.Service.UpdateUser(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeOK(w, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustIdentity(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteUser(r.Context(), caller, id); err != nil {
		WriteError(w, err)
		return
	}
	writeNoContent(w)
}
