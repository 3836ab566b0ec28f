package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitconnect/community/internal/models"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// getUserByEmail responds with the user or a JSON null when no user has the
// given email; absence is not an error on this endpoint.
func (h *Handler) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// getUserByUsername responds with the user or a JSON null, like getUserByEmail.
func (h *Handler) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAllUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{} // empty list, not JSON null
	}

	writeJSON(w, http.StatusOK, users)
}
