package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitconnect/community/internal/models"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroupByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

// getGroupByName responds with the group or a JSON null when no group has
// the given name; absence is not an error on this endpoint.
func (h *Handler) getGroupByName(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroupByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

func (h *Handler) getGroupsForUser(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.GetGroupsForUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}

	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListAllGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}

	writeJSON(w, http.StatusOK, groups)
}
