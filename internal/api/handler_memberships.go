package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitconnect/community/internal/domain"
	"github.com/fitconnect/community/internal/models"
)

type addMemberRequest struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	Role    string `json:"role"`
}

type removeMemberRequest struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		writeError(w, domain.ErrValidation("invalid role %q", req.Role))
		return
	}

	membership, err := h.memberships.AddMemberToGroup(r.Context(), req.UserID, req.GroupID, role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, membership)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	var req removeMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.memberships.RemoveMemberFromGroup(r.Context(), req.UserID, req.GroupID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) checkUserInGroup(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	groupID := r.URL.Query().Get("groupId")

	inGroup, err := h.memberships.IsUserInGroup(r.Context(), userID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isInGroup": inGroup})
}

func (h *Handler) checkUserAdmin(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	groupID := r.URL.Query().Get("groupId")

	isAdmin, err := h.memberships.IsUserAdmin(r.Context(), userID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}

func (h *Handler) getGroupMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberships.GetGroupMembers(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if members == nil {
		members = []*models.Membership{}
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) getGroupAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.memberships.GetGroupAdmins(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if admins == nil {
		admins = []*models.Membership{}
	}

	writeJSON(w, http.StatusOK, admins)
}

func (h *Handler) countGroupMembers(w http.ResponseWriter, r *http.Request) {
	count, err := h.memberships.CountGroupMembers(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) getUserGroups(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.memberships.GetUserGroups(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if memberships == nil {
		memberships = []*models.Membership{}
	}

	writeJSON(w, http.StatusOK, memberships)
}

func (h *Handler) countUserGroups(w http.ResponseWriter, r *http.Request) {
	count, err := h.memberships.CountUserGroups(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// PATCH requires an explicit role; the default-to-MEMBER rule only
	// applies at membership creation.
	if req.Role == "" {
		writeError(w, domain.ErrValidation("role is required"))
		return
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		writeError(w, domain.ErrValidation("invalid role %q", req.Role))
		return
	}

	membership, err := h.memberships.UpdateMemberRole(r.Context(), chi.URLParam(r, "id"), role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, membership)
}
