// Package api provides the HTTP REST binding for the community service.
// Handlers decode requests, call the service layer, and encode responses;
// all validation and business rules live in internal/service.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitconnect/community/internal/service"
)

// Handler bundles the HTTP handlers with their service dependencies.
type Handler struct {
	users       *service.UserService
	groups      *service.GroupService
	memberships *service.MembershipService
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(users *service.UserService, groups *service.GroupService, memberships *service.MembershipService) *Handler {
	return &Handler{
		users:       users,
		groups:      groups,
		memberships: memberships,
	}
}

// Routes registers all REST endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.createUser)
		r.Get("/", h.listUsers)
		r.Get("/email/{email}", h.getUserByEmail)
		r.Get("/username/{username}", h.getUserByUsername)
		r.Get("/{id}", h.getUser)
	})

	r.Route("/groups", func(r chi.Router) {
		r.Post("/", h.createGroup)
		r.Get("/", h.listGroups)
		r.Get("/name/{name}", h.getGroupByName)
		r.Get("/user/{userId}", h.getGroupsForUser)
		r.Get("/{id}", h.getGroup)
	})

	r.Route("/memberships", func(r chi.Router) {
		r.Post("/add-member", h.addMember)
		r.Delete("/remove-member", h.removeMember)
		r.Get("/check", h.checkUserInGroup)
		r.Get("/check-admin", h.checkUserAdmin)
		r.Get("/group/{groupId}/members", h.getGroupMembers)
		r.Get("/group/{groupId}/admins", h.getGroupAdmins)
		r.Get("/group/{groupId}/count", h.countGroupMembers)
		r.Get("/user/{userId}/groups", h.getUserGroups)
		r.Get("/user/{userId}/count", h.countUserGroups)
		r.Patch("/{id}/role", h.updateMemberRole)
	})

	r.Get("/healthz", h.healthz)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, returning false after writing
// a 400 response if the body is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}
