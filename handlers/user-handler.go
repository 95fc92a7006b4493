package handlers

import (
	"net/http"

	"project-manager/backend/middleware"
	"project-manager/backend/services"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

// Me returns the authenticated caller's own profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	user, err := h.UserService.Me(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListMembers returns every member-role user, for assignee pickers.
func (h *UserHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.UserService.ListMembers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}
