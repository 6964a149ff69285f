package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/reelnotes/internal/service"
)

// UserHandler serves profile reads and owner-only profile changes.
type UserHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

func NewUserHandler(users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// pathID parses a positive int64 path parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandleGet returns any user's public profile.
// GET /api/users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleUpdate changes the caller's own name and email.
// PUT /api/users/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok || id != caller.ID {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req service.UpdateUserInput
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdateUser(r.Context(), caller.ID, id, req)
	if err != nil {
		writeServiceError(w, r, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated",
		"user":    toUserDTO(user),
	})
}

// HandleDelete removes the caller's own account.
// DELETE /api/users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.users.DeleteUser(r.Context(), caller.ID, id); err != nil {
		writeServiceError(w, r, "delete user", err)
		return
	}
	writeMessage(w, http.StatusOK, "Account deleted")
}

// HandleChangePassword replaces the caller's password.
// PUT /api/users/{id}/password
// Request: {"currentPassword":"...","newPassword":"..."}
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	id, ok := pathID(r, "id")
	if !ok || id != caller.ID {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.ChangePassword(r.Context(), caller.ID, id, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, "change password", err)
		return
	}
	writeMessage(w, http.StatusOK, "Password updated")
}
