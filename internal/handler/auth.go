package handler

import (
	"net/http"

	"github.com/msomdec/reelnotes/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleSignup creates an account.
// POST /api/auth/signup
// Request:  {"name":"...","email":"...","password":"..."}
// Response: 201 {"message":"User created","user":{...},"token":"..."}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupInput
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "signup", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created",
		"user":    toUserDTO(user),
		"token":   token,
	})
}

// HandleLogin verifies credentials given as an email or a display name.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."} or {"emailOrUsername":"...","password":"..."}
// Response: {"message":"Logged in","user":{...},"token":"..."}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           *string `json:"email"`
		EmailOrUsername string  `json:"emailOrUsername"`
		Password        string  `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	identifier := req.EmailOrUsername
	if req.Email != nil {
		identifier = *req.Email
	}

	user, token, err := h.auth.Login(r.Context(), identifier, req.Password)
	if err != nil {
		writeServiceError(w, r, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logged in",
		"user":    toUserDTO(user),
		"token":   token,
	})
}

// HandleLogout acknowledges a logout. Tokens are stateless; the client
// discards its copy.
// GET /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out")
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}
