package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskpad/taskpad-go/internal/middleware"
	"github.com/taskpad/taskpad-go/internal/model"
	"github.com/taskpad/taskpad-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordTooLong),
			errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			slog.Error("register failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			slog.Error("login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /api/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("User not authenticated"))
		return
	}

	resp, err := h.service.GetUser(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("get user failed", "error", err, "user_id", identity.UserID)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
