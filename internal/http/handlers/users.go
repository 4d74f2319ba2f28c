package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/urraccon/contacts-api/internal/http/respond"
	"github.com/urraccon/contacts-api/internal/middleware"
	"github.com/urraccon/contacts-api/internal/models/dto"
	"github.com/urraccon/contacts-api/internal/service"
)

// UsersHandler owns the signup, login, session, and verification endpoints.
type UsersHandler struct {
	svc *service.Auth
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(svc *service.Auth) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// Register attaches user routes to the mux. gate wraps the routes that
// require a valid bearer token.
func (h *UsersHandler) Register(mux *http.ServeMux, gate func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/users/signup", h.handleSignup)
	mux.HandleFunc("POST /api/users/login", h.handleLogin)
	mux.Handle("GET /api/users/logout", gate(http.HandlerFunc(h.handleLogout)))
	mux.Handle("GET /api/users/current", gate(http.HandlerFunc(h.handleCurrent)))
	mux.HandleFunc("GET /api/users/verify/{token}", h.handleVerify)
	mux.HandleFunc("POST /api/users/verify", h.handleResendVerification)
}

func (h *UsersHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if err := validateSignup(email, req.Password); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Signup(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respond.Message(w, http.StatusConflict, "Email in use")
			return
		}
		respond.ServerError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.SignupResponse{User: user})
}

func (h *UsersHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Message(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.svc.Login(r.Context(), email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailUnverified):
			respond.Message(w, http.StatusUnauthorized, "Please verify your email before logging in")
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrBadCredentials):
			respond.Message(w, http.StatusUnauthorized, "Email or password is wrong")
		default:
			respond.ServerError(w, err)
		}
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token, User: user})
}

func (h *UsersHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	if err := h.svc.Logout(r.Context(), user.ID); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			respond.Message(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		respond.ServerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	current, err := h.svc.CurrentUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			respond.Message(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		respond.ServerError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, current)
}

func (h *UsersHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if err := h.svc.CompleteVerification(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			respond.Message(w, http.StatusNotFound, "User not found")
			return
		}
		respond.ServerError(w, err)
		return
	}
	respond.Message(w, http.StatusOK, "Verification successful")
}

func (h *UsersHandler) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		respond.Message(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	sent, err := h.svc.ResendVerification(r.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respond.Message(w, http.StatusNotFound, "User not found")
			return
		}
		respond.ServerError(w, err)
		return
	}
	if !sent {
		respond.Message(w, http.StatusBadRequest, "Verification has already been passed")
		return
	}
	respond.Message(w, http.StatusOK, "Verification email sent")
}
