package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"forum/internal/auth"
	"forum/internal/services"
)

// UserHandler handles registration and login.
type UserHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.Service
	eventSvc services.EventServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.Service, eventSvc services.EventServiceProvider) *UserHandler {
	return &UserHandler{service: service, tokens: tokens, eventSvc: eventSvc}
}

// CredentialsPayload defines the structure for register and login
// requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	user, err := h.service.Register(payload.Username, payload.Password)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "Missing fields")
		return
	case errors.Is(err, services.ErrConflict):
		respondError(w, http.StatusBadRequest, "Username already exists")
		return
	case err != nil:
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.eventSvc.Record(services.EventUserRegistered, user.Username, nil); err != nil {
		log.Warn().Err(err).Msg("Failed to record registration event")
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User registered"})
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	user, err := h.service.Authenticate(payload.Username, payload.Password)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusBadRequest, "User not found")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		respondError(w, http.StatusBadRequest, "Wrong password")
		return
	case err != nil:
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to authenticate user")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to issue token")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.eventSvc.Record(services.EventUserLogin, user.Username, nil); err != nil {
		log.Warn().Err(err).Msg("Failed to record login event")
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
