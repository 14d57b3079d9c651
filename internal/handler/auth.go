// Package handler contains the HTTP endpoints. Handlers decode requests,
// call a service, and encode the result; all business rules live below them.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mi-wada/todo-api/internal/apperror"
	"github.com/mi-wada/todo-api/internal/service"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// credentialsPayload is the request body for both registration and login.
// Pointer fields distinguish an absent key from an empty string, so a
// missing password reports "Password is missing" instead of a length error.
type credentialsPayload struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// HandleRegister creates a user account.
//
// HTTP: POST /users
// Request: {"email": "...", "password": "..."}
// Response: 201 {"id": "...", "email": "..."} | 400 {code, message}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.auth.Register(r.Context(), *payload.Email, *payload.Password)
	if err != nil {
		h.logError(r, "register failed", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// loginResponse is the success body for HandleLogin.
type loginResponse struct {
	Token string `json:"token"`
}

// HandleLogin authenticates credentials and returns an access token.
//
// HTTP: POST /login
// Request: {"email": "...", "password": "..."}
// Response: 200 {"token": "..."} | 401 {code, message}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.auth.Login(r.Context(), *payload.Email, *payload.Password)
	if err != nil {
		h.logError(r, "login failed", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// decodeCredentials parses the shared request body and rejects missing
// fields. On failure it has already written the response.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsPayload, bool) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apperror.Validation("InvalidRequestBody", "Request body is not valid JSON"))
		return credentialsPayload{}, false
	}
	if payload.Email == nil {
		writeError(w, apperror.Validation("EmailEmpty", "Email is missing"))
		return credentialsPayload{}, false
	}
	if payload.Password == nil {
		writeError(w, apperror.Validation("PasswordEmpty", "Password is missing"))
		return credentialsPayload{}, false
	}
	return payload, true
}

// logError records the true cause server-side. The client only ever sees the
// coarse mapped response from writeError.
func (h *AuthHandler) logError(r *http.Request, msg string, err error) {
	h.logger.Debug(msg,
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
}
