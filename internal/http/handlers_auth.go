// Package httpx provides HTTP handlers and utilities for the finledger API.
package httpx

import (
	"net/http"

	"github.com/finledger/finledger/internal/domain/model"
	"github.com/finledger/finledger/internal/service"
)

// AuthHandlers provides HTTP handlers for registration and login.
type AuthHandlers struct {
	Svc *service.AuthService
}

// tokenResponse is the body returned by both register and login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Register handles HTTP requests to create a new account.
// A successful registration returns a freshly issued access token.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.Svc.Register(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, tokenResponse{AccessToken: token})
}

// Login handles HTTP requests to exchange credentials for an access token.
// Every failure mode maps to the same 401 response.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

// Me echoes the authenticated principal's claims.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"id":    claims.Subject,
		"email": claims.Email,
	})
}
