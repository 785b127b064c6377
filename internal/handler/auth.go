package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/service"
)

// AuthHandler serves signup and the OAuth2 password-grant login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type signupRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Username string  `json:"username" validate:"required,max=100"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}

// HandleSignup creates an account.
//
// HTTP: POST /api/auth/signup
// BODY: {"email": "...", "username": "...", "password": "...", "full_name": "..."}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.auth.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleLogin exchanges credentials for a bearer token.
//
// HTTP: POST /api/auth/login
// BODY: application/x-www-form-urlencoded, username=<email>&password=...
//
// This is the OAuth2 "resource owner password credentials" grant, so any
// standard OAuth2 client can log in. The username field carries the email.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, h.logger, &badRequestError{msg: "Request body must be form encoded"})
		return
	}

	email := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	switch {
	case email == "":
		writeError(w, h.logger, apperror.ValidationFailed("username", "username is required"))
		return
	case password == "":
		writeError(w, h.logger, apperror.ValidationFailed("password", "password is required"))
		return
	}
	if r.PostForm.Has("grant_type") && r.PostForm.Get("grant_type") != "password" {
		writeError(w, h.logger, apperror.ValidationFailed("grant_type", `grant_type must be "password"`))
		return
	}

	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, token)
}
