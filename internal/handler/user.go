package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/auth"
	"github.com/sakif/reconnect/internal/model"
	"github.com/sakif/reconnect/internal/service"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type userUpdateRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Username *string `json:"username" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}

// HandleMe returns the authenticated user.
//
// HTTP: GET /api/users/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	me, err := h.users.Me(r.Context(), user)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, me)
}

// HandleUpdate changes any of email, username, password and full name.
//
// HTTP: PUT /api/users/me
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}
	var req userUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.users.Update(r.Context(), user, service.UserUpdate{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// currentUser reads the user RequireAuth stored in the context. Routes
// without that middleware get a 401.
func currentUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*model.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, logger, apperror.Unauthorized("Could not validate credentials"))
		return nil, false
	}
	return user, true
}
