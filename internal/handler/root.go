// Package handler turns HTTP requests into service calls and service
// results into JSON responses.
//
// A handler:
//  1. reads the request (path and query parameters, JSON or form body),
//  2. takes the authenticated user from the context when the route needs one,
//  3. calls exactly one service method,
//  4. writes JSON with writeJSON or writeError.
//
// Handlers hold no business rules; those live in internal/service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Re_Connect API에 오신 것을 환영합니다!"

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RootHandler serves the unauthenticated service endpoints.
type RootHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewRootHandler(db Pinger, logger *slog.Logger) *RootHandler {
	return &RootHandler{db: db, logger: logger}
}

// HTTP: GET /
func (h *RootHandler) HandleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": WelcomeMessage})
}

// HandleHealth reports whether the database answers within two seconds.
//
// HTTP: GET /healthz
func (h *RootHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("health check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound answers unknown routes in the usual error shape.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "Not Found"})
}

// MethodNotAllowed answers a known route called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method_not_allowed", Message: "Method Not Allowed"})
}
