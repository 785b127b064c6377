package handler

// Every handler answers with JSON. Errors always have the same shape:
//
//	{"error": "not_found", "message": "미션을 찾을 수 없습니다"}
//	{"error": "validation_error", "message": "title is required", "field": "title"}
//
// Services return apperror kinds; writeError is the only place those kinds
// become HTTP status codes.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/reconnect/internal/apperror"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// badRequestError is a body the server could not parse at all, as opposed
// to a parsed body that failed validation.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps err to a status code. Anything that is not an AppError is
// logged and reported as a bare 500 so driver text never reaches clients.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var bad *badRequestError
	if errors.As(err, &bad) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: bad.msg})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		kind := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status, kind = http.StatusUnprocessableEntity, "validation_error"
		case errors.Is(err, apperror.ErrPrecondition):
			status, kind = http.StatusBadRequest, "precondition_failed"
		case errors.Is(err, apperror.ErrConflict):
			status, kind = http.StatusBadRequest, "conflict"
		case errors.Is(err, apperror.ErrUnauthorized):
			w.Header().Set("WWW-Authenticate", "Bearer")
			status, kind = http.StatusUnauthorized, "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status, kind = http.StatusForbidden, "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status, kind = http.StatusNotFound, "not_found"
		}

		if status != http.StatusInternalServerError {
			writeJSON(w, status, ErrorResponse{
				Error:   kind,
				Message: appErr.Message,
				Field:   appErr.Field,
			})
			return
		}
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON reads r's body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperror.ValidationFailed(typeErr.Field,
				fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()))
		}
		return &badRequestError{msg: "Request body must be valid JSON"}
	}
	return validateStruct(dst)
}
