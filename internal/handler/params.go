package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/repository"
)

// idParam parses a positive integer path parameter.
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.ValidationFailed(name, name+" must be a positive integer")
	}
	return uint(id), nil
}

// listOptions reads ?skip= and ?limit=. Range checks are left to the
// service.
func listOptions(r *http.Request) (repository.ListOptions, error) {
	var opts repository.ListOptions
	q := r.URL.Query()
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, apperror.ValidationFailed("skip", "skip must be an integer")
		}
		opts.Offset = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, apperror.ValidationFailed("limit", "limit must be an integer")
		}
		opts.Limit = n
	}
	return opts, nil
}
