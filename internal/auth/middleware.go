package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// UserLookup resolves a token subject to an account. It must return an
// error wrapping apperror.ErrNotFound for unknown emails.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

const unauthorizedBody = `{"error":"unauthorized","message":"Could not validate credentials"}`

// RequireAuth rejects requests without a valid "Authorization: Bearer"
// token. On success the resolved *model.User is stored in the request
// context; handlers read it with UserFromContext and pass it on explicitly.
//
// A missing header, a wrong scheme, a bad or expired token and a subject
// with no account all produce the same 401.
func RequireAuth(tokens *TokenService, users UserLookup, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				writeUnauthorized(w)
				return
			}

			email, err := tokens.Validate(raw)
			if err != nil {
				logger.Debug("rejected bearer token", slog.String("error", err.Error()))
				writeUnauthorized(w)
				return
			}

			user, err := users.GetByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, apperror.ErrNotFound) {
					writeUnauthorized(w)
					return
				}
				logger.Error("resolving token subject", slog.String("error", err.Error()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal_error","message":"An internal error occurred"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user stored by RequireAuth.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}
