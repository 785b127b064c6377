package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/sakif/reconnect/internal/apperror"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    string
		wantMessage string
		wantField   string
	}{
		{"bad request", &badRequestError{msg: "Request body must be valid JSON"},
			http.StatusBadRequest, "bad_request", "Request body must be valid JSON", ""},
		{"validation", apperror.ValidationFailed("title", "title is required"),
			http.StatusUnprocessableEntity, "validation_error", "title is required", "title"},
		{"precondition", apperror.PreconditionFailed("Onboarding step 1 must be completed first"),
			http.StatusBadRequest, "precondition_failed", "Onboarding step 1 must be completed first", ""},
		{"conflict", apperror.Conflict("email", "Email already registered"),
			http.StatusBadRequest, "conflict", "Email already registered", "email"},
		{"unauthorized", apperror.Unauthorized("Incorrect email or password"),
			http.StatusUnauthorized, "unauthorized", "Incorrect email or password", ""},
		{"forbidden", apperror.Forbidden("nope"),
			http.StatusForbidden, "forbidden", "nope", ""},
		{"wrapped not found", fmt.Errorf("service/mission: %w", apperror.NotFoundMessage("미션을 찾을 수 없습니다")),
			http.StatusNotFound, "not_found", "미션을 찾을 수 없습니다", ""},
		{"plain error", errors.New("pq: connection refused"),
			http.StatusInternalServerError, "internal_error", "An internal error occurred", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			rec := httptest.NewRecorder()

			writeError(rec, logger, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			got := gjson.Parse(rec.Body.String())
			assert.Equal(t, tt.wantKind, got.Get("error").String())
			assert.Equal(t, tt.wantMessage, got.Get("message").String())
			assert.Equal(t, tt.wantField, got.Get("field").String())
			assert.Equal(t, tt.wantField != "", got.Get("field").Exists())

			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Contains(t, logs.String(), "connection refused")
				assert.NotContains(t, rec.Body.String(), "connection refused")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func decode(t *testing.T, body string, dst any) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return decodeJSON(httptest.NewRecorder(), req, dst)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		dst       any
		wantBad   bool
		wantField string
		wantMsg   string
	}{
		{name: "valid signup", dst: &signupRequest{},
			body: `{"email":"mina@example.com","username":"mina","password":"password123"}`},
		{name: "not json", body: `email=x`, dst: &signupRequest{}, wantBad: true},
		{name: "truncated", body: `{"email":"x"`, dst: &signupRequest{}, wantBad: true},
		{name: "empty body", body: ``, dst: &signupRequest{}, wantBad: true},
		{name: "wrong type", body: `{"email":42}`, dst: &signupRequest{}, wantField: "email"},
		{name: "missing email", dst: &signupRequest{},
			body: `{"username":"mina","password":"password123"}`, wantField: "email", wantMsg: "email is required"},
		{name: "bad email", dst: &signupRequest{},
			body:      `{"email":"mina","username":"mina","password":"password123"}`,
			wantField: "email", wantMsg: "email must be a valid email address"},
		{name: "short password", dst: &signupRequest{},
			body:      `{"email":"mina@example.com","username":"mina","password":"short"}`,
			wantField: "password", wantMsg: "password must be at least 8 characters"},
		{name: "bad tendency", dst: &step1Request{},
			body: `{"breakup_date":"2024-05-01","relationship_years":1,"relationship_months":0,` +
				`"my_tendency":"calm","partner_tendency":"emotional"}`,
			wantField: "my_tendency", wantMsg: "my_tendency must be analytical or emotional"},
		{name: "bad date", dst: &step1Request{},
			body: `{"breakup_date":"2024-13-01","relationship_years":1,"relationship_months":0,` +
				`"my_tendency":"emotional","partner_tendency":"emotional"}`,
			wantField: "breakup_date", wantMsg: "breakup_date must be a date in YYYY-MM-DD format"},
		{name: "negative months", dst: &step1Request{},
			body: `{"breakup_date":"2024-05-01","relationship_years":1,"relationship_months":-2,` +
				`"my_tendency":"emotional","partner_tendency":"emotional"}`,
			wantField: "relationship_months", wantMsg: "relationship_months must be greater than or equal to 0"},
		{name: "unknown strategy", dst: &step3Request{},
			body: `{"strategy_type":"재회 희망"}`, wantField: "strategy_type",
			wantMsg: "strategy_type must be analytical, balanced or emotional"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decode(t, tt.body, tt.dst)

			switch {
			case tt.wantBad:
				var bad *badRequestError
				assert.ErrorAs(t, err, &bad)
			case tt.wantField != "":
				var appErr *apperror.AppError
				require.ErrorAs(t, err, &appErr)
				assert.ErrorIs(t, err, apperror.ErrValidation)
				assert.Equal(t, tt.wantField, appErr.Field)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, appErr.Message)
				}
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeJSON_MaxLengthCountsRunes(t *testing.T) {
	var req generateRequest
	purpose := strings.Repeat("가", 300)
	require.NoError(t, decode(t, `{"purpose":"`+purpose+`","tone_style":"logical"}`, &req))

	err := decode(t, `{"purpose":"`+purpose+`가","tone_style":"logical"}`, &generateRequest{})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "purpose", appErr.Field)
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	big := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	err := decode(t, big, &missionCreateRequest{})
	var bad *badRequestError
	assert.ErrorAs(t, err, &bad)
}

func TestHandleHealth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"up", nil, http.StatusOK, "ok"},
		{"down", errors.New("database is locked"), http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRootHandler(pingFunc(func() error { return tt.pingErr }), logger)
			rec := httptest.NewRecorder()
			h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, gjson.Get(rec.Body.String(), "status").String())
		})
	}
}

type pingFunc func() error

func (f pingFunc) Ping(context.Context) error { return f() }
