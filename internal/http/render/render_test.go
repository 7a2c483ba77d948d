package render_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
)

func TestError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:       "not found",
			err:        apperr.NotFound("client"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"client not found"}`,
		},
		{
			name:       "conflict",
			err:        apperr.Conflict("login %q already exists", "ana"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unauthorized",
			err:        apperr.Unauthorized("invalid token"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "forbidden wrapped",
			err:        apperr.WithOp("invoice.Get", apperr.Forbidden("access denied")),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"invoice.Get: access denied"}`,
		},
		{
			name:       "validation",
			err:        apperr.Validation("quantity must be positive"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unclassified is hidden",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			render.Error(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

type loginBody struct {
	Login    string `json:"login" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

func TestDecode(t *testing.T) {
	type testCase struct {
		name    string
		body    string
		wantErr string
	}

	tests := []testCase{
		{name: "valid", body: `{"login":"ana","email":"ana@example.com"}`},
		{name: "malformed", body: `{"login":`, wantErr: "invalid request body"},
		{name: "unknown field", body: `{"login":"ana","extra":1}`, wantErr: "invalid request body"},
		{name: "missing required", body: `{"email":"ana@example.com"}`, wantErr: "login is required"},
		{name: "bad email", body: `{"login":"ana","email":"nope"}`, wantErr: "email must be a valid email"},
		{name: "negative", body: `{"login":"ana","quantity":-1}`, wantErr: "quantity must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst loginBody
			err := render.Decode(req, &dst)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "ana", dst.Login)

				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOwnerParam(t *testing.T) {
	actor := auth.Actor{UserID: uuid.New(), Role: auth.RoleUser}
	other := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	got, err := render.OwnerParam(req, actor)
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, got)

	req = httptest.NewRequest(http.MethodGet, "/clients?owner_id="+other.String(), nil)
	got, err = render.OwnerParam(req, actor)
	require.NoError(t, err)
	assert.Equal(t, other, got)

	req = httptest.NewRequest(http.MethodGet, "/clients?owner_id=nope", nil)
	_, err = render.OwnerParam(req, actor)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?active_only=true", nil)
	got, err := render.QueryBool(req, "active_only")
	require.NoError(t, err)
	assert.True(t, got)

	req = httptest.NewRequest(http.MethodGet, "/?active_only=maybe", nil)
	_, err = render.QueryBool(req, "active_only")
	assert.Error(t, err)
}

func TestBoolOr(t *testing.T) {
	assert.True(t, render.BoolOr(nil, true))
	assert.False(t, render.BoolOr(nil, false))
	assert.False(t, render.BoolOr(new(false), true))
	assert.True(t, render.BoolOr(new(true), false))
}
