package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	authHandler "github.com/MrJamesThe3rd/facturaas/internal/http/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
)

func TestMiddleware(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	active := &user.User{ID: uuid.New(), Login: "ana", Role: auth.RoleAdmin, Active: true}
	inactive := &user.User{ID: uuid.New(), Login: "old", Role: auth.RoleUser, Active: false}

	tokenFor := func(t *testing.T, id uuid.UUID) string {
		t.Helper()

		token, err := tokens.Issue(id, "x")
		require.NoError(t, err)

		return token
	}

	type testCase struct {
		name       string
		header     func(t *testing.T) string
		setupMock  func(m *user.MockRepository)
		wantStatus int
		wantActor  auth.Actor
	}

	tests := []testCase{
		{
			name:   "ValidToken",
			header: func(t *testing.T) string { return "Bearer " + tokenFor(t, active.ID) },
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUser(gomock.Any(), active.ID).Return(active, nil)
			},
			wantStatus: http.StatusNoContent,
			wantActor:  auth.Actor{UserID: active.ID, Role: auth.RoleAdmin},
		},
		{
			name:       "MissingHeader",
			header:     func(t *testing.T) string { return "" },
			setupMock:  func(m *user.MockRepository) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongScheme",
			header:     func(t *testing.T) string { return "Basic abc" },
			setupMock:  func(m *user.MockRepository) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "ForgedToken",
			header:     func(t *testing.T) string { return "Bearer not-a-jwt" },
			setupMock:  func(m *user.MockRepository) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "InactiveUser",
			header: func(t *testing.T) string { return "Bearer " + tokenFor(t, inactive.ID) },
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUser(gomock.Any(), inactive.ID).Return(inactive, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "DeletedUser",
			header: func(t *testing.T) string { return "Bearer " + tokenFor(t, active.ID) },
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUser(gomock.Any(), active.ID).Return(nil, user.ErrNotFound)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			var got auth.Actor

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = auth.ActorFrom(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}

			rec := httptest.NewRecorder()
			authHandler.Middleware(tokens, user.NewService(repo))(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantActor, got)
		})
	}
}
