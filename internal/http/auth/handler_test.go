package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	authHandler "github.com/MrJamesThe3rd/facturaas/internal/http/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
)

func hashed(t *testing.T, password string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(h)
}

func TestHandler_Login(t *testing.T) {
	stored := &user.User{
		ID:           uuid.New(),
		Login:        "ana",
		PasswordHash: hashed(t, "secret1"),
		Name:         "Ana",
		Email:        "ana@example.com",
		Role:         auth.RoleUser,
		Active:       true,
	}

	type testCase struct {
		name       string
		body       string
		setupMock  func(m *user.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"login":"ana","password":"secret1"}`,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByLogin(gomock.Any(), "ana").Return(stored, nil)
				m.EXPECT().TouchLastAccess(gomock.Any(), stored.ID, gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "WrongPassword",
			body: `{"login":"ana","password":"nope"}`,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByLogin(gomock.Any(), "ana").Return(stored, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "MissingPassword",
			body:       `{"login":"ana"}`,
			setupMock:  func(m *user.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			tokens := auth.NewTokens("test-secret", time.Hour)
			h := authHandler.NewHandler(user.NewService(repo), tokens)

			router := chi.NewRouter()
			router.Route("/auth", h.Routes)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				Token     string `json:"token"`
				TokenType string `json:"token_type"`
				ExpiresIn int64  `json:"expires_in"`
				User      struct {
					ID    uuid.UUID `json:"id"`
					Login string    `json:"login"`
				} `json:"user"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

			assert.Equal(t, "Bearer", resp.TokenType)
			assert.Equal(t, int64(3600), resp.ExpiresIn)
			assert.Equal(t, stored.ID, resp.User.ID)

			subject, err := tokens.Verify(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, stored.ID, subject)
		})
	}
}
