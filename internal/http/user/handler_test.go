package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	userHandler "github.com/MrJamesThe3rd/facturaas/internal/http/user"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
)

var (
	admin   = auth.Actor{UserID: uuid.New(), Role: auth.RoleAdmin}
	regular = auth.Actor{UserID: uuid.New(), Role: auth.RoleUser}
)

func newServer(t *testing.T, actor auth.Actor, setup func(m *user.MockRepository)) *httptest.Server {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := user.NewMockRepository(ctrl)
	setup(repo)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	})
	router.Route("/users", userHandler.NewHandler(user.NewService(repo)).Routes)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		actor      auth.Actor
		body       string
		setupMock  func(m *user.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:  "Created",
			actor: admin,
			body:  `{"login":"ana","password":"secret1","name":"Ana","email":"ana@example.com"}`,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().ExistsByLogin(gomock.Any(), "ana").Return(false, nil)
				m.EXPECT().ExistsByEmail(gomock.Any(), "ana@example.com").Return(false, nil)
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						u.ID = uuid.New()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:  "DuplicateLogin",
			actor: admin,
			body:  `{"login":"ana","password":"secret1","name":"Ana","email":"ana@example.com"}`,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().ExistsByLogin(gomock.Any(), "ana").Return(true, nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "NotAdmin",
			actor:      regular,
			body:       `{"login":"ana","password":"secret1","name":"Ana","email":"ana@example.com"}`,
			setupMock:  func(m *user.MockRepository) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "InvalidEmail",
			actor:      admin,
			body:       `{"login":"ana","password":"secret1","name":"Ana","email":"ana"}`,
			setupMock:  func(m *user.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.actor, tt.setupMock)

			resp := do(t, http.MethodPost, srv.URL+"/users", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != http.StatusCreated {
				return
			}

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "USER", body["role"])
			assert.NotContains(t, body, "password_hash")
		})
	}
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()

	t.Run("Found", func(t *testing.T) {
		srv := newServer(t, admin, func(m *user.MockRepository) {
			m.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Login: "ana", Role: auth.RoleUser}, nil)
		})

		resp := do(t, http.MethodGet, srv.URL+"/users/"+id.String(), "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := newServer(t, admin, func(m *user.MockRepository) {
			m.EXPECT().GetUser(gomock.Any(), id).Return(nil, user.ErrNotFound)
		})

		resp := do(t, http.MethodGet, srv.URL+"/users/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("InvalidID", func(t *testing.T) {
		srv := newServer(t, admin, func(m *user.MockRepository) {})

		resp := do(t, http.MethodGet, srv.URL+"/users/nope", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_Update(t *testing.T) {
	id := uuid.New()

	t.Run("InvalidRole", func(t *testing.T) {
		srv := newServer(t, admin, func(m *user.MockRepository) {})

		resp := do(t, http.MethodPut, srv.URL+"/users/"+id.String(), `{"role":"ROOT"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Promote", func(t *testing.T) {
		srv := newServer(t, admin, func(m *user.MockRepository) {
			m.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Role: auth.RoleUser, Active: true}, nil)
			m.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)
		})

		resp := do(t, http.MethodPut, srv.URL+"/users/"+id.String(), `{"role":"ADMIN"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ADMIN", body["role"])
	})
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()

	srv := newServer(t, admin, func(m *user.MockRepository) {
		m.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Active: true}, nil)
		m.EXPECT().
			UpdateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.False(t, u.Active)
				return nil
			})
	})

	resp := do(t, http.MethodDelete, srv.URL+"/users/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
