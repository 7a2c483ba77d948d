package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
)

var (
	admin   = auth.Actor{UserID: uuid.New(), Role: auth.RoleAdmin}
	regular = auth.Actor{UserID: uuid.New(), Role: auth.RoleUser}
)

func hashed(t *testing.T, password string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(h)
}

func TestService_Create(t *testing.T) {
	valid := user.CreateParams{
		Login:    "jdoe",
		Password: "secret1",
		Name:     "John Doe",
		Email:    "jdoe@example.com",
	}

	type testCase struct {
		name      string
		actor     auth.Actor
		params    user.CreateParams
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			actor:  admin,
			params: valid,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().ExistsByLogin(gomock.Any(), "jdoe").Return(false, nil)
				m.EXPECT().ExistsByEmail(gomock.Any(), "jdoe@example.com").Return(false, nil)
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						assert.Equal(t, auth.RoleUser, u.Role)
						assert.True(t, u.Active)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
						u.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "NonAdminForbidden",
			actor:   regular,
			params:  valid,
			wantErr: apperr.ErrForbidden,
		},
		{
			name:    "Unauthenticated",
			actor:   auth.Actor{},
			params:  valid,
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:  "ShortPassword",
			actor: admin,
			params: user.CreateParams{
				Login: "jdoe", Password: "123", Name: "John", Email: "jdoe@example.com",
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name:  "BadEmail",
			actor: admin,
			params: user.CreateParams{
				Login: "jdoe", Password: "secret1", Name: "John", Email: "not-an-email",
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name:   "DuplicateLogin",
			actor:  admin,
			params: valid,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().ExistsByLogin(gomock.Any(), "jdoe").Return(true, nil)
			},
			wantErr: apperr.ErrConflict,
		},
		{
			name:   "DuplicateEmail",
			actor:  admin,
			params: valid,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().ExistsByLogin(gomock.Any(), "jdoe").Return(false, nil)
				m.EXPECT().ExistsByEmail(gomock.Any(), "jdoe@example.com").Return(true, nil)
			},
			wantErr: apperr.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := user.NewService(repo)
			got, err := svc.Create(context.Background(), tt.actor, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, "jdoe", got.Login)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			password: "secret1",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByLogin(gomock.Any(), "jdoe").Return(&user.User{
					ID: id, Login: "jdoe", PasswordHash: hashed(t, "secret1"), Role: auth.RoleUser, Active: true,
				}, nil)
				m.EXPECT().TouchLastAccess(gomock.Any(), id, gomock.Any()).Return(nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "nope",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByLogin(gomock.Any(), "jdoe").Return(&user.User{
					ID: id, PasswordHash: hashed(t, "secret1"), Active: true,
				}, nil)
			},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:     "UnknownLogin",
			password: "secret1",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByLogin(gomock.Any(), "jdoe").Return(nil, user.ErrNotFound)
			},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:     "Inactive",
			password: "secret1",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByLogin(gomock.Any(), "jdoe").Return(&user.User{
					ID: id, PasswordHash: hashed(t, "secret1"), Active: false,
				}, nil)
			},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:     "StoreError",
			password: "secret1",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByLogin(gomock.Any(), "jdoe").Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Authenticate(context.Background(), "jdoe", tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)

				if _, ok := apperr.KindOf(tt.wantErr); ok {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got.LastAccessAt)
			assert.WithinDuration(t, time.Now(), *got.LastAccessAt, time.Minute)
		})
	}
}

func TestService_ResolveActor(t *testing.T) {
	id := uuid.New()

	t.Run("Active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Role: auth.RoleAdmin, Active: true}, nil)

		actor, err := user.NewService(repo).ResolveActor(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, auth.Actor{UserID: id, Role: auth.RoleAdmin}, actor)
	})

	t.Run("Inactive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Role: auth.RoleAdmin, Active: false}, nil)

		_, err := user.NewService(repo).ResolveActor(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("Deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), id).Return(nil, user.ErrNotFound)

		_, err := user.NewService(repo).ResolveActor(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	role := auth.RoleAdmin
	badRole := auth.Role("ROOT")
	name := "Jane"

	t.Run("ChangesRoleAndName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Name: "John", Role: auth.RoleUser, Active: true}, nil)
		repo.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		got, err := user.NewService(repo).Update(context.Background(), admin, id, user.UpdateParams{Name: &name, Role: &role})
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.Name)
		assert.Equal(t, auth.RoleAdmin, got.Role)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Role: auth.RoleUser}, nil)

		_, err := user.NewService(repo).Update(context.Background(), admin, id, user.UpdateParams{Role: &badRole})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)

		_, err := user.NewService(repo).Update(context.Background(), regular, id, user.UpdateParams{Name: &name})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := user.NewMockRepository(ctrl)
	repo.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id, Active: true}, nil)
	repo.EXPECT().
		UpdateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.False(t, u.Active)
			return nil
		})

	require.NoError(t, user.NewService(repo).Delete(context.Background(), admin, id))
}

func TestService_Ensure(t *testing.T) {
	params := user.CreateParams{Login: "admin", Password: "changeme", Name: "Administrator", Email: "admin@example.com"}

	t.Run("Existing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUserByLogin(gomock.Any(), "admin").Return(&user.User{Login: "admin", Role: auth.RoleAdmin}, nil)

		got, created, err := user.NewService(repo).Ensure(context.Background(), params, auth.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "admin", got.Login)
	})

	t.Run("Created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUserByLogin(gomock.Any(), "admin").Return(nil, user.ErrNotFound)
		repo.EXPECT().ExistsByLogin(gomock.Any(), "admin").Return(false, nil)
		repo.EXPECT().ExistsByEmail(gomock.Any(), "admin@example.com").Return(false, nil)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)

		got, created, err := user.NewService(repo).Ensure(context.Background(), params, auth.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, auth.RoleAdmin, got.Role)
	})
}
