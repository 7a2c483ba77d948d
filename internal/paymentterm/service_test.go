package paymentterm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
)

func TestService_Create(t *testing.T) {
	owner := uuid.New()
	self := auth.Actor{UserID: owner, Role: auth.RoleUser}

	type testCase struct {
		name      string
		actor     auth.Actor
		params    paymentterm.CreateParams
		setupMock func(m *paymentterm.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			actor:  self,
			params: paymentterm.CreateParams{OwnerID: owner, Description: "30-60-90", Installments: 3, PeriodDays: 30, Active: true},
			setupMock: func(m *paymentterm.MockRepository) {
				m.EXPECT().UserExists(gomock.Any(), owner).Return(true, nil)
				m.EXPECT().CreatePaymentTerm(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "ZeroInstallments",
			actor:   self,
			params:  paymentterm.CreateParams{OwnerID: owner, Description: "none", Installments: 0},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "NegativePeriod",
			actor:   self,
			params:  paymentterm.CreateParams{OwnerID: owner, Description: "bad", Installments: 2, PeriodDays: -1},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "ForeignOwner",
			actor:   auth.Actor{UserID: uuid.New(), Role: auth.RoleUser},
			params:  paymentterm.CreateParams{OwnerID: owner, Description: "cash", Installments: 1},
			wantErr: apperr.ErrForbidden,
		},
		{
			name:   "UnknownOwner",
			actor:  auth.Actor{UserID: uuid.New(), Role: auth.RoleAdmin},
			params: paymentterm.CreateParams{OwnerID: owner, Description: "cash", Installments: 1},
			setupMock: func(m *paymentterm.MockRepository) {
				m.EXPECT().UserExists(gomock.Any(), owner).Return(false, nil)
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := paymentterm.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := paymentterm.NewService(repo).Create(context.Background(), tt.actor, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner, got.OwnerID)
			assert.Equal(t, 3, got.Installments)
		})
	}
}

func TestService_Get(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	term := &paymentterm.PaymentTerm{ID: id, OwnerID: owner, Installments: 1}

	t.Run("Owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := paymentterm.NewMockRepository(ctrl)
		repo.EXPECT().GetPaymentTerm(gomock.Any(), id).Return(term, nil).Times(2)

		got, err := paymentterm.NewService(repo).Get(context.Background(), auth.Actor{UserID: owner, Role: auth.RoleUser}, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("Foreign", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := paymentterm.NewMockRepository(ctrl)
		repo.EXPECT().GetPaymentTerm(gomock.Any(), id).Return(term, nil)

		_, err := paymentterm.NewService(repo).Get(context.Background(), auth.Actor{UserID: uuid.New(), Role: auth.RoleUser}, id)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("MissingForUser", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := paymentterm.NewMockRepository(ctrl)
		repo.EXPECT().GetPaymentTerm(gomock.Any(), id).Return(nil, paymentterm.ErrNotFound)

		_, err := paymentterm.NewService(repo).Get(context.Background(), auth.Actor{UserID: owner, Role: auth.RoleUser}, id)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("MissingForAdmin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := paymentterm.NewMockRepository(ctrl)
		repo.EXPECT().GetPaymentTerm(gomock.Any(), id).Return(nil, paymentterm.ErrNotFound)

		_, err := paymentterm.NewService(repo).Get(context.Background(), auth.Actor{UserID: uuid.New(), Role: auth.RoleAdmin}, id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	owner := uuid.New()

	ctrl := gomock.NewController(t)
	repo := paymentterm.NewMockRepository(ctrl)
	repo.EXPECT().ListPaymentTerms(gomock.Any(), owner, true).Return([]*paymentterm.PaymentTerm{{OwnerID: owner}}, nil)

	svc := paymentterm.NewService(repo)

	got, err := svc.List(context.Background(), auth.Actor{UserID: owner, Role: auth.RoleUser}, owner, true)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.List(context.Background(), auth.Actor{UserID: uuid.New(), Role: auth.RoleUser}, owner, true)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestService_Update(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	repo := paymentterm.NewMockRepository(ctrl)
	repo.EXPECT().GetPaymentTerm(gomock.Any(), id).Return(&paymentterm.PaymentTerm{ID: id, OwnerID: owner, Installments: 1}, nil).Times(2)
	repo.EXPECT().UpdatePaymentTerm(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	_, err := paymentterm.NewService(repo).Update(context.Background(), auth.Actor{UserID: owner, Role: auth.RoleUser}, id,
		paymentterm.UpdateParams{Description: "60 days", Installments: 1, PeriodDays: 60})
	assert.EqualError(t, err, "db error")
}
