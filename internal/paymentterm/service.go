package paymentterm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=paymentterm
type Repository interface {
	CreatePaymentTerm(ctx context.Context, pt *PaymentTerm) error
	GetPaymentTerm(ctx context.Context, id uuid.UUID) (*PaymentTerm, error)
	ListPaymentTerms(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]*PaymentTerm, error)
	UpdatePaymentTerm(ctx context.Context, pt *PaymentTerm) error
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID      uuid.UUID
	Description  string
	Installments int
	PeriodDays   int
	Active       bool
}

// UpdateParams holds the mutable fields. The owner never changes.
type UpdateParams struct {
	Description  string
	Installments int
	PeriodDays   int
	Active       bool
}

func validate(description string, installments, periodDays int) error {
	switch {
	case strings.TrimSpace(description) == "":
		return apperr.Validation("description is required")
	case installments < 1:
		return apperr.Validation("installments must be at least 1")
	case periodDays < 0:
		return apperr.Validation("period days must not be negative")
	}

	return nil
}

func (s *Service) ownerOf(id uuid.UUID) auth.OwnerResolver {
	return func(ctx context.Context) (uuid.UUID, error) {
		pt, err := s.repo.GetPaymentTerm(ctx, id)
		if err != nil {
			return uuid.Nil, err
		}

		return pt.OwnerID, nil
	}
}

func (s *Service) List(ctx context.Context, actor auth.Actor, ownerID uuid.UUID, activeOnly bool) ([]*PaymentTerm, error) {
	if err := auth.Authorize(actor, ownerID); err != nil {
		return nil, err
	}

	return s.repo.ListPaymentTerms(ctx, ownerID, activeOnly)
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*PaymentTerm, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.ownerOf(id)); err != nil {
		return nil, err
	}

	return s.repo.GetPaymentTerm(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, params CreateParams) (*PaymentTerm, error) {
	if err := auth.Authorize(actor, params.OwnerID); err != nil {
		return nil, err
	}

	if err := validate(params.Description, params.Installments, params.PeriodDays); err != nil {
		return nil, err
	}

	exists, err := s.repo.UserExists(ctx, params.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("checking owner: %w", err)
	}

	if !exists {
		return nil, apperr.NotFound("owner")
	}

	pt := &PaymentTerm{
		OwnerID:      params.OwnerID,
		Description:  params.Description,
		Installments: params.Installments,
		PeriodDays:   params.PeriodDays,
		Active:       params.Active,
	}
	if err := s.repo.CreatePaymentTerm(ctx, pt); err != nil {
		return nil, err
	}

	return pt, nil
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id uuid.UUID, params UpdateParams) (*PaymentTerm, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.ownerOf(id)); err != nil {
		return nil, err
	}

	if err := validate(params.Description, params.Installments, params.PeriodDays); err != nil {
		return nil, err
	}

	pt, err := s.repo.GetPaymentTerm(ctx, id)
	if err != nil {
		return nil, err
	}

	pt.Description = params.Description
	pt.Installments = params.Installments
	pt.PeriodDays = params.PeriodDays
	pt.Active = params.Active

	if err := s.repo.UpdatePaymentTerm(ctx, pt); err != nil {
		return nil, err
	}

	return pt, nil
}

// Delete deactivates the term. Invoices already using it keep it.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if err := auth.AuthorizeOwned(ctx, actor, s.ownerOf(id)); err != nil {
		return err
	}

	pt, err := s.repo.GetPaymentTerm(ctx, id)
	if err != nil {
		return err
	}

	pt.Active = false

	return s.repo.UpdatePaymentTerm(ctx, pt)
}

// Ensure creates the term for ownerID unless one with the same description
// exists. It bypasses the gate and is meant for bootstrapping.
func (s *Service) Ensure(ctx context.Context, params CreateParams) (*PaymentTerm, bool, error) {
	terms, err := s.repo.ListPaymentTerms(ctx, params.OwnerID, false)
	if err != nil {
		return nil, false, err
	}

	for _, pt := range terms {
		if strings.EqualFold(pt.Description, params.Description) {
			return pt, false, nil
		}
	}

	if err := validate(params.Description, params.Installments, params.PeriodDays); err != nil {
		return nil, false, err
	}

	pt := &PaymentTerm{
		OwnerID:      params.OwnerID,
		Description:  params.Description,
		Installments: params.Installments,
		PeriodDays:   params.PeriodDays,
		Active:       params.Active,
	}
	if err := s.repo.CreatePaymentTerm(ctx, pt); err != nil {
		return nil, false, err
	}

	return pt, true, nil
}
