package taxrate

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
)

var hundred = decimal.NewFromInt(100)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=taxrate
type Repository interface {
	CreateTaxRate(ctx context.Context, r *TaxRate) error
	GetTaxRate(ctx context.Context, id uuid.UUID) (*TaxRate, error)
	ListTaxRates(ctx context.Context, activeOnly bool) ([]*TaxRate, error)
	UpdateTaxRate(ctx context.Context, r *TaxRate) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Description string
	Percentage  decimal.Decimal
	Active      bool
}

func (p Params) validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return apperr.Validation("description is required")
	}

	if p.Percentage.IsNegative() || p.Percentage.GreaterThan(hundred) {
		return apperr.Validation("percentage must be between 0 and 100")
	}

	if !p.Percentage.Equal(p.Percentage.Round(2)) {
		return apperr.Validation("percentage must have at most 2 decimals")
	}

	return nil
}

// List returns every tax rate. Administrators only.
func (s *Service) List(ctx context.Context, actor auth.Actor) ([]*TaxRate, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.repo.ListTaxRates(ctx, false)
}

// ListActive returns the rates selectable on new invoice lines.
func (s *Service) ListActive(ctx context.Context, actor auth.Actor) ([]*TaxRate, error) {
	if !actor.Authenticated() {
		return nil, apperr.Unauthorized("authentication required")
	}

	return s.repo.ListTaxRates(ctx, true)
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*TaxRate, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.repo.GetTaxRate(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, params Params) (*TaxRate, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	r := &TaxRate{
		Description: params.Description,
		Percentage:  params.Percentage,
		Active:      params.Active,
	}
	if err := s.repo.CreateTaxRate(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id uuid.UUID, params Params) (*TaxRate, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetTaxRate(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Description = params.Description
	r.Percentage = params.Percentage
	r.Active = params.Active

	if err := s.repo.UpdateTaxRate(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Delete deactivates the rate. Lines already referencing it are unaffected.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	r, err := s.repo.GetTaxRate(ctx, id)
	if err != nil {
		return err
	}

	r.Active = false

	return s.repo.UpdateTaxRate(ctx, r)
}

// Ensure creates the rate unless one with the same description already
// exists. It bypasses the admin gate and is meant for bootstrapping.
func (s *Service) Ensure(ctx context.Context, params Params) (*TaxRate, bool, error) {
	rates, err := s.repo.ListTaxRates(ctx, false)
	if err != nil {
		return nil, false, err
	}

	for _, r := range rates {
		if strings.EqualFold(r.Description, params.Description) {
			return r, false, nil
		}
	}

	if err := params.validate(); err != nil {
		return nil, false, err
	}

	r := &TaxRate{Description: params.Description, Percentage: params.Percentage, Active: params.Active}
	if err := s.repo.CreateTaxRate(ctx, r); err != nil {
		return nil, false, err
	}

	return r, true, nil
}
