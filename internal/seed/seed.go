// Package seed creates the accounts and catalogue entries a fresh database
// needs. Every step is idempotent.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
)

var defaultTaxRates = []taxrate.Params{
	{Description: "IVA general", Percentage: decimal.NewFromInt(21), Active: true},
	{Description: "IVA reducido", Percentage: decimal.NewFromInt(10), Active: true},
	{Description: "IVA superreducido", Percentage: decimal.NewFromInt(4), Active: true},
	{Description: "Sin IVA", Percentage: decimal.Zero, Active: true},
}

var demoPaymentTerms = []paymentterm.CreateParams{
	{Description: "Contado", Installments: 1, PeriodDays: 0, Active: true},
	{Description: "Transferencia a 30 días", Installments: 1, PeriodDays: 30, Active: true},
	{Description: "Transferencias a 30-60-90 días", Installments: 3, PeriodDays: 30, Active: true},
}

type Seeder struct {
	users    *user.Service
	taxRates *taxrate.Service
	terms    *paymentterm.Service
}

func New(users *user.Service, taxRates *taxrate.Service, terms *paymentterm.Service) *Seeder {
	return &Seeder{
		users:    users,
		taxRates: taxRates,
		terms:    terms,
	}
}

type Options struct {
	Admin user.CreateParams
	// Demo, when set, is created as a regular user owning sample payment terms.
	Demo *user.CreateParams
}

// Run seeds the database. Entries that already exist are left untouched.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	admin, created, err := s.users.Ensure(ctx, opts.Admin, auth.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	logEnsured("user", admin.Login, created)

	for _, params := range defaultTaxRates {
		rate, created, err := s.taxRates.Ensure(ctx, params)
		if err != nil {
			return fmt.Errorf("seeding tax rate %q: %w", params.Description, err)
		}

		logEnsured("tax rate", rate.Description, created)
	}

	if opts.Demo == nil {
		return nil
	}

	demo, created, err := s.users.Ensure(ctx, *opts.Demo, auth.RoleUser)
	if err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}

	logEnsured("user", demo.Login, created)

	for _, params := range demoPaymentTerms {
		params.OwnerID = demo.ID

		pt, created, err := s.terms.Ensure(ctx, params)
		if err != nil {
			return fmt.Errorf("seeding payment term %q: %w", params.Description, err)
		}

		logEnsured("payment term", pt.Description, created)
	}

	return nil
}

func logEnsured(kind, name string, created bool) {
	if created {
		slog.Info("seeded", "kind", kind, "name", name)
		return
	}

	slog.Debug("already present", "kind", kind, "name", name)
}
