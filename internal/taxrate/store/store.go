package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateTaxRate(ctx context.Context, r *taxrate.TaxRate) error {
	query := `
		INSERT INTO tax_rates (description, percentage, active)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := s.db.QueryRowxContext(ctx, query, r.Description, r.Percentage, r.Active).Scan(&r.ID); err != nil {
		return fmt.Errorf("creating tax rate: %w", err)
	}

	return nil
}

func (s *Store) GetTaxRate(ctx context.Context, id uuid.UUID) (*taxrate.TaxRate, error) {
	var r taxrate.TaxRate

	err := s.db.GetContext(ctx, &r, `SELECT id, description, percentage, active FROM tax_rates WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, taxrate.ErrNotFound
		}

		return nil, fmt.Errorf("getting tax rate: %w", err)
	}

	return &r, nil
}

func (s *Store) ListTaxRates(ctx context.Context, activeOnly bool) ([]*taxrate.TaxRate, error) {
	query := `SELECT id, description, percentage, active FROM tax_rates`
	if activeOnly {
		query += ` WHERE active`
	}

	query += ` ORDER BY percentage DESC, description`

	var rates []*taxrate.TaxRate
	if err := s.db.SelectContext(ctx, &rates, query); err != nil {
		return nil, fmt.Errorf("listing tax rates: %w", err)
	}

	return rates, nil
}

func (s *Store) UpdateTaxRate(ctx context.Context, r *taxrate.TaxRate) error {
	query := `
		UPDATE tax_rates
		SET description = $1, percentage = $2, active = $3
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, r.Description, r.Percentage, r.Active, r.ID)
	if err != nil {
		return fmt.Errorf("updating tax rate: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return taxrate.ErrNotFound
	}

	return nil
}
