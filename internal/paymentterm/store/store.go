package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const selectPaymentTermColumns = `id, owner_id, description, installments, period_days, active`

func (s *Store) CreatePaymentTerm(ctx context.Context, pt *paymentterm.PaymentTerm) error {
	query := `
		INSERT INTO payment_terms (owner_id, description, installments, period_days, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowxContext(ctx, query,
		pt.OwnerID,
		pt.Description,
		pt.Installments,
		pt.PeriodDays,
		pt.Active,
	).Scan(&pt.ID)
	if err != nil {
		return fmt.Errorf("creating payment term: %w", err)
	}

	return nil
}

func (s *Store) GetPaymentTerm(ctx context.Context, id uuid.UUID) (*paymentterm.PaymentTerm, error) {
	var pt paymentterm.PaymentTerm

	err := s.db.GetContext(ctx, &pt, `SELECT `+selectPaymentTermColumns+` FROM payment_terms WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, paymentterm.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment term: %w", err)
	}

	return &pt, nil
}

func (s *Store) ListPaymentTerms(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]*paymentterm.PaymentTerm, error) {
	query := `SELECT ` + selectPaymentTermColumns + ` FROM payment_terms WHERE owner_id = $1`
	if activeOnly {
		query += ` AND active`
	}

	query += ` ORDER BY installments, period_days, description`

	var terms []*paymentterm.PaymentTerm
	if err := s.db.SelectContext(ctx, &terms, query, ownerID); err != nil {
		return nil, fmt.Errorf("listing payment terms: %w", err)
	}

	return terms, nil
}

func (s *Store) UpdatePaymentTerm(ctx context.Context, pt *paymentterm.PaymentTerm) error {
	query := `
		UPDATE payment_terms
		SET description = $1, installments = $2, period_days = $3, active = $4
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query, pt.Description, pt.Installments, pt.PeriodDays, pt.Active, pt.ID)
	if err != nil {
		return fmt.Errorf("updating payment term: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return paymentterm.ErrNotFound
	}

	return nil
}

func (s *Store) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool

	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}

	return exists, nil
}
