package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/facturaas/internal/database"
	"github.com/MrJamesThe3rd/facturaas/internal/invoice"
	"github.com/MrJamesThe3rd/facturaas/internal/invoice/store"
)

// openDB connects to the database named by FACTURAAS_TEST_DATABASE_URL and
// migrates it. Tests are skipped when the variable is unset.
func openDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv("FACTURAAS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FACTURAAS_TEST_DATABASE_URL not set")
	}

	db, err := database.New(url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))

	return db
}

// seedInvoice inserts an owner, a client and a payment term and returns an
// unsaved invoice referencing them.
func seedInvoice(t *testing.T, db *sqlx.DB) *invoice.Invoice {
	t.Helper()

	ctx := context.Background()
	tag := uuid.NewString()

	var ownerID, clientID, termID uuid.UUID

	require.NoError(t, db.QueryRowxContext(ctx,
		`INSERT INTO users (login, password_hash, name, email) VALUES ($1, 'x', 'Owner', $2) RETURNING id`,
		tag, tag+"@example.com",
	).Scan(&ownerID))

	require.NoError(t, db.QueryRowxContext(ctx,
		`INSERT INTO clients (owner_id, name, tax_id) VALUES ($1, 'Acme SL', 'B1') RETURNING id`,
		ownerID,
	).Scan(&clientID))

	require.NoError(t, db.QueryRowxContext(ctx,
		`INSERT INTO payment_terms (owner_id, description, installments, period_days) VALUES ($1, 'Contado', 1, 0) RETURNING id`,
		ownerID,
	).Scan(&termID))

	return &invoice.Invoice{
		Number:        tag,
		FiscalYear:    2025,
		OwnerID:       ownerID,
		ClientID:      clientID,
		IssueDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PaymentTermID: termID,
		State:         invoice.StateIssued,
		NetTotal:      decimal.RequireFromString("100.00"),
		TaxTotal:      decimal.Zero,
		GrossTotal:    decimal.RequireFromString("100.00"),
	}
}

func TestNextNumber(t *testing.T) {
	db := openDB(t)
	s := store.New(db)
	ctx := context.Background()

	// A year no real invoice uses, so reruns only ever see this test's rows.
	year := 9000 + int(time.Now().UnixNano()%999)

	next := func(commit bool) int {
		tx, err := s.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback()

		n, err := tx.NextNumber(ctx, year)
		require.NoError(t, err)

		if commit {
			require.NoError(t, tx.Commit())
		}

		return n
	}

	first := next(true)
	rolledBack := next(false)
	second := next(true)

	assert.Equal(t, first+1, rolledBack)
	assert.Equal(t, first+1, second, "rolled back increment must not consume a number")
}

func TestReplacePayments(t *testing.T) {
	db := openDB(t)
	s := store.New(db)
	ctx := context.Background()
	inv := seedInvoice(t, db)

	due := func(day int) time.Time { return time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC) }

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	require.NoError(t, tx.CreateInvoice(ctx, inv))

	require.NoError(t, tx.ReplacePayments(ctx, inv.ID, []invoice.Payment{
		{Number: 1, DueDate: due(1), Amount: decimal.RequireFromString("33.33"), State: invoice.PaymentPending},
		{Number: 2, DueDate: due(2), Amount: decimal.RequireFromString("33.33"), State: invoice.PaymentPending},
		{Number: 3, DueDate: due(3), Amount: decimal.RequireFromString("33.34"), State: invoice.PaymentPending},
	}))

	replacement := []invoice.Payment{
		{Number: 1, DueDate: due(1), Amount: decimal.RequireFromString("50.00"), State: invoice.PaymentPending},
		{Number: 2, DueDate: due(31), Amount: decimal.RequireFromString("50.00"), State: invoice.PaymentPending},
	}
	require.NoError(t, tx.ReplacePayments(ctx, inv.ID, replacement))
	require.NoError(t, tx.Commit())

	for _, p := range replacement {
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, inv.ID, p.InvoiceID)
	}

	got, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 2)

	assert.Equal(t, 1, got.Payments[0].Number)
	assert.Equal(t, 2, got.Payments[1].Number)
	assert.True(t, decimal.RequireFromString("50.00").Equal(got.Payments[1].Amount))
	assert.Equal(t, "2025-01-31", got.Payments[1].DueDate.Format(time.DateOnly))
}
