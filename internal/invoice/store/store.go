package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/client"
	clientStore "github.com/MrJamesThe3rd/facturaas/internal/client/store"
	"github.com/MrJamesThe3rd/facturaas/internal/database"
	"github.com/MrJamesThe3rd/facturaas/internal/invoice"
	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
	termStore "github.com/MrJamesThe3rd/facturaas/internal/paymentterm/store"
	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
	rateStore "github.com/MrJamesThe3rd/facturaas/internal/taxrate/store"
)

type Store struct {
	db      *sqlx.DB
	clients *clientStore.Store
	terms   *termStore.Store
	rates   *rateStore.Store
}

func New(db *sqlx.DB) *Store {
	return &Store{
		db:      db,
		clients: clientStore.New(db),
		terms:   termStore.New(db),
		rates:   rateStore.New(db),
	}
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

const selectInvoice = `
	SELECT i.id, i.number, i.fiscal_year, i.owner_id, i.client_id, i.issue_date,
		i.payment_term_id, i.state, i.comments, i.net_total, i.tax_total, i.gross_total,
		i.created_at, i.updated_at,
		c.name AS client_name, c.tax_id AS client_tax_id,
		pt.description AS payment_term_description
	FROM invoices i
	JOIN clients c ON c.id = i.client_id
	JOIN payment_terms pt ON pt.id = i.payment_term_id
`

const selectLines = `
	SELECT l.id, l.invoice_id, l.number, l.concept, l.quantity, l.unit_price,
		l.discount_percentage, l.tax_rate_id, tr.percentage AS tax_percentage,
		tr.description AS tax_description, l.total
	FROM invoice_lines l
	JOIN tax_rates tr ON tr.id = l.tax_rate_id
`

const selectPayments = `
	SELECT p.id, p.invoice_id, p.number, p.due_date, p.amount, p.state, p.paid_at,
		i.number AS invoice_number, i.owner_id, i.client_id,
		c.name AS client_name, c.tax_id AS client_tax_id
	FROM payments p
	JOIN invoices i ON i.id = p.invoice_id
	JOIN clients c ON c.id = i.client_id
`

func getInvoice(ctx context.Context, q queryer, query string, id uuid.UUID) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	if err := sqlx.GetContext(ctx, q, &inv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return &inv, nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	inv, err := getInvoice(ctx, s.db, selectInvoice+` WHERE i.id = $1`, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.SelectContext(ctx, &inv.Lines, selectLines+` WHERE l.invoice_id = $1 ORDER BY l.number`, id); err != nil {
		return nil, fmt.Errorf("getting invoice lines: %w", err)
	}

	if err := s.db.SelectContext(ctx, &inv.Payments, selectPayments+` WHERE p.invoice_id = $1 ORDER BY p.number`, id); err != nil {
		return nil, fmt.Errorf("getting invoice payments: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := selectInvoice + ` WHERE i.owner_id = $1`
	args := []any{filter.OwnerID}

	if filter.ClientID != nil {
		query += ` AND i.client_id = $2`

		args = append(args, *filter.ClientID)
	}

	query += ` ORDER BY i.issue_date DESC, i.number DESC`

	var invoices []*invoice.Invoice
	if err := s.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	if err := s.attachLines(ctx, invoices); err != nil {
		return nil, err
	}

	return invoices, nil
}

// attachLines loads the lines of every invoice with a single query.
func (s *Store) attachLines(ctx context.Context, invoices []*invoice.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(invoices))
	byID := make(map[uuid.UUID]*invoice.Invoice, len(invoices))

	for i, inv := range invoices {
		ids[i] = inv.ID
		byID[inv.ID] = inv
	}

	query, args, err := sqlx.In(selectLines+` WHERE l.invoice_id IN (?) ORDER BY l.invoice_id, l.number`, ids)
	if err != nil {
		return fmt.Errorf("building line query: %w", err)
	}

	var lines []invoice.LineItem
	if err := s.db.SelectContext(ctx, &lines, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("listing invoice lines: %w", err)
	}

	for _, l := range lines {
		inv := byID[l.InvoiceID]
		inv.Lines = append(inv.Lines, l)
	}

	return nil
}

func (s *Store) InvoiceOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID

	if err := s.db.GetContext(ctx, &owner, `SELECT owner_id FROM invoices WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, invoice.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("getting invoice owner: %w", err)
	}

	return owner, nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*invoice.Payment, error) {
	var p invoice.Payment

	if err := s.db.GetContext(ctx, &p, selectPayments+` WHERE p.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrPaymentNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return &p, nil
}

func (s *Store) ListPayments(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Payment, error) {
	query := selectPayments + ` WHERE i.owner_id = $1`
	args := []any{filter.OwnerID}

	if filter.ClientID != nil {
		query += ` AND i.client_id = $2`

		args = append(args, *filter.ClientID)
	}

	query += ` ORDER BY p.due_date, i.number, p.number`

	var payments []*invoice.Payment
	if err := s.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	return payments, nil
}

func (s *Store) UpdatePayment(ctx context.Context, p *invoice.Payment) error {
	res, err := s.db.ExecContext(ctx, `UPDATE payments SET state = $1, paid_at = $2 WHERE id = $3`, p.State, p.PaidAt, p.ID)
	if err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return invoice.ErrPaymentNotFound
	}

	return nil
}

func (s *Store) PaymentOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query := `
		SELECT i.owner_id
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE p.id = $1
	`

	var owner uuid.UUID
	if err := s.db.GetContext(ctx, &owner, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, invoice.ErrPaymentNotFound
		}

		return uuid.Nil, fmt.Errorf("getting payment owner: %w", err)
	}

	return owner, nil
}

func (s *Store) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.clients.UserExists(ctx, id)
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return s.clients.GetClient(ctx, id)
}

func (s *Store) GetPaymentTerm(ctx context.Context, id uuid.UUID) (*paymentterm.PaymentTerm, error) {
	return s.terms.GetPaymentTerm(ctx, id)
}

func (s *Store) GetTaxRate(ctx context.Context, id uuid.UUID) (*taxrate.TaxRate, error) {
	return s.rates.GetTaxRate(ctx, id)
}

type invoiceTx struct {
	tx *sqlx.Tx
}

func (s *Store) BeginTx(ctx context.Context) (invoice.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning invoice tx: %w", err)
	}

	return &invoiceTx{tx: tx}, nil
}

func (itx *invoiceTx) Commit() error { return itx.tx.Commit() }

// Rollback is a no-op once the transaction has been committed.
func (itx *invoiceTx) Rollback() error {
	if err := itx.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

// LockInvoice reads the invoice and holds its row lock until the transaction
// ends.
func (itx *invoiceTx) LockInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	return getInvoice(ctx, itx.tx, selectInvoice+` WHERE i.id = $1 FOR UPDATE OF i`, id)
}

// NextNumber increments the counter of fiscalYear and returns the new value.
// The counter row stays locked until the transaction ends, so concurrent
// creations in the same year are serialised.
func (itx *invoiceTx) NextNumber(ctx context.Context, fiscalYear int) (int, error) {
	query := `
		INSERT INTO invoice_counters (fiscal_year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (fiscal_year) DO UPDATE SET last_value = invoice_counters.last_value + 1
		RETURNING last_value
	`

	var next int
	if err := itx.tx.QueryRowxContext(ctx, query, fiscalYear).Scan(&next); err != nil {
		return 0, fmt.Errorf("incrementing invoice counter: %w", err)
	}

	return next, nil
}

func (itx *invoiceTx) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (number, fiscal_year, owner_id, client_id, issue_date, payment_term_id,
			state, comments, net_total, tax_total, gross_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := itx.tx.QueryRowxContext(ctx, query,
		inv.Number,
		inv.FiscalYear,
		inv.OwnerID,
		inv.ClientID,
		inv.IssueDate,
		inv.PaymentTermID,
		inv.State,
		inv.Comments,
		inv.NetTotal,
		inv.TaxTotal,
		inv.GrossTotal,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.Conflict("invoice number %s already exists", inv.Number)
		}

		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (itx *invoiceTx) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET issue_date = $1, payment_term_id = $2, state = $3, comments = $4,
			net_total = $5, tax_total = $6, gross_total = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := itx.tx.QueryRowxContext(ctx, query,
		inv.IssueDate,
		inv.PaymentTermID,
		inv.State,
		inv.Comments,
		inv.NetTotal,
		inv.TaxTotal,
		inv.GrossTotal,
		inv.ID,
	).Scan(&inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invoice.ErrNotFound
		}

		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

// ReplaceLines deletes the current lines of the invoice and inserts lines,
// filling in their IDs.
func (itx *invoiceTx) ReplaceLines(ctx context.Context, invoiceID uuid.UUID, lines []invoice.LineItem) error {
	if _, err := itx.tx.ExecContext(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("deleting invoice lines: %w", err)
	}

	query := `
		INSERT INTO invoice_lines (invoice_id, number, concept, quantity, unit_price, discount_percentage, tax_rate_id, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	for i := range lines {
		l := &lines[i]
		l.InvoiceID = invoiceID

		err := itx.tx.QueryRowxContext(ctx, query,
			l.InvoiceID,
			l.Number,
			l.Concept,
			l.Quantity,
			l.UnitPrice,
			l.DiscountPercentage,
			l.TaxRateID,
			l.Total,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("inserting invoice line %d: %w", l.Number, err)
		}
	}

	return nil
}

// ReplacePayments deletes the installments of the invoice and inserts
// payments, filling in their IDs.
func (itx *invoiceTx) ReplacePayments(ctx context.Context, invoiceID uuid.UUID, payments []invoice.Payment) error {
	if _, err := itx.tx.ExecContext(ctx, `DELETE FROM payments WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("deleting payments: %w", err)
	}

	query := `
		INSERT INTO payments (invoice_id, number, due_date, amount, state, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range payments {
		p := &payments[i]
		p.InvoiceID = invoiceID

		err := itx.tx.QueryRowxContext(ctx, query,
			p.InvoiceID,
			p.Number,
			p.DueDate,
			p.Amount,
			p.State,
			p.PaidAt,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("inserting payment %d: %w", p.Number, err)
		}
	}

	return nil
}
