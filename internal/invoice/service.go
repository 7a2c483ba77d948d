package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/client"
	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	InvoiceOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter ListFilter) ([]*Payment, error)
	UpdatePayment(ctx context.Context, p *Payment) error
	PaymentOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error)
	GetPaymentTerm(ctx context.Context, id uuid.UUID) (*paymentterm.PaymentTerm, error)
	GetTaxRate(ctx context.Context, id uuid.UUID) (*taxrate.TaxRate, error)

	BeginTx(ctx context.Context) (Tx, error)
}

// Tx scopes the writes to one invoice aggregate.
type Tx interface {
	LockInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	NextNumber(ctx context.Context, fiscalYear int) (int, error)
	CreateInvoice(ctx context.Context, inv *Invoice) error
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	ReplaceLines(ctx context.Context, invoiceID uuid.UUID, lines []LineItem) error
	ReplacePayments(ctx context.Context, invoiceID uuid.UUID, payments []Payment) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type LineParams struct {
	Concept            string
	Quantity           decimal.Decimal
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
	TaxRateID          uuid.UUID
}

type CreateParams struct {
	OwnerID       uuid.UUID
	ClientID      uuid.UUID
	PaymentTermID uuid.UUID
	IssueDate     time.Time
	// FiscalYear defaults to the year of IssueDate.
	FiscalYear int
	Comments   string
	Lines      []LineParams
}

// UpdateParams replaces every mutable field. Owner, client, number and fiscal
// year are fixed at creation.
type UpdateParams struct {
	PaymentTermID uuid.UUID
	IssueDate     time.Time
	State         State
	Comments      string
	Lines         []LineParams
}

// cents reports whether d fits the two-decimal columns it is stored in.
func cents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

func validateLines(lines []LineParams) error {
	for i, l := range lines {
		n := i + 1

		switch {
		case strings.TrimSpace(l.Concept) == "":
			return apperr.Validation("line %d: concept is required", n)
		case l.Quantity.IsNegative():
			return apperr.Validation("line %d: quantity must not be negative", n)
		case l.UnitPrice.IsNegative():
			return apperr.Validation("line %d: unit price must not be negative", n)
		case l.DiscountPercentage.IsNegative() || l.DiscountPercentage.GreaterThan(hundred):
			return apperr.Validation("line %d: discount must be between 0 and 100", n)
		case !cents(l.Quantity):
			return apperr.Validation("line %d: quantity must have at most 2 decimals", n)
		case !cents(l.UnitPrice):
			return apperr.Validation("line %d: unit price must have at most 2 decimals", n)
		case !cents(l.DiscountPercentage):
			return apperr.Validation("line %d: discount must have at most 2 decimals", n)
		case l.TaxRateID == uuid.Nil:
			return apperr.Validation("line %d: tax rate is required", n)
		}
	}

	return nil
}

func (p CreateParams) validate() error {
	switch {
	case p.ClientID == uuid.Nil:
		return apperr.Validation("client is required")
	case p.PaymentTermID == uuid.Nil:
		return apperr.Validation("payment term is required")
	case p.IssueDate.IsZero():
		return apperr.Validation("issue date is required")
	case p.FiscalYear < 0:
		return apperr.Validation("fiscal year must not be negative")
	}

	return validateLines(p.Lines)
}

func (p UpdateParams) validate() error {
	switch {
	case p.PaymentTermID == uuid.Nil:
		return apperr.Validation("payment term is required")
	case p.IssueDate.IsZero():
		return apperr.Validation("issue date is required")
	case !p.State.Valid():
		return apperr.Validation("state %q is not valid", p.State)
	}

	return validateLines(p.Lines)
}

func (s *Service) invoiceOwner(id uuid.UUID) auth.OwnerResolver {
	return func(ctx context.Context) (uuid.UUID, error) {
		return s.repo.InvoiceOwner(ctx, id)
	}
}

func (s *Service) paymentOwner(id uuid.UUID) auth.OwnerResolver {
	return func(ctx context.Context) (uuid.UUID, error) {
		return s.repo.PaymentOwner(ctx, id)
	}
}

// resolveLines looks up the tax rate of every line and numbers them 1..n in
// input order.
func (s *Service) resolveLines(ctx context.Context, params []LineParams) ([]LineItem, error) {
	rates := make(map[uuid.UUID]*taxrate.TaxRate)
	lines := make([]LineItem, 0, len(params))

	for i, p := range params {
		rate, ok := rates[p.TaxRateID]
		if !ok {
			var err error

			rate, err = s.repo.GetTaxRate(ctx, p.TaxRateID)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}

			rates[p.TaxRateID] = rate
		}

		lines = append(lines, LineItem{
			Number:             i + 1,
			Concept:            strings.TrimSpace(p.Concept),
			Quantity:           p.Quantity,
			UnitPrice:          p.UnitPrice,
			DiscountPercentage: p.DiscountPercentage,
			TaxRateID:          rate.ID,
			TaxPercentage:      rate.Percentage,
			TaxDescription:     rate.Description,
		})
	}

	return lines, nil
}

func (s *Service) ownedPaymentTerm(ctx context.Context, id, ownerID uuid.UUID) (*paymentterm.PaymentTerm, error) {
	pt, err := s.repo.GetPaymentTerm(ctx, id)
	if err != nil {
		return nil, err
	}

	if pt.OwnerID != ownerID {
		return nil, apperr.Validation("payment term belongs to another user")
	}

	return pt, nil
}

func (s *Service) create(ctx context.Context, actor auth.Actor, params CreateParams) (*Invoice, error) {
	if err := auth.Authorize(actor, params.OwnerID); err != nil {
		return nil, err
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.UserExists(ctx, params.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("checking owner: %w", err)
	}

	if !exists {
		return nil, apperr.NotFound("owner")
	}

	c, err := s.repo.GetClient(ctx, params.ClientID)
	if err != nil {
		return nil, err
	}

	if c.OwnerID != params.OwnerID {
		return nil, apperr.Validation("client belongs to another user")
	}

	pt, err := s.ownedPaymentTerm(ctx, params.PaymentTermID, params.OwnerID)
	if err != nil {
		return nil, err
	}

	lines, err := s.resolveLines(ctx, params.Lines)
	if err != nil {
		return nil, err
	}

	fiscalYear := params.FiscalYear
	if fiscalYear == 0 {
		fiscalYear = params.IssueDate.Year()
	}

	inv := &Invoice{
		FiscalYear:             fiscalYear,
		OwnerID:                params.OwnerID,
		ClientID:               c.ID,
		IssueDate:              params.IssueDate,
		PaymentTermID:          pt.ID,
		State:                  StateIssued,
		Comments:               params.Comments,
		ClientName:             c.Name,
		ClientTaxID:            c.TaxID,
		PaymentTermDescription: pt.Description,
		Lines:                  lines,
	}
	inv.recalculate()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	seq, err := tx.NextNumber(ctx, fiscalYear)
	if err != nil {
		return nil, err
	}

	inv.Number = FormatNumber(fiscalYear, seq)

	if err := tx.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.ReplaceLines(ctx, inv.ID, inv.Lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing invoice: %w", err)
	}

	return inv, nil
}

// Create issues a new invoice and assigns it the next number of its fiscal
// year.
func (s *Service) Create(ctx context.Context, actor auth.Actor, params CreateParams) (*Invoice, error) {
	res, err := s.create(ctx, actor, params)
	if err != nil {
		return nil, apperr.WithOp("invoice.Create", err)
	}

	return res, nil
}

// FormatNumber renders the public invoice number, e.g. "2024/0007".
func FormatNumber(fiscalYear, seq int) string {
	return fmt.Sprintf("%d/%04d", fiscalYear, seq)
}

func (s *Service) update(ctx context.Context, actor auth.Actor, id uuid.UUID, params UpdateParams) (*Invoice, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.invoiceOwner(id)); err != nil {
		return nil, err
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	pt, err := s.repo.GetPaymentTerm(ctx, params.PaymentTermID)
	if err != nil {
		return nil, err
	}

	lines, err := s.resolveLines(ctx, params.Lines)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inv, err := tx.LockInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if pt.OwnerID != inv.OwnerID {
		return nil, apperr.Validation("payment term belongs to another user")
	}

	inv.IssueDate = params.IssueDate
	inv.PaymentTermID = pt.ID
	inv.PaymentTermDescription = pt.Description
	inv.State = params.State
	inv.Comments = params.Comments
	inv.Lines = lines
	inv.recalculate()

	if err := tx.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.ReplaceLines(ctx, inv.ID, inv.Lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing invoice: %w", err)
	}

	return inv, nil
}

// Update replaces the lines and mutable fields of an invoice and recomputes
// its totals. Existing payments are left untouched.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id uuid.UUID, params UpdateParams) (*Invoice, error) {
	res, err := s.update(ctx, actor, id, params)
	if err != nil {
		return nil, apperr.WithOp("invoice.Update", err)
	}

	return res, nil
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*Invoice, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.invoiceOwner(id)); err != nil {
		return nil, err
	}

	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, actor auth.Actor, filter ListFilter) ([]*Invoice, error) {
	if err := auth.Authorize(actor, filter.OwnerID); err != nil {
		return nil, err
	}

	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) generatePayments(ctx context.Context, actor auth.Actor, id uuid.UUID) ([]Payment, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.invoiceOwner(id)); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inv, err := tx.LockInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	pt, err := s.repo.GetPaymentTerm(ctx, inv.PaymentTermID)
	if err != nil {
		return nil, err
	}

	payments, err := Schedule(inv.GrossTotal, pt.Installments, pt.PeriodDays, inv.IssueDate)
	if err != nil {
		return nil, err
	}

	for i := range payments {
		payments[i].InvoiceID = inv.ID
		payments[i].InvoiceNumber = inv.Number
		payments[i].OwnerID = inv.OwnerID
		payments[i].ClientID = inv.ClientID
		payments[i].ClientName = inv.ClientName
		payments[i].ClientTaxID = inv.ClientTaxID
	}

	if err := tx.ReplacePayments(ctx, inv.ID, payments); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing payments: %w", err)
	}

	return payments, nil
}

// GeneratePayments discards the installments of an invoice and schedules new
// ones from its current total and payment term.
func (s *Service) GeneratePayments(ctx context.Context, actor auth.Actor, id uuid.UUID) ([]Payment, error) {
	res, err := s.generatePayments(ctx, actor, id)
	if err != nil {
		return nil, apperr.WithOp("invoice.GeneratePayments", err)
	}

	return res, nil
}

func (s *Service) ListPayments(ctx context.Context, actor auth.Actor, filter ListFilter) ([]*Payment, error) {
	if err := auth.Authorize(actor, filter.OwnerID); err != nil {
		return nil, err
	}

	return s.repo.ListPayments(ctx, filter)
}

func (s *Service) GetPayment(ctx context.Context, actor auth.Actor, id uuid.UUID) (*Payment, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.paymentOwner(id)); err != nil {
		return nil, err
	}

	return s.repo.GetPayment(ctx, id)
}

func (s *Service) updatePaymentState(ctx context.Context, actor auth.Actor, id uuid.UUID, state PaymentState) (*Payment, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.paymentOwner(id)); err != nil {
		return nil, err
	}

	if !state.Valid() {
		return nil, apperr.Validation("payment state %q is not valid", state)
	}

	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	p.State = state

	if state == PaymentPaid && p.PaidAt == nil {
		now := s.now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		p.PaidAt = &today
	}

	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdatePaymentState moves an installment to state. Any transition is
// allowed; becoming PAID without a paid date stamps today.
func (s *Service) UpdatePaymentState(ctx context.Context, actor auth.Actor, id uuid.UUID, state PaymentState) (*Payment, error) {
	res, err := s.updatePaymentState(ctx, actor, id, state)
	if err != nil {
		return nil, apperr.WithOp("invoice.UpdatePaymentState", err)
	}

	return res, nil
}
