package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
)

var (
	ErrNotFound        = apperr.NotFound("invoice")
	ErrPaymentNotFound = apperr.NotFound("payment")
)

// State is the lifecycle state of an invoice.
type State string

const (
	StateIssued   State = "ISSUED"
	StateVoided   State = "VOIDED"
	StatePaid     State = "PAID"
	StateDisputed State = "DISPUTED"
	StateCredited State = "CREDITED"
)

func (s State) Valid() bool {
	switch s {
	case StateIssued, StateVoided, StatePaid, StateDisputed, StateCredited:
		return true
	}

	return false
}

// PaymentState is the state of a single installment.
type PaymentState string

const (
	PaymentPending PaymentState = "PENDING"
	PaymentPaid    PaymentState = "PAID"
	PaymentVoided  PaymentState = "VOIDED"
)

func (s PaymentState) Valid() bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentVoided
}

// Invoice is a numbered bill from its owner to one of the owner's clients.
// Totals are always derived from Lines.
type Invoice struct {
	ID            uuid.UUID       `db:"id"`
	Number        string          `db:"number"`
	FiscalYear    int             `db:"fiscal_year"`
	OwnerID       uuid.UUID       `db:"owner_id"`
	ClientID      uuid.UUID       `db:"client_id"`
	IssueDate     time.Time       `db:"issue_date"`
	PaymentTermID uuid.UUID       `db:"payment_term_id"`
	State         State           `db:"state"`
	Comments      string          `db:"comments"`
	NetTotal      decimal.Decimal `db:"net_total"`
	TaxTotal      decimal.Decimal `db:"tax_total"`
	GrossTotal    decimal.Decimal `db:"gross_total"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`

	// Read-only projections joined in by the store.
	ClientName             string `db:"client_name"`
	ClientTaxID            string `db:"client_tax_id"`
	PaymentTermDescription string `db:"payment_term_description"`

	Lines    []LineItem `db:"-"`
	Payments []Payment  `db:"-"`
}

// LineItem is one billed concept. Number is 1-based and dense.
type LineItem struct {
	ID                 uuid.UUID       `db:"id"`
	InvoiceID          uuid.UUID       `db:"invoice_id"`
	Number             int             `db:"number"`
	Concept            string          `db:"concept"`
	Quantity           decimal.Decimal `db:"quantity"`
	UnitPrice          decimal.Decimal `db:"unit_price"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage"`
	TaxRateID          uuid.UUID       `db:"tax_rate_id"`
	TaxPercentage      decimal.Decimal `db:"tax_percentage"`
	TaxDescription     string          `db:"tax_description"`
	Total              decimal.Decimal `db:"total"`
}

// Payment is one installment of an invoice.
type Payment struct {
	ID        uuid.UUID       `db:"id"`
	InvoiceID uuid.UUID       `db:"invoice_id"`
	Number    int             `db:"number"`
	DueDate   time.Time       `db:"due_date"`
	Amount    decimal.Decimal `db:"amount"`
	State     PaymentState    `db:"state"`
	PaidAt    *time.Time      `db:"paid_at"`

	// Read-only projections joined in by the store.
	InvoiceNumber string    `db:"invoice_number"`
	OwnerID       uuid.UUID `db:"owner_id"`
	ClientID      uuid.UUID `db:"client_id"`
	ClientName    string    `db:"client_name"`
	ClientTaxID   string    `db:"client_tax_id"`
}

// ListFilter selects invoices or payments of one owner, optionally narrowed
// to one client.
type ListFilter struct {
	OwnerID  uuid.UUID
	ClientID *uuid.UUID
}
