package paymentterm

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
)

var ErrNotFound = apperr.NotFound("payment term")

// PaymentTerm describes how an invoice total is split into installments:
// Installments payments spaced PeriodDays apart, starting on the issue date.
type PaymentTerm struct {
	ID           uuid.UUID `db:"id"`
	OwnerID      uuid.UUID `db:"owner_id"`
	Description  string    `db:"description"`
	Installments int       `db:"installments"`
	PeriodDays   int       `db:"period_days"`
	Active       bool      `db:"active"`
}
