package taxrate

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
)

var ErrNotFound = apperr.NotFound("tax rate")

// TaxRate is a global percentage applied to invoice lines.
type TaxRate struct {
	ID          uuid.UUID       `db:"id"`
	Description string          `db:"description"`
	Percentage  decimal.Decimal `db:"percentage"`
	Active      bool            `db:"active"`
}
