package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
)

var ErrNotFound = apperr.NotFound("client")

// Client is a customer invoiced by its owner.
type Client struct {
	ID          uuid.UUID `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	TaxID       string    `db:"tax_id"`
	Address     string    `db:"address"`
	Locality    string    `db:"locality"`
	PostalCode  string    `db:"postal_code"`
	Province    string    `db:"province"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	BankAccount string    `db:"bank_account"`
	CreatedAt   time.Time `db:"created_at"`
}

// ListFilter selects the clients of one owner. Pattern, when set, matches
// name or locality case-insensitively.
type ListFilter struct {
	OwnerID uuid.UUID
	Pattern string
}
