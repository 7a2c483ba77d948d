package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/client"
)

type clientResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	TaxID       string    `json:"tax_id"`
	Address     string    `json:"address,omitempty"`
	Locality    string    `json:"locality,omitempty"`
	PostalCode  string    `json:"postal_code,omitempty"`
	Province    string    `json:"province,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	BankAccount string    `json:"bank_account,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type importResponse struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Charset  string           `json:"charset"`
	Clients  []clientResponse `json:"clients"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		TaxID:       c.TaxID,
		Address:     c.Address,
		Locality:    c.Locality,
		PostalCode:  c.PostalCode,
		Province:    c.Province,
		Email:       c.Email,
		Phone:       c.Phone,
		BankAccount: c.BankAccount,
		CreatedAt:   c.CreatedAt,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}
