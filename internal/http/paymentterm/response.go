package paymentterm

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
)

type paymentTermResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Description  string    `json:"description"`
	Installments int       `json:"installments"`
	PeriodDays   int       `json:"period_days"`
	Active       bool      `json:"active"`
}

func toResponse(pt *paymentterm.PaymentTerm) paymentTermResponse {
	return paymentTermResponse{
		ID:           pt.ID,
		OwnerID:      pt.OwnerID,
		Description:  pt.Description,
		Installments: pt.Installments,
		PeriodDays:   pt.PeriodDays,
		Active:       pt.Active,
	}
}

func toResponseList(terms []*paymentterm.PaymentTerm) []paymentTermResponse {
	resp := make([]paymentTermResponse, len(terms))
	for i, pt := range terms {
		resp[i] = toResponse(pt)
	}

	return resp
}
