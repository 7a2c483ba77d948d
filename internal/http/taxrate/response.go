package taxrate

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
)

type taxRateResponse struct {
	ID          uuid.UUID    `json:"id"`
	Description string       `json:"description"`
	Percentage  render.Money `json:"percentage"`
	Active      bool         `json:"active"`
}

func toResponse(rate *taxrate.TaxRate) taxRateResponse {
	return taxRateResponse{
		ID:          rate.ID,
		Description: rate.Description,
		Percentage:  render.Money(rate.Percentage),
		Active:      rate.Active,
	}
}

func toResponseList(rates []*taxrate.TaxRate) []taxRateResponse {
	resp := make([]taxRateResponse, len(rates))
	for i, rate := range rates {
		resp[i] = toResponse(rate)
	}

	return resp
}
