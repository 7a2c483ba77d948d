package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
	"github.com/MrJamesThe3rd/facturaas/internal/invoice"
)

type invoiceResponse struct {
	ID                     uuid.UUID         `json:"id"`
	Number                 string            `json:"number"`
	FiscalYear             int               `json:"fiscal_year"`
	OwnerID                uuid.UUID         `json:"owner_id"`
	ClientID               uuid.UUID         `json:"client_id"`
	ClientName             string            `json:"client_name,omitempty"`
	ClientTaxID            string            `json:"client_tax_id,omitempty"`
	IssueDate              date              `json:"issue_date"`
	PaymentTermID          uuid.UUID         `json:"payment_term_id"`
	PaymentTermDescription string            `json:"payment_term_description,omitempty"`
	State                  invoice.State     `json:"state"`
	Comments               string            `json:"comments,omitempty"`
	NetTotal               render.Money      `json:"net_total"`
	TaxTotal               render.Money      `json:"tax_total"`
	GrossTotal             render.Money      `json:"gross_total"`
	Lines                  []lineResponse    `json:"lines"`
	Payments               []paymentResponse `json:"payments,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

type lineResponse struct {
	Number             int          `json:"number"`
	Concept            string       `json:"concept"`
	Quantity           render.Money `json:"quantity"`
	UnitPrice          render.Money `json:"unit_price"`
	DiscountPercentage render.Money `json:"discount_percentage"`
	TaxRateID          uuid.UUID    `json:"tax_rate_id"`
	TaxPercentage      render.Money `json:"tax_percentage"`
	TaxDescription     string       `json:"tax_description,omitempty"`
	Total              render.Money `json:"total"`
}

type paymentResponse struct {
	ID            uuid.UUID            `json:"id"`
	InvoiceID     uuid.UUID            `json:"invoice_id"`
	InvoiceNumber string               `json:"invoice_number,omitempty"`
	Number        int                  `json:"number"`
	DueDate       date                 `json:"due_date"`
	Amount        render.Money         `json:"amount"`
	State         invoice.PaymentState `json:"state"`
	PaidAt        *date                `json:"paid_at,omitempty"`
	ClientID      uuid.UUID            `json:"client_id"`
	ClientName    string               `json:"client_name,omitempty"`
	ClientTaxID   string               `json:"client_tax_id,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	resp := invoiceResponse{
		ID:                     inv.ID,
		Number:                 inv.Number,
		FiscalYear:             inv.FiscalYear,
		OwnerID:                inv.OwnerID,
		ClientID:               inv.ClientID,
		ClientName:             inv.ClientName,
		ClientTaxID:            inv.ClientTaxID,
		IssueDate:              date(inv.IssueDate),
		PaymentTermID:          inv.PaymentTermID,
		PaymentTermDescription: inv.PaymentTermDescription,
		State:                  inv.State,
		Comments:               inv.Comments,
		NetTotal:               render.Money(inv.NetTotal),
		TaxTotal:               render.Money(inv.TaxTotal),
		GrossTotal:             render.Money(inv.GrossTotal),
		Lines:                  make([]lineResponse, len(inv.Lines)),
		CreatedAt:              inv.CreatedAt,
		UpdatedAt:              inv.UpdatedAt,
	}

	for i, l := range inv.Lines {
		resp.Lines[i] = lineResponse{
			Number:             l.Number,
			Concept:            l.Concept,
			Quantity:           render.Money(l.Quantity),
			UnitPrice:          render.Money(l.UnitPrice),
			DiscountPercentage: render.Money(l.DiscountPercentage),
			TaxRateID:          l.TaxRateID,
			TaxPercentage:      render.Money(l.TaxPercentage),
			TaxDescription:     l.TaxDescription,
			Total:              render.Money(l.Total),
		}
	}

	for i := range inv.Payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(&inv.Payments[i]))
	}

	return resp
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}

func toPaymentResponse(p *invoice.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		InvoiceNumber: p.InvoiceNumber,
		Number:        p.Number,
		DueDate:       date(p.DueDate),
		Amount:        render.Money(p.Amount),
		State:         p.State,
		PaidAt:        toDate(p.PaidAt),
		ClientID:      p.ClientID,
		ClientName:    p.ClientName,
		ClientTaxID:   p.ClientTaxID,
	}
}
