package invoice

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
	"github.com/MrJamesThe3rd/facturaas/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Post("/{id}/payments", h.generatePayments)
}

func (h *Handler) PaymentRoutes(r chi.Router) {
	r.Get("/", h.listPayments)
	r.Get("/{id}", h.getPayment)
	r.Patch("/{id}/state", h.updatePaymentState)
}

type lineRequest struct {
	Concept            string          `json:"concept" validate:"required"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TaxRateID          uuid.UUID       `json:"tax_rate_id" validate:"required"`
}

type createInvoiceRequest struct {
	// OwnerID defaults to the caller.
	OwnerID       *uuid.UUID    `json:"owner_id,omitempty"`
	ClientID      uuid.UUID     `json:"client_id" validate:"required"`
	PaymentTermID uuid.UUID     `json:"payment_term_id" validate:"required"`
	IssueDate     *date         `json:"issue_date,omitempty"`
	FiscalYear    int           `json:"fiscal_year,omitempty" validate:"gte=0"`
	Comments      string        `json:"comments"`
	Lines         []lineRequest `json:"lines" validate:"dive"`
}

type updateInvoiceRequest struct {
	PaymentTermID uuid.UUID     `json:"payment_term_id" validate:"required"`
	IssueDate     date          `json:"issue_date"`
	State         invoice.State `json:"state" validate:"required,oneof=ISSUED VOIDED PAID DISPUTED CREDITED"`
	Comments      string        `json:"comments"`
	Lines         []lineRequest `json:"lines" validate:"dive"`
}

type paymentStateRequest struct {
	State invoice.PaymentState `json:"state" validate:"required,oneof=PENDING PAID VOIDED"`
}

func toLineParams(lines []lineRequest) []invoice.LineParams {
	params := make([]invoice.LineParams, len(lines))
	for i, l := range lines {
		params[i] = invoice.LineParams{
			Concept:            l.Concept,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			DiscountPercentage: l.DiscountPercentage,
			TaxRateID:          l.TaxRateID,
		}
	}

	return params
}

func listFilter(r *http.Request, actor auth.Actor) (invoice.ListFilter, error) {
	ownerID, err := render.OwnerParam(r, actor)
	if err != nil {
		return invoice.ListFilter{}, err
	}

	clientID, err := render.QueryUUID(r, "client_id")
	if err != nil {
		return invoice.ListFilter{}, err
	}

	return invoice.ListFilter{OwnerID: ownerID, ClientID: clientID}, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	filter, err := listFilter(r, actor)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	invoices, err := h.svc.List(r.Context(), actor, filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(invoices))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	var req createInvoiceRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	ownerID := actor.UserID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	issueDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.IssueDate != nil {
		issueDate = time.Time(*req.IssueDate)
	}

	inv, err := h.svc.Create(r.Context(), actor, invoice.CreateParams{
		OwnerID:       ownerID,
		ClientID:      req.ClientID,
		PaymentTermID: req.PaymentTermID,
		IssueDate:     issueDate,
		FiscalYear:    req.FiscalYear,
		Comments:      req.Comments,
		Lines:         toLineParams(req.Lines),
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Get(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updateInvoiceRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Update(r.Context(), auth.ActorFrom(r.Context()), id, invoice.UpdateParams{
		PaymentTermID: req.PaymentTermID,
		IssueDate:     time.Time(req.IssueDate),
		State:         req.State,
		Comments:      req.Comments,
		Lines:         toLineParams(req.Lines),
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) generatePayments(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	payments, err := h.svc.GeneratePayments(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]paymentResponse, len(payments))
	for i := range payments {
		resp[i] = toPaymentResponse(&payments[i])
	}

	render.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	filter, err := listFilter(r, actor)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	payments, err := h.svc.ListPayments(r.Context(), actor, filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	p, err := h.svc.GetPayment(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toPaymentResponse(p))
}

func (h *Handler) updatePaymentState(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req paymentStateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	p, err := h.svc.UpdatePaymentState(r.Context(), auth.ActorFrom(r.Context()), id, req.State)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toPaymentResponse(p))
}
