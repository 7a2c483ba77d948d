package paymentterm

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
	"github.com/MrJamesThe3rd/facturaas/internal/paymentterm"
)

type Handler struct {
	svc *paymentterm.Service
}

func NewHandler(svc *paymentterm.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createPaymentTermRequest struct {
	// OwnerID defaults to the caller.
	OwnerID      *uuid.UUID `json:"owner_id,omitempty"`
	Description  string     `json:"description" validate:"required"`
	Installments int        `json:"installments" validate:"min=1"`
	PeriodDays   int        `json:"period_days" validate:"min=0"`
	Active       *bool      `json:"active,omitempty"`
}

type updatePaymentTermRequest struct {
	Description  string `json:"description" validate:"required"`
	Installments int    `json:"installments" validate:"min=1"`
	PeriodDays   int    `json:"period_days" validate:"min=0"`
	Active       *bool  `json:"active,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	ownerID, err := render.OwnerParam(r, actor)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	activeOnly, err := render.QueryBool(r, "active_only")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	terms, err := h.svc.List(r.Context(), actor, ownerID, activeOnly)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(terms))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	var req createPaymentTermRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	ownerID := actor.UserID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	pt, err := h.svc.Create(r.Context(), actor, paymentterm.CreateParams{
		OwnerID:      ownerID,
		Description:  req.Description,
		Installments: req.Installments,
		PeriodDays:   req.PeriodDays,
		Active:       render.BoolOr(req.Active, true),
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(pt))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	pt, err := h.svc.Get(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(pt))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updatePaymentTermRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	pt, err := h.svc.Update(r.Context(), auth.ActorFrom(r.Context()), id, paymentterm.UpdateParams{
		Description:  req.Description,
		Installments: req.Installments,
		PeriodDays:   req.PeriodDays,
		Active:       render.BoolOr(req.Active, true),
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(pt))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.ActorFrom(r.Context()), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
