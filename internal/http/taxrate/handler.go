package taxrate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
	"github.com/MrJamesThe3rd/facturaas/internal/taxrate"
)

type Handler struct {
	svc *taxrate.Service
}

func NewHandler(svc *taxrate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/active", h.listActive)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type taxRateRequest struct {
	Description string          `json:"description" validate:"required"`
	Percentage  decimal.Decimal `json:"percentage"`
	Active      *bool           `json:"active,omitempty"`
}

func (req taxRateRequest) params() taxrate.Params {
	return taxrate.Params{
		Description: req.Description,
		Percentage:  req.Percentage,
		Active:      render.BoolOr(req.Active, true),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.List(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(rates))
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.ListActive(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(rates))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req taxRateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	rate, err := h.svc.Create(r.Context(), auth.ActorFrom(r.Context()), req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(rate))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	rate, err := h.svc.Get(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(rate))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req taxRateRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	rate, err := h.svc.Update(r.Context(), auth.ActorFrom(r.Context()), id, req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(rate))
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
