package client

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/client"
	"github.com/MrJamesThe3rd/facturaas/internal/client/csvimport"
	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
)

type Handler struct {
	svc       *client.Service
	parser    *csvimport.Parser
	maxUpload int64
}

// NewHandler builds the client handler. maxUpload caps import bodies in bytes.
func NewHandler(svc *client.Service, parser *csvimport.Parser, maxUpload int64) *Handler {
	return &Handler{
		svc:       svc,
		parser:    parser,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
}

type clientRequest struct {
	// OwnerID defaults to the caller. Ignored on update.
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
	Name        string     `json:"name" validate:"required"`
	TaxID       string     `json:"tax_id" validate:"required"`
	Address     string     `json:"address"`
	Locality    string     `json:"locality"`
	PostalCode  string     `json:"postal_code"`
	Province    string     `json:"province"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Phone       string     `json:"phone"`
	BankAccount string     `json:"bank_account"`
}

func (req clientRequest) params() client.Params {
	return client.Params{
		Name:        req.Name,
		TaxID:       req.TaxID,
		Address:     req.Address,
		Locality:    req.Locality,
		PostalCode:  req.PostalCode,
		Province:    req.Province,
		Email:       req.Email,
		Phone:       req.Phone,
		BankAccount: req.BankAccount,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	ownerID, err := render.OwnerParam(r, actor)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	clients, err := h.svc.List(r.Context(), actor, client.ListFilter{
		OwnerID: ownerID,
		Pattern: r.URL.Query().Get("pattern"),
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(clients))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	var req clientRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	ownerID := actor.UserID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	c, err := h.svc.Create(r.Context(), actor, ownerID, req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := render.URLID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req clientRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), auth.ActorFrom(r.Context()), id, req.params())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(c))
}

// importCSV accepts either a multipart form with a "file" field or the raw
// CSV as the request body.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	ownerID, err := render.OwnerParam(r, actor)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	upload, err := h.upload(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	defer upload.Close()

	parsed, err := h.parser.Parse(upload)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Error(w, r, apperr.Validation("file exceeds %d bytes", tooLarge.Limit))
			return
		}

		render.Error(w, r, err)

		return
	}

	clients, err := h.svc.Import(r.Context(), actor, ownerID, parsed.Clients)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, importResponse{
		Imported: len(clients),
		Skipped:  parsed.Skipped,
		Charset:  parsed.Charset,
		Clients:  toResponseList(clients),
	})
}

func (h *Handler) upload(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return nil, apperr.Validation("failed to parse form: %v", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, apperr.Validation("file field is required")
	}

	return file, nil
}
