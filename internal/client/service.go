package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	CreateClients(ctx context.Context, cs []*Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context, filter ListFilter) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Params holds the editable fields of a client.
type Params struct {
	Name        string
	TaxID       string
	Address     string
	Locality    string
	PostalCode  string
	Province    string
	Email       string
	Phone       string
	BankAccount string
}

func (p Params) validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperr.Validation("name is required")
	case strings.TrimSpace(p.TaxID) == "":
		return apperr.Validation("tax id is required")
	}

	if p.Email != "" && !validate.Email(p.Email) {
		return apperr.Validation("email %q is not valid", p.Email)
	}

	return nil
}

func (p Params) apply(c *Client) {
	c.Name = strings.TrimSpace(p.Name)
	c.TaxID = strings.TrimSpace(p.TaxID)
	c.Address = p.Address
	c.Locality = p.Locality
	c.PostalCode = p.PostalCode
	c.Province = p.Province
	c.Email = p.Email
	c.Phone = p.Phone
	c.BankAccount = p.BankAccount
}

// Owner resolves the owning user of a client for the authorization gate.
func (s *Service) Owner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}

	return c.OwnerID, nil
}

func (s *Service) ownerOf(id uuid.UUID) auth.OwnerResolver {
	return func(ctx context.Context) (uuid.UUID, error) {
		return s.Owner(ctx, id)
	}
}

func (s *Service) List(ctx context.Context, actor auth.Actor, filter ListFilter) ([]*Client, error) {
	if err := auth.Authorize(actor, filter.OwnerID); err != nil {
		return nil, err
	}

	filter.Pattern = strings.TrimSpace(filter.Pattern)

	return s.repo.ListClients(ctx, filter)
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*Client, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.ownerOf(id)); err != nil {
		return nil, err
	}

	return s.repo.GetClient(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, ownerID uuid.UUID, params Params) (*Client, error) {
	if err := s.checkOwner(ctx, actor, ownerID); err != nil {
		return nil, err
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	c := &Client{OwnerID: ownerID}
	params.apply(c)

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id uuid.UUID, params Params) (*Client, error) {
	if err := auth.AuthorizeOwned(ctx, actor, s.ownerOf(id)); err != nil {
		return nil, err
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	params.apply(c)

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Import creates every client in rows for ownerID. Nothing is stored unless
// all rows are valid.
func (s *Service) Import(ctx context.Context, actor auth.Actor, ownerID uuid.UUID, rows []Params) ([]*Client, error) {
	if err := s.checkOwner(ctx, actor, ownerID); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, apperr.Validation("no clients to import")
	}

	clients := make([]*Client, 0, len(rows))

	for i, row := range rows {
		if err := row.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		c := &Client{OwnerID: ownerID}
		row.apply(c)
		clients = append(clients, c)
	}

	if err := s.repo.CreateClients(ctx, clients); err != nil {
		return nil, err
	}

	return clients, nil
}

func (s *Service) checkOwner(ctx context.Context, actor auth.Actor, ownerID uuid.UUID) error {
	if err := auth.Authorize(actor, ownerID); err != nil {
		return err
	}

	exists, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("checking owner: %w", err)
	}

	if !exists {
		return apperr.NotFound("owner")
	}

	return nil
}
