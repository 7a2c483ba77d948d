package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/validate"
)

const minPasswordLength = 6

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, u *User) error
	ExistsByLogin(ctx context.Context, login string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	TouchLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error
}

type Service struct {
	repo Repository
	cost int
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
}

type CreateParams struct {
	Login    string
	Password string
	Name     string
	Email    string
}

func (p CreateParams) validate() error {
	switch {
	case strings.TrimSpace(p.Login) == "":
		return apperr.Validation("login is required")
	case len(p.Password) < minPasswordLength:
		return apperr.Validation("password must be at least %d characters", minPasswordLength)
	case strings.TrimSpace(p.Name) == "":
		return apperr.Validation("name is required")
	}

	if !validate.Email(p.Email) {
		return apperr.Validation("email %q is not valid", p.Email)
	}

	return nil
}

// UpdateParams holds the mutable fields of a user. Login and email are fixed
// at creation.
type UpdateParams struct {
	Name   *string
	Role   *auth.Role
	Active *bool
}

func (s *Service) List(ctx context.Context, actor auth.Actor) ([]*User, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.repo.ListUsers(ctx)
}

func (s *Service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*User, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.repo.GetUser(ctx, id)
}

// Create registers a regular user. Roles are changed afterwards through Update.
func (s *Service) Create(ctx context.Context, actor auth.Actor, params CreateParams) (*User, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.create(ctx, params, auth.RoleUser)
}

func (s *Service) create(ctx context.Context, params CreateParams, role auth.Role) (*User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByLogin(ctx, params.Login)
	if err != nil {
		return nil, fmt.Errorf("checking login: %w", err)
	}

	if taken {
		return nil, apperr.Conflict("login %q already exists", params.Login)
	}

	taken, err = s.repo.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	if taken {
		return nil, apperr.Conflict("email %q already exists", params.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Login:        params.Login,
		PasswordHash: string(hash),
		Name:         params.Name,
		Email:        params.Email,
		Role:         role,
		Active:       true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id uuid.UUID, params UpdateParams) (*User, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, apperr.Validation("name is required")
		}

		u.Name = *params.Name
	}

	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, apperr.Validation("role must be one of: ADMIN, USER")
		}

		u.Role = *params.Role
	}

	if params.Active != nil {
		u.Active = *params.Active
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Delete deactivates the user; the row is kept.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}

	u.Active = false

	return s.repo.UpdateUser(ctx, u)
}

// Authenticate checks credentials and records the access time.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*User, error) {
	invalid := apperr.Unauthorized("invalid login or password")

	u, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, invalid
		}

		return nil, err
	}

	if !u.Active {
		return nil, invalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	now := s.now().UTC()
	if err := s.repo.TouchLastAccess(ctx, u.ID, now); err != nil {
		return nil, fmt.Errorf("recording access: %w", err)
	}

	u.LastAccessAt = &now

	return u, nil
}

// ResolveActor re-reads the user behind a token subject so role and active
// flag are never taken from a stale token.
func (s *Service) ResolveActor(ctx context.Context, id uuid.UUID) (auth.Actor, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return auth.Actor{}, apperr.Unauthorized("unknown user")
		}

		return auth.Actor{}, err
	}

	if !u.Active {
		return auth.Actor{}, apperr.Unauthorized("user is inactive")
	}

	return u.Actor(), nil
}

// Ensure creates the user with the given role unless the login already
// exists. It bypasses the admin gate and is meant for bootstrapping.
func (s *Service) Ensure(ctx context.Context, params CreateParams, role auth.Role) (*User, bool, error) {
	existing, err := s.repo.GetUserByLogin(ctx, params.Login)
	if err == nil {
		return existing, false, nil
	}

	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, false, err
	}

	u, err := s.create(ctx, params, role)
	if err != nil {
		return nil, false, err
	}

	return u, true, nil
}
