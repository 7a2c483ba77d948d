package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
)

// Role gates the global admin bypass.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Actor is the authenticated identity a request runs as.
// The zero Actor is unauthenticated.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin && a.Authenticated()
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

// CanAccess decides whether actor may touch a resource owned by ownerID.
func CanAccess(actor Actor, ownerID uuid.UUID) bool {
	if !actor.Authenticated() {
		return false
	}

	if actor.IsAdmin() {
		return true
	}

	return ownerID != uuid.Nil && actor.UserID == ownerID
}

// Authorize is CanAccess expressed as an error.
func Authorize(actor Actor, ownerID uuid.UUID) error {
	if !actor.Authenticated() {
		return apperr.Unauthorized("authentication required")
	}

	if !CanAccess(actor, ownerID) {
		return apperr.Forbidden("access to resources of another user denied")
	}

	return nil
}

// RequireAdmin rejects every actor but administrators.
func RequireAdmin(actor Actor) error {
	if !actor.Authenticated() {
		return apperr.Unauthorized("authentication required")
	}

	if !actor.IsAdmin() {
		return apperr.Forbidden("administrator role required")
	}

	return nil
}

// OwnerResolver returns the owning user of a stored resource.
type OwnerResolver func(ctx context.Context) (uuid.UUID, error)

// AuthorizeOwned runs the gate against a resource whose owner must be looked up
// first. Admins bypass the lookup. A resource that cannot be found denies
// non-admin actors.
func AuthorizeOwned(ctx context.Context, actor Actor, resolve OwnerResolver) error {
	if !actor.Authenticated() {
		return apperr.Unauthorized("authentication required")
	}

	if actor.IsAdmin() {
		return nil
	}

	ownerID, err := resolve(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Forbidden("access denied")
		}

		return err
	}

	return Authorize(actor, ownerID)
}
