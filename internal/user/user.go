package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/auth"
)

var ErrNotFound = apperr.NotFound("user")

// User is an account able to authenticate against the API.
type User struct {
	ID           uuid.UUID  `db:"id"`
	Login        string     `db:"login"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Role         auth.Role  `db:"role"`
	Active       bool       `db:"active"`
	CreatedAt    time.Time  `db:"created_at"`
	LastAccessAt *time.Time `db:"last_access_at"`
}

// Actor is the identity the user acts as.
func (u *User) Actor() auth.Actor {
	return auth.Actor{UserID: u.ID, Role: u.Role}
}
