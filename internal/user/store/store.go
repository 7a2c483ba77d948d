package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
	"github.com/MrJamesThe3rd/facturaas/internal/database"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const selectUserColumns = `id, login, password_hash, name, email, role, active, created_at, last_access_at`

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (login, password_hash, name, email, role, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowxContext(ctx, query,
		u.Login,
		u.PasswordHash,
		u.Name,
		u.Email,
		u.Role,
		u.Active,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			if database.ConstraintName(err) == "users_email_key" {
				return apperr.Conflict("email %q already exists", u.Email)
			}

			return apperr.Conflict("login %q already exists", u.Login)
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User

	err := s.db.GetContext(ctx, &u, `SELECT `+selectUserColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func (s *Store) GetUserByLogin(ctx context.Context, login string) (*user.User, error) {
	var u user.User

	err := s.db.GetContext(ctx, &u, `SELECT `+selectUserColumns+` FROM users WHERE login = $1`, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by login: %w", err)
	}

	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*user.User, error) {
	var users []*user.User

	if err := s.db.SelectContext(ctx, &users, `SELECT `+selectUserColumns+` FROM users ORDER BY login`); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET name = $1, role = $2, active = $3
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, u.Name, u.Role, u.Active, u.ID)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	if n == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (s *Store) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	var exists bool

	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE login = $1)`, login); err != nil {
		return false, fmt.Errorf("checking login: %w", err)
	}

	return exists, nil
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}

	return exists, nil
}

func (s *Store) TouchLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE users SET last_access_at = $1 WHERE id = $2`, at, id); err != nil {
		return fmt.Errorf("recording last access: %w", err)
	}

	return nil
}
