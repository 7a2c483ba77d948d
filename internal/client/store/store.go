package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/facturaas/internal/client"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const selectClientColumns = `
	id, owner_id, name, tax_id, address, locality, postal_code, province,
	email, phone, bank_account, created_at
`

const insertClient = `
	INSERT INTO clients (owner_id, name, tax_id, address, locality, postal_code, province, email, phone, bank_account)
	VALUES (:owner_id, :name, :tax_id, :address, :locality, :postal_code, :province, :email, :phone, :bank_account)
	RETURNING id, created_at
`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	stmt, err := s.db.PrepareNamedContext(ctx, insertClient)
	if err != nil {
		return fmt.Errorf("preparing client insert: %w", err)
	}
	defer stmt.Close()

	if err := stmt.QueryRowxContext(ctx, c).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

// CreateClients inserts all clients in one transaction.
func (s *Store) CreateClients(ctx context.Context, cs []*client.Client) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, insertClient)
	if err != nil {
		return fmt.Errorf("preparing client insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cs {
		if err := stmt.QueryRowxContext(ctx, c).Scan(&c.ID, &c.CreatedAt); err != nil {
			return fmt.Errorf("importing client %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var c client.Client

	err := s.db.GetContext(ctx, &c, `SELECT `+selectClientColumns+` FROM clients WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return &c, nil
}

func (s *Store) ListClients(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE owner_id = $1`
	args := []any{filter.OwnerID}

	if filter.Pattern != "" {
		query += ` AND (name ILIKE $2 OR locality ILIKE $2)`

		args = append(args, "%"+likeEscaper.Replace(filter.Pattern)+"%")
	}

	query += ` ORDER BY name`

	var clients []*client.Client
	if err := s.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET name = :name, tax_id = :tax_id, address = :address, locality = :locality,
			postal_code = :postal_code, province = :province, email = :email,
			phone = :phone, bank_account = :bank_account
		WHERE id = :id
	`

	res, err := s.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return client.ErrNotFound
	}

	return nil
}

func (s *Store) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool

	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}

	return exists, nil
}
