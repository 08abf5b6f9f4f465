package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfchoice/storefront/internal/platform/db"
	"github.com/hfchoice/storefront/internal/shared"
)

// Repository provides PostgreSQL backed persistence for user records.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByOwnerKey(ctx context.Context, ownerKey string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user User) (*User, error)
	UpdateRole(ctx context.Context, ownerKey string, role Role) (*User, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const userColumns = `id, owner_key, email, role`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.OwnerKey, &u.Email, &u.Role); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM store_user ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.OwnerKey, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("users: scan: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repository) GetByOwnerKey(ctx context.Context, ownerKey string) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM store_user WHERE owner_key = $1`, ownerKey))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: get by owner key: %w", err)
	}
	return u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM store_user WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: get by email: %w", err)
	}
	return u, nil
}

func (r *repository) Create(ctx context.Context, user User) (*User, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO store_user (owner_key, email, role) VALUES ($1, $2, $3) RETURNING id`,
		user.OwnerKey, user.Email, user.Role,
	).Scan(&user.ID)
	if db.IsUniqueViolation(err) {
		return nil, shared.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("users: create: %w", err)
	}
	return &user, nil
}

func (r *repository) UpdateRole(ctx context.Context, ownerKey string, role Role) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`UPDATE store_user SET role = $2 WHERE owner_key = $1 RETURNING `+userColumns, ownerKey, role))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("users: update role: %w", err)
	}
	return u, nil
}
