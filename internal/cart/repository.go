package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfchoice/storefront/internal/platform/db"
	"github.com/hfchoice/storefront/internal/shared"
)

// Repository provides PostgreSQL backed persistence for cart lines. Every
// owner-scoped method takes the owner key as part of the WHERE clause so
// one user can never touch another user's lines.
type Repository interface {
	ListByOwner(ctx context.Context, ownerKey string) ([]Line, error)
	FindByOwnerAndProduct(ctx context.Context, ownerKey string, productID int64) (*Line, error)
	Insert(ctx context.Context, line Line) (*Line, error)
	AddQuantity(ctx context.Context, ownerKey string, id int64, delta int) (*Line, error)
	SetQuantity(ctx context.Context, ownerKey string, id int64, quantity int) (*Line, error)
	Delete(ctx context.Context, ownerKey string, id int64) error
	DeleteByOwner(ctx context.Context, ownerKey string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const lineColumns = `id, owner_key, product_id, quantity, snapshot, added_at`

func scanLine(row pgx.Row) (*Line, error) {
	var l Line
	var snapshot []byte
	if err := row.Scan(&l.ID, &l.OwnerKey, &l.ProductID, &l.Quantity, &snapshot, &l.AddedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &l.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &l, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerKey string) ([]Line, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+lineColumns+` FROM cart_line WHERE owner_key = $1 ORDER BY added_at, id`, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("cart: list: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("cart: scan: %w", err)
		}
		lines = append(lines, *l)
	}
	return lines, rows.Err()
}

func (r *repository) FindByOwnerAndProduct(ctx context.Context, ownerKey string, productID int64) (*Line, error) {
	l, err := scanLine(r.pool.QueryRow(ctx,
		`SELECT `+lineColumns+` FROM cart_line WHERE owner_key = $1 AND product_id = $2`,
		ownerKey, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cart: find: %w", err)
	}
	return l, nil
}

func (r *repository) Insert(ctx context.Context, line Line) (*Line, error) {
	snapshot, err := json.Marshal(line.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("cart: encode snapshot: %w", err)
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO cart_line (owner_key, product_id, quantity, snapshot, added_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		line.OwnerKey, line.ProductID, line.Quantity, snapshot, line.AddedAt,
	).Scan(&line.ID)
	if db.IsUniqueViolation(err) {
		return nil, shared.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("cart: insert: %w", err)
	}
	return &line, nil
}

func (r *repository) AddQuantity(ctx context.Context, ownerKey string, id int64, delta int) (*Line, error) {
	l, err := scanLine(r.pool.QueryRow(ctx,
		`UPDATE cart_line SET quantity = quantity + $3
		 WHERE id = $1 AND owner_key = $2
		 RETURNING `+lineColumns, id, ownerKey, delta))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cart: add quantity: %w", err)
	}
	return l, nil
}

func (r *repository) SetQuantity(ctx context.Context, ownerKey string, id int64, quantity int) (*Line, error) {
	l, err := scanLine(r.pool.QueryRow(ctx,
		`UPDATE cart_line SET quantity = $3
		 WHERE id = $1 AND owner_key = $2
		 RETURNING `+lineColumns, id, ownerKey, quantity))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cart: set quantity: %w", err)
	}
	return l, nil
}

func (r *repository) Delete(ctx context.Context, ownerKey string, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_line WHERE id = $1 AND owner_key = $2`, id, ownerKey)
	if err != nil {
		return fmt.Errorf("cart: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteByOwner(ctx context.Context, ownerKey string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_line WHERE owner_key = $1`, ownerKey)
	if err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}
	return nil
}

func (r *repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_line WHERE added_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cart: cleanup: %w", err)
	}
	return tag.RowsAffected(), nil
}
