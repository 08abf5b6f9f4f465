package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfchoice/storefront/internal/shared"
)

// Repository provides PostgreSQL backed persistence for orders.
type Repository interface {
	Create(ctx context.Context, order Order) (*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	GetForOwner(ctx context.Context, id int64, ownerKey string) (*Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByOwner(ctx context.Context, ownerKey string) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const orderColumns = `id, owner_key, email, status, items, total_items,
	notes, customer_name, phone, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var items []byte
	err := row.Scan(&o.ID, &o.OwnerKey, &o.Email, &o.Status, &items, &o.TotalItems,
		&o.Notes, &o.CustomerName, &o.Phone, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, order Order) (*Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("orders: encode items: %w", err)
	}
	now := time.Now()
	err = r.pool.QueryRow(ctx,
		`INSERT INTO order_request (owner_key, email, status, items, total_items,
			notes, customer_name, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		 RETURNING id`,
		order.OwnerKey, order.Email, order.Status, items, order.TotalItems,
		order.Notes, order.CustomerName, order.Phone, now,
	).Scan(&order.ID)
	if err != nil {
		return nil, fmt.Errorf("orders: create: %w", err)
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	return &order, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM order_request WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: get: %w", err)
	}
	return o, nil
}

func (r *repository) GetForOwner(ctx context.Context, id int64, ownerKey string) (*Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM order_request WHERE id = $1 AND owner_key = $2`,
		id, ownerKey))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: get for owner: %w", err)
	}
	return o, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM order_request ORDER BY created_at DESC`)
}

func (r *repository) ListByOwner(ctx context.Context, ownerKey string) ([]Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM order_request WHERE owner_key = $1 ORDER BY created_at DESC`,
		ownerKey)
}

func (r *repository) list(ctx context.Context, query string, args ...interface{}) ([]Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("orders: scan: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`UPDATE order_request SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+orderColumns, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: update status: %w", err)
	}
	return o, nil
}
