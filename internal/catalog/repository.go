package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfchoice/storefront/internal/shared"
)

// Repository provides PostgreSQL backed persistence for products.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id int64, p Product) (*Product, error)
	Delete(ctx context.Context, id int64) error
	ToggleVisibility(ctx context.Context, id int64) (*Product, error)
	SetImageRef(ctx context.Context, id int64, ref string) (*Product, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, code, description, model, brand, grp, unit, cost,
	price_a, price_b, price_c, price_d, inventory, units_per_carton, cartons,
	image_ref, visible`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Code, &p.Description, &p.Model, &p.Brand, &p.Group,
		&p.Unit, &p.Cost, &p.PriceA, &p.PriceB, &p.PriceC, &p.PriceD,
		&p.Inventory, &p.UnitsPerCarton, &p.Cartons, &p.ImageRef, &p.Visible)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		ph := `$` + strconv.Itoa(argCount)
		where += ` AND (description ILIKE ` + ph + ` OR code ILIKE ` + ph + ` OR brand ILIKE ` + ph + `)`
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Group != "" {
		argCount++
		where += ` AND grp = $` + strconv.Itoa(argCount)
		args = append(args, filters.Group)
	}
	if filters.Brand != "" {
		argCount++
		where += ` AND brand = $` + strconv.Itoa(argCount)
		args = append(args, filters.Brand)
	}
	if filters.VisibleOnly {
		where += ` AND visible = TRUE`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM product`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("catalog: count: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM product` + where + ` ORDER BY id`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("catalog: scan: %w", err)
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM product WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: get: %w", err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (*Product, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO product (code, description, model, brand, grp, unit, cost,
			price_a, price_b, price_c, price_d, inventory, units_per_carton,
			cartons, image_ref, visible)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id`,
		p.Code, p.Description, p.Model, p.Brand, p.Group, p.Unit, p.Cost,
		p.PriceA, p.PriceB, p.PriceC, p.PriceD, p.Inventory, p.UnitsPerCarton,
		p.Cartons, p.ImageRef, p.Visible,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("catalog: create: %w", err)
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Product) (*Product, error) {
	updated, err := scanProduct(r.pool.QueryRow(ctx,
		`UPDATE product SET code = $2, description = $3, model = $4, brand = $5,
			grp = $6, unit = $7, cost = $8, price_a = $9, price_b = $10,
			price_c = $11, price_d = $12, inventory = $13, units_per_carton = $14,
			cartons = $15, visible = $16
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, p.Code, p.Description, p.Model, p.Brand, p.Group, p.Unit, p.Cost,
		p.PriceA, p.PriceB, p.PriceC, p.PriceD, p.Inventory, p.UnitsPerCarton,
		p.Cartons, p.Visible))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: update: %w", err)
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) ToggleVisibility(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`UPDATE product SET visible = NOT visible WHERE id = $1 RETURNING `+productColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: toggle visibility: %w", err)
	}
	return p, nil
}

func (r *repository) SetImageRef(ctx context.Context, id int64, ref string) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`UPDATE product SET image_ref = $2 WHERE id = $1 RETURNING `+productColumns, id, ref))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: set image ref: %w", err)
	}
	return p, nil
}
