package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service wraps catalog business rules. All mutations are admin-gated at
// the HTTP layer; reads are open to any authenticated caller.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService constructs a new Service.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns products matching the filters plus the unpaged total.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

// ListVisible is the shopper path: visible products only, served from the
// cache when warm.
func (s *Service) ListVisible(ctx context.Context) ([]Product, error) {
	return s.cache.VisibleProducts(ctx, func(ctx context.Context) ([]Product, error) {
		products, _, err := s.repo.List(ctx, ListFilters{VisibleOnly: true})
		return products, err
	})
}

// Get fetches a single product by id.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a product. Visibility defaults to true when the form leaves
// it unset.
func (s *Service) Create(ctx context.Context, form ProductForm) (*Product, error) {
	if err := s.validate(form); err != nil {
		return nil, err
	}
	p := productFromForm(form)
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

// Update edits a product. Cart snapshots holding the old values are left
// untouched on purpose: a snapshot is captured once at add time.
func (s *Service) Update(ctx context.Context, id int64, form ProductForm) (*Product, error) {
	if err := s.validate(form); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, productFromForm(form))
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.cache.Invalidate(ctx)
	return updated, nil
}

// Delete removes a product permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

// ToggleVisibility flips the visible flag.
func (s *Service) ToggleVisibility(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.ToggleVisibility(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle visibility: %w", err)
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

// MintImageKey assigns a fresh blob-store key to the product and returns
// the updated record. The binary upload happens directly against the blob
// store using this key.
func (s *Service) MintImageKey(ctx context.Context, id int64) (*Product, error) {
	ref := "products/" + uuid.NewString()
	p, err := s.repo.SetImageRef(ctx, id, ref)
	if err != nil {
		return nil, fmt.Errorf("mint image key: %w", err)
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

func productFromForm(form ProductForm) Product {
	visible := true
	if form.Visible != nil {
		visible = *form.Visible
	}
	return Product{
		Code:           form.Code,
		Description:    form.Description,
		Model:          form.Model,
		Brand:          form.Brand,
		Group:          form.Group,
		Unit:           form.Unit,
		Cost:           form.Cost,
		PriceA:         form.PriceA,
		PriceB:         form.PriceB,
		PriceC:         form.PriceC,
		PriceD:         form.PriceD,
		Inventory:      form.Inventory,
		UnitsPerCarton: form.UnitsPerCarton,
		Cartons:        form.Cartons,
		Visible:        visible,
	}
}
