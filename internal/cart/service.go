package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hfchoice/storefront/internal/catalog"
	"github.com/hfchoice/storefront/internal/shared"
)

// ProductSource resolves live catalog state when a line is first added.
type ProductSource interface {
	Get(ctx context.Context, id int64) (*catalog.Product, error)
}

// Service maintains a consistent, idempotent-on-product view of what an
// authenticated user intends to request. All operations are scoped to the
// owner key extracted from the verified credential.
type Service struct {
	repo     Repository
	products ProductSource
	now      func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, products ProductSource) *Service {
	return &Service{repo: repo, products: products, now: time.Now}
}

// ListItems returns all lines for the owner in added-time order. An empty
// cart is an empty slice, not an error.
func (s *Service) ListItems(ctx context.Context, ownerKey string) ([]Line, error) {
	lines, err := s.repo.ListByOwner(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}

// AddItem adds quantity of a product to the owner's cart. When a line for
// the product already exists its quantity is incremented and its snapshot
// is left as captured on the first add; otherwise a new line is created
// with a fresh snapshot of the current product state.
//
// The read-then-write sequence here is not atomic. Two identical requests
// racing for the same (owner, product) pair can both miss the existing
// line; the unique constraint rejects the second insert and the loser
// retries as an increment.
func (s *Service) AddItem(ctx context.Context, ownerKey string, productID int64, quantity int) (*Line, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", shared.ErrInvalidArgument)
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("%w: item not found", shared.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	existing, err := s.repo.FindByOwnerAndProduct(ctx, ownerKey, productID)
	if err == nil {
		return s.repo.AddQuantity(ctx, ownerKey, existing.ID, quantity)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("find cart line: %w", err)
	}

	line := Line{
		OwnerKey:  ownerKey,
		ProductID: productID,
		Quantity:  quantity,
		Snapshot:  snapshotOf(product, s.now()),
		AddedAt:   s.now(),
	}
	created, err := s.repo.Insert(ctx, line)
	if errors.Is(err, shared.ErrConflict) {
		// Lost the race against a concurrent add of the same product.
		racer, findErr := s.repo.FindByOwnerAndProduct(ctx, ownerKey, productID)
		if findErr != nil {
			return nil, fmt.Errorf("recover from duplicate add: %w", findErr)
		}
		return s.repo.AddQuantity(ctx, ownerKey, racer.ID, quantity)
	}
	if err != nil {
		return nil, fmt.Errorf("insert cart line: %w", err)
	}
	return created, nil
}

// UpdateQuantity replaces the quantity on a line the owner holds. Removal
// goes through RemoveItem, not a zero quantity.
func (s *Service) UpdateQuantity(ctx context.Context, ownerKey string, lineID int64, quantity int) (*Line, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", shared.ErrInvalidArgument)
	}
	return s.repo.SetQuantity(ctx, ownerKey, lineID, quantity)
}

// RemoveItem deletes a line scoped to the owner. A line held by another
// owner reads as absent.
func (s *Service) RemoveItem(ctx context.Context, ownerKey string, lineID int64) error {
	return s.repo.Delete(ctx, ownerKey, lineID)
}

// Clear empties the owner's cart. Clearing an already-empty cart succeeds.
func (s *Service) Clear(ctx context.Context, ownerKey string) error {
	return s.repo.DeleteByOwner(ctx, ownerKey)
}

// Summarize totals the cart from line snapshots. TotalValue is rounded to
// two decimal places.
func (s *Service) Summarize(ctx context.Context, ownerKey string) (Summary, error) {
	lines, err := s.repo.ListByOwner(ctx, ownerKey)
	if err != nil {
		return Summary{}, err
	}
	var summary Summary
	var value float64
	for _, l := range lines {
		summary.TotalItems += l.Quantity
		value += l.Snapshot.Cost * float64(l.Quantity)
	}
	summary.TotalValue = math.Round(value*100) / 100
	summary.LineCount = len(lines)
	return summary, nil
}

func snapshotOf(p *catalog.Product, at time.Time) Snapshot {
	return Snapshot{
		ProductID:   p.ID,
		Code:        p.Code,
		Description: p.Description,
		Brand:       p.Brand,
		Unit:        p.Unit,
		Cost:        p.Cost,
		ImageRef:    p.ImageRef,
		Visible:     p.Visible,
		CapturedAt:  at,
	}
}
