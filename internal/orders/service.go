package orders

import (
	"context"
	"fmt"

	"github.com/hfchoice/storefront/internal/shared"
	"github.com/hfchoice/storefront/internal/users"
)

// Service enforces role-scoped access to submitted orders and executes
// status transitions.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all orders for admins, and only the caller's own orders
// otherwise, newest first.
func (s *Service) List(ctx context.Context, callerOwnerKey string, callerRole users.Role) ([]Order, error) {
	var (
		orders []Order
		err    error
	)
	if callerRole == users.RoleAdmin {
		orders, err = s.repo.ListAll(ctx)
	} else {
		orders, err = s.repo.ListByOwner(ctx, callerOwnerKey)
	}
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// Get fetches one order. Admins may fetch any order; other callers only
// their own. A non-admin asking for another owner's order sees NotFound
// rather than PermissionDenied so the request does not confirm the order
// exists.
func (s *Service) Get(ctx context.Context, id int64, callerOwnerKey string, callerRole users.Role) (*Order, error) {
	if callerRole == users.RoleAdmin {
		return s.repo.Get(ctx, id)
	}
	return s.repo.GetForOwner(ctx, id, callerOwnerKey)
}

// UpdateStatus sets an order's status. Admin only; the new status must be
// one of the six enumerated values but may follow the current status in
// any order (see the Status doc).
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status, callerRole users.Role) (*Order, error) {
	if callerRole != users.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", shared.ErrPermissionDenied)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", shared.ErrInvalidArgument, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
