// Package checkout converts a submitted cart into a persisted order and
// dispatches the notification mail for it.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/hfchoice/storefront/internal/mailer"
	"github.com/hfchoice/storefront/internal/orders"
	"github.com/hfchoice/storefront/internal/shared"
)

// Request is a quote submission. Items come from the caller's cart (or a
// caller-assembled line list; both forms have always been accepted) and
// are trusted as-is; checkout does not re-validate them against the live
// catalog, matching the cart's snapshot philosophy.
type Request struct {
	Cart         []orders.Item `json:"cart" validate:"required,min=1"`
	UserEmail    string        `json:"userEmail" validate:"required,email"`
	CustomerName string        `json:"customerName"`
	Phone        string        `json:"phone"`
	Notes        string        `json:"notes"`
}

// Service persists the order first and mails second. The two steps are
// deliberately independent: when a send fails the order stays on disk and
// the caller is told the request failed, so "failed" is ambiguous between
// nothing-happened and partially-happened on this one path.
type Service struct {
	repo       orders.Repository
	mail       mailer.Mailer
	staffEmail string
	now        func() time.Time
}

// NewService constructs a new Service.
func NewService(repo orders.Repository, mail mailer.Mailer, staffEmail string) *Service {
	return &Service{repo: repo, mail: mail, staffEmail: staffEmail, now: time.Now}
}

// Submit validates the request, persists the order with status Quote and
// sends the staff notification plus the customer confirmation.
func (s *Service) Submit(ctx context.Context, ownerKey string, req Request) (*orders.Order, error) {
	if len(req.Cart) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", shared.ErrInvalidArgument)
	}
	if req.UserEmail == "" {
		return nil, fmt.Errorf("%w: requester email is required", shared.ErrInvalidArgument)
	}

	totalItems := 0
	for _, item := range req.Cart {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		totalItems += quantity
	}

	order, err := s.repo.Create(ctx, orders.Order{
		OwnerKey:     ownerKey,
		Email:        req.UserEmail,
		Status:       orders.StatusQuote,
		Items:        req.Cart,
		TotalItems:   totalItems,
		Notes:        req.Notes,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	at := s.now()
	if err := s.mail.Send(mailer.StaffNotification(s.staffEmail, order, at)); err != nil {
		return order, fmt.Errorf("%w: staff notification for order %d: %v", shared.ErrDependencyFailure, order.ID, err)
	}
	if err := s.mail.Send(mailer.CustomerConfirmation(order, at)); err != nil {
		return order, fmt.Errorf("%w: confirmation for order %d: %v", shared.ErrDependencyFailure, order.ID, err)
	}
	return order, nil
}
