package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hfchoice/storefront/internal/shared"
)

// Service wraps user provisioning and role lookup rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the user record for a verified identity, provisioning a
// Viewer record on first sight. The returned role is authoritative for all
// authorization checks in the same request.
func (s *Service) Resolve(ctx context.Context, id shared.Identity) (*User, error) {
	user, err := s.repo.GetByOwnerKey(ctx, id.OwnerKey)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	created, err := s.repo.Create(ctx, User{
		OwnerKey: id.OwnerKey,
		Email:    id.Email,
		Role:     RoleViewer,
	})
	if errors.Is(err, shared.ErrConflict) {
		// Lost a provisioning race with a parallel request for the same key.
		return s.repo.GetByOwnerKey(ctx, id.OwnerKey)
	}
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}
	return created, nil
}

// List returns all user records.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get fetches a single user by owner key.
func (s *Service) Get(ctx context.Context, ownerKey string) (*User, error) {
	return s.repo.GetByOwnerKey(ctx, ownerKey)
}

// Create registers a user record ahead of first sign-in. Duplicate emails
// are rejected with ErrConflict.
func (s *Service) Create(ctx context.Context, ownerKey, email string, role Role) (*User, error) {
	ownerKey = strings.TrimSpace(ownerKey)
	email = strings.TrimSpace(email)
	if ownerKey == "" || email == "" {
		return nil, fmt.Errorf("%w: owner key and email are required", shared.ErrInvalidArgument)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", shared.ErrInvalidArgument, role)
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", shared.ErrConflict)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	return s.repo.Create(ctx, User{OwnerKey: ownerKey, Email: email, Role: role})
}

// SetRole changes a user's role.
func (s *Service) SetRole(ctx context.Context, ownerKey string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", shared.ErrInvalidArgument, role)
	}
	return s.repo.UpdateRole(ctx, ownerKey, role)
}
