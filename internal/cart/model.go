package cart

import "time"

// Snapshot is an immutable, point-in-time copy of the product fields a
// cart line displays and prices against. It is captured exactly once when
// the line is created and never refreshed, so it may drift from the live
// product record. That drift is intended behavior, not a bug.
type Snapshot struct {
	ProductID   int64     `json:"productId"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Brand       string    `json:"brand"`
	Unit        string    `json:"unit"`
	Cost        float64   `json:"cost"`
	ImageRef    string    `json:"imageRef"`
	Visible     bool      `json:"visible"`
	CapturedAt  time.Time `json:"capturedAt"`
}

// Line is one entry in a user's cart. At most one line exists per
// (owner, product) pair; the storage layer enforces this with a unique
// constraint.
type Line struct {
	ID        int64     `json:"id"`
	OwnerKey  string    `json:"-"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Snapshot  Snapshot  `json:"itemSnapshot"`
	AddedAt   time.Time `json:"addedAt"`
}

// Summary aggregates a cart for display. TotalValue is computed from each
// line's snapshot cost, not the live product cost.
type Summary struct {
	TotalItems int     `json:"totalItems"`
	TotalValue float64 `json:"totalValue"`
	LineCount  int     `json:"lineCount"`
}
