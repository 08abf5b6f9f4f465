package orders

import "time"

// Status labels where a quote request sits in the staff workflow. The set
// is a flat enum: any authorized caller may set any value from any state.
// The original storefront shipped this way (note the historical lowercase
// values) and clients depend on the exact strings, so no transition table
// is enforced here.
type Status string

const (
	StatusQuote      Status = "Quote"
	StatusPlaced     Status = "Placed"
	StatusShipped    Status = "shipped"
	StatusDelivering Status = "delivering"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

var knownStatuses = map[Status]struct{}{
	StatusQuote:      {},
	StatusPlaced:     {},
	StatusShipped:    {},
	StatusDelivering: {},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// Valid reports whether the status is one of the six enumerated values.
func (s Status) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// Item is one requested line inside an order. Items are denormalized
// copies taken from the cart at submission time, never references back
// into the catalog.
type Item struct {
	Description string  `json:"description"`
	Code        string  `json:"code"`
	Brand       string  `json:"brand,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Cost        float64 `json:"cost,omitempty"`
	Quantity    int     `json:"quantity"`
}

// Order is a submitted quote request. Everything except Status and
// UpdatedAt is immutable after creation, and orders are never deleted
// through the API.
type Order struct {
	ID           int64     `json:"id"`
	OwnerKey     string    `json:"ownerKey"`
	Email        string    `json:"email"`
	Status       Status    `json:"status"`
	Items        []Item    `json:"items"`
	TotalItems   int       `json:"totalItems"`
	Notes        string    `json:"notes,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
