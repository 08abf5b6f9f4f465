package catalog

// ProductForm carries the fields an admin may set when creating or
// editing a product.
type ProductForm struct {
	Code           string  `json:"code" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	Model          string  `json:"model"`
	Brand          string  `json:"brand"`
	Group          string  `json:"group"`
	Unit           string  `json:"unit"`
	Cost           float64 `json:"cost" validate:"gte=0"`
	PriceA         string  `json:"priceA"`
	PriceB         string  `json:"priceB"`
	PriceC         string  `json:"priceC"`
	PriceD         string  `json:"priceD"`
	Inventory      int     `json:"inventory" validate:"gte=0"`
	UnitsPerCarton int     `json:"unitsPerCarton" validate:"gte=0"`
	Cartons        int     `json:"cartons" validate:"gte=0"`
	Visible        *bool   `json:"visible"`
}

// ListFilters narrows product listings. VisibleOnly is forced on the
// shopper path regardless of what the client sends.
type ListFilters struct {
	Search      string
	Group       string
	Brand       string
	VisibleOnly bool
	Page        int
	Limit       int
}
