package catalog

// Product is a catalog entry. Code is the human-entered business
// identifier and is not guaranteed unique; ID is. Tier prices are kept as
// entered, including blanks.
type Product struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	Model          string  `json:"model"`
	Brand          string  `json:"brand"`
	Group          string  `json:"group"`
	Unit           string  `json:"unit"`
	Cost           float64 `json:"cost"`
	PriceA         string  `json:"priceA"`
	PriceB         string  `json:"priceB"`
	PriceC         string  `json:"priceC"`
	PriceD         string  `json:"priceD"`
	Inventory      int     `json:"inventory"`
	UnitsPerCarton int     `json:"unitsPerCarton"`
	Cartons        int     `json:"cartons"`
	ImageRef       string  `json:"imageRef"`
	Visible        bool    `json:"visible"`
}
