package catalog

// ProductForm is the JSON payload for creating or updating a product.
type ProductForm struct {
	SKU           string             `json:"sku" validate:"required"`
	Name          string             `json:"name" validate:"required"`
	CategoryID    *int64             `json:"category_id,omitempty"`
	Unit          string             `json:"unit"`
	BasePrice     float64            `json:"base_price" validate:"gt=0"`
	QuantitySlabs map[string]float64 `json:"quantity_slabs,omitempty"`
	Charges       *Charges           `json:"dynamic_charges,omitempty"`
	IsActive      bool               `json:"is_active"`
}

// ListFilters represents standard product list filters.
type ListFilters struct {
	Page       int
	Limit      int
	Search     string
	SortBy     string
	SortDir    string
	IsActive   *bool
	CategoryID *int64
}
