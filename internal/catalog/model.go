package catalog

import (
	"time"
)

// Charges holds the per-product supplementary fees applied on top of the base
// price. Tax is expressed in percentage points; nil means the statutory
// default applies.
type Charges struct {
	Loading  float64  `json:"loading"`
	Delivery float64  `json:"delivery"`
	Tax      *float64 `json:"tax,omitempty"`
}

// Product represents a sellable construction material.
//
// QuantitySlabs maps a slab-range key ("1-20", "21-100", "101+") to the
// per-unit price for that range. Keys are unordered in storage.
type Product struct {
	ID            int64              `json:"id"`
	SKU           string             `json:"sku"`
	Name          string             `json:"name"`
	CategoryID    *int64             `json:"category_id,omitempty"`
	Unit          string             `json:"unit"`
	BasePrice     float64            `json:"base_price"`
	QuantitySlabs map[string]float64 `json:"quantity_slabs,omitempty"`
	Charges       *Charges           `json:"dynamic_charges,omitempty"`
	IsActive      bool               `json:"is_active"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
