package pricing

import (
	"time"
)

// Location tiers recognised by the surcharge table. Anything else is priced
// with the fallback multiplier.
const (
	LocationLocal    = "local"
	LocationCity     = "city"
	LocationSuburban = "suburban"
	LocationRural    = "rural"
	LocationRemote   = "remote"
)

// Urgency tiers. Unrecognised values degrade to standard behaviour.
const (
	UrgencyStandard = "standard"
	UrgencyUrgent   = "urgent"
	UrgencyExpress  = "express"
)

// Context carries the per-request order parameters for one pricing
// calculation. UserType, PaymentMethod and DeliveryDate are accepted and
// echoed through but do not affect the computed price yet.
type Context struct {
	Quantity      int    `json:"quantity"`
	Location      string `json:"location,omitempty"`
	Urgency       string `json:"urgency,omitempty"`
	UserType      string `json:"user_type,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	DeliveryDate  string `json:"delivery_date,omitempty"`
}

// Breakdown is the immutable result of one pricing calculation.
//
// FinalPrice is the effective per-unit price after slab matching. TotalAmount
// is the grand total for the full quantity including all charges and tax.
type Breakdown struct {
	BasePrice         float64 `json:"base_price"`
	QuantityDiscount  float64 `json:"quantity_discount"`
	LocationSurcharge float64 `json:"location_surcharge"`
	UrgencyCharge     float64 `json:"urgency_charge"`
	DeliveryCharge    float64 `json:"delivery_charge"`
	LoadingCharge     float64 `json:"loading_charge"`
	TaxAmount         float64 `json:"tax_amount"`
	FinalPrice        float64 `json:"final_price"`
	TotalAmount       float64 `json:"total_amount"`
	Savings           float64 `json:"savings"`
}

// QuotationItem is one priced line inside a quotation.
type QuotationItem struct {
	ProductID      int64     `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	Specifications string    `json:"specifications,omitempty"`
	Company        string    `json:"company,omitempty"`
	Brand          string    `json:"brand,omitempty"`
	Breakdown      Breakdown `json:"breakdown"`
}

// Quotation aggregates per-product breakdowns into a time-bounded offer. It is
// a computed value object; nothing here is persisted.
type Quotation struct {
	ID               string          `json:"id"`
	Items            []QuotationItem `json:"items"`
	TotalAmount      float64         `json:"total_amount"`
	TotalSavings     float64         `json:"total_savings"`
	DeliveryEstimate string          `json:"delivery_estimate"`
	ValidUntil       time.Time       `json:"valid_until"`
	GeneratedAt      time.Time       `json:"generated_at"`
	CustomerName     string          `json:"customer_name,omitempty"`
	CustomerEmail    string          `json:"customer_email,omitempty"`
	DeliveryAddress  string          `json:"delivery_address,omitempty"`
	Terms            []string        `json:"terms"`
}

// ItemRequest identifies one product line to quote.
type ItemRequest struct {
	ProductID      int64  `json:"product_id"`
	Quantity       int    `json:"quantity"`
	Specifications string `json:"specifications,omitempty"`
	Company        string `json:"company,omitempty"`
	Brand          string `json:"brand,omitempty"`
}
