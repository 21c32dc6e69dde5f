package pricing

// CalculateRequest is the JSON payload for POST /api/pricing/calculate.
// ProductID and Quantity are pointers so a missing field can be told apart
// from a zero value.
type CalculateRequest struct {
	ProductID     *int64 `json:"product_id" validate:"required"`
	Quantity      *int   `json:"quantity" validate:"required,gte=1"`
	Location      string `json:"location"`
	Urgency       string `json:"urgency"`
	UserType      string `json:"user_type"`
	PaymentMethod string `json:"payment_method"`
	DeliveryDate  string `json:"delivery_date"`
}

// QuotationItemRequest is one line item in a quotation request.
type QuotationItemRequest struct {
	ProductID      int64  `json:"product_id" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required,gte=1"`
	Specifications string `json:"specifications"`
	Company        string `json:"company"`
	Brand          string `json:"brand"`
}

// QuotationRequest is the JSON payload for POST /api/quotations/generate.
type QuotationRequest struct {
	Items           []QuotationItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerName    string                 `json:"customer_name"`
	CustomerEmail   string                 `json:"customer_email" validate:"omitempty,email"`
	DeliveryAddress string                 `json:"delivery_address"`
	Location        string                 `json:"location"`
	UserType        string                 `json:"user_type"`
	Urgency         string                 `json:"urgency"`
}
