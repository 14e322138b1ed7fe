// Package orderdto defines the request payloads for the order endpoints.
package orderdto

import (
	ordermodels "b8_shield/internal/api/order/models"
)

// OrderItemInput is one explicit order line.
type OrderItemInput struct {
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// FordelningEntry is one legacy distribution row (variant + quantity). Older
// storefront clients send fordelning instead of items.
type FordelningEntry struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// CreateOrderInput creates a new order.
type CreateOrderInput struct {
	Items      []OrderItemInput  `json:"items" validate:"dive"`
	Fordelning []FordelningEntry `json:"fordelning" validate:"dive"`

	Source        string                   `json:"source" validate:"order_source"`
	AffiliateCode string                   `json:"affiliateCode"`
	CustomerInfo  ordermodels.CustomerInfo `json:"customerInfo"`

	Subtotal      float64 `json:"subtotal" validate:"gte=0"`
	Shipping      float64 `json:"shipping" validate:"gte=0"`
	Discount      float64 `json:"discount" validate:"gte=0"`
	VAT           float64 `json:"vat" validate:"gte=0"`
	TotalAmount   float64 `json:"totalAmount" validate:"gte=0"`
	DiscountCode  string  `json:"discountCode"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"paymentMethod"`
}

// UpdateStatusInput moves an order to a new status. Additional carries extra
// fields written together with the status (trackingNumber, carrier, ...).
type UpdateStatusInput struct {
	Status     string                 `json:"status" validate:"required,order_status"`
	Additional map[string]interface{} `json:"additional"`
}
