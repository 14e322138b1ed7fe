package ordermodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"b8_shield/internal/utility"
)

// OrderItem is one line of an order.
type OrderItem struct {
	Name     string  `json:"name" bson:"name"`
	Color    string  `json:"color" bson:"color"`
	Size     string  `json:"size" bson:"size"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

// StatusChange is one audit entry in an order's statusHistory. The history is
// append-only: every status mutation appends exactly one entry.
type StatusChange struct {
	From        string `json:"from" bson:"from"`
	To          string `json:"to" bson:"to"`
	ChangedBy   string `json:"changedBy" bson:"changedBy"` // actor id
	DisplayName string `json:"displayName" bson:"displayName"`
	ChangedAt   int64  `json:"changedAt" bson:"changedAt"` // unix ms
}

// CustomerInfo is the order's embedded customer snapshot. B2B orders carry
// company/orgNumber; B2C orders leave them empty.
type CustomerInfo struct {
	Name       string `json:"name,omitempty" bson:"name,omitempty"`
	Email      string `json:"email,omitempty" bson:"email,omitempty"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
	Company    string `json:"company,omitempty" bson:"company,omitempty"`
	OrgNumber  string `json:"orgNumber,omitempty" bson:"orgNumber,omitempty"`
	Address    string `json:"address,omitempty" bson:"address,omitempty"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
}

// Order is a purchase request (orders collection).
type Order struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Identity
	OrderNumber string `json:"orderNumber" bson:"orderNumber"` // B8-YYYYMMDD-NNNN

	// State
	Status        string         `json:"status" bson:"status"`
	StatusHistory []StatusChange `json:"statusHistory" bson:"statusHistory"`

	// Content
	Items []OrderItem `json:"items" bson:"items"`

	// Origin
	Source        string             `json:"source" bson:"source"` // b2b | b2c
	AffiliateCode string             `json:"affiliateCode,omitempty" bson:"affiliateCode,omitempty"`
	UserID        primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	CustomerInfo  CustomerInfo       `json:"customerInfo" bson:"customerInfo"`

	// Amounts (SEK). Zero values fall back to computed columns in the CSV
	// export.
	Subtotal     float64 `json:"subtotal,omitempty" bson:"subtotal,omitempty"`
	Shipping     float64 `json:"shipping,omitempty" bson:"shipping,omitempty"`
	Discount     float64 `json:"discount,omitempty" bson:"discount,omitempty"`
	VAT          float64 `json:"vat,omitempty" bson:"vat,omitempty"`
	TotalAmount  float64 `json:"totalAmount,omitempty" bson:"totalAmount,omitempty"`
	Total        float64 `json:"total,omitempty" bson:"total,omitempty"` // legacy field, older documents
	DiscountCode string  `json:"discountCode,omitempty" bson:"discountCode,omitempty"`
	Currency     string  `json:"currency,omitempty" bson:"currency,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`

	// Fulfilment
	TrackingNumber string `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	Carrier        string `json:"carrier,omitempty" bson:"carrier,omitempty"`

	// Cancellation
	CancelledBy string `json:"cancelledBy,omitempty" bson:"cancelledBy,omitempty"`
	CancelledAt int64  `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`

	// Version guards the read-modify-write on status updates (conditional
	// update; concurrent admin edits retry instead of clobbering history).
	Version int64 `json:"version" bson:"version"`

	// OrderDate carries the order date of migrated documents in whatever
	// shape the source system stored it (RFC3339 string, epoch value,
	// Firestore timestamp map). Documents created here leave it empty and
	// rely on createdAt.
	OrderDate interface{} `json:"orderDate,omitempty" bson:"orderDate,omitempty"`

	// Metadata (unix ms)
	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// OrderTime resolves the order date, preferring the migrated orderDate field
// over createdAt.
func (o *Order) OrderTime() time.Time {
	if o.OrderDate != nil {
		if t, err := utility.NewDateSource(o.OrderDate).Time(); err == nil {
			return t
		}
	}
	return time.UnixMilli(o.CreatedAt)
}

// EffectiveTotal returns the order total with the legacy fallback chain.
func (o *Order) EffectiveTotal() float64 {
	if o.TotalAmount > 0 {
		return o.TotalAmount
	}
	return o.Total
}

// ComputedSubtotal returns the stored subtotal or the sum of quantity×price
// when absent.
func (o *Order) ComputedSubtotal() float64 {
	if o.Subtotal > 0 {
		return o.Subtotal
	}
	var sum float64
	for _, item := range o.Items {
		sum += float64(item.Quantity) * item.Price
	}
	return sum
}

// OrderCounter is the per-day sequence document backing order numbers
// (order_counters collection).
type OrderCounter struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Date string             `bson:"date"` // YYYYMMDD
	Seq  int64              `bson:"seq"`
}
