// Package customermodels - purchasing accounts and their CRM activity log.
package customermodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer CRM statuses. Reassigned only by the status automation (admin
// overrides go through the same service).
const (
	StatusProspect = "prospect"
	StatusActive   = "active"
	StatusVIP      = "vip"
	StatusInactive = "inactive"
)

// IsValidCustomerStatus reports whether s is a known CRM status.
func IsValidCustomerStatus(s string) bool {
	switch s {
	case StatusProspect, StatusActive, StatusVIP, StatusInactive:
		return true
	}
	return false
}

// Customer is a purchasing account (users collection). Covers both B2B and
// B2C buyers; company fields stay empty for B2C.
type Customer struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	FirebaseUID string `json:"firebaseUid,omitempty" bson:"firebaseUid,omitempty"`
	Email       string `json:"email" bson:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
	Role        string `json:"role" bson:"role"` // admin | customer

	Company   string `json:"company,omitempty" bson:"company,omitempty"`
	OrgNumber string `json:"orgNumber,omitempty" bson:"orgNumber,omitempty"`

	// CRM fields maintained by the status automation.
	Status             string   `json:"status" bson:"status"`
	Tags               []string `json:"tags,omitempty" bson:"tags,omitempty"`
	Priority           string   `json:"priority,omitempty" bson:"priority,omitempty"`
	LastStatusUpdate   int64    `json:"lastStatusUpdate,omitempty" bson:"lastStatusUpdate,omitempty"` // unix ms
	StatusUpdateReason string   `json:"statusUpdateReason,omitempty" bson:"statusUpdateReason,omitempty"`

	LastLoginAt int64 `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// Activity is one CRM activity record for a customer (activities collection).
// The automation counts these over a trailing window to judge engagement.
type Activity struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CustomerID  primitive.ObjectID `json:"customerId" bson:"customerId"`
	Type        string             `json:"type" bson:"type"` // call | email | meeting | note | login | order
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedBy   string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
