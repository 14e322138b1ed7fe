// Package affiliatemodels - affiliate click tracking documents.
package affiliatemodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AffiliateClick is one tracked landing (affiliate_clicks collection). A
// click converts when an order later arrives with the same affiliate code.
type AffiliateClick struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ClickID       string `json:"clickId" bson:"clickId"` // uuid
	AffiliateCode string `json:"affiliateCode" bson:"affiliateCode"`

	LandingPage string `json:"landingPage,omitempty" bson:"landingPage,omitempty"`
	Referrer    string `json:"referrer,omitempty" bson:"referrer,omitempty"`
	UserAgent   string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	IP          string `json:"ip,omitempty" bson:"ip,omitempty"`

	Converted   bool               `json:"converted" bson:"converted"`
	OrderID     primitive.ObjectID `json:"orderId,omitempty" bson:"orderId,omitempty"`
	ConvertedAt int64              `json:"convertedAt,omitempty" bson:"convertedAt,omitempty"` // unix ms

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
