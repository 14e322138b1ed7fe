// Package ambassadormodels - influencer contacts and their interaction log.
// Contacts share the affiliates collection with plain affiliates behind a
// contactType discriminator.
package ambassadormodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact type discriminator values.
const (
	ContactTypeAmbassador = "ambassador"
	ContactTypeAffiliate  = "affiliate"
)

// Contact statuses.
const (
	ContactStatusProspect    = "prospect"
	ContactStatusContacted   = "contacted"
	ContactStatusNegotiating = "negotiating"
	ContactStatusConverted   = "converted"
	ContactStatusDeclined    = "declined"
	ContactStatusActive      = "active"
)

// Influencer tiers by follower count.
const (
	TierNano  = "nano"  // < 10k
	TierMicro = "micro" // < 100k
	TierMacro = "macro" // < 1M
	TierMega  = "mega"  // >= 1M
)

// Activity types.
const (
	ActivityCall        = "call"
	ActivityEmail       = "email"
	ActivityMeeting     = "meeting"
	ActivityNote        = "note"
	ActivityProposal    = "proposal"
	ActivityContract    = "contract"
	ActivityContent     = "content"
	ActivityFollowUp    = "follow_up"
	ActivitySocialMedia = "social_media"
)

// IsValidContactStatus reports whether s is a known contact status.
func IsValidContactStatus(s string) bool {
	switch s {
	case ContactStatusProspect, ContactStatusContacted, ContactStatusNegotiating,
		ContactStatusConverted, ContactStatusDeclined, ContactStatusActive:
		return true
	}
	return false
}

// Platform is one social-media presence of a contact.
type Platform struct {
	Handle      string `json:"handle,omitempty" bson:"handle,omitempty"`
	Followers   int64  `json:"followers,omitempty" bson:"followers,omitempty"`
	Subscribers int64  `json:"subscribers,omitempty" bson:"subscribers,omitempty"`
	URL         string `json:"url,omitempty" bson:"url,omitempty"`
}

// Audience returns the platform's reach, whichever field the platform uses.
func (p Platform) Audience() int64 {
	if p.Followers > p.Subscribers {
		return p.Followers
	}
	return p.Subscribers
}

// Contact is an influencer/affiliate prospect (affiliates collection).
type Contact struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ContactType string `json:"contactType" bson:"contactType"`
	Name        string `json:"name" bson:"name"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`

	Platforms      map[string]Platform `json:"platforms,omitempty" bson:"platforms,omitempty"`
	InfluencerTier string              `json:"influencerTier,omitempty" bson:"influencerTier,omitempty"`

	Status string   `json:"status" bson:"status"`
	Tags   []string `json:"tags,omitempty" bson:"tags,omitempty"`

	// Active gates visibility in the affiliate admin view. One-way: set by
	// the activate operation, never cleared.
	Active        bool   `json:"active" bson:"active"`
	AffiliateCode string `json:"affiliateCode,omitempty" bson:"affiliateCode,omitempty"`

	LastContactAt int64 `json:"lastContactAt,omitempty" bson:"lastContactAt,omitempty"` // unix ms

	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// MaxAudience returns the contact's largest audience across platforms.
func (c *Contact) MaxAudience() int64 {
	var max int64
	for _, p := range c.Platforms {
		if a := p.Audience(); a > max {
			max = a
		}
	}
	return max
}

// DeriveTier buckets a follower count into an influencer tier.
func DeriveTier(audience int64) string {
	switch {
	case audience >= 1_000_000:
		return TierMega
	case audience >= 100_000:
		return TierMacro
	case audience >= 10_000:
		return TierMicro
	default:
		return TierNano
	}
}

// AmbassadorActivity is one interaction record attached to a contact
// (ambassador_activities collection). Deleted independently of the contact.
type AmbassadorActivity struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ContactID   primitive.ObjectID `json:"contactId" bson:"contactId"`
	Type        string             `json:"type" bson:"type"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`

	// Tags harvested from the description (hashtags plus keyword matches).
	Tags []string `json:"tags,omitempty" bson:"tags,omitempty"`

	Priority     string `json:"priority,omitempty" bson:"priority,omitempty"`
	FollowUpDate int64  `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"` // unix ms

	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
