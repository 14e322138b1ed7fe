// Package ambassadordto defines request payloads for the ambassador module.
package ambassadordto

// PlatformInput is one social-media presence.
type PlatformInput struct {
	Handle      string `json:"handle"`
	Followers   int64  `json:"followers" validate:"gte=0"`
	Subscribers int64  `json:"subscribers" validate:"gte=0"`
	URL         string `json:"url"`
}

// CreateContactInput creates a new ambassador contact.
type CreateContactInput struct {
	Name      string                   `json:"name" validate:"required,no_xss"`
	Email     string                   `json:"email" validate:"omitempty,email"`
	Phone     string                   `json:"phone"`
	Platforms map[string]PlatformInput `json:"platforms" validate:"dive"`
	Tags      []string                 `json:"tags" validate:"dive,no_xss"`
	Notes     string                   `json:"notes" validate:"no_xss"`
}

// UpdateContactInput updates contact fields.
type UpdateContactInput struct {
	Name      string                   `json:"name" validate:"omitempty,no_xss"`
	Email     string                   `json:"email" validate:"omitempty,email"`
	Phone     string                   `json:"phone"`
	Status    string                   `json:"status" validate:"omitempty,contact_status"`
	Platforms map[string]PlatformInput `json:"platforms" validate:"dive"`
	Tags      []string                 `json:"tags" validate:"dive,no_xss"`
	Notes     string                   `json:"notes" validate:"omitempty,no_xss"`
}

// CreateActivityInput records one interaction with a contact.
type CreateActivityInput struct {
	Type         string   `json:"type" validate:"required"`
	Description  string   `json:"description" validate:"no_xss"`
	Tags         []string `json:"tags" validate:"dive,no_xss"`
	Priority     string   `json:"priority"`
	FollowUpDate int64    `json:"followUpDate" validate:"gte=0"` // unix ms
}
