// Package customerdto defines request payloads for the customer endpoints.
package customerdto

// CreateCustomerInput creates a new customer account.
type CreateCustomerInput struct {
	Email       string   `json:"email" validate:"required,email"`
	DisplayName string   `json:"displayName"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company"`
	OrgNumber   string   `json:"orgNumber"`
	Tags        []string `json:"tags" validate:"dive,no_xss"`
}

// UpdateCustomerInput updates profile fields. CRM status is not writable
// here; it belongs to the automation (and the evaluate endpoint).
type UpdateCustomerInput struct {
	DisplayName string   `json:"displayName"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company"`
	OrgNumber   string   `json:"orgNumber"`
	Tags        []string `json:"tags" validate:"dive,no_xss"`
}

// EvaluateInput carries the trigger context for a manual automation run.
type EvaluateInput struct {
	IsNewCustomer bool `json:"isNewCustomer"`
	HasLoggedIn   bool `json:"hasLoggedIn"`
	HasNewOrder   bool `json:"hasNewOrder"`
}

// CreateActivityInput records one CRM activity for a customer.
type CreateActivityInput struct {
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"no_xss"`
}
