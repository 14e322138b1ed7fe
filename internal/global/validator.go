package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator initializes the shared validator and registers custom rules.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("order_status", validateOrderStatus)
	_ = Validate.RegisterValidation("customer_status", validateCustomerStatus)
	_ = Validate.RegisterValidation("contact_type", validateContactType)
	_ = Validate.RegisterValidation("contact_status", validateContactStatus)
	_ = Validate.RegisterValidation("order_source", validateOrderSource)
}

// validateNoXSS rejects values containing common script-injection fragments.
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateOrderStatus accepts the order status enum (empty allowed; use
// required separately when the field is mandatory).
func validateOrderStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "pending", "confirmed", "processing", "shipped", "delivered", "completed", "cancelled":
		return true
	}
	return false
}

// validateCustomerStatus accepts the CRM customer status enum.
func validateCustomerStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "prospect", "active", "vip", "inactive":
		return true
	}
	return false
}

// validateContactType accepts the affiliates-collection discriminator.
func validateContactType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "affiliate", "ambassador":
		return true
	}
	return false
}

// validateContactStatus accepts the ambassador contact status enum.
func validateContactStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "prospect", "contacted", "negotiating", "converted", "declined", "active":
		return true
	}
	return false
}

// validateOrderSource accepts the storefront source enum.
func validateOrderSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "b2b", "b2c":
		return true
	}
	return false
}
