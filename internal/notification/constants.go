// Package notification defines the event vocabulary shared by producers
// (order service, ambassador worker) and the delivery processor.
package notification

// Event types written to the delivery queue.
const (
	EventOrderConfirmation = "order_confirmation"
	EventOrderStatusUpdate = "order_status_update"
	EventAmbassadorTrigger = "ambassador_trigger"
)

// Channel types.
const (
	ChannelWebhook = "webhook" // cloud-function email triggers
	ChannelEmail   = "email"   // direct SMTP
)

// Severity levels. The queue orders by priority derived from severity.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	SeverityInfo     = "info"
)

// PriorityForSeverity maps severity to queue priority (higher first).
func PriorityForSeverity(severity string) int {
	switch severity {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	default:
		return 1
	}
}
