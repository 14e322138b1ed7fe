// Package ordermodels - order documents and the status state machine.
package ordermodels

// Order statuses. The normal flow is pending → confirmed → processing →
// shipped → delivered; cancelled is reachable from pending or confirmed for
// non-admin actors. Admins may force any transition.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Order sources.
const (
	SourceB2B = "b2b"
	SourceB2C = "b2c"
)

// DefaultItemName is applied to items created from a legacy fordelning list
// or missing an explicit name.
const DefaultItemName = "B8 Shield"

// DefaultItemVariant is the fallback for missing color/size fields.
const DefaultItemVariant = "mixed"

// cancellableStatuses are the states a non-admin may cancel from.
var cancellableStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsCancellableFrom reports whether a non-admin may cancel an order in status s.
func IsCancellableFrom(s string) bool {
	return cancellableStatuses[s]
}

// TriggersCustomerAutomation reports whether reaching status s should run the
// customer status automation hook.
func TriggersCustomerAutomation(s string) bool {
	switch s {
	case StatusDelivered, StatusShipped, StatusCompleted:
		return true
	}
	return false
}

// StatusDisplayNames maps statuses to the Swedish labels shown in
// notifications and the admin console.
var StatusDisplayNames = map[string]string{
	StatusPending:    "Väntande",
	StatusConfirmed:  "Bekräftad",
	StatusProcessing: "Behandlas",
	StatusShipped:    "Skickad",
	StatusDelivered:  "Levererad",
	StatusCompleted:  "Slutförd",
	StatusCancelled:  "Avbruten",
}
