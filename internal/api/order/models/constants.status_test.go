package ordermodels

import "testing"

func TestIsCancellableFrom(t *testing.T) {
	cancellable := []string{StatusPending, StatusConfirmed}
	for _, status := range cancellable {
		if !IsCancellableFrom(status) {
			t.Errorf("expected %s to be cancellable for non-admins", status)
		}
	}

	locked := []string{StatusProcessing, StatusShipped, StatusDelivered, StatusCompleted, StatusCancelled}
	for _, status := range locked {
		if IsCancellableFrom(status) {
			t.Errorf("expected %s not to be cancellable for non-admins", status)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	valid := []string{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCompleted, StatusCancelled}
	for _, status := range valid {
		if !IsValidStatus(status) {
			t.Errorf("expected %s to be a valid status", status)
		}
	}

	for _, status := range []string{"", "unknown", "Pending", "PENDING", "canceled"} {
		if IsValidStatus(status) {
			t.Errorf("expected %q to be rejected", status)
		}
	}
}

func TestTriggersCustomerAutomation(t *testing.T) {
	for _, status := range []string{StatusDelivered, StatusShipped, StatusCompleted} {
		if !TriggersCustomerAutomation(status) {
			t.Errorf("expected %s to trigger the automation", status)
		}
	}
	for _, status := range []string{StatusPending, StatusConfirmed, StatusProcessing, StatusCancelled} {
		if TriggersCustomerAutomation(status) {
			t.Errorf("expected %s not to trigger the automation", status)
		}
	}
}
