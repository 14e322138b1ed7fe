package customersvc

import (
	"testing"

	customermodels "b8_shield/internal/api/customer/models"
)

func TestEvaluateStatusRules_VIPBoundaryInclusive(t *testing.T) {
	newStatus, reason := EvaluateStatusRules(customermodels.StatusActive, 10000, 0, AutomationContext{})
	if newStatus != customermodels.StatusVIP {
		t.Fatalf("orderValue=10000 must promote to vip, got %q", newStatus)
	}
	if reason == "" {
		t.Error("promotion must carry a reason")
	}
}

func TestEvaluateStatusRules_NoDowngradeBelowThreshold(t *testing.T) {
	newStatus, _ := EvaluateStatusRules(customermodels.StatusActive, 9999.99, 0, AutomationContext{})
	if newStatus != "" {
		t.Fatalf("active customer below vip threshold must stay unchanged, got %q", newStatus)
	}
}

func TestEvaluateStatusRules_VIPStaysVIP(t *testing.T) {
	newStatus, _ := EvaluateStatusRules(customermodels.StatusVIP, 25000, 3, AutomationContext{})
	if newStatus != "" {
		t.Fatalf("vip customer must not be re-promoted, got %q", newStatus)
	}
}

func TestEvaluateStatusRules_ProspectWithOrdersAndActivity(t *testing.T) {
	newStatus, _ := EvaluateStatusRules(customermodels.StatusProspect, 500, 2, AutomationContext{})
	if newStatus != customermodels.StatusActive {
		t.Fatalf("prospect with orders and recent activity must become active, got %q", newStatus)
	}
}

func TestEvaluateStatusRules_FirstMatchWins(t *testing.T) {
	// A new customer over the vip threshold hits the vip rule, not the
	// new-customer reset.
	newStatus, _ := EvaluateStatusRules(customermodels.StatusActive, 12000, 0, AutomationContext{IsNewCustomer: true})
	if newStatus != customermodels.StatusVIP {
		t.Fatalf("vip rule has priority over new-customer reset, got %q", newStatus)
	}
}

func TestEvaluateStatusRules_NewCustomerReset(t *testing.T) {
	newStatus, _ := EvaluateStatusRules(customermodels.StatusActive, 0, 0, AutomationContext{IsNewCustomer: true})
	if newStatus != customermodels.StatusProspect {
		t.Fatalf("new customer with non-prospect status must reset to prospect, got %q", newStatus)
	}
}

func TestEvaluateStatusRules_LoginWithNewOrder(t *testing.T) {
	newStatus, _ := EvaluateStatusRules(customermodels.StatusProspect, 0, 0, AutomationContext{HasLoggedIn: true, HasNewOrder: true})
	if newStatus != customermodels.StatusActive {
		t.Fatalf("prospect who logged in with a new order must become active, got %q", newStatus)
	}
}

func TestEvaluateStatusRules_EmptyStatusDefaultsToProspect(t *testing.T) {
	newStatus, _ := EvaluateStatusRules("", 100, 1, AutomationContext{})
	if newStatus != customermodels.StatusActive {
		t.Fatalf("missing status must be treated as prospect, got %q", newStatus)
	}
}

func TestEvaluateStatusRules_NoTriggerNoChange(t *testing.T) {
	newStatus, reason := EvaluateStatusRules(customermodels.StatusProspect, 0, 0, AutomationContext{})
	if newStatus != "" || reason != "" {
		t.Fatalf("no rule fired, expected no change, got %q/%q", newStatus, reason)
	}
}
