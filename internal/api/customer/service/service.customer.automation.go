package customersvc

import (
	"context"
	"fmt"
	"time"

	basesvc "b8_shield/internal/api/base/service"
	customermodels "b8_shield/internal/api/customer/models"
	ordermodels "b8_shield/internal/api/order/models"
	"b8_shield/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// vipOrderValueThreshold is the lifetime order value (SEK, inclusive) that
// promotes a customer to VIP.
const vipOrderValueThreshold = 10000

// recentActivityWindow is the trailing window the automation counts
// activities over.
const recentActivityWindow = 30 * 24 * time.Hour

// AutomationContext is the trigger context passed by the call sites (new B2B
// customer creation, order completion, customer login).
type AutomationContext struct {
	IsNewCustomer bool
	HasLoggedIn   bool
	HasNewOrder   bool
}

// StatusEvaluation is the automation's verdict for one customer.
type StatusEvaluation struct {
	CurrentStatus       string  `json:"currentStatus"`
	NewStatus           string  `json:"newStatus,omitempty"`
	Reason              string  `json:"reason,omitempty"`
	Changed             bool    `json:"changed"`
	OrderValue          float64 `json:"orderValue"`
	RecentActivityCount int64   `json:"recentActivityCount"`
}

// EvaluateStatusRules applies the status rules to already-computed inputs.
// Pure function; rules are an if/else-if ladder where only the first match
// applies. Returns ("", "") when no rule fires.
//
// There is no downgrade rule: a customer below the VIP threshold keeps
// whatever status they already hold.
func EvaluateStatusRules(currentStatus string, orderValue float64, recentActivityCount int64, actx AutomationContext) (newStatus, reason string) {
	if currentStatus == "" {
		currentStatus = customermodels.StatusProspect
	}

	switch {
	case orderValue >= vipOrderValueThreshold && currentStatus != customermodels.StatusVIP:
		return customermodels.StatusVIP,
			fmt.Sprintf("Ordervärde %.0f SEK överstiger VIP-gränsen på %d SEK", orderValue, vipOrderValueThreshold)
	case orderValue > 0 && recentActivityCount > 0 && currentStatus == customermodels.StatusProspect:
		return customermodels.StatusActive,
			"Har genomförda ordrar och aktivitet de senaste 30 dagarna"
	case actx.IsNewCustomer && currentStatus != customermodels.StatusProspect:
		return customermodels.StatusProspect,
			"Ny kund, status återställd till prospekt"
	case actx.HasLoggedIn && actx.HasNewOrder && currentStatus == customermodels.StatusProspect:
		return customermodels.StatusActive,
			"Har loggat in och lagt en ny order"
	}
	return "", ""
}

// DetectStatusChange loads the customer, computes order value and recent
// activity, applies the rules and persists any resulting change together
// with a human-readable reason. Returns the evaluation so callers (and the
// evaluate endpoint) can show what happened. Never panics; callers treat
// errors as non-fatal.
func (s *CustomerService) DetectStatusChange(ctx context.Context, customerID primitive.ObjectID, actx AutomationContext) (*StatusEvaluation, error) {
	customer, err := s.FindOneById(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	currentStatus := customer.Status
	if currentStatus == "" {
		currentStatus = customermodels.StatusProspect
	}

	orderValue, err := s.computeOrderValue(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute order value: %w", err)
	}

	recentActivityCount, err := s.countRecentActivity(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent activity: %w", err)
	}

	eval := &StatusEvaluation{
		CurrentStatus:       currentStatus,
		OrderValue:          orderValue,
		RecentActivityCount: recentActivityCount,
	}

	newStatus, reason := EvaluateStatusRules(currentStatus, orderValue, recentActivityCount, actx)
	if newStatus == "" || newStatus == currentStatus {
		return eval, nil
	}

	update := basesvc.UpdateData{Set: map[string]interface{}{
		"status":             newStatus,
		"lastStatusUpdate":   time.Now().UnixMilli(),
		"statusUpdateReason": reason,
	}}
	if _, err := s.UpdateById(ctx, customerID, update); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}

	eval.NewStatus = newStatus
	eval.Reason = reason
	eval.Changed = true

	logger.Audit(logger.AuditEntry{
		Actor:      "automation",
		ActorName:  "ZEN",
		Action:     "customer.status_change",
		TargetType: "customer",
		TargetID:   customerID.Hex(),
		From:       currentStatus,
		To:         newStatus,
	})
	logger.GetAppLogger().WithFields(map[string]interface{}{
		"customerId": customerID.Hex(),
		"from":       currentStatus,
		"to":         newStatus,
		"reason":     reason,
	}).Info("[ZEN] Customer status changed")

	return eval, nil
}

// computeOrderValue sums totalAmount (falling back to the legacy total field)
// over the customer's orders in a completed-ish status.
func (s *CustomerService) computeOrderValue(ctx context.Context, customerID primitive.ObjectID) (float64, error) {
	filter := bson.M{
		"userId": customerID,
		"status": bson.M{"$in": []string{
			ordermodels.StatusDelivered,
			ordermodels.StatusShipped,
			ordermodels.StatusCompleted,
		}},
	}

	cursor, err := s.ordersCollection.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var total float64
	for cursor.Next(ctx) {
		var order ordermodels.Order
		if err := cursor.Decode(&order); err != nil {
			continue
		}
		total += order.EffectiveTotal()
	}
	return total, cursor.Err()
}

// countRecentActivity counts the customer's activity records in the trailing
// 30 days.
func (s *CustomerService) countRecentActivity(ctx context.Context, customerID primitive.ObjectID) (int64, error) {
	since := time.Now().Add(-recentActivityWindow).UnixMilli()
	filter := bson.M{
		"customerId": customerID,
		"createdAt":  bson.M{"$gte": since},
	}
	return s.activityService.CountDocuments(ctx, filter)
}
