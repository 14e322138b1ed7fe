// Package customersvc provides the customer (CRM) services, including the
// status automation.
package customersvc

import (
	"context"
	"fmt"
	"time"

	basesvc "b8_shield/internal/api/base/service"
	customermodels "b8_shield/internal/api/customer/models"
	"b8_shield/internal/common"
	"b8_shield/internal/global"
	"b8_shield/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActivityService manages CRM activity records.
type ActivityService struct {
	*basesvc.BaseServiceMongoImpl[customermodels.Activity]
}

// NewActivityService creates the activity service.
func NewActivityService() (*ActivityService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.Activities)
	if !exists {
		return nil, fmt.Errorf("failed to get activities collection: %w", common.ErrNotFound)
	}
	return &ActivityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[customermodels.Activity](col),
	}, nil
}

// CustomerService manages customer accounts. It reads the orders collection
// directly when computing lifetime order value, so the automation stays free
// of a dependency on the order service.
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[customermodels.Customer]
	ordersCollection *mongo.Collection
	activityService  *ActivityService
}

// NewCustomerService creates the customer service.
func NewCustomerService() (*CustomerService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.Users)
	if !exists {
		return nil, fmt.Errorf("failed to get users collection: %w", common.ErrNotFound)
	}
	ordersCol, exists := global.RegistryCollections.Get(global.ColNames.Orders)
	if !exists {
		return nil, fmt.Errorf("failed to get orders collection: %w", common.ErrNotFound)
	}
	activityService, err := NewActivityService()
	if err != nil {
		return nil, err
	}
	return &CustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[customermodels.Customer](col),
		ordersCollection:     ordersCol,
		activityService:      activityService,
	}, nil
}

// ActivityService exposes the embedded activity service for handlers.
func (s *CustomerService) ActivityService() *ActivityService {
	return s.activityService
}

// FindByFirebaseUID returns the customer linked to a Firebase account.
func (s *CustomerService) FindByFirebaseUID(ctx context.Context, uid string) (customermodels.Customer, error) {
	return s.FindOne(ctx, bson.M{"firebaseUid": uid}, nil)
}

// FindByEmail returns the customer with the given email.
func (s *CustomerService) FindByEmail(ctx context.Context, email string) (customermodels.Customer, error) {
	return s.FindOne(ctx, bson.M{"email": email}, nil)
}

// CreateCustomer inserts a new account with prospect defaults and runs the
// automation with the new-customer trigger. Automation failure is logged,
// never returned.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer customermodels.Customer) (customermodels.Customer, error) {
	if customer.Role == "" {
		customer.Role = common.RoleCustomer
	}
	if customer.Status == "" {
		customer.Status = customermodels.StatusProspect
	}

	created, err := s.InsertOne(ctx, customer)
	if err != nil {
		return created, err
	}

	if _, err := s.DetectStatusChange(ctx, created.ID, AutomationContext{IsNewCustomer: true}); err != nil {
		logger.GetAppLogger().WithError(err).WithField("customerId", created.ID.Hex()).
			Warn("[ZEN] Automation failed after customer creation")
	}
	return created, nil
}

// RecordLogin stamps lastLoginAt, writes a login activity and runs the
// automation with the login trigger.
func (s *CustomerService) RecordLogin(ctx context.Context, customerID primitive.ObjectID) error {
	update := basesvc.UpdateData{Set: map[string]interface{}{
		"lastLoginAt": time.Now().UnixMilli(),
	}}
	if _, err := s.UpdateById(ctx, customerID, update); err != nil {
		return err
	}

	if _, err := s.activityService.InsertOne(ctx, customermodels.Activity{
		CustomerID: customerID,
		Type:       "login",
	}); err != nil {
		logger.GetAppLogger().WithError(err).Warn("[ZEN] Failed to record login activity")
	}

	hasNewOrder, err := s.hasRecentOrder(ctx, customerID)
	if err != nil {
		hasNewOrder = false
	}
	if _, err := s.DetectStatusChange(ctx, customerID, AutomationContext{
		HasLoggedIn: true,
		HasNewOrder: hasNewOrder,
	}); err != nil {
		logger.GetAppLogger().WithError(err).WithField("customerId", customerID.Hex()).
			Warn("[ZEN] Automation failed after login")
	}
	return nil
}

// NotifyOrderCompleted is the order engine's automation hook, invoked when an
// order reaches a completed-ish status.
func (s *CustomerService) NotifyOrderCompleted(ctx context.Context, customerID primitive.ObjectID) {
	if customerID.IsZero() {
		return
	}
	if _, err := s.DetectStatusChange(ctx, customerID, AutomationContext{HasNewOrder: true}); err != nil {
		logger.GetAppLogger().WithError(err).WithField("customerId", customerID.Hex()).
			Warn("[ZEN] Automation failed after order completion")
	}
}

// hasRecentOrder reports whether the customer placed any order in the
// trailing 30 days.
func (s *CustomerService) hasRecentOrder(ctx context.Context, customerID primitive.ObjectID) (bool, error) {
	since := time.Now().Add(-recentActivityWindow).UnixMilli()
	count, err := s.ordersCollection.CountDocuments(ctx, bson.M{
		"userId":    customerID,
		"createdAt": bson.M{"$gte": since},
	})
	return count > 0, err
}
