// Package ordersvc implements the order engine: creation with number
// assignment, the status state machine with its audit trail, cancellation
// and the notification side effects.
package ordersvc

import (
	"context"
	"fmt"
	"time"

	basesvc "b8_shield/internal/api/base/service"
	customersvc "b8_shield/internal/api/customer/service"
	orderdto "b8_shield/internal/api/order/dto"
	ordermodels "b8_shield/internal/api/order/models"
	"b8_shield/internal/common"
	"b8_shield/internal/delivery"
	"b8_shield/internal/global"
	"b8_shield/internal/logger"
	"b8_shield/internal/notification"
	"b8_shield/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// statusUpdateRetries bounds the optimistic-lock retry loop on concurrent
// admin edits.
const statusUpdateRetries = 3

// OrderService manages orders and their status transitions.
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[ordermodels.Order]
	counterCollection *mongo.Collection
	customerService   *customersvc.CustomerService
	queue             *delivery.Queue
}

// NewOrderService creates the order service.
func NewOrderService() (*OrderService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.Orders)
	if !exists {
		return nil, fmt.Errorf("failed to get orders collection: %w", common.ErrNotFound)
	}
	counterCol, exists := global.RegistryCollections.Get(global.ColNames.OrderCounters)
	if !exists {
		return nil, fmt.Errorf("failed to get order_counters collection: %w", common.ErrNotFound)
	}
	customerService, err := customersvc.NewCustomerService()
	if err != nil {
		return nil, err
	}
	queue, err := delivery.NewQueue()
	if err != nil {
		return nil, err
	}
	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ordermodels.Order](col),
		counterCollection:    counterCol,
		customerService:      customerService,
		queue:                queue,
	}, nil
}

// NormalizeItems builds the order lines from either the explicit items list
// or the legacy fordelning distribution, defaulting missing fields. Lines
// with zero quantity are dropped.
func NormalizeItems(items []orderdto.OrderItemInput, fordelning []orderdto.FordelningEntry) []ordermodels.OrderItem {
	var out []ordermodels.OrderItem

	if len(items) > 0 {
		for _, in := range items {
			if in.Quantity <= 0 {
				continue
			}
			item := ordermodels.OrderItem{
				Name:     in.Name,
				Color:    in.Color,
				Size:     in.Size,
				Quantity: in.Quantity,
				Price:    in.Price,
			}
			applyItemDefaults(&item)
			out = append(out, item)
		}
		return out
	}

	for _, entry := range fordelning {
		if entry.Quantity <= 0 {
			continue
		}
		item := ordermodels.OrderItem{
			Color:    entry.Color,
			Size:     entry.Size,
			Quantity: entry.Quantity,
		}
		applyItemDefaults(&item)
		out = append(out, item)
	}
	return out
}

func applyItemDefaults(item *ordermodels.OrderItem) {
	if item.Name == "" {
		item.Name = ordermodels.DefaultItemName
	}
	if item.Color == "" {
		item.Color = ordermodels.DefaultItemVariant
	}
	if item.Size == "" {
		item.Size = ordermodels.DefaultItemVariant
	}
}

// Create creates a new pending order for the acting user, assigns the order
// number and enqueues the confirmation notification. The notification is an
// outbox write; its failure is logged and never fails the creation.
func (s *OrderService) Create(ctx context.Context, actor *common.Actor, input *orderdto.CreateOrderInput) (ordermodels.Order, error) {
	var zero ordermodels.Order
	if actor == nil {
		return zero, common.NewError(common.ErrCodeAuth, "Unauthorized", common.StatusUnauthorized, common.ErrUnauthorized)
	}

	items := NormalizeItems(input.Items, input.Fordelning)
	if len(items) == 0 {
		return zero, common.NewError(common.ErrCodeValidationInput, "Order must contain at least one item", common.StatusBadRequest, common.ErrInvalidInput)
	}

	source := input.Source
	if source == "" {
		source = ordermodels.SourceB2C
	}

	orderNumber, err := s.GenerateOrderNumber(ctx, time.Now())
	if err != nil {
		return zero, common.NewError(common.ErrCodeBusinessOperation, "Failed to generate order number", common.StatusInternalServerError, err)
	}

	customerInfo := input.CustomerInfo
	if customerInfo.Email == "" {
		customerInfo.Email = actor.Email
	}
	if customerInfo.Name == "" {
		customerInfo.Name = actor.DisplayName
	}

	order := ordermodels.Order{
		OrderNumber:   orderNumber,
		Status:        ordermodels.StatusPending,
		StatusHistory: []ordermodels.StatusChange{},
		Items:         items,
		Source:        source,
		AffiliateCode: input.AffiliateCode,
		UserID:        actor.ID,
		CustomerInfo:  customerInfo,
		Subtotal:      input.Subtotal,
		Shipping:      input.Shipping,
		Discount:      input.Discount,
		VAT:           input.VAT,
		TotalAmount:   input.TotalAmount,
		DiscountCode:  input.DiscountCode,
		Currency:      input.Currency,
		PaymentMethod: input.PaymentMethod,
		Version:       1,
	}

	created, err := s.InsertOne(ctx, order)
	if err != nil {
		return zero, err
	}

	s.enqueueOrderNotification(ctx, notification.EventOrderConfirmation,
		global.ServerConfig.OrderConfirmationURL, &created, "", "")

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"orderId":     created.ID.Hex(),
		"orderNumber": created.OrderNumber,
		"source":      created.Source,
	}).Info("[ORDER] Order created")

	return created, nil
}

// UpdateStatus moves an order to a new status. Admin-only. The status write,
// the appended history entry and any additional fields go out in one
// conditional update keyed on the order's version; a concurrent edit bumps
// the version and this call retries on the fresh document, so no history
// entry is ever lost.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *common.Actor, orderID primitive.ObjectID, input *orderdto.UpdateStatusInput) (ordermodels.Order, error) {
	var zero ordermodels.Order
	if !actor.IsAdmin() {
		return zero, common.NewError(common.ErrCodeAuthRole, "Unauthorized", common.StatusForbidden, common.ErrUnauthorized)
	}
	if !ordermodels.IsValidStatus(input.Status) {
		return zero, common.NewError(common.ErrCodeValidationInput, "Unknown order status", common.StatusBadRequest, common.ErrInvalidInput)
	}

	var updated ordermodels.Order
	var lastErr error
	for attempt := 0; attempt < statusUpdateRetries; attempt++ {
		order, err := s.FindOneById(ctx, orderID)
		if err != nil {
			return zero, common.NewError(common.ErrCodeDatabaseQuery, "Order not found", common.StatusNotFound, common.ErrNotFound)
		}

		change := ordermodels.StatusChange{
			From:        order.Status,
			To:          input.Status,
			ChangedBy:   actor.ID.Hex(),
			DisplayName: actor.DisplayName,
			ChangedAt:   time.Now().UnixMilli(),
		}

		set := bson.M{
			"status":    input.Status,
			"updatedAt": time.Now().UnixMilli(),
		}
		for k, v := range input.Additional {
			if isProtectedOrderField(k) {
				continue
			}
			set[k] = v
		}

		filter := bson.M{"_id": orderID, "version": order.Version}
		update := bson.M{
			"$set":  set,
			"$push": bson.M{"statusHistory": change},
			"$inc":  bson.M{"version": 1},
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		updated, err = s.FindOneAndUpdate(ctx, filter, update, opts)
		if err == nil {
			lastErr = nil
			s.afterStatusChange(ctx, &updated, change.From, change.To)
			logger.Audit(logger.AuditEntry{
				Actor:      actor.ID.Hex(),
				ActorName:  actor.DisplayName,
				Action:     "order.status_update",
				TargetType: "order",
				TargetID:   orderID.Hex(),
				From:       change.From,
				To:         change.To,
			})
			return updated, nil
		}
		lastErr = err
		// Version mismatch surfaces as not-found; retry with a fresh read.
	}

	return zero, common.NewError(common.ErrCodeDatabaseConflict, "Order was modified concurrently, please retry", common.StatusConflict, lastErr)
}

// Cancel cancels an order. The caller must be the order owner or an admin;
// non-admins may only cancel from pending or confirmed.
func (s *OrderService) Cancel(ctx context.Context, actor *common.Actor, orderID primitive.ObjectID) (ordermodels.Order, error) {
	var zero ordermodels.Order
	if actor == nil {
		return zero, common.NewError(common.ErrCodeAuth, "Unauthorized", common.StatusUnauthorized, common.ErrUnauthorized)
	}

	order, err := s.FindOneById(ctx, orderID)
	if err != nil {
		return zero, common.NewError(common.ErrCodeDatabaseQuery, "Order not found", common.StatusNotFound, common.ErrNotFound)
	}

	if !actor.IsAdmin() {
		if order.UserID != actor.ID {
			return zero, common.NewError(common.ErrCodeAuthRole, "Unauthorized", common.StatusForbidden, common.ErrUnauthorized)
		}
		if !ordermodels.IsCancellableFrom(order.Status) {
			return zero, common.NewError(common.ErrCodeBusinessState, "This order cannot be cancelled", common.StatusConflict, common.ErrInvalidInput)
		}
	}

	now := time.Now().UnixMilli()
	change := ordermodels.StatusChange{
		From:        order.Status,
		To:          ordermodels.StatusCancelled,
		ChangedBy:   actor.ID.Hex(),
		DisplayName: actor.DisplayName,
		ChangedAt:   now,
	}

	filter := bson.M{"_id": orderID, "version": order.Version}
	update := bson.M{
		"$set": bson.M{
			"status":      ordermodels.StatusCancelled,
			"cancelledBy": actor.ID.Hex(),
			"cancelledAt": now,
			"updatedAt":   now,
		},
		"$push": bson.M{"statusHistory": change},
		"$inc":  bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		return zero, common.NewError(common.ErrCodeDatabaseConflict, "Order was modified concurrently, please retry", common.StatusConflict, err)
	}

	s.enqueueOrderNotification(ctx, notification.EventOrderStatusUpdate,
		global.ServerConfig.StatusUpdateURL, &updated, change.From, ordermodels.StatusCancelled)

	logger.Audit(logger.AuditEntry{
		Actor:      actor.ID.Hex(),
		ActorName:  actor.DisplayName,
		Action:     "order.cancel",
		TargetType: "order",
		TargetID:   orderID.Hex(),
		From:       change.From,
		To:         ordermodels.StatusCancelled,
	})
	return updated, nil
}

// Delete removes an order permanently. Admin-only; no tombstone.
func (s *OrderService) Delete(ctx context.Context, actor *common.Actor, orderID primitive.ObjectID) error {
	if !actor.IsAdmin() {
		return common.NewError(common.ErrCodeAuthRole, "Unauthorized", common.StatusForbidden, common.ErrUnauthorized)
	}
	if err := s.DeleteById(ctx, orderID); err != nil {
		return common.NewError(common.ErrCodeDatabaseQuery, "Order not found", common.StatusNotFound, err)
	}
	logger.Audit(logger.AuditEntry{
		Actor:      actor.ID.Hex(),
		ActorName:  actor.DisplayName,
		Action:     "order.delete",
		TargetType: "order",
		TargetID:   orderID.Hex(),
	})
	return nil
}

// afterStatusChange runs the side effects of a completed status transition:
// the status notification and, for completed-ish statuses, the customer
// status automation. Both are best effort.
func (s *OrderService) afterStatusChange(ctx context.Context, order *ordermodels.Order, oldStatus, newStatus string) {
	s.enqueueOrderNotification(ctx, notification.EventOrderStatusUpdate,
		global.ServerConfig.StatusUpdateURL, order, oldStatus, newStatus)

	if ordermodels.TriggersCustomerAutomation(newStatus) {
		s.customerService.NotifyOrderCompleted(ctx, order.UserID)
	}
}

// enqueueOrderNotification writes one webhook event to the outbox with the
// cloud-function contract {orderId, orderData, userData, oldStatus?,
// newStatus?}. Failures are logged only.
func (s *OrderService) enqueueOrderNotification(ctx context.Context, eventType, endpoint string, order *ordermodels.Order, oldStatus, newStatus string) {
	if endpoint == "" {
		return
	}

	orderData, err := utility.ToMap(order)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("[ORDER] Failed to serialize order for notification")
		return
	}

	payload := map[string]interface{}{
		"orderId":   order.ID.Hex(),
		"orderData": orderData,
		"userData": map[string]interface{}{
			"email": order.CustomerInfo.Email,
			"name":  order.CustomerInfo.Name,
		},
	}
	if newStatus != "" {
		payload["oldStatus"] = oldStatus
		payload["newStatus"] = newStatus
		payload["statusDisplay"] = ordermodels.StatusDisplayNames[newStatus]
	}

	if err := s.queue.Enqueue(ctx, eventType, notification.ChannelWebhook, endpoint, notification.SeverityMedium, payload); err != nil {
		logger.GetAppLogger().WithError(err).WithField("orderId", order.ID.Hex()).
			Warn("[ORDER] Failed to enqueue notification")
	}
}

// isProtectedOrderField blocks additional-data writes from touching fields
// the engine owns.
func isProtectedOrderField(name string) bool {
	switch name {
	case "_id", "status", "statusHistory", "version", "orderNumber", "createdAt":
		return true
	}
	return false
}
