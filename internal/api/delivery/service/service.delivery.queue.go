// Package deliverysvc provides CRUD services over the outbox collections.
package deliverysvc

import (
	"fmt"

	basesvc "b8_shield/internal/api/base/service"
	deliverymodels "b8_shield/internal/api/delivery/models"
	"b8_shield/internal/common"
	"b8_shield/internal/global"
)

// DeliveryQueueService manages delivery_queue documents.
type DeliveryQueueService struct {
	*basesvc.BaseServiceMongoImpl[deliverymodels.DeliveryQueueItem]
}

// NewDeliveryQueueService creates the queue service.
func NewDeliveryQueueService() (*DeliveryQueueService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.DeliveryQueue)
	if !exists {
		return nil, fmt.Errorf("failed to get delivery_queue collection: %w", common.ErrNotFound)
	}
	return &DeliveryQueueService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[deliverymodels.DeliveryQueueItem](col),
	}, nil
}

// DeliveryHistoryService manages delivery_history documents.
type DeliveryHistoryService struct {
	*basesvc.BaseServiceMongoImpl[deliverymodels.DeliveryHistoryItem]
}

// NewDeliveryHistoryService creates the history service.
func NewDeliveryHistoryService() (*DeliveryHistoryService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.DeliveryHistory)
	if !exists {
		return nil, fmt.Errorf("failed to get delivery_history collection: %w", common.ErrNotFound)
	}
	return &DeliveryHistoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[deliverymodels.DeliveryHistoryItem](col),
	}, nil
}
