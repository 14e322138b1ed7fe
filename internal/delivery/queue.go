// Package delivery implements the durable notification outbox: events are
// enqueued in the same flow as the primary action and sent asynchronously
// with retry. Enqueue failures are the caller's to log; they never fail the
// primary action.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "b8_shield/internal/api/base/service"
	deliverymodels "b8_shield/internal/api/delivery/models"
	deliverysvc "b8_shield/internal/api/delivery/service"
	"b8_shield/internal/logger"
	"b8_shield/internal/notification"
)

// Queue wraps the outbox collection with enqueue/dequeue semantics.
type Queue struct {
	queueService   *deliverysvc.DeliveryQueueService
	historyService *deliverysvc.DeliveryHistoryService
}

// NewQueue creates the queue over the registered collections.
func NewQueue() (*Queue, error) {
	queueService, err := deliverysvc.NewDeliveryQueueService()
	if err != nil {
		return nil, fmt.Errorf("failed to create queue service: %w", err)
	}
	historyService, err := deliverysvc.NewDeliveryHistoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create history service: %w", err)
	}
	return &Queue{
		queueService:   queueService,
		historyService: historyService,
	}, nil
}

// Enqueue inserts one event into the outbox. EventID, status and retry
// bookkeeping are stamped here.
func (q *Queue) Enqueue(ctx context.Context, eventType, channelType, recipient, severity string, payload map[string]interface{}) error {
	item := deliverymodels.DeliveryQueueItem{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		ChannelType: channelType,
		Recipient:   recipient,
		Payload:     payload,
		Status:      deliverymodels.QueueStatusPending,
		RetryCount:  0,
		MaxRetries:  3,
		Priority:    notification.PriorityForSeverity(severity),
	}

	created, err := q.queueService.InsertOne(ctx, item)
	if err != nil {
		logger.GetAppLogger().WithError(err).WithFields(map[string]interface{}{
			"eventType":   eventType,
			"channelType": channelType,
		}).Error("[DELIVERY] Failed to enqueue notification event")
		return err
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"eventId":     created.EventID,
		"eventType":   eventType,
		"channelType": channelType,
		"priority":    created.Priority,
	}).Debug("[DELIVERY] Enqueued notification event")
	return nil
}

// Dequeue claims up to limit due pending items by flipping their status to
// processing one at a time, so concurrent processors never claim the same
// item.
func (q *Queue) Dequeue(ctx context.Context, limit int) ([]deliverymodels.DeliveryQueueItem, error) {
	if limit <= 0 {
		limit = 10
	}
	now := time.Now().UnixMilli()

	claimed := make([]deliverymodels.DeliveryQueueItem, 0, limit)
	for len(claimed) < limit {
		filter := bson.M{
			"status": deliverymodels.QueueStatusPending,
			"$or": []bson.M{
				{"nextAttemptAt": bson.M{"$exists": false}},
				{"nextAttemptAt": bson.M{"$lte": now}},
			},
		}
		update := bson.M{"$set": bson.M{
			"status":    deliverymodels.QueueStatusProcessing,
			"updatedAt": now,
		}}
		opts := options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: 1}})

		item, err := q.queueService.FindOneAndUpdate(ctx, filter, update, opts)
		if err != nil {
			break // no more due items (or a transient error; next tick retries)
		}
		claimed = append(claimed, item)
	}

	return claimed, nil
}

// MarkSent finishes an item successfully: removed from the queue, recorded in
// history.
func (q *Queue) MarkSent(ctx context.Context, item deliverymodels.DeliveryQueueItem) {
	q.finish(ctx, item, deliverymodels.QueueStatusSent, "")
}

// MarkFailed either reschedules the item with backoff or, when retries are
// exhausted, moves it to history as the dead letter.
func (q *Queue) MarkFailed(ctx context.Context, item deliverymodels.DeliveryQueueItem, sendErr error) {
	log := logger.GetAppLogger()
	retryCount := item.RetryCount + 1

	if retryCount <= item.MaxRetries {
		// Exponential backoff: 1m, 4m, 9m.
		backoff := time.Duration(retryCount*retryCount) * time.Minute
		update := basesvc.UpdateData{Set: map[string]interface{}{
			"status":        deliverymodels.QueueStatusPending,
			"retryCount":    retryCount,
			"lastError":     sendErr.Error(),
			"nextAttemptAt": time.Now().Add(backoff).UnixMilli(),
		}}
		if _, err := q.queueService.UpdateById(ctx, item.ID, update); err != nil {
			log.WithError(err).Error("[DELIVERY] Failed to reschedule queue item")
		}
		log.WithFields(map[string]interface{}{
			"eventId":    item.EventID,
			"retryCount": retryCount,
			"backoff":    backoff.String(),
		}).Warn("[DELIVERY] Send failed, rescheduled")
		return
	}

	q.finish(ctx, item, deliverymodels.QueueStatusFailed, sendErr.Error())
	log.WithFields(map[string]interface{}{
		"eventId":   item.EventID,
		"eventType": item.EventType,
		"lastError": sendErr.Error(),
	}).Error("[DELIVERY] Retries exhausted, event moved to dead letter")
}

func (q *Queue) finish(ctx context.Context, item deliverymodels.DeliveryQueueItem, status, lastError string) {
	log := logger.GetAppLogger()

	history := deliverymodels.DeliveryHistoryItem{
		EventID:     item.EventID,
		EventType:   item.EventType,
		ChannelType: item.ChannelType,
		Recipient:   item.Recipient,
		Status:      status,
		Attempts:    item.RetryCount + 1,
		LastError:   lastError,
		ProcessedAt: time.Now().UnixMilli(),
	}
	if _, err := q.historyService.InsertOne(ctx, history); err != nil {
		log.WithError(err).Error("[DELIVERY] Failed to write delivery history")
	}

	if err := q.queueService.DeleteById(ctx, item.ID); err != nil {
		log.WithError(err).Error("[DELIVERY] Failed to remove finished queue item")
	}
}
