package delivery

import (
	"context"
	"fmt"
	"time"

	basesvc "b8_shield/internal/api/base/service"
	deliverymodels "b8_shield/internal/api/delivery/models"
	"b8_shield/internal/delivery/channels"
	"b8_shield/internal/logger"
	"b8_shield/internal/notification"

	"go.mongodb.org/mongo-driver/bson"
)

// Processor drains the outbox: claims due items, dispatches them to the
// matching channel and records the outcome.
type Processor struct {
	queue   *Queue
	webhook *channels.WebhookSender
	email   *channels.EmailSender
}

// NewProcessor creates the processor with both channels wired.
func NewProcessor(smtp channels.SMTPConfig) (*Processor, error) {
	queue, err := NewQueue()
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery queue: %w", err)
	}
	return &Processor{
		queue:   queue,
		webhook: channels.NewWebhookSender(),
		email:   channels.NewEmailSender(smtp),
	}, nil
}

// ProcessItem sends one claimed item and settles it in the queue.
func (p *Processor) ProcessItem(ctx context.Context, item deliverymodels.DeliveryQueueItem) {
	var sendErr error
	switch item.ChannelType {
	case notification.ChannelWebhook:
		sendErr = p.webhook.Send(ctx, item.Recipient, item.Payload)
	case notification.ChannelEmail:
		subject, _ := item.Payload["subject"].(string)
		body, _ := item.Payload["body"].(string)
		sendErr = p.email.Send(ctx, item.Recipient, subject, body)
	default:
		sendErr = fmt.Errorf("unsupported channel type: %s", item.ChannelType)
	}

	if sendErr != nil {
		p.queue.MarkFailed(ctx, item, sendErr)
		return
	}
	p.queue.MarkSent(ctx, item)
}

// Start runs the processor loop until ctx is cancelled. Panics are recovered
// and the loop restarts with a growing delay.
func (p *Processor) Start(ctx context.Context) {
	interval := 5 * time.Second
	batchSize := 10
	retryDelay := 5 * time.Second
	maxRetryDelay := 60 * time.Second

	p.startStaleReclaim(ctx)

	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.GetAppLogger().WithField("panic", r).Error("[DELIVERY] Processor panic, restarting after delay")
					time.Sleep(retryDelay)
					retryDelay *= 2
					if retryDelay > maxRetryDelay {
						retryDelay = maxRetryDelay
					}
				} else {
					retryDelay = 5 * time.Second
				}
			}()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					items, err := p.queue.Dequeue(ctx, batchSize)
					if err != nil {
						logger.GetAppLogger().WithError(err).Error("[DELIVERY] Failed to dequeue items")
						continue
					}
					for _, item := range items {
						p.ProcessItem(ctx, item)
					}
				}
			}
		}()

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// startStaleReclaim resets items stuck in processing (a crashed processor
// left them claimed) back to pending so they get retried.
func (p *Processor) startStaleReclaim(ctx context.Context) {
	staleAfter := 5 * time.Minute

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-staleAfter).UnixMilli()
				filter := bson.M{
					"status":    deliverymodels.QueueStatusProcessing,
					"updatedAt": bson.M{"$lt": cutoff},
				}
				update := basesvc.UpdateData{Set: map[string]interface{}{
					"status": deliverymodels.QueueStatusPending,
				}}
				count, err := p.queue.queueService.UpdateMany(ctx, filter, update)
				if err != nil {
					logger.GetAppLogger().WithError(err).Error("[DELIVERY] Failed to reclaim stale items")
					continue
				}
				if count > 0 {
					logger.GetAppLogger().WithField("count", count).Warn("[DELIVERY] Reclaimed stale processing items")
				}
			}
		}
	}()
}
