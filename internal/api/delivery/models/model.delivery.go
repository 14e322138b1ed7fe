// Package deliverymodels - the durable notification outbox documents.
package deliverymodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Queue item statuses.
const (
	QueueStatusPending    = "pending"
	QueueStatusProcessing = "processing"
	QueueStatusSent       = "sent"
	QueueStatusFailed     = "failed"
)

// DeliveryQueueItem is one pending notification (delivery_queue collection).
// Items are written at the point of the primary action and processed
// asynchronously with retry, so a transient endpoint failure never loses the
// event.
type DeliveryQueueItem struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	EventID     string `json:"eventId" bson:"eventId"` // uuid, idempotency key
	EventType   string `json:"eventType" bson:"eventType"`
	ChannelType string `json:"channelType" bson:"channelType"`
	Recipient   string `json:"recipient,omitempty" bson:"recipient,omitempty"` // email address or endpoint URL

	// Payload is the JSON body sent to the channel. For webhook events this
	// is the cloud-function contract: {orderId, orderData, userData,
	// oldStatus?, newStatus?}.
	Payload map[string]interface{} `json:"payload" bson:"payload"`

	Status        string `json:"status" bson:"status"`
	RetryCount    int    `json:"retryCount" bson:"retryCount"`
	MaxRetries    int    `json:"maxRetries" bson:"maxRetries"`
	Priority      int    `json:"priority" bson:"priority"`
	NextAttemptAt int64  `json:"nextAttemptAt,omitempty" bson:"nextAttemptAt,omitempty"` // unix ms
	LastError     string `json:"lastError,omitempty" bson:"lastError,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// DeliveryHistoryItem is the terminal record of a processed queue item
// (delivery_history collection). Failed items land here as the dead letter.
type DeliveryHistoryItem struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	EventID     string `json:"eventId" bson:"eventId"`
	EventType   string `json:"eventType" bson:"eventType"`
	ChannelType string `json:"channelType" bson:"channelType"`
	Recipient   string `json:"recipient,omitempty" bson:"recipient,omitempty"`

	Status    string `json:"status" bson:"status"` // sent | failed
	Attempts  int    `json:"attempts" bson:"attempts"`
	LastError string `json:"lastError,omitempty" bson:"lastError,omitempty"`

	ProcessedAt int64 `json:"processedAt" bson:"processedAt"`
	CreatedAt   int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64 `json:"updatedAt" bson:"updatedAt"`
}
