package ordersvc

import (
	"context"
	"fmt"
	"time"

	ordermodels "b8_shield/internal/api/order/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FormatOrderNumber renders the human-readable order number B8-YYYYMMDD-NNNN.
func FormatOrderNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("B8-%s-%04d", day.Format("20060102"), seq)
}

// GenerateOrderNumber reserves the next number for the given day from the
// per-day counter. The counter increment is a single atomic upsert, so
// concurrent order creation never produces the same number.
func (s *OrderService) GenerateOrderNumber(ctx context.Context, day time.Time) (string, error) {
	date := day.Format("20060102")

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter ordermodels.OrderCounter
	err := s.counterCollection.FindOneAndUpdate(ctx,
		bson.M{"date": date},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("failed to reserve order number for %s: %w", date, err)
	}

	return FormatOrderNumber(day, counter.Seq), nil
}
