package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"b8_shield/internal/global"
	"b8_shield/internal/logger"
)

// indexSpec pairs a collection name with the indexes it needs.
type indexSpec struct {
	collection string
	models     []mongo.IndexModel
}

// EnsureIndexes creates the indexes the service relies on. CreateMany is
// idempotent so this runs on every startup.
func EnsureIndexes(ctx context.Context) {
	log := logger.GetAppLogger()

	specs := []indexSpec{
		{
			collection: global.ColNames.Orders,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "orderNumber", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("order_number_unique"),
				},
				{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
				{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
				{Keys: bson.D{{Key: "source", Value: 1}}},
				{Keys: bson.D{{Key: "affiliateCode", Value: 1}}},
			},
		},
		{
			collection: global.ColNames.OrderCounters,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "date", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("order_counter_date_unique"),
				},
			},
		},
		{
			collection: global.ColNames.Users,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true).SetSparse(true).SetName("user_email_unique"),
				},
				{
					Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
					Options: options.Index().SetUnique(true).SetSparse(true).SetName("user_firebase_uid_unique"),
				},
				{Keys: bson.D{{Key: "status", Value: 1}}},
			},
		},
		{
			collection: global.ColNames.Activities,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}}},
			},
		},
		{
			collection: global.ColNames.Affiliates,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "contactType", Value: 1}, {Key: "status", Value: 1}}},
				{Keys: bson.D{{Key: "active", Value: 1}}},
				{
					Keys:    bson.D{{Key: "affiliateCode", Value: 1}},
					Options: options.Index().SetUnique(true).SetSparse(true).SetName("affiliate_code_unique"),
				},
			},
		},
		{
			collection: global.ColNames.AmbassadorActivities,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "contactId", Value: 1}, {Key: "createdAt", Value: -1}}},
				{Keys: bson.D{{Key: "followUpDate", Value: 1}}},
			},
		},
		{
			collection: global.ColNames.AffiliateClicks,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "affiliateCode", Value: 1}, {Key: "createdAt", Value: -1}}},
				{Keys: bson.D{{Key: "converted", Value: 1}}},
			},
		},
		{
			collection: global.ColNames.DeliveryQueue,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "status", Value: 1}, {Key: "priority", Value: -1}, {Key: "createdAt", Value: 1}}},
				{Keys: bson.D{{Key: "nextAttemptAt", Value: 1}}},
			},
		},
		{
			collection: global.ColNames.DeliveryHistory,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "eventId", Value: 1}}},
				{Keys: bson.D{{Key: "processedAt", Value: -1}}},
			},
		},
	}

	for _, spec := range specs {
		col, exists := global.RegistryCollections.Get(spec.collection)
		if !exists {
			log.Warnf("EnsureIndexes: collection %s not registered, skipping", spec.collection)
			continue
		}

		createCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		_, err := col.Indexes().CreateMany(createCtx, spec.models)
		cancel()
		if err != nil {
			log.WithError(err).Warnf("EnsureIndexes: failed to create indexes for %s", spec.collection)
			continue
		}
	}

	log.Info("Database indexes ensured")
}
