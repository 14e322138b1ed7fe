// Package settingssvc manages the key/value settings the admin frontend
// reads (currency, VAT rate, shipping thresholds). Settings use string keys
// as document ids, so this service works on the raw collection instead of
// the ObjectID-keyed base service.
package settingssvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	settingsmodels "b8_shield/internal/api/settings/models"
	"b8_shield/internal/common"
	"b8_shield/internal/global"
)

// SettingsService reads and writes settings documents.
type SettingsService struct {
	collection *mongo.Collection
}

// NewSettingsService creates the settings service.
func NewSettingsService() (*SettingsService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.Settings)
	if !exists {
		return nil, fmt.Errorf("failed to get settings collection: %w", common.ErrNotFound)
	}
	return &SettingsService{collection: col}, nil
}

// Get returns the setting for key, common.ErrNotFound when absent.
func (s *SettingsService) Get(ctx context.Context, key string) (settingsmodels.Setting, error) {
	var setting settingsmodels.Setting
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&setting)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return setting, common.ErrNotFound
	}
	if err != nil {
		return setting, common.ConvertMongoError(err)
	}
	return setting, nil
}

// Set upserts the setting and returns the stored document.
func (s *SettingsService) Set(ctx context.Context, key string, value interface{}, updatedBy string) (settingsmodels.Setting, error) {
	update := bson.M{"$set": bson.M{
		"value":     value,
		"updatedBy": updatedBy,
		"updatedAt": time.Now().UnixMilli(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var setting settingsmodels.Setting
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": key}, update, opts).Decode(&setting)
	if err != nil {
		return setting, common.ConvertMongoError(err)
	}
	return setting, nil
}

// EnsureDefaults inserts any missing defaults without touching existing
// values. Runs on every startup.
func (s *SettingsService) EnsureDefaults(ctx context.Context, defaults map[string]interface{}) error {
	now := time.Now().UnixMilli()
	for key, value := range defaults {
		_, err := s.collection.UpdateOne(ctx,
			bson.M{"_id": key},
			bson.M{"$setOnInsert": bson.M{"value": value, "updatedAt": now}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, common.ConvertMongoError(err))
		}
	}
	return nil
}
