// Package affiliatesvc tracks affiliate clicks and attributes conversions
// when orders arrive with an affiliate code.
package affiliatesvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	affiliatemodels "b8_shield/internal/api/affiliate/models"
	basesvc "b8_shield/internal/api/base/service"
	"b8_shield/internal/api/events"
	ordermodels "b8_shield/internal/api/order/models"
	"b8_shield/internal/common"
	"b8_shield/internal/global"
	"b8_shield/internal/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClickService manages affiliate click documents.
type ClickService struct {
	*basesvc.BaseServiceMongoImpl[affiliatemodels.AffiliateClick]
}

// NewClickService creates the click service.
func NewClickService() (*ClickService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.AffiliateClicks)
	if !exists {
		return nil, fmt.Errorf("failed to get affiliate_clicks collection: %w", common.ErrNotFound)
	}
	return &ClickService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[affiliatemodels.AffiliateClick](col),
	}, nil
}

// RecordClick stores one landing with a fresh click id.
func (s *ClickService) RecordClick(ctx context.Context, click affiliatemodels.AffiliateClick) (affiliatemodels.AffiliateClick, error) {
	click.ClickID = uuid.NewString()
	click.Converted = false
	return s.InsertOne(ctx, click)
}

// ConvertByCode attributes an order to the most recent unconverted click for
// the given affiliate code. No click is not an error; the order simply has
// no tracked landing.
func (s *ClickService) ConvertByCode(ctx context.Context, code string, order *ordermodels.Order) error {
	if code == "" {
		return nil
	}

	filter := bson.M{"affiliateCode": code, "converted": false}
	update := bson.M{"$set": bson.M{
		"converted":   true,
		"orderId":     order.ID,
		"convertedAt": time.Now().UnixMilli(),
		"updatedAt":   time.Now().UnixMilli(),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	click, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"clickId":       click.ClickID,
		"affiliateCode": code,
		"orderId":       order.ID.Hex(),
	}).Info("[AFFILIATE] Click converted")
	return nil
}

// ConversionStats summarises a code's click performance.
type ConversionStats struct {
	AffiliateCode string `json:"affiliateCode"`
	Clicks        int64  `json:"clicks"`
	Conversions   int64  `json:"conversions"`
}

// StatsByCode counts clicks and conversions for one affiliate code.
func (s *ClickService) StatsByCode(ctx context.Context, code string) (*ConversionStats, error) {
	clicks, err := s.CountDocuments(ctx, bson.M{"affiliateCode": code})
	if err != nil {
		return nil, err
	}
	conversions, err := s.CountDocuments(ctx, bson.M{"affiliateCode": code, "converted": true})
	if err != nil {
		return nil, err
	}
	return &ConversionStats{AffiliateCode: code, Clicks: clicks, Conversions: conversions}, nil
}

// RegisterOrderConversionHook subscribes to order inserts on the data-change
// bus and converts the matching click when the order carries an affiliate
// code.
func (s *ClickService) RegisterOrderConversionHook() {
	events.OnDataChanged(func(ctx context.Context, event events.DataChangeEvent) {
		if event.CollectionName != global.ColNames.Orders || event.Operation != events.OpInsert {
			return
		}
		order, ok := event.Document.(ordermodels.Order)
		if !ok {
			return
		}
		if order.AffiliateCode == "" {
			return
		}
		if err := s.ConvertByCode(ctx, order.AffiliateCode, &order); err != nil {
			logger.GetAppLogger().WithError(err).WithField("orderId", order.ID.Hex()).
				Warn("[AFFILIATE] Failed to convert click for order")
		}
	})
}
