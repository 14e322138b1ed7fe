package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"b8_shield/config"
	affiliatesvc "b8_shield/internal/api/affiliate/service"
	"b8_shield/internal/database"
	"b8_shield/internal/global"
)

// InitRegistry registers every collection handle, ensures indexes and wires
// the event hooks that need live services.
func InitRegistry() {
	if err := initCollections(global.MongoClient, global.ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	database.EnsureIndexes(ctx)

	initEventHooks()
}

// initCollections registers the MongoDB collection handles into the global
// registry so services can resolve them by name.
func initCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.ColNames.Orders,
		global.ColNames.OrderCounters,
		global.ColNames.Users,
		global.ColNames.Activities,
		global.ColNames.Affiliates,
		global.ColNames.AmbassadorActivities,
		global.ColNames.AffiliateClicks,
		global.ColNames.Settings,
		global.ColNames.DeliveryQueue,
		global.ColNames.DeliveryHistory,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}

// initEventHooks subscribes services to the data-change bus. The affiliate
// click hook marks clicks converted when an order with an affiliate code is
// inserted.
func initEventHooks() {
	clickService, err := affiliatesvc.NewClickService()
	if err != nil {
		logrus.Errorf("Failed to create click service, affiliate conversion hook disabled: %v", err)
		return
	}
	clickService.RegisterOrderConversionHook()
	logrus.Info("Affiliate conversion hook registered")
}
