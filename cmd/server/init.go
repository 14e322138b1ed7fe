package main

import (
	"github.com/sirupsen/logrus"

	"b8_shield/config"
	"b8_shield/internal/database"
	"b8_shield/internal/global"
	"b8_shield/internal/utility"
)

// InitGlobal populates the process-wide singletons in dependency order.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabase()
	initFirebase()
}

// initColNames fixes the collection names in one place.
func initColNames() {
	global.ColNames.Orders = "orders"
	global.ColNames.OrderCounters = "order_counters"
	global.ColNames.Users = "users"
	global.ColNames.Activities = "activities"
	global.ColNames.Affiliates = "affiliates"
	global.ColNames.AmbassadorActivities = "ambassador_activities"
	global.ColNames.AffiliateClicks = "affiliate_clicks"
	global.ColNames.Settings = "settings"
	global.ColNames.DeliveryQueue = "delivery_queue"
	global.ColNames.DeliveryHistory = "delivery_history"

	logrus.Info("Initialized collection names")
}

// initValidator registers the custom validators (no_xss, order_status, ...).
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

func initDatabase() {
	var err error
	global.MongoClient, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")
}

// initFirebase sets up the Admin SDK used for ID token verification. Missing
// config is a warning, not a fatal: local development can run without it.
func initFirebase() {
	cfg := global.ServerConfig
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config incomplete, skipping Firebase initialization (token verification will fail)")
		return
	}

	if err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath); err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		return
	}
	logrus.Info("Firebase initialized successfully")
}
