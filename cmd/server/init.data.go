package main

import (
	"context"
	"errors"
	"time"

	basesvc "b8_shield/internal/api/base/service"
	customermodels "b8_shield/internal/api/customer/models"
	customersvc "b8_shield/internal/api/customer/service"
	settingssvc "b8_shield/internal/api/settings/service"
	"b8_shield/internal/common"
	"b8_shield/internal/global"
	"b8_shield/internal/logger"
)

// InitDefaultData seeds idempotent defaults: the admin account bound to the
// configured Firebase UID, and the settings document the frontend reads.
func InitDefaultData() {
	log := logger.GetAppLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	initAdminUser(ctx)
	initSettings(ctx)

	log.Info("Default data initialized")
}

// initAdminUser creates the admin account for the configured Firebase UID.
// Without FIREBASE_ADMIN_UID nothing is seeded and accounts are created on
// first authenticated request instead.
func initAdminUser(ctx context.Context) {
	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	if cfg.FirebaseAdminUID == "" {
		log.Info("FIREBASE_ADMIN_UID not set, skipping admin user seed")
		return
	}

	customerService, err := customersvc.NewCustomerService()
	if err != nil {
		log.WithError(err).Error("Failed to create customer service for admin seed")
		return
	}

	existing, err := customerService.FindByFirebaseUID(ctx, cfg.FirebaseAdminUID)
	if err == nil {
		if existing.Role != common.RoleAdmin {
			if _, err := customerService.UpdateById(ctx, existing.ID, basesvc.UpdateData{
				Set: map[string]interface{}{"role": common.RoleAdmin},
			}); err != nil {
				log.WithError(err).Error("Failed to promote existing user to admin")
				return
			}
			log.Infof("Promoted user %s to admin", existing.ID.Hex())
		}
		return
	}
	if !errors.Is(err, common.ErrNotFound) {
		log.WithError(err).Error("Failed to look up admin user")
		return
	}

	created, err := customerService.CreateCustomer(ctx, customermodels.Customer{
		FirebaseUID: cfg.FirebaseAdminUID,
		DisplayName: "Administrator",
		Role:        common.RoleAdmin,
		Status:      customermodels.StatusActive,
	})
	if err != nil {
		log.WithError(err).Error("Failed to seed admin user")
		return
	}
	log.Infof("Admin user seeded from Firebase UID (ID: %s)", created.ID.Hex())
}

// initSettings inserts missing setting defaults without touching values the
// admin has already edited.
func initSettings(ctx context.Context) {
	log := logger.GetAppLogger()

	settingsService, err := settingssvc.NewSettingsService()
	if err != nil {
		log.WithError(err).Error("Failed to create settings service for seed")
		return
	}

	defaults := map[string]interface{}{
		"currency":        "SEK",
		"vatRate":         0.25,
		"orderPrefix":     "B8",
		"freeShippingMin": 500.0,
	}
	if err := settingsService.EnsureDefaults(ctx, defaults); err != nil {
		log.WithError(err).Error("Failed to seed settings")
		return
	}
	log.Info("Settings defaults ensured")
}
