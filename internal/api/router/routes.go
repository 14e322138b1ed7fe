// Package router wires every handler into the Fiber route tree.
package router

import (
	"fmt"

	affiliatehdl "b8_shield/internal/api/affiliate/handler"
	ambassadorhdl "b8_shield/internal/api/ambassador/handler"
	customerhdl "b8_shield/internal/api/customer/handler"
	orderhdl "b8_shield/internal/api/order/handler"
	settingshdl "b8_shield/internal/api/settings/handler"
	"b8_shield/internal/middleware"

	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes builds all handlers and mounts the API surface under
// /api/v1.
func RegisterRoutes(app *fiber.App) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("failed to create order handler: %w", err)
	}
	customerHandler, err := customerhdl.NewCustomerHandler()
	if err != nil {
		return fmt.Errorf("failed to create customer handler: %w", err)
	}
	ambassadorHandler, err := ambassadorhdl.NewAmbassadorHandler()
	if err != nil {
		return fmt.Errorf("failed to create ambassador handler: %w", err)
	}
	affiliateHandler, err := affiliatehdl.NewAffiliateHandler()
	if err != nil {
		return fmt.Errorf("failed to create affiliate handler: %w", err)
	}
	settingsHandler, err := settingshdl.NewSettingsHandler()
	if err != nil {
		return fmt.Errorf("failed to create settings handler: %w", err)
	}

	healthCheck := func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
	app.Get("/health", healthCheck)

	api := app.Group("/api/v1")
	api.Get("/health", healthCheck)

	// Public: storefront click tracking happens before any login.
	api.Post("/affiliate-clicks", affiliateHandler.RecordClick)

	authed := middleware.Auth(false)
	admin := middleware.Auth(true)

	// Orders. Creation and cancellation are open to customers; everything
	// else is admin.
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create, authed)
	orders.Post("/:id/cancel", orderHandler.Cancel, authed)
	orders.Get("/", orderHandler.FindWithPagination, admin)
	orders.Get("/export", orderHandler.ExportCSV, admin)
	orders.Get("/:id", orderHandler.FindOneById, admin)
	orders.Get("/:id/label", orderHandler.PrintLabel, admin)
	orders.Put("/:id/status", orderHandler.UpdateStatus, admin)
	orders.Delete("/:id", orderHandler.Delete, admin)

	// Customers (CRM).
	customers := api.Group("/customers")
	customers.Post("/login-event", customerHandler.LoginEvent, authed)
	customers.Get("/", customerHandler.FindWithPagination, admin)
	customers.Post("/", customerHandler.Create, admin)
	customers.Get("/:id", customerHandler.FindOneById, admin)
	customers.Put("/:id", customerHandler.Update, admin)
	customers.Post("/:id/evaluate", customerHandler.Evaluate, admin)
	customers.Post("/:id/activities", customerHandler.CreateActivity, admin)

	// Ambassador module. Admin console only.
	ambassadors := api.Group("/ambassadors", admin)
	ambassadors.Get("/dashboard", ambassadorHandler.Dashboard)
	ambassadors.Get("/triggers", ambassadorHandler.Triggers)
	ambassadors.Get("/", ambassadorHandler.Find)
	ambassadors.Post("/", ambassadorHandler.Create)
	ambassadors.Get("/:id", ambassadorHandler.FindOneById)
	ambassadors.Put("/:id", ambassadorHandler.Update)
	ambassadors.Delete("/:id", ambassadorHandler.DeleteById)
	ambassadors.Post("/:id/activate", ambassadorHandler.Activate)
	ambassadors.Get("/:id/activities", ambassadorHandler.ListActivities)
	ambassadors.Post("/:id/activities", ambassadorHandler.CreateActivity)
	ambassadors.Delete("/activities/:id", ambassadorHandler.DeleteActivity)

	// Affiliate stats for the admin view.
	api.Get("/affiliates/:code/stats", affiliateHandler.Stats, admin)

	// Settings key/value surface.
	settings := api.Group("/settings", admin)
	settings.Get("/:key", settingsHandler.Get)
	settings.Put("/:key", settingsHandler.Put)

	return nil
}
