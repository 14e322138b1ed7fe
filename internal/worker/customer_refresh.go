// Package worker - background workers: the nightly customer status refresh
// and the ambassador trigger scan.
package worker

import (
	"context"
	"time"

	customersvc "b8_shield/internal/api/customer/service"
	"b8_shield/internal/logger"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// CustomerRefreshWorker re-runs the status automation over every customer on
// a nightly schedule. The inline triggers cover the common paths; this sweep
// catches customers whose order value crossed a threshold without a
// triggering action (e.g. a bulk status correction).
type CustomerRefreshWorker struct {
	customerService *customersvc.CustomerService
	schedule        string
	cron            *cron.Cron
}

// NewCustomerRefreshWorker creates the worker. schedule is a cron expression;
// empty means the 02:00 nightly default.
func NewCustomerRefreshWorker(schedule string) (*CustomerRefreshWorker, error) {
	customerService, err := customersvc.NewCustomerService()
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = "0 2 * * *"
	}
	return &CustomerRefreshWorker{
		customerService: customerService,
		schedule:        schedule,
	}, nil
}

// Start schedules the nightly run. Returns after registering; the cron
// scheduler runs in its own goroutines until ctx is cancelled.
func (w *CustomerRefreshWorker) Start(ctx context.Context) error {
	w.cron = cron.New()

	_, err := w.cron.AddFunc(w.schedule, func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetAppLogger().WithField("panic", r).Error("[WORKER] Customer refresh panicked")
			}
		}()
		w.RefreshAll(ctx)
	})
	if err != nil {
		return err
	}

	w.cron.Start()
	logger.GetAppLogger().WithField("schedule", w.schedule).Info("[WORKER] Customer refresh scheduled")

	go func() {
		<-ctx.Done()
		w.cron.Stop()
	}()
	return nil
}

// RefreshAll evaluates every customer once. Failures are per-customer and
// logged; the sweep continues.
func (w *CustomerRefreshWorker) RefreshAll(ctx context.Context) {
	log := logger.GetAppLogger()
	started := time.Now()

	customers, err := w.customerService.Find(ctx, bson.M{}, nil)
	if err != nil {
		log.WithError(err).Error("[WORKER] Customer refresh failed to list customers")
		return
	}

	changed := 0
	for _, customer := range customers {
		eval, err := w.customerService.DetectStatusChange(ctx, customer.ID, customersvc.AutomationContext{})
		if err != nil {
			log.WithError(err).WithField("customerId", customer.ID.Hex()).
				Warn("[WORKER] Customer refresh evaluation failed")
			continue
		}
		if eval.Changed {
			changed++
		}
	}

	log.WithFields(map[string]interface{}{
		"customers": len(customers),
		"changed":   changed,
		"duration":  time.Since(started).String(),
	}).Info("[WORKER] Customer refresh completed")
}
