package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	ambassadorsvc "b8_shield/internal/api/ambassador/service"
	"b8_shield/internal/delivery"
	"b8_shield/internal/logger"
	"b8_shield/internal/notification"
)

// AmbassadorTriggerWorker periodically scores ambassador contacts and mails
// the admin team when a critical contact surfaces. The dashboard computes
// the same list on demand; this worker only covers the nobody-is-watching
// case.
type AmbassadorTriggerWorker struct {
	dashboardService *ambassadorsvc.DashboardService
	queue            *delivery.Queue
	recipient        string
	interval         time.Duration

	// notified de-duplicates alerts per contact per day.
	notified map[string]string
}

// NewAmbassadorTriggerWorker creates the worker. recipient is the admin
// inbox; an empty recipient disables alerting (the scan still logs).
func NewAmbassadorTriggerWorker(recipient string, interval time.Duration) (*AmbassadorTriggerWorker, error) {
	dashboardService, err := ambassadorsvc.NewDashboardService()
	if err != nil {
		return nil, err
	}
	queue, err := delivery.NewQueue()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = 15 * time.Minute
	}
	return &AmbassadorTriggerWorker{
		dashboardService: dashboardService,
		queue:            queue,
		recipient:        recipient,
		interval:         interval,
		notified:         map[string]string{},
	}, nil
}

// Start runs the scan loop until ctx is cancelled.
func (w *AmbassadorTriggerWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()
	log.WithField("interval", w.interval.String()).Info("[WORKER] Ambassador trigger scan started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithField("panic", r).Error("[WORKER] Ambassador trigger scan panicked")
					}
				}()
				w.Scan(ctx, time.Now())
			}()
		}
	}
}

// Scan computes the trigger list and alerts on critical contacts not yet
// notified today.
func (w *AmbassadorTriggerWorker) Scan(ctx context.Context, now time.Time) {
	log := logger.GetAppLogger()

	results, err := w.dashboardService.Triggers(ctx, now)
	if err != nil {
		log.WithError(err).Error("[WORKER] Ambassador trigger scan failed")
		return
	}
	if len(results) == 0 {
		return
	}

	today := now.Format("2006-01-02")
	var critical []ambassadorsvc.TriggerResult
	for _, r := range results {
		if r.TagScore.Urgency != ambassadorsvc.UrgencyCritical {
			continue
		}
		id := r.Contact.ID.Hex()
		if w.notified[id] == today {
			continue
		}
		w.notified[id] = today
		critical = append(critical, r)
	}

	if len(critical) == 0 || w.recipient == "" {
		return
	}

	var lines []string
	for _, r := range critical {
		lines = append(lines, fmt.Sprintf("<li>%s (poäng %d): %s</li>", r.Contact.Name, r.Score, r.TagScore.Reason))
	}
	payload := map[string]interface{}{
		"subject": fmt.Sprintf("Akuta ambassadörskontakter (%d)", len(critical)),
		"body":    "<p>Följande kontakter kräver omedelbar uppföljning:</p><ul>" + strings.Join(lines, "") + "</ul>",
	}

	if err := w.queue.Enqueue(ctx, notification.EventAmbassadorTrigger, notification.ChannelEmail,
		w.recipient, notification.SeverityCritical, payload); err != nil {
		log.WithError(err).Error("[WORKER] Failed to enqueue ambassador alert")
	}
}
