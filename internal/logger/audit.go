package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditEntry describes one auditable action for the audit log file. The
// database keeps the authoritative per-order statusHistory; this file is the
// operator-readable trail across all collections.
type AuditEntry struct {
	Actor      string // user id or firebase uid
	ActorName  string // display name at the time of the action
	Action     string // e.g. order.status_update, order.cancel, customer.status_change
	TargetType string // orders, users, affiliates
	TargetID   string
	From       string
	To         string
}

// Audit writes one entry to the audit logger.
func Audit(e AuditEntry) {
	GetAuditLogger().WithFields(logrus.Fields{
		"actor":      e.Actor,
		"actorName":  e.ActorName,
		"action":     e.Action,
		"targetType": e.TargetType,
		"targetId":   e.TargetID,
		"from":       e.From,
		"to":         e.To,
	}).Info("audit")
}
