package ambassadorsvc

import (
	"context"
	"fmt"
	"time"

	ambassadormodels "b8_shield/internal/api/ambassador/models"
	"b8_shield/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// DashboardService computes the trigger list: contacts that deserve
// attention right now, scored from tags and contact staleness. Nothing here
// is persisted; the list is recomputed per request and by the trigger scan
// worker.
type DashboardService struct {
	contactService  *ContactService
	activityService *AmbassadorActivityService
}

// NewDashboardService creates the dashboard service.
func NewDashboardService() (*DashboardService, error) {
	contactService, err := NewContactService()
	if err != nil {
		return nil, err
	}
	activityService, err := NewAmbassadorActivityService()
	if err != nil {
		return nil, err
	}
	return &DashboardService{
		contactService:  contactService,
		activityService: activityService,
	}, nil
}

// RecordActivity inserts an activity with tags harvested from its
// description and stamps the contact's last contact time.
func (s *DashboardService) RecordActivity(ctx context.Context, activity ambassadormodels.AmbassadorActivity) (ambassadormodels.AmbassadorActivity, error) {
	activity.Tags = MergeTags(activity.Tags, ExtractTags(activity.Description))

	created, err := s.activityService.InsertOne(ctx, activity)
	if err != nil {
		return created, err
	}

	if err := s.contactService.TouchLastContact(ctx, activity.ContactID, time.Now()); err != nil {
		logger.GetAppLogger().WithError(err).WithField("contactId", activity.ContactID.Hex()).
			Warn("[AMBASSADOR] Failed to stamp last contact time")
	}
	return created, nil
}

// ContactService exposes the contact service for handlers.
func (s *DashboardService) ContactService() *ContactService {
	return s.contactService
}

// ActivityService exposes the activity service for handlers.
func (s *DashboardService) ActivityService() *AmbassadorActivityService {
	return s.activityService
}

// ScoreContact merges a contact's own tags with tags harvested from all its
// activities and computes the full trigger score.
func (s *DashboardService) ScoreContact(ctx context.Context, contact *ambassadormodels.Contact, now time.Time) (TriggerResult, error) {
	activities, err := s.activityService.FindByContact(ctx, contact.ID)
	if err != nil {
		return TriggerResult{}, fmt.Errorf("failed to load activities: %w", err)
	}

	groups := [][]string{contact.Tags}
	lastContact := contact.LastContactAt
	for _, activity := range activities {
		groups = append(groups, activity.Tags)
		if activity.Description != "" {
			groups = append(groups, ExtractTags(activity.Description))
		}
		if activity.CreatedAt > lastContact {
			lastContact = activity.CreatedAt
		}
	}
	tags := MergeTags(groups...)

	days := 0
	if lastContact > 0 {
		days = int(now.Sub(time.UnixMilli(lastContact)).Hours() / 24)
		if days < 0 {
			days = 0
		}
	}

	tagScore := CalculateTagScore(tags, days)
	return TriggerResult{
		Contact:  contact,
		TagScore: tagScore,
		Score:    CalculateTriggerScore(contact, tagScore, days),
	}, nil
}

// Triggers returns the gated, sorted trigger list over all non-terminal
// ambassador contacts.
func (s *DashboardService) Triggers(ctx context.Context, now time.Time) ([]TriggerResult, error) {
	filter := bson.M{
		"contactType": ambassadormodels.ContactTypeAmbassador,
		"status": bson.M{"$nin": []string{
			ambassadormodels.ContactStatusDeclined,
			ambassadormodels.ContactStatusConverted,
		}},
	}
	contacts, err := s.contactService.Find(ctx, filter, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	results := make([]TriggerResult, 0, len(contacts))
	for i := range contacts {
		result, err := s.ScoreContact(ctx, &contacts[i], now)
		if err != nil {
			logger.GetAppLogger().WithError(err).WithField("contactId", contacts[i].ID.Hex()).
				Warn("[AMBASSADOR] Failed to score contact, skipping")
			continue
		}
		results = append(results, result)
	}

	return FilterTriggers(results, now), nil
}

// DashboardSummary is the admin dashboard payload: contact counts per status
// plus the gated trigger list.
type DashboardSummary struct {
	StatusCounts map[string]int64 `json:"statusCounts"`
	Total        int64            `json:"total"`
	Triggers     []TriggerResult  `json:"triggers"`
}

// Dashboard builds the summary served at /ambassadors/dashboard.
func (s *DashboardService) Dashboard(ctx context.Context, now time.Time) (DashboardSummary, error) {
	summary := DashboardSummary{StatusCounts: make(map[string]int64)}

	statuses := []string{
		ambassadormodels.ContactStatusProspect,
		ambassadormodels.ContactStatusContacted,
		ambassadormodels.ContactStatusNegotiating,
		ambassadormodels.ContactStatusConverted,
		ambassadormodels.ContactStatusDeclined,
		ambassadormodels.ContactStatusActive,
	}
	for _, status := range statuses {
		n, err := s.contactService.CountDocuments(ctx, bson.M{
			"contactType": ambassadormodels.ContactTypeAmbassador,
			"status":      status,
		})
		if err != nil {
			return summary, fmt.Errorf("failed to count %s contacts: %w", status, err)
		}
		summary.StatusCounts[status] = n
		summary.Total += n
	}

	triggers, err := s.Triggers(ctx, now)
	if err != nil {
		return summary, err
	}
	summary.Triggers = triggers
	return summary, nil
}
