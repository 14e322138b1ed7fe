// Package ambassadorsvc implements the ambassador module: contact and
// activity management, tag harvesting and the priority scorer behind the
// trigger dashboard.
package ambassadorsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "b8_shield/internal/api/base/service"
	ambassadormodels "b8_shield/internal/api/ambassador/models"
	"b8_shield/internal/common"
	"b8_shield/internal/global"
	"b8_shield/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactService manages ambassador contacts in the shared affiliates
// collection.
type ContactService struct {
	*basesvc.BaseServiceMongoImpl[ambassadormodels.Contact]
}

// NewContactService creates the contact service.
func NewContactService() (*ContactService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.Affiliates)
	if !exists {
		return nil, fmt.Errorf("failed to get affiliates collection: %w", common.ErrNotFound)
	}
	return &ContactService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ambassadormodels.Contact](col),
	}, nil
}

// CreateContact inserts a new ambassador contact with defaults and a derived
// influencer tier.
func (s *ContactService) CreateContact(ctx context.Context, contact ambassadormodels.Contact) (ambassadormodels.Contact, error) {
	contact.ContactType = ambassadormodels.ContactTypeAmbassador
	if contact.Status == "" {
		contact.Status = ambassadormodels.ContactStatusProspect
	}
	contact.InfluencerTier = ambassadormodels.DeriveTier(contact.MaxAudience())
	contact.Tags = MergeTags(contact.Tags)
	return s.InsertOne(ctx, contact)
}

// UpdateContact applies field updates and re-derives the tier when platforms
// changed.
func (s *ContactService) UpdateContact(ctx context.Context, id primitive.ObjectID, set map[string]interface{}) (ambassadormodels.Contact, error) {
	if platforms, ok := set["platforms"].(map[string]ambassadormodels.Platform); ok {
		probe := ambassadormodels.Contact{Platforms: platforms}
		set["influencerTier"] = ambassadormodels.DeriveTier(probe.MaxAudience())
	}
	return s.UpdateById(ctx, id, basesvc.UpdateData{Set: set})
}

// FindAmbassadors lists ambassador contacts, optionally filtered by status.
func (s *ContactService) FindAmbassadors(ctx context.Context, status string) ([]ambassadormodels.Contact, error) {
	filter := bson.M{"contactType": ambassadormodels.ContactTypeAmbassador}
	if status != "" {
		filter["status"] = status
	}
	return s.Find(ctx, filter, nil)
}

// Activate flips a contact to the active affiliate view. One-way: there is
// no deactivate operation.
func (s *ContactService) Activate(ctx context.Context, id primitive.ObjectID) (ambassadormodels.Contact, error) {
	updated, err := s.UpdateById(ctx, id, basesvc.UpdateData{Set: map[string]interface{}{
		"active": true,
		"status": ambassadormodels.ContactStatusActive,
	}})
	if err != nil {
		return updated, err
	}
	logger.GetAppLogger().WithField("contactId", id.Hex()).Info("[AMBASSADOR] Contact activated")
	return updated, nil
}

// TouchLastContact stamps the contact's last interaction time.
func (s *ContactService) TouchLastContact(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.UpdateById(ctx, id, basesvc.UpdateData{Set: map[string]interface{}{
		"lastContactAt": at.UnixMilli(),
	}})
	return err
}

// AmbassadorActivityService manages activity records.
type AmbassadorActivityService struct {
	*basesvc.BaseServiceMongoImpl[ambassadormodels.AmbassadorActivity]
}

// NewAmbassadorActivityService creates the activity service.
func NewAmbassadorActivityService() (*AmbassadorActivityService, error) {
	col, exists := global.RegistryCollections.Get(global.ColNames.AmbassadorActivities)
	if !exists {
		return nil, fmt.Errorf("failed to get ambassador_activities collection: %w", common.ErrNotFound)
	}
	return &AmbassadorActivityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ambassadormodels.AmbassadorActivity](col),
	}, nil
}

// FindByContact lists a contact's activities, newest first.
func (s *AmbassadorActivityService) FindByContact(ctx context.Context, contactID primitive.ObjectID) ([]ambassadormodels.AmbassadorActivity, error) {
	return s.Find(ctx, bson.M{"contactId": contactID}, nil)
}
