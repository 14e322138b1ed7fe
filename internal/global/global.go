// Package global holds process-wide singletons initialized during startup:
// server configuration, the MongoDB client, the collection registry and the
// request validator. Initialization order lives in cmd/server.
package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"b8_shield/config"
	"b8_shield/internal/registry"
)

// ServerConfig is the parsed configuration for the running process.
var ServerConfig *config.Configuration

// MongoClient is the shared MongoDB client.
var MongoClient *mongo.Client

// RegistryCollections maps collection names to *mongo.Collection handles.
var RegistryCollections = registry.NewRegistry[*mongo.Collection]()

// Validate is the shared request validator (custom validators registered in
// InitValidator).
var Validate *validator.Validate

// ColNames lists every collection the service touches. Populated in
// cmd/server init so the names live in exactly one place.
var ColNames = struct {
	Orders               string
	OrderCounters        string
	Users                string
	Activities           string
	Affiliates           string
	AmbassadorActivities string
	AffiliateClicks      string
	Settings             string
	DeliveryQueue        string
	DeliveryHistory      string
}{}
