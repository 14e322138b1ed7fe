package common

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles an authenticated actor may hold.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Actor is the authenticated identity attached to each request by the auth
// middleware. Services authorize against it; handlers never re-check roles.
type Actor struct {
	ID          primitive.ObjectID
	FirebaseUID string
	Email       string
	DisplayName string
	Role        string
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

type actorContextKey struct{}

// SetActorToContext returns a context carrying the actor.
func SetActorToContext(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the actor stored in ctx, nil when absent.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorContextKey{}).(*Actor)
	return actor
}
