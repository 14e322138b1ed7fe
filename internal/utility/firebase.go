package utility

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *auth.Client
)

// InitFirebase initializes the Firebase Admin SDK used for ID-token
// verification. Safe to skip when no credentials are configured; auth
// middleware then rejects all requests carrying bearer tokens.
func InitFirebase(projectID, credentialsPath string) error {
	if credentialsPath == "" {
		return fmt.Errorf("firebase credentials path is empty")
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	ctx := context.Background()
	conf := &firebase.Config{ProjectID: projectID}

	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize firebase auth: %w", err)
	}

	firebaseApp = app
	firebaseAuth = authClient
	return nil
}

// VerifyIDToken verifies a Firebase ID token and returns the decoded token.
func VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth not initialized")
	}
	return firebaseAuth.VerifyIDToken(ctx, idToken)
}
