// README: Firebase Admin SDK initialisation and ID-token verifiers.
package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	UID    string
	Email  string
	Claims map[string]interface{}
}

// TokenVerifier verifies a raw ID token string and returns the caller identity.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier creates a TokenVerifier using the Firebase Admin SDK.
// If credentialsFile is empty, application-default credentials are used.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	id := &Identity{UID: token.UID, Claims: token.Claims}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}

// DevVerifier accepts "dev:<uid>" tokens. It is only wired when ECO_ENV=development
// and no Firebase project is configured.
type DevVerifier struct{}

func (DevVerifier) VerifyIDToken(_ context.Context, idToken string) (*Identity, error) {
	uid, ok := strings.CutPrefix(idToken, "dev:")
	if !ok || uid == "" {
		return nil, errors.New("dev token must look like dev:<uid>")
	}
	return &Identity{UID: uid, Claims: map[string]interface{}{}}, nil
}
