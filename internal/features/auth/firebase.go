package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// TokenVerifier checks a Google/Firebase ID token.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleUser, error)
}

// InitFirebase initializes the Firebase Admin SDK and returns the Auth client
func InitFirebase(ctx context.Context, serviceAccountPath string) (*fbauth.Client, error) {
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	return client, nil
}

// FirebaseVerifier verifies ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*GoogleUser, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid google token: %w", err)
	}
	return googleUserFromClaims(token.UID, token.Claims), nil
}

func googleUserFromClaims(uid string, claims map[string]interface{}) *GoogleUser {
	googleUser := &GoogleUser{UID: uid}

	if email, ok := claims["email"].(string); ok {
		googleUser.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		googleUser.Name = name
	}
	if picture, ok := claims["picture"].(string); ok {
		googleUser.Picture = picture
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		googleUser.EmailVerified = verified
	}

	return googleUser
}
