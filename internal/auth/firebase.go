package auth

import (
	"context"
	"errors"
	"fmt"

	firebaseauth "firebase.google.com/go/v4/auth"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
)

// IDTokenVerifier is the part of *firebaseauth.Client used here.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

type FirebaseVerifier struct {
	client IDTokenVerifier
}

func NewFirebaseVerifier(client IDTokenVerifier) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify delegates signature, audience and expiry checks to the Firebase
// Admin SDK.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, errs.ErrUnauthenticated
	}
	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", errs.ErrUnauthenticated, err)
	}
	if tok == nil || tok.UID == "" {
		return models.Identity{}, fmt.Errorf("%w: %v", errs.ErrUnauthenticated, errors.New("token without subject"))
	}
	return models.Identity{
		Subject:     tok.UID,
		Email:       claimString(tok.Claims, "email"),
		DisplayName: claimString(tok.Claims, "name"),
		PhotoURL:    claimString(tok.Claims, "picture"),
	}, nil
}

func claimString(claims map[string]interface{}, name string) string {
	s, _ := claims[name].(string)
	return s
}
