// Package auth verifies bearer tokens issued by the identity provider.
package auth

import (
	"context"
	"strings"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
)

// Verifier turns a raw bearer token into a verified identity. Every
// rejection is reported as errs.ErrUnauthenticated, wrapped with the cause
// for logging only.
type Verifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errs.ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errs.ErrUnauthenticated
	}
	return token, nil
}
