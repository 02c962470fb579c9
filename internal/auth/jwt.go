package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
)

// identityClaims mirrors the Firebase ID token claims the server reads.
type identityClaims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 tokens signed with a shared secret. It stands in
// for Firebase in local development and against the auth emulator.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, errs.ErrUnauthenticated
	}
	var claims identityClaims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", errs.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing sub claim", errs.ErrUnauthenticated)
	}
	return models.Identity{
		Subject:     claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}

// Issue signs a token for id valid for ttl.
func (v *JWTVerifier) Issue(id models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Email:   id.Email,
		Name:    id.DisplayName,
		Picture: id.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
