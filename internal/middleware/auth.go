package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"notekeeper/backend/internal/auth"
	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/reporting"
)

// A private key for context access
type contextKey string

const userContextKey = contextKey("user")

// UserResolver maps a verified identity to the internal user, creating it
// on first sight.
type UserResolver interface {
	GetOrCreate(ctx context.Context, id models.Identity) (*models.User, error)
}

// AuthMiddleware verifies the bearer token, resolves the caller and stores
// the user in the request context. Every token failure gets the same 401.
func AuthMiddleware(verifier auth.Verifier, users UserResolver, log *zap.Logger, rep reporting.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.Debug("token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			abortUnauthenticated(c)
			return
		}

		user, err := users.GetOrCreate(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.Abort()
				return
			}
			log.Error("resolving user failed", zap.String("subject", id.Subject), zap.Error(err))
			rep.CaptureException(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// ForContext finds the user from the context.
func ForContext(ctx context.Context) *models.User {
	raw, _ := ctx.Value(userContextKey).(*models.User)
	return raw
}
