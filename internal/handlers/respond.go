package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/middleware"
	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/services"
)

// fail writes the error response for err. resource names the record in 404
// bodies, e.g. "Reminder not found".
func (h *Handler) fail(c *gin.Context, resource string, err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, errs.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, services.ErrPayloadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
	case errors.Is(err, services.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads are not available"})
	case errors.Is(err, context.Canceled):
		c.Status(499)
	default:
		h.log.Error("request failed",
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		h.rep.CaptureException(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
	_ = c.Error(err)
}

// currentUser returns the caller placed in the context by AuthMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	user := middleware.ForContext(c.Request.Context())
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	return user, true
}

func parseID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, errs.Validation("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// bindJSON decodes the request body. A malformed body is a validation error.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return errs.Validation("invalid JSON body")
	}
	return nil
}
