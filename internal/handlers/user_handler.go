package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notekeeper/backend/internal/models"
)

// GetProfile re-reads the caller so that the response reflects writes made
// since the user was cached.
func (h *Handler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	fresh, err := h.users.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, fresh)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var patch models.ProfilePatch
	if err := bindJSON(c, &patch); err != nil {
		h.fail(c, "User", err)
		return
	}
	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, patch)
	if err != nil {
		h.fail(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var patch models.SettingsPatch
	if err := bindJSON(c, &patch); err != nil {
		h.fail(c, "User", err)
		return
	}
	updated, err := h.users.UpdateSettings(c.Request.Context(), user.ID, patch)
	if err != nil {
		h.fail(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAccount removes the caller with all of their notes and reminders.
func (h *Handler) DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.users.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		h.fail(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
