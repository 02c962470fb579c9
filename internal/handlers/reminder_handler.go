package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notekeeper/backend/internal/models"
)

// ListReminders returns the caller's reminders ordered by scheduled time.
func (h *Handler) ListReminders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reminders, err := h.reminders.List(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (h *Handler) CreateReminder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var in models.ReminderInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	rem, err := h.reminders.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	c.JSON(http.StatusCreated, rem)
}

func (h *Handler) UpdateReminder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	var patch models.ReminderPatch
	if err := bindJSON(c, &patch); err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	rem, err := h.reminders.Update(c.Request.Context(), user.ID, id, patch)
	if err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	c.JSON(http.StatusOK, rem)
}

func (h *Handler) DeleteReminder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	if err := h.reminders.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}

// CompleteReminder marks a reminder done. Repeating the call is harmless.
func (h *Handler) CompleteReminder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	rem, err := h.reminders.MarkComplete(c.Request.Context(), user.ID, id)
	if err != nil {
		h.fail(c, "Reminder", err)
		return
	}
	c.JSON(http.StatusOK, rem)
}
