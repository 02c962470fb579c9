package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notekeeper/backend/internal/models"
)

// ListNotes returns the caller's notes, newest first.
func (h *Handler) ListNotes(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	notes, err := h.notes.List(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, "Note", err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *Handler) CreateNote(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var in models.NoteInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, "Note", err)
		return
	}
	note, err := h.notes.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		h.fail(c, "Note", err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// UpdateNote applies a partial update to one of the caller's notes.
func (h *Handler) UpdateNote(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.fail(c, "Note", err)
		return
	}
	var patch models.NotePatch
	if err := bindJSON(c, &patch); err != nil {
		h.fail(c, "Note", err)
		return
	}
	note, err := h.notes.Update(c.Request.Context(), user.ID, id, patch)
	if err != nil {
		h.fail(c, "Note", err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) DeleteNote(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.fail(c, "Note", err)
		return
	}
	if err := h.notes.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.fail(c, "Note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}
