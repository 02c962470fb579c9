package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Search looks up the caller's notes and reminders matching ?q=.
func (h *Handler) Search(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	results, err := h.search.Search(c.Request.Context(), user.ID, c.Query("q"))
	if err != nil {
		h.fail(c, "Result", err)
		return
	}
	c.JSON(http.StatusOK, results)
}
