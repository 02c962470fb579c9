package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/services"
)

// multipartOverhead is the allowance for form fields and part headers on
// top of the file limit.
const multipartOverhead = 1 << 20

// Upload stores a note image, voice recording or avatar and returns its URL.
func (h *Handler) Upload(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !h.uploads.Enabled() {
		h.fail(c, "Upload", services.ErrStorageDisabled)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploads.MaxBytes()+multipartOverhead)
	if err := c.Request.ParseMultipartForm(h.uploads.MaxBytes()); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, "Upload", services.ErrPayloadTooLarge)
			return
		}
		h.fail(c, "Upload", errs.Validation("error parsing form data"))
		return
	}
	if c.Request.MultipartForm != nil {
		defer c.Request.MultipartForm.RemoveAll()
	}

	kind := services.UploadKind(strings.ToLower(strings.TrimSpace(c.Request.FormValue("kind"))))
	if kind == "" {
		kind = services.UploadImage
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.fail(c, "Upload", errs.Validation("file is required"))
		return
	}
	defer file.Close()

	up, err := h.uploads.Upload(c.Request.Context(), user.ID, kind, file, header.Size)
	if err != nil {
		h.fail(c, "Upload", err)
		return
	}
	c.JSON(http.StatusCreated, up)
}
