package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tailorcart/internal/attachment"
	"tailorcart/internal/domain"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoDraft),
		errors.Is(err, domain.ErrDuplicateReview),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrMissingAddress),
		errors.Is(err, domain.ErrIncompleteForm),
		errors.Is(err, domain.ErrInvalidOrder),
		errors.Is(err, domain.ErrInvalidReview),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrAttachmentLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, attachment.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		_ = c.Error(err)
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
