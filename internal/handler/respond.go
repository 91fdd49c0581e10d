package handler

import (
	"CloudVault/internal/service"
	"CloudVault/internal/task"
	"CloudVault/model"
	"CloudVault/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// fail maps a service error to its HTTP status and writes the body.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrGone):
		status = http.StatusGone
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func currentUserID(c *gin.Context) uint64 {
	value, _ := c.Get("user_id")
	userID, _ := value.(uint64)
	return userID
}

// outcomeForError classifies a failed public access for the audit log.
func outcomeForError(err error) string {
	switch {
	case errors.Is(err, service.ErrGone):
		return task.OutcomeGone
	case errors.Is(err, service.ErrNotFound):
		return task.OutcomeMiss
	case errors.Is(err, service.ErrForbidden):
		return task.OutcomeDenied
	default:
		return task.OutcomeFailure
	}
}

func sanitizedFilename(file *model.File) string {
	return utils.SanitizeHeaderFilename(file.Filename)
}
