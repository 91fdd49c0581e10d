package handler

import (
	"CloudVault/internal/service"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetFileAccessLogs returns recent public accesses to an owned file.
func GetFileAccessLogs(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}
	limit := parsePositiveInt(c.Query("limit"), 50)

	items, err := service.ListAccessLogs(fileID, currentUserID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func parsePositiveInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
