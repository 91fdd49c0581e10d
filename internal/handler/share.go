package handler

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"CloudVault/internal/task"
	"CloudVault/model"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShareWithUsers grants standing access to registered users by email.
func ShareWithUsers(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}
	var req dto.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	granted, err := service.GrantAccess(fileID, currentUserID(c), req.Emails)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "file shared",
		"shared_with": granted,
		"file_id":     fileID,
	})
}

// RevokeShare removes standing access for the given emails.
func RevokeShare(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}
	var req dto.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := service.RevokeAccess(fileID, currentUserID(c), req.Emails); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "share revoked"})
}

// CreateShareLink creates an optionally-expiring public link.
func CreateShareLink(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}
	var req dto.CreateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	link, err := service.CreateShareLink(fileID, currentUserID(c), req.ExpiresInMinutes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ShareLinkResponse{
		Token:     link.Token,
		ShareURL:  "/api/share/" + link.Token,
		ExpiresAt: link.ExpireAt,
	})
}

// RevokeShareLink deletes a public link.
func RevokeShareLink(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}
	token := c.Param("token")
	if err := service.RevokeShareLink(fileID, currentUserID(c), token); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "share link revoked"})
}

func auditLink(c *gin.Context, token string, file *model.File, outcome string) {
	event := task.AccessEvent{
		Kind:       model.AccessKindLink,
		Token:      token,
		RemoteAddr: c.ClientIP(),
		Outcome:    outcome,
	}
	if file != nil {
		event.FileID = file.ID
		event.OwnerID = file.OwnerID
	}
	go task.PublishAccess(context.Background(), event)
}

// ResolveShareLink returns public metadata for a live link. No
// identity required, the token is the credential.
func ResolveShareLink(c *gin.Context) {
	token := c.Param("token")
	link, file, err := service.ResolveShareLink(token)
	if err != nil {
		auditLink(c, token, nil, outcomeForError(err))
		fail(c, err)
		return
	}
	auditLink(c, token, file, task.OutcomeOK)
	c.JSON(http.StatusOK, gin.H{
		"message":      "share link access granted",
		"file":         dto.FileMetaFrom(file),
		"download_url": "/api/share/" + token + "/download",
		"expires_at":   link.ExpireAt,
	})
}

// DownloadViaShareLink streams the file behind a live link.
func DownloadViaShareLink(c *gin.Context) {
	token := c.Param("token")
	_, file, err := service.ResolveShareLink(token)
	if err != nil {
		auditLink(c, token, nil, outcomeForError(err))
		fail(c, err)
		return
	}

	object, info, err := service.OpenFileObject(c.Request.Context(), file)
	if err != nil {
		auditLink(c, token, file, task.OutcomeFailure)
		fail(c, err)
		return
	}
	defer object.Close()

	auditLink(c, token, file, task.OutcomeOK)
	streamObject(c, file, object, info.Size, "attachment")
}

// streamObject pipes blob content to the client with download headers.
func streamObject(c *gin.Context, file *model.File, object io.Reader, size int64, disposition string) {
	safeName := sanitizedFilename(file)
	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, safeName))
	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	if size > 0 {
		c.Header("Content-Length", fmt.Sprintf("%d", size))
	}

	if _, err := io.Copy(c.Writer, object); err != nil {
		// Headers are gone already; nothing to do but stop.
		c.Abort()
	}
}
