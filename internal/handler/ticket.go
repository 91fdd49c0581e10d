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
	"net/url"

	"github.com/gin-gonic/gin"
)

// CreateDownloadTicket issues a single-use download token for a file
// the current user can access.
func CreateDownloadTicket(c *gin.Context) {
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}
	ticket, err := service.IssueTicket(c.Request.Context(), fileID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TicketResponse{
		Ticket:    ticket.Token,
		URL:       "/api/files/download/" + ticket.Token,
		ExpiresAt: ticket.ExpiresAt,
	})
}

func auditTicket(c *gin.Context, token string, ticket *model.DownloadTicket, file *model.File, outcome string) {
	event := task.AccessEvent{
		Kind:       model.AccessKindTicket,
		Token:      token,
		RemoteAddr: c.ClientIP(),
		Outcome:    outcome,
	}
	if ticket != nil {
		event.FileID = ticket.FileID
	}
	if file != nil {
		event.FileID = file.ID
		event.OwnerID = file.OwnerID
	}
	go task.PublishAccess(context.Background(), event)
}

// DownloadWithTicket redeems a ticket and streams the file inline. The
// ticket is consumed before streaming starts: a second request with
// the same token misses even if this one fails mid-stream.
func DownloadWithTicket(c *gin.Context) {
	token := c.Param("ticket")
	ticket, file, err := service.RedeemTicket(c.Request.Context(), token)
	if err != nil {
		auditTicket(c, token, ticket, file, outcomeForError(err))
		fail(c, err)
		return
	}

	object, info, err := service.OpenFileObject(c.Request.Context(), file)
	if err != nil {
		auditTicket(c, token, ticket, file, task.OutcomeFailure)
		fail(c, err)
		return
	}
	defer object.Close()

	auditTicket(c, token, ticket, file, task.OutcomeOK)

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, url.PathEscape(file.Filename)))
	if info.Size > 0 {
		c.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	}
	if _, err := io.Copy(c.Writer, object); err != nil {
		c.Abort()
	}
}
