package service

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"CloudVault/utils"
	"errors"
	"fmt"
	"time"

	"golang.org/x/net/context"
)

// IssueTicket creates a single-use download ticket for a file the
// requester can access. The file record itself is never touched.
func IssueTicket(ctx context.Context, fileID, requesterID uint64) (*model.DownloadTicket, error) {
	file, err := GetFileById(fileID)
	if err != nil {
		return nil, err
	}
	if !CanAccess(file, requesterID) {
		return nil, fmt.Errorf("access denied: %w", ErrForbidden)
	}

	ticket := &model.DownloadTicket{
		Token:     utils.RandomToken(config.AppConfig.TicketTokenLength),
		FileID:    fileID,
		UserID:    requesterID,
		ExpiresAt: time.Now().Add(config.AppConfig.TicketTTL),
	}

	// The store TTL outlives the logical expiry by a grace window so a
	// late redemption still observes Gone instead of NotFound; after
	// the grace the key disappears on its own.
	ttl := config.AppConfig.TicketTTL + config.AppConfig.TicketGrace
	if err := repo.Tickets.Put(ctx, ticket, ttl); err != nil {
		return nil, fmt.Errorf("store ticket: %w: %v", ErrUpstream, err)
	}
	return ticket, nil
}

// RedeemTicket atomically consumes a ticket and returns it with its
// file. The ticket is removed before any content is fetched, so a
// concurrent or retried redemption, or a failure while streaming,
// can never replay it.
func RedeemTicket(ctx context.Context, token string) (*model.DownloadTicket, *model.File, error) {
	ticket, err := repo.Tickets.Take(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrTicketMiss) {
			return nil, nil, fmt.Errorf("ticket: %w", ErrNotFound)
		}
		return nil, nil, fmt.Errorf("take ticket: %w: %v", ErrUpstream, err)
	}
	if ticket.Expired(time.Now()) {
		return nil, nil, fmt.Errorf("ticket expired: %w", ErrGone)
	}

	var file model.File
	if err := repo.Db.Where("id = ?", ticket.FileID).First(&file).Error; err != nil {
		return nil, nil, fmt.Errorf("ticket file: %w", ErrNotFound)
	}
	return ticket, &file, nil
}
