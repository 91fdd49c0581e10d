package model

import "time"

// DownloadTicket is an ephemeral single-use download credential. It is
// not a database row: tickets live in the ticket store under their
// token and are removed atomically on first redemption.
type DownloadTicket struct {
	Token     string    `json:"token"`
	FileID    uint64    `json:"file_id"`
	UserID    uint64    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the ticket has lapsed at the given instant.
func (t *DownloadTicket) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
