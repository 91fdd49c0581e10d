package task

import (
	"CloudVault/internal/mq"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"context"
	"encoding/json"
	"log"
	"time"
)

// Access outcomes recorded by the audit trail.
const (
	OutcomeOK      = "ok"
	OutcomeGone    = "gone"
	OutcomeMiss    = "miss"
	OutcomeDenied  = "denied"
	OutcomeFailure = "failure"
)

// AccessEvent is the wire form of one public access through a share
// link or download ticket.
type AccessEvent struct {
	Kind       string    `json:"kind"`
	Token      string    `json:"token"`
	FileID     uint64    `json:"file_id"`
	OwnerID    uint64    `json:"owner_id"`
	RemoteAddr string    `json:"remote_addr"`
	Outcome    string    `json:"outcome"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishAccess sends an access event to the audit queue. Auditing is
// best-effort: a down broker is logged and the request proceeds.
func PublishAccess(ctx context.Context, event AccessEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("audit: marshal event failed: %v", err)
		return
	}
	client, err := mq.GetPublisher()
	if err != nil {
		log.Printf("audit: publisher unavailable: %v", err)
		return
	}
	if err := client.PublishEvent(ctx, body); err != nil {
		log.Printf("audit: publish failed: %v", err)
	}
}

// RecordAccess persists an access event as an audit row. Called by the
// audit worker, never on the request path.
func RecordAccess(_ context.Context, event AccessEvent) error {
	row := model.ShareAccessLog{
		Kind:       event.Kind,
		Token:      event.Token,
		FileID:     event.FileID,
		OwnerID:    event.OwnerID,
		RemoteAddr: event.RemoteAddr,
		Outcome:    event.Outcome,
		OccurredAt: event.OccurredAt,
	}
	return repo.Db.Create(&row).Error
}
