package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/net/context"
)

func setupTicketStore(t *testing.T) *repo.MemoryTicketStore {
	t.Helper()
	store := repo.NewMemoryTicketStore()
	repo.Tickets = store
	return store
}

// TestIssueAndRedeemTicket issues a ticket and consumes it exactly once.
func TestIssueAndRedeemTicket(t *testing.T) {
	setupTestDB(t)
	setupTicketStore(t)
	ctx := context.Background()

	owner := seedUser(t, "owner", "owner@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	ticket, err := IssueTicket(ctx, file.ID, owner.ID)
	if err != nil {
		t.Fatalf("IssueTicket failed: %v", err)
	}
	if len(ticket.Token) < 40 {
		t.Fatalf("token length = %d, want >= 40", len(ticket.Token))
	}
	if ticket.ExpiresAt.Before(time.Now()) {
		t.Fatal("fresh ticket must not be expired")
	}

	redeemed, got, err := RedeemTicket(ctx, ticket.Token)
	if err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	if redeemed.FileID != file.ID || got.ID != file.ID {
		t.Fatalf("redeemed file = %d, want %d", got.ID, file.ID)
	}

	if _, _, err := RedeemTicket(ctx, ticket.Token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second redemption: err = %v, want ErrNotFound", err)
	}
}

// TestIssueTicketForbidden leaves no record behind on denial.
func TestIssueTicketForbidden(t *testing.T) {
	setupTestDB(t)
	setupTicketStore(t)
	ctx := context.Background()

	owner := seedUser(t, "owner", "owner@test.com")
	stranger := seedUser(t, "stranger", "stranger@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	if _, err := IssueTicket(ctx, file.ID, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger issue: err = %v, want ErrForbidden", err)
	}
	if _, err := IssueTicket(ctx, file.ID+999, owner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing file: err = %v, want ErrNotFound", err)
	}
}

// TestIssueTicketGranted allows users in the grant set.
func TestIssueTicketGranted(t *testing.T) {
	setupTestDB(t)
	setupTicketStore(t)
	ctx := context.Background()

	owner := seedUser(t, "owner", "owner@test.com")
	u2 := seedUser(t, "user two", "u2@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	if _, err := GrantAccess(file.ID, owner.ID, []string{"u2@test.com"}); err != nil {
		t.Fatal(err)
	}
	ticket, err := IssueTicket(ctx, file.ID, u2.ID)
	if err != nil {
		t.Fatalf("granted user issue failed: %v", err)
	}
	if ticket.UserID != u2.ID {
		t.Fatalf("ticket user = %d, want %d", ticket.UserID, u2.ID)
	}
}

// TestRedeemTicketExpired deletes the record and reports Gone.
func TestRedeemTicketExpired(t *testing.T) {
	setupTestDB(t)
	store := setupTicketStore(t)
	ctx := context.Background()

	owner := seedUser(t, "owner", "owner@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	ticket := &model.DownloadTicket{
		Token:     "expired-ticket-token",
		FileID:    file.ID,
		UserID:    owner.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := store.Put(ctx, ticket, time.Hour); err != nil {
		t.Fatal(err)
	}

	if _, _, err := RedeemTicket(ctx, ticket.Token); !errors.Is(err, ErrGone) {
		t.Fatalf("expired ticket: err = %v, want ErrGone", err)
	}
	// Expiry detection consumed the record.
	if _, _, err := RedeemTicket(ctx, ticket.Token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after expiry detection: err = %v, want ErrNotFound", err)
	}
}

// TestRedeemTicketConcurrent lets exactly one of many concurrent
// redemptions win.
func TestRedeemTicketConcurrent(t *testing.T) {
	setupTestDB(t)
	setupTicketStore(t)
	ctx := context.Background()

	owner := seedUser(t, "owner", "owner@test.com")
	file := seedFile(t, owner.ID, "a.txt")

	ticket, err := IssueTicket(ctx, file.ID, owner.ID)
	if err != nil {
		t.Fatal(err)
	}

	const workers = 8
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := RedeemTicket(ctx, ticket.Token); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	if won != 1 {
		t.Fatalf("successful redemptions = %d, want exactly 1", won)
	}
}
