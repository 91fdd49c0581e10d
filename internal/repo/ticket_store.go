package repo

import (
	"CloudVault/model"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTicketMiss is returned when no ticket exists under a token,
// covering both "never issued" and "already redeemed".
var ErrTicketMiss = errors.New("ticket not found")

const ticketKeyPrefix = "ticket:"

// TicketStore persists download tickets independently of the file
// records. Take must be atomic: under concurrent redemptions of the
// same token exactly one caller gets the ticket, the rest miss.
type TicketStore interface {
	Put(ctx context.Context, ticket *model.DownloadTicket, ttl time.Duration) error
	Take(ctx context.Context, token string) (*model.DownloadTicket, error)
}

// Tickets is the process-wide ticket store.
var Tickets TicketStore

// RedisTicketStore keeps tickets as TTL'd JSON values. GETDEL makes
// redemption a single atomic find-and-delete, and the key TTL sweeps
// tickets that are never redeemed.
type RedisTicketStore struct {
	client *redis.Client
}

// NewRedisTicketStore builds a TicketStore on a Redis client.
func NewRedisTicketStore(client *redis.Client) *RedisTicketStore {
	return &RedisTicketStore{client: client}
}

// Put stores a ticket under its token.
func (s *RedisTicketStore) Put(ctx context.Context, ticket *model.DownloadTicket, ttl time.Duration) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, ticketKeyPrefix+ticket.Token, data, ttl).Err()
}

// Take removes and returns the ticket under a token.
func (s *RedisTicketStore) Take(ctx context.Context, token string) (*model.DownloadTicket, error) {
	val, err := s.client.GetDel(ctx, ticketKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTicketMiss
	}
	if err != nil {
		return nil, err
	}
	var ticket model.DownloadTicket
	if err := json.Unmarshal([]byte(val), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

type memoryTicket struct {
	ticket  model.DownloadTicket
	evictAt time.Time
}

// MemoryTicketStore is an in-process fallback used by tests and
// single-node runs without Redis.
type MemoryTicketStore struct {
	mu      sync.Mutex
	tickets map[string]memoryTicket
}

// NewMemoryTicketStore builds an empty in-memory ticket store.
func NewMemoryTicketStore() *MemoryTicketStore {
	return &MemoryTicketStore{tickets: make(map[string]memoryTicket)}
}

// Put stores a ticket under its token.
func (s *MemoryTicketStore) Put(_ context.Context, ticket *model.DownloadTicket, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[ticket.Token] = memoryTicket{
		ticket:  *ticket,
		evictAt: time.Now().Add(ttl),
	}
	return nil
}

// Take removes and returns the ticket under a token.
func (s *MemoryTicketStore) Take(_ context.Context, token string) (*model.DownloadTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tickets[token]
	if !ok {
		return nil, ErrTicketMiss
	}
	delete(s.tickets, token)
	if time.Now().After(entry.evictAt) {
		// The TTL would have evicted it already.
		return nil, ErrTicketMiss
	}
	ticket := entry.ticket
	return &ticket, nil
}

// InitTicketStore wires the ticket store onto Redis.
func InitTicketStore() {
	Tickets = NewRedisTicketStore(Redis)
}
