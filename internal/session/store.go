// Package session keeps ledgers in memory for the duration of a view session.
//
// Sessions expire after an idle TTL, and the store holds a bounded number of
// them, evicting the least recently used one when full.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/workload-planner/backend/internal/ledger"
)

var ErrSessionNotFound = errors.New("there is no ledger session with this ID, it might have expired")

// Session owns exactly one ledger.
type Session struct {
	ID        uuid.UUID
	Resource  string
	Year      int
	CreatedAt time.Time

	mu     sync.Mutex
	ledger *ledger.Ledger
}

// Do runs fn with exclusive access to the session's ledger.
func (s *Session) Do(fn func(l *ledger.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.ledger)
}

// Store is a bounded, expiring set of sessions. It is safe for concurrent use.
type Store struct {
	cache *ttlcache.Cache[uuid.UUID, *Session]
}

// NewStore creates a store for at most maxSize sessions that expire
// after being idle for ttl.
func NewStore(maxSize int, ttl time.Duration) *Store {
	cache := ttlcache.New(
		ttlcache.WithTTL[uuid.UUID, *Session](ttl),
		ttlcache.WithCapacity[uuid.UUID, *Session](uint64(maxSize)),
	)

	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[uuid.UUID, *Session]) {
		switch reason {
		case ttlcache.EvictionReasonCapacityReached:
			log.Debug().Str("session", item.Key().String()).Msg("evicting least recently used session")
		case ttlcache.EvictionReasonExpired:
			log.Debug().Str("session", item.Key().String()).Msg("session expired")
		}
	})

	return &Store{cache: cache}
}

// Create adds a new session for the ledger.
func (s *Store) Create(resource string, year int, l *ledger.Ledger) *Session {
	session := &Session{
		ID:        uuid.New(),
		Resource:  resource,
		Year:      year,
		CreatedAt: time.Now().UTC(),
		ledger:    l,
	}

	s.cache.Set(session.ID, session, ttlcache.DefaultTTL)
	return session
}

// Get returns a session and extends its lifetime.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	item := s.cache.Get(id)
	if item == nil {
		return nil, ErrSessionNotFound
	}

	return item.Value(), nil
}

// Delete removes a session. Its ledger state is discarded.
func (s *Store) Delete(id uuid.UUID) error {
	if _, ok := s.cache.GetAndDelete(id); !ok {
		return ErrSessionNotFound
	}

	return nil
}

// CleanExpired removes all expired sessions.
func (s *Store) CleanExpired() {
	s.cache.DeleteExpired()
}

// Len returns the number of sessions, including expired ones that
// have not been cleaned yet.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Run removes expired sessions as they expire until ctx is done.
func (s *Store) Run(ctx context.Context) {
	stop := context.AfterFunc(ctx, s.cache.Stop)
	defer stop()

	s.cache.Start()
}
