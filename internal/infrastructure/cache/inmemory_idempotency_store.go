// Package cache provides the idempotency key stores used by the payment
// services: an in-memory store for single-instance deployments and a Redis
// store for distributed ones.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	appledger "github.com/sanduq/backend/internal/application/ledger"
)

// entry holds the payment a key produced, with expiration
type entry struct {
	paymentID uuid.UUID
	expiresAt time.Time
}

// InMemoryIdempotencyStore implements IdempotencyStore using an in-memory
// map. Suitable for single-instance deployments and testing.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates a new in-memory idempotency store.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	store := &InMemoryIdempotencyStore{
		ttl:      ttl,
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

func storeKey(companyID uuid.UUID, key string) string {
	return companyID.String() + ":" + key
}

// Get returns the payment a key previously produced, if any
func (s *InMemoryIdempotencyStore) Get(ctx context.Context, companyID uuid.UUID, key string) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[storeKey(companyID, key)]
	if !exists || time.Now().After(e.expiresAt) {
		return uuid.Nil, false, nil
	}
	return e.paymentID, true, nil
}

// Put remembers the payment a key produced
func (s *InMemoryIdempotencyStore) Put(ctx context.Context, companyID uuid.UUID, key string, paymentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[storeKey(companyID, key)] = entry{
		paymentID: paymentID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ appledger.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
