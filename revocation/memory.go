package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local [Store] backed by a mutex-guarded map with a
// per-owner index. Suitable for single-instance deployments and tests; use
// [RedisStore] when revocations must be shared across instances.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	owners  map[string]map[string]struct{}
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
		owners:  make(map[string]map[string]struct{}),
	}
}

// Track registers an outstanding token for its owner.
func (s *MemoryStore) Track(_ context.Context, fingerprint, ownerID string, expiresAt time.Time) error {
	if fingerprint == "" || ownerID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[fingerprint]; ok {
		e.ExpiresAt = expiresAt
		return nil
	}

	s.entries[fingerprint] = &Entry{
		Fingerprint: fingerprint,
		OwnerID:     ownerID,
		ExpiresAt:   expiresAt,
	}
	s.index(ownerID, fingerprint)
	return nil
}

// IsRevoked reports explicit, unexpired revocation. The expiry comparison is
// done inline so a stale entry can never resurrect a naturally-dead token.
func (s *MemoryStore) IsRevoked(_ context.Context, fingerprint string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[fingerprint]
	if !ok || !e.Revoked() {
		return false, nil
	}
	if !time.Now().Before(e.ExpiresAt) {
		return false, nil
	}
	return true, nil
}

// Revoke marks the fingerprint revoked until expiresAt. No-op when already
// revoked or when expiresAt has passed.
func (s *MemoryStore) Revoke(_ context.Context, fingerprint, ownerID string, expiresAt time.Time) error {
	if fingerprint == "" {
		return nil
	}
	now := time.Now()
	if !now.Before(expiresAt) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[fingerprint]; ok {
		if !e.Revoked() {
			e.RevokedAt = now
		}
		return nil
	}

	// Revoking a token the store never tracked (e.g. issued before a restart)
	// still has to stick.
	s.entries[fingerprint] = &Entry{
		Fingerprint: fingerprint,
		OwnerID:     ownerID,
		RevokedAt:   now,
		ExpiresAt:   expiresAt,
	}
	s.index(ownerID, fingerprint)
	return nil
}

// RevokeAllForOwner revokes every tracked, unexpired token for ownerID.
func (s *MemoryStore) RevokeAllForOwner(_ context.Context, ownerID string) (int, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	revoked := 0
	for fingerprint := range s.owners[ownerID] {
		e, ok := s.entries[fingerprint]
		if !ok || e.Revoked() || !now.Before(e.ExpiresAt) {
			continue
		}
		e.RevokedAt = now
		revoked++
	}
	return revoked, nil
}

// PurgeExpired removes entries past their natural expiry.
func (s *MemoryStore) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for fingerprint, e := range s.entries {
		if now.Before(e.ExpiresAt) {
			continue
		}
		delete(s.entries, fingerprint)
		if set, ok := s.owners[e.OwnerID]; ok {
			delete(set, fingerprint)
			if len(set) == 0 {
				delete(s.owners, e.OwnerID)
			}
		}
		purged++
	}
	return purged, nil
}

// Len reports the number of tracked entries. Intended for tests and
// introspection.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// caller must hold s.mu
func (s *MemoryStore) index(ownerID, fingerprint string) {
	set, ok := s.owners[ownerID]
	if !ok {
		set = make(map[string]struct{})
		s.owners[ownerID] = set
	}
	set[fingerprint] = struct{}{}
}
