package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable wraps backend failures so callers can fail closed without
// string matching.
var ErrUnavailable = errors.New("revocation store unavailable")

// Entry records one revoked or outstanding refresh token.
type Entry struct {
	Fingerprint string
	OwnerID     string
	RevokedAt   time.Time
	ExpiresAt   time.Time
}

// Revoked reports whether the entry has been explicitly revoked.
func (e Entry) Revoked() bool {
	return !e.RevokedAt.IsZero()
}

// Store is the shared revocation state consulted on every refresh attempt and
// mutated by concurrent logout requests. Implementations must be safe for
// concurrent use and must make revocations immediately visible.
type Store interface {
	// Track registers an outstanding token so RevokeAllForOwner can find it.
	// Tracking an already-tracked fingerprint refreshes its expiry.
	Track(ctx context.Context, fingerprint, ownerID string, expiresAt time.Time) error

	// IsRevoked reports whether the fingerprint was explicitly revoked before
	// its natural expiry. Unknown and naturally-expired fingerprints report
	// false.
	IsRevoked(ctx context.Context, fingerprint string) (bool, error)

	// Revoke marks the fingerprint as revoked until expiresAt. Idempotent:
	// revoking an already-revoked token is a no-op, not an error. Revoking a
	// fingerprint whose expiry has already passed is also a no-op.
	Revoke(ctx context.Context, fingerprint, ownerID string, expiresAt time.Time) error

	// RevokeAllForOwner revokes every currently tracked, unexpired token for
	// the owner and returns how many were revoked.
	RevokeAllForOwner(ctx context.Context, ownerID string) (int, error)

	// PurgeExpired drops entries whose natural expiry has passed; they can
	// never be replayed regardless of revocation status. Returns the number
	// of entries removed.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}
