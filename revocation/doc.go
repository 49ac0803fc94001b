// Package revocation tracks refresh tokens that must no longer be honored.
//
// Tokens are keyed by fingerprint (SHA-256 of the raw token string), never by
// bearer material. The store answers one question on the refresh hot path —
// "has this token been explicitly revoked before its natural expiry?" — and
// supports per-owner bulk revocation for "log out everywhere".
//
// # Semantics
//
// Unknown fingerprints are not revoked: the codec's own expiry check is the
// backstop for tokens the store has never seen. An entry never outlives the
// token's natural expiry; the Redis implementation enforces this with per-key
// TTLs, the in-memory implementation with purge sweeps.
//
// # Visibility
//
// Once Revoke returns, every subsequent IsRevoked call for that fingerprint
// observes true, from any goroutine. Both implementations provide this
// read-after-write guarantee (single mutex, single Redis key).
//
// # What this package must NOT do
//
//   - Parse or verify tokens (that is the token package's job).
//   - Import guestauth or token (no upward imports).
//   - Decide policy — callers decide when to revoke.
package revocation
