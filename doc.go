// Package guestauth provides a cookie-session authentication core with HMAC
// JWT access tokens, revocable long-lived refresh tokens, and a pluggable
// identity provider.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// guestauth is the public surface. It exposes [Engine], [Builder], [Config],
// sentinel errors, and value types (AuthResult, MetricsSnapshot, etc.). All
// internal coordination — flow orchestration and audit dispatch — lives under
// internal/ and is never exported. The token codec and revocation stores are
// importable packages of their own so integrations can compose them directly.
//
// # What this package must NOT do
//
//   - Expose Redis clients or store key layouts in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
//   - Import any sub-package that re-imports guestauth (no import cycles).
//
// # Performance contract
//
// ValidateAccess is the hot path. It verifies the access token signature and
// claims locally and never touches the revocation store. Login, Refresh, and
// Logout are allowed one store round-trip per call.
package guestauth
