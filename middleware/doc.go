// Package middleware exposes HTTP middleware built on top of
// guestauth.Engine access validation.
//
// # Guards
//
//   - [Guard] — reads the access credential (session cookie, with an
//     Authorization: Bearer fallback), validates it, and injects the
//     [guestauth.AuthResult] into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.ValidateAccess.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Touch the revocation store (Engine handles I/O).
//   - Reveal why a credential was rejected; every failure is a plain 401.
package middleware
