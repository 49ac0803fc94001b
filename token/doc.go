// Package token mints and verifies the signed, expiring credentials that carry
// session claims: short-lived access tokens and long-lived refresh tokens.
//
// # Secret separation
//
// Access and refresh tokens are signed with distinct HMAC secrets. A token minted
// under one secret can never verify under the other, so a stolen refresh token
// cannot be presented where an access token is expected (or vice versa). The
// [Codec] constructor rejects configurations that reuse the same secret.
//
// # Architecture boundaries
//
// This package owns serialization, signing, and verification only. It consults no
// revocation state and performs no I/O — verification is a pure function of
// (token, secret, current time). Revocation and identity lookups belong to the
// Engine.
//
// # What this package must NOT do
//
//   - Access the revocation store or any network resource.
//   - Import guestauth or revocation (no upward imports).
//   - Surface library-internal parse errors — all failures map to [ErrMalformed],
//     [ErrSignatureInvalid], or [ErrExpired].
package token
