// Package transport moves session credentials between HTTP requests and the
// engine via cookies.
//
// The adapter owns cookie naming, attributes, and clearing semantics. It never
// inspects token contents — a cookie value is an opaque string on this side of
// the boundary.
//
// # Architecture boundaries
//
// transport translates HTTP cookie semantics into plain token strings. It does
// NOT implement authentication logic itself; all decisions are delegated to
// the engine.
//
// # What this package must NOT do
//
//   - Parse or create JWTs.
//   - Touch the revocation store.
//   - Log cookie values.
package transport
