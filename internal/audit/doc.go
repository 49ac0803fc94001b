// Package audit implements async event dispatching for security-relevant
// session operations.
//
// # Components
//
//   - [Sink] — interface for event consumers (channel, JSON writer, no-op).
//   - [Dispatcher] — buffered async relay with drop-if-full / block-if-full semantics.
//   - [Event] — structured audit record with timestamp, type, user, token id, metadata.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide
// which events to emit — that responsibility belongs to the Engine. Precise
// failure kinds (signature invalid / expired / malformed) land here for
// diagnosis; the collapsed client-facing reason is the Engine's concern.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import guestauth or any sibling internal package.
//   - Record raw token strings — only fingerprints or jti values.
package audit
