package guestauth

import (
	"context"
	"io"

	internalaudit "github.com/planloop/guestauth/internal/audit"
)

// UserRecord is the full account record returned by [UserProvider]. It
// carries the credential hash, the profile fields embedded into access
// tokens, and the Allowed flag gating issuance.
type UserRecord struct {
	UserID       string
	Email        string
	Name         string
	PasswordHash string
	Roles        []string
	Allowed      bool
}

// UserProvider is the interface that callers must implement to integrate
// guestauth with their user database. Lookups return (nil, nil) when no
// record matches; an error means the backend itself failed.
type UserProvider interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByID(ctx context.Context, userID string) (*UserRecord, error)
}

// Hasher abstracts password hashing so integrations can bring their own
// scheme. The default engine hasher is Argon2id from the password package.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// AuthResult is returned by [Engine.ValidateAccess]. It contains the
// authenticated user's identity as embedded in the access token.
type AuthResult struct {
	UserID  string
	Email   string
	Name    string
	Roles   []string
	Allowed bool
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
