package guestauth

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func newAuditedEngine(t *testing.T, sink AuditSink) *Engine {
	t.Helper()

	cfg := testConfig()
	cfg.Audit.Enabled = true

	engine, err := New().
		WithConfig(cfg).
		WithUserProvider(testProvider()).
		WithHasher(plainHasher{}).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func waitForEvent(t *testing.T, sink *ChannelSink) AuditEvent {
	t.Helper()

	select {
	case event := <-sink.Events():
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
		return AuditEvent{}
	}
}

func TestAuditEventsReachSink(t *testing.T) {
	sink := NewChannelSink(16)
	engine := newAuditedEngine(t, sink)
	ctx := context.Background()

	if _, _, err := engine.Login(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	event := waitForEvent(t, sink)
	if event.EventType != auditEventLoginSuccess {
		t.Fatalf("event type = %q, want %q", event.EventType, auditEventLoginSuccess)
	}
	if event.UserID != "user-1" || !event.Success {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Fatal("event timestamp must be set")
	}
}

func TestAuditLoginFailureCarriesReason(t *testing.T) {
	sink := NewChannelSink(16)
	engine := newAuditedEngine(t, sink)

	if _, _, err := engine.Login(context.Background(), "alice@example.com", "wrong"); err == nil {
		t.Fatal("expected login failure")
	}

	event := waitForEvent(t, sink)
	if event.EventType != auditEventLoginFailure {
		t.Fatalf("event type = %q, want %q", event.EventType, auditEventLoginFailure)
	}
	if event.Success {
		t.Fatal("failure event marked successful")
	}
	if event.Metadata["reason"] == "" {
		t.Fatalf("failure event missing reason metadata: %+v", event.Metadata)
	}
}

func TestAuditLogoutAllCountsRevocations(t *testing.T) {
	sink := NewChannelSink(16)
	engine := newAuditedEngine(t, sink)
	ctx := context.Background()

	if _, _, err := engine.Login(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	waitForEvent(t, sink) // login event

	if _, err := engine.LogoutAll(ctx, "user-1"); err != nil {
		t.Fatalf("LogoutAll failed: %v", err)
	}

	event := waitForEvent(t, sink)
	if event.EventType != auditEventLogoutAll {
		t.Fatalf("event type = %q, want %q", event.EventType, auditEventLogoutAll)
	}
	if event.Metadata["revoked"] != "1" {
		t.Fatalf("revoked metadata = %q, want %q", event.Metadata["revoked"], "1")
	}
}

func TestAuditDisabledByDefault(t *testing.T) {
	engine := newTestEngine(t, testProvider())

	if engine.audit != nil {
		t.Fatal("audit dispatcher must be nil when disabled")
	}
	if engine.AuditDropped() != 0 {
		t.Fatal("disabled audit reports drops")
	}
}

// gateSink blocks its Emit until released so dispatcher backpressure can be
// driven deterministically.
type gateSink struct {
	entered chan struct{}
	release chan struct{}
}

func (s *gateSink) Emit(_ context.Context, _ AuditEvent) {
	s.entered <- struct{}{}
	<-s.release
}

func TestAuditDispatcherDropsWhenFull(t *testing.T) {
	sink := &gateSink{
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}

	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)
	ctx := context.Background()

	// First event: worker picks it up and parks inside the sink.
	d.Emit(ctx, AuditEvent{EventType: "one"})
	select {
	case <-sink.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never reached the sink")
	}

	// Second event fills the buffer; the rest must drop.
	d.Emit(ctx, AuditEvent{EventType: "two"})
	d.Emit(ctx, AuditEvent{EventType: "three"})
	d.Emit(ctx, AuditEvent{EventType: "four"})

	if got := d.Dropped(); got != 2 {
		t.Fatalf("dropped = %d, want 2", got)
	}

	close(sink.release)
	d.Close()
}

func TestJSONWriterSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)
	ctx := context.Background()

	sink.Emit(ctx, AuditEvent{EventType: "login_success", UserID: "u1", Success: true})
	sink.Emit(ctx, AuditEvent{EventType: "logout", UserID: "u1", Success: true})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var event AuditEvent
	if err := json.Unmarshal(lines[0], &event); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if event.EventType != "login_success" || event.UserID != "u1" {
		t.Fatalf("unexpected decoded event: %+v", event)
	}
}
