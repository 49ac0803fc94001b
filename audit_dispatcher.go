package guestauth

import (
	"context"

	internalaudit "github.com/planloop/guestauth/internal/audit"
)

type auditDispatcher struct {
	inner *internalaudit.Dispatcher
}

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	return &auditDispatcher{
		inner: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Enabled,
			BufferSize: cfg.BufferSize,
			DropIfFull: cfg.DropIfFull,
		}, sink),
	}
}

func (d *auditDispatcher) Emit(ctx context.Context, event AuditEvent) {
	if d == nil {
		return
	}
	d.inner.Emit(ctx, event)
}

func (d *auditDispatcher) Close() {
	if d == nil {
		return
	}
	d.inner.Close()
}

func (d *auditDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.inner.Dropped()
}
