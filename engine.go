package guestauth

import (
	"context"
	"time"

	"github.com/planloop/guestauth/internal/flows"
	"github.com/planloop/guestauth/revocation"
	"github.com/planloop/guestauth/token"
)

// Engine defines a public type used by guestauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	codec        *token.Codec
	store        revocation.Store
	hasher       Hasher
	dummyHash    string
	userProvider UserProvider
	deps         flows.Deps
	audit        *auditDispatcher
	metrics      *Metrics
	purge        *purgeLoop
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.purge != nil {
		e.purge.stop()
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, userID, tokenID string, opErr error, metaFn func() map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		TokenID:   tokenID,
		Success:   success,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	if metaFn != nil {
		event.Metadata = metaFn()
	}

	e.audit.Emit(ctx, event)
}

func (e *Engine) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.Timeouts.Store <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.config.Timeouts.Store)
}

func (e *Engine) providerCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.Timeouts.Provider <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.config.Timeouts.Provider)
}

func (e *Engine) buildFlowDeps() flows.Deps {
	return flows.Deps{
		Login: flows.LoginDeps{
			FindByEmail:    e.findByEmail,
			VerifyPassword: e.hasher.Verify,
			DummyHash:      e.dummyHash,
			MintAccess: func(u flows.UserRecord) (string, error) {
				return e.codec.MintAccess(identityFromFlowUser(u))
			},
			MintRefresh: e.codec.MintRefresh,
			Fingerprint: token.Fingerprint,
			Track: func(ctx context.Context, fingerprint, ownerID string, expiresAt time.Time) error {
				ctx, cancel := e.storeCtx(ctx)
				defer cancel()
				return e.store.Track(ctx, fingerprint, ownerID, expiresAt)
			},
			RefreshTTL: e.config.Token.RefreshTTL,
		},
		Refresh: flows.RefreshDeps{
			Fingerprint: token.Fingerprint,
			IsRevoked: func(ctx context.Context, fingerprint string) (bool, error) {
				ctx, cancel := e.storeCtx(ctx)
				defer cancel()
				return e.store.IsRevoked(ctx, fingerprint)
			},
			VerifyRefresh: func(tokenStr string) (string, string, error) {
				claims, err := e.codec.VerifyRefresh(tokenStr)
				if err != nil {
					return "", "", err
				}
				return claims.UserID, claims.ID, nil
			},
			FindByID: e.findByID,
			MintAccess: func(u flows.UserRecord) (string, error) {
				return e.codec.MintAccess(identityFromFlowUser(u))
			},
		},
		Logout: flows.LogoutDeps{
			Fingerprint: token.Fingerprint,
			VerifyRefresh: func(tokenStr string) (string, string, time.Time, error) {
				claims, err := e.codec.VerifyRefresh(tokenStr)
				if err != nil {
					return "", "", time.Time{}, err
				}
				var expiresAt time.Time
				if claims.ExpiresAt != nil {
					expiresAt = claims.ExpiresAt.Time
				}
				return claims.UserID, claims.ID, expiresAt, nil
			},
			Revoke: func(ctx context.Context, fingerprint, ownerID string, expiresAt time.Time) error {
				ctx, cancel := e.storeCtx(ctx)
				defer cancel()
				return e.store.Revoke(ctx, fingerprint, ownerID, expiresAt)
			},
		},
		Validate: flows.ValidateDeps{
			VerifyAccess: func(tokenStr string) (token.Identity, error) {
				claims, err := e.codec.VerifyAccess(tokenStr)
				if err != nil {
					return token.Identity{}, err
				}
				return token.Identity{
					UserID:  claims.UserID,
					Email:   claims.Email,
					Name:    claims.Name,
					Roles:   claims.Roles,
					Allowed: claims.Allowed,
				}, nil
			},
		},
	}
}

func (e *Engine) findByEmail(ctx context.Context, email string) (*flows.UserRecord, error) {
	ctx, cancel := e.providerCtx(ctx)
	defer cancel()

	user, err := e.userProvider.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return flowUserFromRecord(user), nil
}

func (e *Engine) findByID(ctx context.Context, userID string) (*flows.UserRecord, error) {
	ctx, cancel := e.providerCtx(ctx)
	defer cancel()

	user, err := e.userProvider.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return flowUserFromRecord(user), nil
}

func flowUserFromRecord(u *UserRecord) *flows.UserRecord {
	return &flows.UserRecord{
		UserID:       u.UserID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Roles:        u.Roles,
		Allowed:      u.Allowed,
	}
}

func identityFromFlowUser(u flows.UserRecord) token.Identity {
	return token.Identity{
		UserID:  u.UserID,
		Email:   u.Email,
		Name:    u.Name,
		Roles:   u.Roles,
		Allowed: u.Allowed,
	}
}
