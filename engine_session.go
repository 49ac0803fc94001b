package guestauth

import (
	"context"
	"strconv"
	"time"

	"github.com/planloop/guestauth/internal/flows"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, email, password string) (string, string, error) {
	if e == nil || e.codec == nil {
		return "", "", ErrEngineNotReady
	}
	if email == "" || password == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "empty_input",
			}
		})
		return "", "", ErrInvalidCredentials
	}

	result := flows.RunLogin(ctx, email, password, e.deps.Login)

	switch result.Failure {
	case flows.LoginFailureNone:
		e.metricInc(MetricLoginSuccess)
		e.emitAudit(ctx, auditEventLoginSuccess, true, result.UserID, "", nil, func() map[string]string {
			return map[string]string{
				"email": email,
			}
		})
		return result.AccessToken, result.RefreshToken, nil

	case flows.LoginFailureProvider:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "provider_unavailable",
			}
		})
		return "", "", ErrProviderUnavailable

	case flows.LoginFailureInvalidCredentials:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, result.UserID, "", ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"email":  email,
				"reason": "credential_mismatch",
			}
		})
		return "", "", ErrInvalidCredentials

	case flows.LoginFailureTrack:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, result.UserID, "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "session_track_failed",
			}
		})
		return "", "", ErrStoreUnavailable

	default:
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, result.UserID, "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "token_issue_failed",
			}
		})
		return "", "", ErrTokenIssueFailed
	}
}

// Refresh describes the refresh operation and its observable behavior.
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if e == nil || e.codec == nil {
		return "", ErrEngineNotReady
	}

	result := flows.RunRefresh(ctx, refreshToken, e.deps.Refresh)

	switch result.Failure {
	case flows.RefreshFailureNone:
		e.metricInc(MetricRefreshSuccess)
		e.emitAudit(ctx, auditEventRefreshSuccess, true, result.UserID, result.TokenID, nil, nil)
		return result.AccessToken, nil

	case flows.RefreshFailureNoCredential:
		e.metricInc(MetricRefreshFailure)
		return "", ErrNoCredential

	case flows.RefreshFailureStoreUnavailable:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, "", "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "store_unavailable",
			}
		})
		return "", ErrStoreUnavailable

	case flows.RefreshFailureRevoked:
		e.metricInc(MetricRefreshRevoked)
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshRevoked, false, result.UserID, result.TokenID, ErrRevoked, nil)
		return "", ErrRevoked

	case flows.RefreshFailureTokenMalformed, flows.RefreshFailureMalformedPayload:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, "", result.TokenID, result.Err, func() map[string]string {
			return map[string]string{
				"reason": "malformed",
			}
		})
		return "", ErrTokenMalformed

	case flows.RefreshFailureTokenSignature:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, "", "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "signature",
			}
		})
		return "", ErrSignatureInvalid

	case flows.RefreshFailureTokenExpired:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, "", "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "expired",
			}
		})
		return "", ErrTokenExpired

	case flows.RefreshFailureProvider:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, result.UserID, result.TokenID, result.Err, func() map[string]string {
			return map[string]string{
				"reason": "provider_unavailable",
			}
		})
		return "", ErrProviderUnavailable

	case flows.RefreshFailureUserNotFound:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, result.UserID, result.TokenID, ErrUserNotFound, func() map[string]string {
			return map[string]string{
				"reason": "user_not_found",
			}
		})
		return "", ErrUserNotFound

	default:
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefreshFailure, false, result.UserID, result.TokenID, result.Err, func() map[string]string {
			return map[string]string{
				"reason": "token_issue_failed",
			}
		})
		return "", ErrTokenIssueFailed
	}
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context, refreshToken string) error {
	if e == nil || e.codec == nil {
		return ErrEngineNotReady
	}

	result := flows.RunLogout(ctx, refreshToken, e.deps.Logout)

	switch result.Failure {
	case flows.LogoutFailureNone:
		if result.Revoked {
			e.metricInc(MetricTokenRevoked)
		}
		e.metricInc(MetricLogout)
		e.emitAudit(ctx, auditEventLogout, true, result.UserID, result.TokenID, nil, nil)
		return nil

	case flows.LogoutFailureNoCredential:
		return ErrNoCredential

	case flows.LogoutFailureTokenMalformed:
		e.emitAudit(ctx, auditEventLogout, false, "", "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "malformed",
			}
		})
		return ErrTokenMalformed

	case flows.LogoutFailureTokenSignature:
		e.emitAudit(ctx, auditEventLogout, false, "", "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "signature",
			}
		})
		return ErrSignatureInvalid

	default:
		e.emitAudit(ctx, auditEventLogout, false, result.UserID, result.TokenID, result.Err, func() map[string]string {
			return map[string]string{
				"reason": "store_unavailable",
			}
		})
		return ErrStoreUnavailable
	}
}

// LogoutAll describes the logoutall operation and its observable behavior.
//
// LogoutAll may return an error when input validation, dependency calls, or security checks fail.
// LogoutAll does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) LogoutAll(ctx context.Context, userID string) (int, error) {
	if e == nil || e.store == nil {
		return 0, ErrEngineNotReady
	}

	deps := flows.LogoutAllDeps{
		RevokeAllForOwner: func(ctx context.Context, ownerID string) (int, error) {
			ctx, cancel := e.storeCtx(ctx)
			defer cancel()
			return e.store.RevokeAllForOwner(ctx, ownerID)
		},
	}

	result := flows.RunLogoutAll(ctx, userID, deps)

	switch result.Failure {
	case flows.LogoutFailureNone:
		e.metricInc(MetricLogoutAll)
		if result.Count > 0 {
			e.metrics.Add(MetricTokenRevoked, uint64(result.Count))
		}
		e.emitAudit(ctx, auditEventLogoutAll, true, result.UserID, "", nil, func() map[string]string {
			return map[string]string{
				"revoked": strconv.Itoa(result.Count),
			}
		})
		return result.Count, nil

	case flows.LogoutFailureNoCredential:
		return 0, ErrUserNotFound

	default:
		e.emitAudit(ctx, auditEventLogoutAll, false, result.UserID, "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "store_unavailable",
			}
		})
		return 0, ErrStoreUnavailable
	}
}

// ValidateAccess describes the validateaccess operation and its observable behavior.
//
// ValidateAccess may return an error when input validation, dependency calls, or security checks fail.
// ValidateAccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ValidateAccess(ctx context.Context, accessToken string) (*AuthResult, error) {
	if e == nil || e.codec == nil {
		return nil, ErrEngineNotReady
	}

	if e.metrics != nil && e.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() {
			e.metrics.Observe(MetricValidateLatency, time.Since(start))
		}()
	}

	result := flows.RunValidateAccess(accessToken, e.deps.Validate)

	switch result.Failure {
	case flows.ValidateFailureNone:
		e.metricInc(MetricValidateSuccess)
		return &AuthResult{
			UserID:  result.Identity.UserID,
			Email:   result.Identity.Email,
			Name:    result.Identity.Name,
			Roles:   result.Identity.Roles,
			Allowed: result.Identity.Allowed,
		}, nil

	case flows.ValidateFailureNoCredential:
		e.metricInc(MetricValidateFailure)
		return nil, ErrNoCredential

	case flows.ValidateFailureTokenExpired:
		e.metricInc(MetricValidateFailure)
		return nil, ErrTokenExpired

	case flows.ValidateFailureTokenMalformed:
		e.metricInc(MetricValidateFailure)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "malformed",
			}
		})
		return nil, ErrTokenMalformed

	case flows.ValidateFailureTokenSignature:
		e.metricInc(MetricValidateFailure)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", "", result.Err, func() map[string]string {
			return map[string]string{
				"reason": "signature",
			}
		})
		return nil, ErrSignatureInvalid

	default:
		e.metricInc(MetricValidateFailure)
		e.emitAudit(ctx, auditEventValidateFailure, false, result.Identity.UserID, "", ErrUserNotAllowed, func() map[string]string {
			return map[string]string{
				"reason": "not_allowed",
			}
		})
		return nil, ErrUserNotAllowed
	}
}
