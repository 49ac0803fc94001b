package flows

import (
	"context"
	"errors"
	"time"

	"github.com/planloop/guestauth/token"
)

// LogoutFailureKind classifies logout flow failures for root-level mapping.
type LogoutFailureKind int

const (
	LogoutFailureNone LogoutFailureKind = iota
	LogoutFailureNoCredential
	LogoutFailureTokenMalformed
	LogoutFailureTokenSignature
	LogoutFailureStoreUnavailable
)

// LogoutResult carries the revocation outcome. ClearCookies is true on every
// path, including failures, so the transport layer always drops the session
// cookies regardless of what the presented token turned out to be.
type LogoutResult struct {
	Failure      LogoutFailureKind
	Err          error
	UserID       string
	TokenID      string
	Revoked      bool
	ClearCookies bool
}

// LogoutDeps captures logout flow dependencies. VerifyRefresh must also
// surface the token expiry so the revocation entry can share it.
type LogoutDeps struct {
	Fingerprint   func(string) string
	VerifyRefresh func(tokenStr string) (userID, tokenID string, expiresAt time.Time, err error)
	Revoke        func(ctx context.Context, fingerprint, ownerID string, expiresAt time.Time) error
}

// RunLogout revokes the presented refresh token. Logout is idempotent: an
// already-revoked or naturally expired token succeeds without a store write,
// since neither can be used again anyway.
func RunLogout(ctx context.Context, refreshToken string, deps LogoutDeps) LogoutResult {
	if refreshToken == "" {
		return LogoutResult{Failure: LogoutFailureNoCredential, ClearCookies: true}
	}

	userID, tokenID, expiresAt, err := deps.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			// Past natural expiry there is nothing left to revoke.
			return LogoutResult{Failure: LogoutFailureNone, ClearCookies: true}
		}
		if errors.Is(err, token.ErrMalformed) {
			return LogoutResult{Failure: LogoutFailureTokenMalformed, Err: err, ClearCookies: true}
		}
		return LogoutResult{Failure: LogoutFailureTokenSignature, Err: err, ClearCookies: true}
	}

	if err := deps.Revoke(ctx, deps.Fingerprint(refreshToken), userID, expiresAt); err != nil {
		return LogoutResult{
			Failure:      LogoutFailureStoreUnavailable,
			Err:          err,
			UserID:       userID,
			TokenID:      tokenID,
			ClearCookies: true,
		}
	}

	return LogoutResult{
		Failure:      LogoutFailureNone,
		UserID:       userID,
		TokenID:      tokenID,
		Revoked:      true,
		ClearCookies: true,
	}
}

// LogoutAllResult carries the bulk revocation outcome.
type LogoutAllResult struct {
	Failure LogoutFailureKind
	Err     error
	UserID  string
	Count   int
}

// LogoutAllDeps captures bulk logout dependencies.
type LogoutAllDeps struct {
	RevokeAllForOwner func(ctx context.Context, ownerID string) (int, error)
}

// RunLogoutAll revokes every tracked live session of one owner.
func RunLogoutAll(ctx context.Context, userID string, deps LogoutAllDeps) LogoutAllResult {
	if userID == "" {
		return LogoutAllResult{Failure: LogoutFailureNoCredential}
	}

	count, err := deps.RevokeAllForOwner(ctx, userID)
	if err != nil {
		return LogoutAllResult{Failure: LogoutFailureStoreUnavailable, Err: err, UserID: userID}
	}

	return LogoutAllResult{Failure: LogoutFailureNone, UserID: userID, Count: count}
}
