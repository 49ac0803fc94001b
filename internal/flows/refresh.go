package flows

import (
	"context"
	"errors"

	"github.com/planloop/guestauth/token"
)

// RefreshFailureKind classifies refresh flow failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureNoCredential
	RefreshFailureStoreUnavailable
	RefreshFailureRevoked
	RefreshFailureTokenMalformed
	RefreshFailureTokenSignature
	RefreshFailureTokenExpired
	RefreshFailureMalformedPayload
	RefreshFailureProvider
	RefreshFailureUserNotFound
	RefreshFailureIssueAccess
)

// RefreshResult carries either a freshly minted access token or failure
// metadata. TokenID is the refresh token jti when verification got far enough
// to read it.
type RefreshResult struct {
	Failure     RefreshFailureKind
	Err         error
	UserID      string
	TokenID     string
	AccessToken string
}

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	Fingerprint   func(string) string
	IsRevoked     func(ctx context.Context, fingerprint string) (bool, error)
	VerifyRefresh func(tokenStr string) (userID, tokenID string, err error)
	FindByID      func(ctx context.Context, userID string) (*UserRecord, error)
	MintAccess    func(UserRecord) (string, error)
}

// RunRefresh exchanges a refresh token for a new access token. The revocation
// check runs before cryptographic verification so a revoked credential is
// reported as revoked even when its signature would also fail.
func RunRefresh(ctx context.Context, refreshToken string, deps RefreshDeps) RefreshResult {
	if refreshToken == "" {
		return RefreshResult{Failure: RefreshFailureNoCredential}
	}

	revoked, err := deps.IsRevoked(ctx, deps.Fingerprint(refreshToken))
	if err != nil {
		return RefreshResult{Failure: RefreshFailureStoreUnavailable, Err: err}
	}
	if revoked {
		return RefreshResult{Failure: RefreshFailureRevoked}
	}

	userID, tokenID, err := deps.VerifyRefresh(refreshToken)
	if err != nil {
		return RefreshResult{Failure: classifyTokenErr(err), Err: err}
	}
	if userID == "" {
		return RefreshResult{Failure: RefreshFailureMalformedPayload, TokenID: tokenID}
	}

	user, err := deps.FindByID(ctx, userID)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureProvider, Err: err, UserID: userID, TokenID: tokenID}
	}
	if user == nil {
		// Account deleted since the refresh token was issued.
		return RefreshResult{Failure: RefreshFailureUserNotFound, UserID: userID, TokenID: tokenID}
	}

	access, err := deps.MintAccess(*user)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureIssueAccess, Err: err, UserID: userID, TokenID: tokenID}
	}

	return RefreshResult{
		Failure:     RefreshFailureNone,
		UserID:      userID,
		TokenID:     tokenID,
		AccessToken: access,
	}
}

func classifyTokenErr(err error) RefreshFailureKind {
	switch {
	case errors.Is(err, token.ErrExpired):
		return RefreshFailureTokenExpired
	case errors.Is(err, token.ErrMalformed):
		return RefreshFailureTokenMalformed
	default:
		return RefreshFailureTokenSignature
	}
}
