package flows

import (
	"context"
	"time"
)

// LoginFailureKind classifies login flow failures for root-level mapping.
type LoginFailureKind int

const (
	LoginFailureNone LoginFailureKind = iota
	LoginFailureProvider
	LoginFailureInvalidCredentials
	LoginFailureIssueAccess
	LoginFailureIssueRefresh
	LoginFailureTrack
)

// LoginResult carries either the issued token pair or failure metadata.
type LoginResult struct {
	Failure      LoginFailureKind
	Err          error
	UserID       string
	AccessToken  string
	RefreshToken string
}

// LoginDeps captures login flow dependencies. FindByEmail returns (nil, nil)
// for an unknown email; the flow collapses that and a password mismatch into
// the same failure kind so callers cannot enumerate accounts.
type LoginDeps struct {
	FindByEmail    func(ctx context.Context, email string) (*UserRecord, error)
	VerifyPassword func(password, hash string) (bool, error)
	// DummyHash is burned on unknown-email attempts so the two rejection
	// paths cost the same.
	DummyHash   string
	MintAccess  func(UserRecord) (string, error)
	MintRefresh func(userID string) (string, error)
	Fingerprint func(string) string
	Track       func(ctx context.Context, fingerprint, ownerID string, expiresAt time.Time) error
	RefreshTTL  time.Duration
}

// RunLogin executes credential verification and session issuance.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) LoginResult {
	user, err := deps.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{Failure: LoginFailureProvider, Err: err}
	}
	if user == nil {
		if deps.DummyHash != "" {
			_, _ = deps.VerifyPassword(password, deps.DummyHash)
		}
		return LoginResult{Failure: LoginFailureInvalidCredentials}
	}

	ok, err := deps.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		// A corrupt stored hash is indistinguishable from a wrong password
		// at this boundary; the detail rides along for audit only.
		return LoginResult{
			Failure: LoginFailureInvalidCredentials,
			Err:     err,
			UserID:  user.UserID,
		}
	}

	access, err := deps.MintAccess(*user)
	if err != nil {
		return LoginResult{Failure: LoginFailureIssueAccess, Err: err, UserID: user.UserID}
	}

	refresh, err := deps.MintRefresh(user.UserID)
	if err != nil {
		return LoginResult{Failure: LoginFailureIssueRefresh, Err: err, UserID: user.UserID}
	}

	expiry := time.Now().Add(deps.RefreshTTL)
	if err := deps.Track(ctx, deps.Fingerprint(refresh), user.UserID, expiry); err != nil {
		// Without the tracking entry, RevokeAllForOwner could never reach
		// this token. Fail closed rather than hand out an untrackable
		// credential.
		return LoginResult{Failure: LoginFailureTrack, Err: err, UserID: user.UserID}
	}

	return LoginResult{
		Failure:      LoginFailureNone,
		UserID:       user.UserID,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}
