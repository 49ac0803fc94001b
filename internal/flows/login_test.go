package flows

import (
	"context"
	"errors"
	"testing"
	"time"
)

func baseLoginDeps(t *testing.T) LoginDeps {
	t.Helper()

	user := &UserRecord{
		UserID:       "u1",
		Email:        "a@example.com",
		PasswordHash: "good-hash",
		Allowed:      true,
	}

	return LoginDeps{
		FindByEmail: func(_ context.Context, email string) (*UserRecord, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, nil
		},
		VerifyPassword: func(password, hash string) (bool, error) {
			return password == "secret" && hash == "good-hash", nil
		},
		DummyHash:   "dummy-hash",
		MintAccess:  func(UserRecord) (string, error) { return "access", nil },
		MintRefresh: func(string) (string, error) { return "refresh", nil },
		Fingerprint: func(s string) string { return "fp:" + s },
		Track: func(context.Context, string, string, time.Time) error {
			return nil
		},
		RefreshTTL: time.Hour,
	}
}

func TestRunLoginSuccess(t *testing.T) {
	res := RunLogin(context.Background(), "a@example.com", "secret", baseLoginDeps(t))
	if res.Failure != LoginFailureNone {
		t.Fatalf("failure = %d, err = %v", res.Failure, res.Err)
	}
	if res.AccessToken != "access" || res.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens: %q %q", res.AccessToken, res.RefreshToken)
	}
	if res.UserID != "u1" {
		t.Fatalf("user id = %q", res.UserID)
	}
}

func TestRunLoginUnknownEmailBurnsDummyHash(t *testing.T) {
	deps := baseLoginDeps(t)

	var verifiedHash string
	deps.VerifyPassword = func(_, hash string) (bool, error) {
		verifiedHash = hash
		return false, nil
	}

	res := RunLogin(context.Background(), "nobody@example.com", "secret", deps)
	if res.Failure != LoginFailureInvalidCredentials {
		t.Fatalf("failure = %d", res.Failure)
	}
	if verifiedHash != "dummy-hash" {
		t.Fatalf("dummy hash not burned, verified %q", verifiedHash)
	}
}

func TestRunLoginUnknownAndWrongPasswordCollapse(t *testing.T) {
	deps := baseLoginDeps(t)

	unknown := RunLogin(context.Background(), "nobody@example.com", "secret", deps)
	wrongPw := RunLogin(context.Background(), "a@example.com", "wrong", deps)

	if unknown.Failure != wrongPw.Failure {
		t.Fatalf("failure kinds diverge: %d vs %d", unknown.Failure, wrongPw.Failure)
	}
	if unknown.AccessToken != "" || wrongPw.AccessToken != "" {
		t.Fatal("failed login must not carry tokens")
	}
}

func TestRunLoginProviderError(t *testing.T) {
	deps := baseLoginDeps(t)
	deps.FindByEmail = func(context.Context, string) (*UserRecord, error) {
		return nil, errors.New("db down")
	}

	res := RunLogin(context.Background(), "a@example.com", "secret", deps)
	if res.Failure != LoginFailureProvider {
		t.Fatalf("failure = %d", res.Failure)
	}
	if res.Err == nil {
		t.Fatal("provider error not carried")
	}
}

func TestRunLoginTrackFailureWithholdsTokens(t *testing.T) {
	deps := baseLoginDeps(t)
	deps.Track = func(context.Context, string, string, time.Time) error {
		return errors.New("store down")
	}

	res := RunLogin(context.Background(), "a@example.com", "secret", deps)
	if res.Failure != LoginFailureTrack {
		t.Fatalf("failure = %d", res.Failure)
	}
	if res.AccessToken != "" || res.RefreshToken != "" {
		t.Fatal("untrackable session must not be handed out")
	}
}

func TestRunLoginTrackExpirySpansRefreshTTL(t *testing.T) {
	deps := baseLoginDeps(t)

	var trackedExpiry time.Time
	deps.Track = func(_ context.Context, _, _ string, expiresAt time.Time) error {
		trackedExpiry = expiresAt
		return nil
	}

	before := time.Now()
	res := RunLogin(context.Background(), "a@example.com", "secret", deps)
	if res.Failure != LoginFailureNone {
		t.Fatalf("failure = %d", res.Failure)
	}

	want := before.Add(deps.RefreshTTL)
	if trackedExpiry.Before(want) || trackedExpiry.After(want.Add(time.Minute)) {
		t.Fatalf("tracked expiry %v not near %v", trackedExpiry, want)
	}
}
