package guestauth

import "errors"

var (
	// ErrNoCredential is an exported constant or variable used by the session engine.
	ErrNoCredential = errors.New("no credential presented")
	// ErrInvalidCredentials is an exported constant or variable used by the session engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is an exported constant or variable used by the session engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserNotAllowed is an exported constant or variable used by the session engine.
	ErrUserNotAllowed = errors.New("user not allowed")
	// ErrTokenMalformed is an exported constant or variable used by the session engine.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrSignatureInvalid is an exported constant or variable used by the session engine.
	ErrSignatureInvalid = errors.New("token signature invalid")
	// ErrTokenExpired is an exported constant or variable used by the session engine.
	ErrTokenExpired = errors.New("token expired")
	// ErrRevoked is an exported constant or variable used by the session engine.
	ErrRevoked = errors.New("token revoked")
	// ErrTokenIssueFailed is an exported constant or variable used by the session engine.
	ErrTokenIssueFailed = errors.New("token issuance failed")
	// ErrStoreUnavailable is an exported constant or variable used by the session engine.
	ErrStoreUnavailable = errors.New("revocation store unavailable")
	// ErrProviderUnavailable is an exported constant or variable used by the session engine.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the session engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// ClientReason maps an engine error onto the short category string safe to
// show a caller. Token-level detail (malformed vs bad signature vs expired vs
// revoked) collapses to "unauthorized" so responses never leak why a
// credential was rejected.
func ClientReason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrUserNotAllowed):
		return "invalid_credentials"
	case errors.Is(err, ErrNoCredential),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrSignatureInvalid),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrRevoked):
		return "unauthorized"
	case errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, ErrProviderUnavailable),
		errors.Is(err, ErrTokenIssueFailed),
		errors.Is(err, ErrEngineNotReady):
		return "unavailable"
	default:
		return "error"
	}
}
