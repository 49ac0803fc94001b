package flows

import (
	"errors"

	"github.com/planloop/guestauth/token"
)

// ValidateFailureKind classifies access validation failures.
type ValidateFailureKind int

const (
	ValidateFailureNone ValidateFailureKind = iota
	ValidateFailureNoCredential
	ValidateFailureTokenMalformed
	ValidateFailureTokenSignature
	ValidateFailureTokenExpired
	ValidateFailureNotAllowed
)

// ValidateResult carries the verified identity or failure metadata.
type ValidateResult struct {
	Failure  ValidateFailureKind
	Err      error
	Identity token.Identity
}

// ValidateDeps captures access validation dependencies. Access tokens are
// verified purely from their signature and claims; only refresh tokens carry
// revocation state.
type ValidateDeps struct {
	VerifyAccess func(tokenStr string) (token.Identity, error)
}

// RunValidateAccess verifies an access token and surfaces its identity.
func RunValidateAccess(accessToken string, deps ValidateDeps) ValidateResult {
	if accessToken == "" {
		return ValidateResult{Failure: ValidateFailureNoCredential}
	}

	ident, err := deps.VerifyAccess(accessToken)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			return ValidateResult{Failure: ValidateFailureTokenExpired, Err: err}
		case errors.Is(err, token.ErrMalformed):
			return ValidateResult{Failure: ValidateFailureTokenMalformed, Err: err}
		default:
			return ValidateResult{Failure: ValidateFailureTokenSignature, Err: err}
		}
	}

	if !ident.Allowed {
		return ValidateResult{Failure: ValidateFailureNotAllowed, Identity: ident}
	}

	return ValidateResult{Failure: ValidateFailureNone, Identity: ident}
}
