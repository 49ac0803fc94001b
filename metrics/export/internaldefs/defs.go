package internaldefs

import (
	guestauth "github.com/planloop/guestauth"
)

// CounterDef defines a public type used by guestauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   guestauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by guestauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   guestauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session engine.
var CounterDefs = []CounterDef{
	{ID: guestauth.MetricLoginSuccess, Name: "guestauth_login_success_total", Help: "Successful login attempts."},
	{ID: guestauth.MetricLoginFailure, Name: "guestauth_login_failure_total", Help: "Failed login attempts."},
	{ID: guestauth.MetricRefreshSuccess, Name: "guestauth_refresh_success_total", Help: "Successful refresh operations."},
	{ID: guestauth.MetricRefreshFailure, Name: "guestauth_refresh_failure_total", Help: "Failed refresh operations."},
	{ID: guestauth.MetricRefreshRevoked, Name: "guestauth_refresh_revoked_total", Help: "Refresh attempts rejected because the token was revoked."},
	{ID: guestauth.MetricLogout, Name: "guestauth_logout_total", Help: "Single-session logout operations."},
	{ID: guestauth.MetricLogoutAll, Name: "guestauth_logout_all_total", Help: "Logout-all operations."},
	{ID: guestauth.MetricTokenRevoked, Name: "guestauth_token_revoked_total", Help: "Refresh tokens written to the revocation store."},
	{ID: guestauth.MetricValidateSuccess, Name: "guestauth_validate_success_total", Help: "Successful access token validations."},
	{ID: guestauth.MetricValidateFailure, Name: "guestauth_validate_failure_total", Help: "Failed access token validations."},
	{ID: guestauth.MetricRevocationPurged, Name: "guestauth_revocation_purged_total", Help: "Expired revocation entries removed by the purge sweep."},
}

// HistogramDefs is an exported constant or variable used by the session engine.
var HistogramDefs = []HistogramDef{
	{ID: guestauth.MetricValidateLatency, Name: "guestauth_validate_latency_seconds", Help: "ValidateAccess latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
