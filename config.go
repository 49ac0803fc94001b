package guestauth

import (
	"crypto/hmac"
	"errors"
	"time"
)

// Config defines a public type used by guestauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token      TokenConfig
	Revocation RevocationConfig
	Password   PasswordConfig
	Timeouts   TimeoutConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by guestauth APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
REVOCATION CONFIG
====================================
*/

// RevocationConfig defines a public type used by guestauth APIs.
//
// RevocationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RevocationConfig struct {
	RedisPrefix string
	// PurgeInterval drives the background sweep of expired entries. Zero
	// disables the sweeper; Redis deployments rarely need it since revocation
	// keys carry their own TTL.
	PurgeInterval time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by guestauth APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// TimeoutConfig defines a public type used by guestauth APIs.
//
// TimeoutConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TimeoutConfig struct {
	Store    time.Duration
	Provider time.Duration
}

// AuditConfig defines a public type used by guestauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by guestauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

const minSecretLength = 32

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			AccessTTL:  30 * time.Minute,
			RefreshTTL: 7 * 24 * time.Hour,
			Issuer:     "guestauth",
			Leeway:     30 * time.Second,
		},
		Revocation: RevocationConfig{
			RedisPrefix:   "ga",
			PurgeInterval: 0,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Timeouts: TimeoutConfig{
			Store:    5 * time.Second,
			Provider: 5 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.AccessSecret = cloneBytes(cfg.Token.AccessSecret)
	out.Token.RefreshSecret = cloneBytes(cfg.Token.RefreshSecret)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if len(c.Token.AccessSecret) < minSecretLength {
		return errors.New("Token.AccessSecret must be at least 32 bytes")
	}
	if len(c.Token.RefreshSecret) < minSecretLength {
		return errors.New("Token.RefreshSecret must be at least 32 bytes")
	}
	if hmac.Equal(c.Token.AccessSecret, c.Token.RefreshSecret) {
		return errors.New("Token.AccessSecret and Token.RefreshSecret must differ")
	}
	if c.Token.AccessTTL <= 0 || c.Token.RefreshTTL <= 0 {
		return errors.New("Token TTLs must be positive")
	}
	if c.Token.AccessTTL >= c.Token.RefreshTTL {
		return errors.New("Token.AccessTTL must be shorter than Token.RefreshTTL")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token.Leeway must be between 0 and 2 minutes")
	}
	if c.Timeouts.Store < 0 || c.Timeouts.Provider < 0 {
		return errors.New("Timeouts must not be negative")
	}
	if c.Revocation.PurgeInterval < 0 {
		return errors.New("Revocation.PurgeInterval must not be negative")
	}
	return nil
}
