package guestauth

import (
	"bytes"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Token.AccessTTL <= 0 || cfg.Token.RefreshTTL <= cfg.Token.AccessTTL {
		t.Fatalf("default TTLs inconsistent: access=%v refresh=%v", cfg.Token.AccessTTL, cfg.Token.RefreshTTL)
	}
	if cfg.Token.Issuer == "" {
		t.Fatal("default issuer must be set")
	}
	if cfg.Revocation.RedisPrefix == "" {
		t.Fatal("default redis prefix must be set")
	}
	if cfg.Password.Memory == 0 || cfg.Password.KeyLength == 0 {
		t.Fatalf("default argon2 parameters incomplete: %+v", cfg.Password)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("metrics default to enabled")
	}
	if cfg.Audit.Enabled {
		t.Fatal("audit defaults to disabled")
	}

	// Secrets are deliberately absent; callers must supply their own.
	if len(cfg.Token.AccessSecret) != 0 || len(cfg.Token.RefreshSecret) != 0 {
		t.Fatal("default config must not ship secrets")
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("default config without secrets must not validate")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := defaultConfig()
		cfg.Token.AccessSecret = bytes.Repeat([]byte("a"), 32)
		cfg.Token.RefreshSecret = bytes.Repeat([]byte("r"), 32)
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short access secret", func(c *Config) { c.Token.AccessSecret = []byte("short") }},
		{"short refresh secret", func(c *Config) { c.Token.RefreshSecret = []byte("short") }},
		{"identical secrets", func(c *Config) { c.Token.RefreshSecret = bytes.Repeat([]byte("a"), 32) }},
		{"zero access ttl", func(c *Config) { c.Token.AccessTTL = 0 }},
		{"zero refresh ttl", func(c *Config) { c.Token.RefreshTTL = 0 }},
		{"access ttl not shorter", func(c *Config) { c.Token.AccessTTL = c.Token.RefreshTTL }},
		{"negative leeway", func(c *Config) { c.Token.Leeway = -time.Second }},
		{"excessive leeway", func(c *Config) { c.Token.Leeway = 5 * time.Minute }},
		{"negative store timeout", func(c *Config) { c.Timeouts.Store = -time.Second }},
		{"negative provider timeout", func(c *Config) { c.Timeouts.Provider = -time.Second }},
		{"negative purge interval", func(c *Config) { c.Revocation.PurgeInterval = -time.Minute }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCloneConfigIsolatesSecrets(t *testing.T) {
	original := defaultConfig()
	original.Token.AccessSecret = bytes.Repeat([]byte("a"), 32)
	original.Token.RefreshSecret = bytes.Repeat([]byte("r"), 32)

	cloned := cloneConfig(original)

	original.Token.AccessSecret[0] = 'X'
	original.Token.RefreshSecret[0] = 'X'

	if cloned.Token.AccessSecret[0] != 'a' {
		t.Fatal("clone shares access secret backing array")
	}
	if cloned.Token.RefreshSecret[0] != 'r' {
		t.Fatal("clone shares refresh secret backing array")
	}
}

func TestCloneConfigNilSecrets(t *testing.T) {
	cloned := cloneConfig(Config{})
	if cloned.Token.AccessSecret != nil || cloned.Token.RefreshSecret != nil {
		t.Fatal("nil secrets must stay nil")
	}
}
