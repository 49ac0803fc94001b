package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failures form a closed set. Callers branch with errors.Is;
// the precise kind is for logging, never for client responses.
var (
	// ErrMalformed indicates the token structure could not be parsed.
	ErrMalformed = errors.New("token malformed")
	// ErrSignatureInvalid indicates the MAC did not match under the given secret.
	ErrSignatureInvalid = errors.New("token signature invalid")
	// ErrExpired indicates the token was structurally valid and correctly signed
	// but past its expiry.
	ErrExpired = errors.New("token expired")
)

const minSecretLen = 32

// Config defines the signing material and lifetimes for a [Codec].
//
// Config instances are intended to be configured during initialization and then
// treated as immutable.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Leeway        time.Duration
}

// Codec mints and verifies access and refresh tokens. Safe for concurrent use.
type Codec struct {
	config Config
}

// Identity is the claims payload minted into an access token. Immutable once
// minted; refresh never mutates an existing token, it mints a new one.
type Identity struct {
	UserID  string
	Email   string
	Name    string
	Roles   []string
	Allowed bool
}

// AccessClaims is the wire shape of an access token payload.
type AccessClaims struct {
	UserID  string   `json:"uid"`
	Email   string   `json:"eml"`
	Name    string   `json:"nam,omitempty"`
	Roles   []string `json:"rol"`
	Allowed bool     `json:"alw"`
	jwt.RegisteredClaims
}

// RefreshClaims is the wire shape of a refresh token payload. It carries only
// the owning user id plus registered claims; the jti is the token's identity
// for audit purposes.
type RefreshClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// NewCodec validates cfg and returns a ready [Codec].
//
// Both secrets must be at least 32 bytes and must differ; equal secrets would
// collapse the access/refresh trust boundary.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.AccessSecret) < minSecretLen {
		return nil, errors.New("access secret must be at least 32 bytes")
	}
	if len(cfg.RefreshSecret) < minSecretLen {
		return nil, errors.New("refresh secret must be at least 32 bytes")
	}
	if hmac.Equal(cfg.AccessSecret, cfg.RefreshSecret) {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.AccessTTL >= cfg.RefreshTTL {
		return nil, errors.New("access TTL must be shorter than refresh TTL")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	return &Codec{config: cfg}, nil
}

// MintAccess signs id into an access token expiring after the configured
// access TTL.
func (c *Codec) MintAccess(id Identity) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:  id.UserID,
		Email:   id.Email,
		Name:    id.Name,
		Roles:   id.Roles,
		Allowed: id.Allowed,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.config.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.config.Issuer,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.config.AccessSecret)
}

// MintRefresh signs a refresh token bound to userID, expiring after the
// configured refresh TTL. The jti is a fresh UUID.
func (c *Codec) MintRefresh(userID string) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.config.RefreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.config.Issuer,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.config.RefreshSecret)
}

// VerifyAccess validates signature and expiry under the access secret and
// returns the decoded claims.
func (c *Codec) VerifyAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := c.verify(tokenStr, claims, c.config.AccessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh validates signature and expiry under the refresh secret and
// returns the decoded claims.
func (c *Codec) VerifyRefresh(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := c.verify(tokenStr, claims, c.config.RefreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Codec) verify(tokenStr string, claims jwt.Claims, secret []byte) error {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if c.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(c.config.Leeway))
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	tok, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		// HMAC comparison inside the library is constant-time (hmac.Equal).
		return secret, nil
	})
	if err != nil {
		return classify(err)
	}
	if !tok.Valid {
		return ErrSignatureInvalid
	}
	return nil
}

// classify collapses golang-jwt errors into the package's closed failure set.
// Signature checks run before claim validation, so a token signed with the
// wrong secret reports ErrSignatureInvalid even when it is also expired.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrSignatureInvalid
	}
}

// Fingerprint derives the revocation-store key for a raw token string. The
// store never sees bearer material, only the SHA-256 digest.
func Fingerprint(tokenStr string) string {
	sum := sha256.Sum256([]byte(tokenStr))
	return hex.EncodeToString(sum[:])
}
