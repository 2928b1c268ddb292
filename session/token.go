package session

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goHelper/internal"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

const sessionIDSize = 16

// ErrInvalidToken is returned for session tokens that fail signature, expiry,
// issuer or shape checks.
var ErrInvalidToken = errors.New("invalid session token")

// NewID returns a random 128-bit session ID, base64url without padding.
func NewID() (string, error) {
	raw, err := internal.RandomBytes(sessionIDSize)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// TokenConfig configures a TokenManager.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Leeway time.Duration
}

// TokenClaims carries the session ID inside the signed token.
type TokenClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session ID tokens (HS256).
type TokenManager struct {
	config TokenConfig
	clock  clockwork.Clock
}

// NewTokenManager validates cfg and returns a TokenManager. A nil clock uses
// the wall clock.
func NewTokenManager(cfg TokenConfig, clock clockwork.Clock) (*TokenManager, error) {
	if len(cfg.Secret) < 32 {
		return nil, errors.New("session token secret must be at least 32 bytes")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid session token TTL")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenManager{config: cfg, clock: clock}, nil
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.config.TTL
}

// Now returns the manager's current time, the reference for token expiry.
func (m *TokenManager) Now() time.Time {
	return m.clock.Now()
}

// Issue signs sessionID into a token valid for the configured TTL.
func (m *TokenManager) Issue(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("empty session id")
	}

	now := m.clock.Now()
	claims := TokenClaims{
		SID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.Secret)
}

// Parse verifies token and returns the session ID it carries.
func (m *TokenManager) Parse(token string) (string, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.config.Secret, nil
	}, options...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.SID == "" {
		return "", fmt.Errorf("%w: missing sid", ErrInvalidToken)
	}
	return claims.SID, nil
}
