package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultStationTokenTTL covers a single event night.
const DefaultStationTokenTTL = 12 * time.Hour

// Claims are the claims carried by a station token. A station is a door
// scanner or an issuing desk; Subject names it.
type Claims struct {
	jwt.RegisteredClaims

	// Permission Scopes "codes:issue", "codes:redeem"
	Scopes []string `json:"scopes,omitempty"`
}

// NewStationClaims builds minimally-correct claims for a station.
func NewStationClaims(subject string, scopes []string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Scopes: scopes,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasAnyScope reports whether the claims grant at least one of want.
func (c *Claims) HasAnyScope(want ...string) bool {
	for _, s := range want {
		if slices.Contains(c.Scopes, s) {
			return true
		}
	}
	return false
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryAt ensures the token hasn't expired (exp) and isn't before
// nbf at now, allowing leeway for clock skew between laptops.
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
