package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatepass/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte(strings.Repeat("k", jwtx.MinSecretLength))

func TestNewHS256RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewHS256([]byte("short"), "")
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestMintAndVerify(t *testing.T) {
	h, err := jwtx.NewHS256(secret, "gatepass")
	require.NoError(t, err)

	tok, minted, err := h.Mint("door-1", []string{"codes:redeem"}, time.Hour)
	require.NoError(t, err)
	require.Equal(t, "gatepass", minted.Issuer)

	claims, err := h.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "door-1", claims.Subject)
	require.True(t, claims.HasAnyScope("codes:issue", "codes:redeem"))
	require.False(t, claims.HasAnyScope("codes:issue"))
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	a, err := jwtx.NewHS256(secret, "")
	require.NoError(t, err)
	b, err := jwtx.NewHS256([]byte(strings.Repeat("x", 40)), "")
	require.NoError(t, err)

	tok, _, err := a.Mint("door-1", nil, time.Hour)
	require.NoError(t, err)

	_, err = b.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	a, err := jwtx.NewHS256(secret, "desk")
	require.NoError(t, err)
	b, err := jwtx.NewHS256(secret, "gatepass")
	require.NoError(t, err)

	tok, _, err := a.Mint("door-1", nil, time.Hour)
	require.NoError(t, err)

	_, err = b.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsExpired(t *testing.T) {
	h, err := jwtx.NewHS256(secret, "")
	require.NoError(t, err)

	claims := jwtx.NewStationClaims("door-1", nil, time.Minute, "", time.Now().Add(-2*time.Hour))
	tok, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	h, err := jwtx.NewHS256(secret, "")
	require.NoError(t, err)

	tok, err := h.Sign(jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "door-1"}})
	require.NoError(t, err)

	_, err = h.Verify(tok)
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	h, err := jwtx.NewHS256(secret, "")
	require.NoError(t, err)

	_, err = h.Verify("not.a.jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)

	_, err = h.Verify("")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestVerifyRejectsAlgNone(t *testing.T) {
	h, err := jwtx.NewHS256(secret, "")
	require.NoError(t, err)

	claims := jwtx.NewStationClaims("door-1", []string{"codes:redeem"}, time.Hour, "", time.Now())
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = h.Verify(tok)
	require.Error(t, err)
}

func TestValidateExpiryAtLeeway(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewStationClaims("door-1", nil, time.Minute, "", now.Add(-time.Minute-10*time.Second))

	require.ErrorIs(t, c.ValidateExpiryAt(now, 0), jwtx.ErrExpired)
	require.NoError(t, c.ValidateExpiryAt(now, 30*time.Second))

	future := jwtx.NewStationClaims("door-1", nil, time.Hour, "", now.Add(time.Hour))
	require.ErrorIs(t, future.ValidateExpiryAt(now, 0), jwtx.ErrNotYetValid)
}
