package authentication_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"keystone/internal/curve"
	"keystone/internal/keys"
	"keystone/internal/prng"
	"keystone/internal/protocol/authentication"
	"keystone/internal/protocol/signature"
)

func setup(t *testing.T, c *curve.Curve, seed byte) (keys.KeyPair, *prng.HMACDRBG) {
	t.Helper()
	g, err := prng.New(bytes.Repeat([]byte{seed}, 32))
	require.NoError(t, err)
	kp, err := keys.GenerateKeyPair(keys.UsageAuthentication, c, g)
	require.NoError(t, err)
	return kp, g
}

func TestRespondCheck(t *testing.T) {
	kp, g := setup(t, curve.MDC(), 1)
	challenge := []byte("server nonce 42")

	resp, err := authentication.Respond(challenge, kp.Public, kp.Private, g)
	require.NoError(t, err)
	require.Len(t, resp, authentication.ResponseSize)

	ok, err := authentication.Check(resp, challenge, kp.Public)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = authentication.Check(resp, []byte("server nonce 43"), kp.Public)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResponseIsSignatureOverPrefixedMessage(t *testing.T) {
	kp, g := setup(t, curve.Curve25519(), 2)
	challenge := []byte{1, 2, 3}

	resp, err := authentication.Respond(challenge, kp.Public, kp.Private, g)
	require.NoError(t, err)

	suffix, sig := resp[:authentication.SuffixSize], resp[authentication.SuffixSize:]
	msg := append(append([]byte(authentication.Prefix), challenge...), suffix...)

	ok, err := signature.Verify(kp.Public.As(keys.UsageSignature), msg, sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheck_CompactKey(t *testing.T) {
	kp, g := setup(t, curve.MDC(), 3)
	resp, err := authentication.Respond([]byte("c"), kp.Public, kp.Private, g)
	require.NoError(t, err)

	compact, err := keys.ParseCompactPublicKey(keys.UsageAuthentication, kp.Public.Compact())
	require.NoError(t, err)
	ok, err := authentication.Check(resp, []byte("c"), compact)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRespond_DifferentCurve(t *testing.T) {
	mdc, g := setup(t, curve.MDC(), 4)
	c25, _ := setup(t, curve.Curve25519(), 5)

	_, err := authentication.Respond([]byte("c"), c25.Public, mdc.Private, g)
	require.ErrorIs(t, err, authentication.ErrDifferentCurve)
}

func TestRespond_RequiresAuthenticationKeys(t *testing.T) {
	kp, g := setup(t, curve.MDC(), 6)
	sig := kp.As(keys.UsageSignature)

	_, err := authentication.Respond([]byte("c"), sig.Public, sig.Private, g)
	require.ErrorIs(t, err, keys.ErrUsageMismatch)
}

func TestCheck_InvalidResponse(t *testing.T) {
	kp, _ := setup(t, curve.MDC(), 7)
	_, err := authentication.Check(make([]byte, authentication.ResponseSize-1), []byte("c"), kp.Public)
	require.ErrorIs(t, err, authentication.ErrInvalidResponse)
}
