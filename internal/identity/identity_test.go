package identity_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"keystone/internal/curve"
	"keystone/internal/encoding"
	"keystone/internal/identity"
	"keystone/internal/keys"
	"keystone/internal/prng"
	"keystone/internal/protocol/authentication"
	"keystone/internal/protocol/kem"
)

// olvidIdentity is an identity produced by another implementation of the
// format.
const olvidIdentity = "68747470733a2f2f7365727665722e6f6c7669642e696f00" +
	"0080b2fb533aa90f0e6d0e7953efbb449a57a5c9ca7d19efc39d64bc22448a8b96" +
	"011ac091de8e1d58111e0681eb3c0cb495c6c9621a4b7f005329d1693a4b442709"

func newGenerator(t *testing.T, b byte) *prng.HMACDRBG {
	t.Helper()
	g, err := prng.New(bytes.Repeat([]byte{b}, 32))
	require.NoError(t, err)
	return g
}

func TestParse_KnownIdentity(t *testing.T) {
	raw, err := hex.DecodeString(olvidIdentity)
	require.NoError(t, err)

	id, err := identity.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "https://server.olvid.io", id.ServerURL)
	require.Equal(t, curve.IDMDC, id.AuthKey.Curve().ID())
	require.Equal(t, curve.IDCurve25519, id.KEMKey.Curve().ID())
	require.Equal(t, keys.UsageAuthentication, id.AuthKey.Usage())
	require.Equal(t, keys.UsageKEM, id.KEMKey.Usage())

	require.Equal(t, raw, id.Bytes())
	require.Equal(t, "Eb5M7L6Uw6iixo", id.Fingerprint())
}

func TestGenerate(t *testing.T) {
	o, err := identity.Generate("https://keys.example.org", newGenerator(t, 1))
	require.NoError(t, err)

	require.Equal(t, curve.IDMDC, o.Auth.Public.Curve().ID())
	require.Equal(t, curve.IDCurve25519, o.KEM.Public.Curve().ID())
	require.Len(t, o.MACKey.Bytes(), keys.SizeOf[keys.HMACKey]())

	pub := o.Public()
	b := pub.Bytes()
	require.Len(t, b, len("https://keys.example.org")+1+2*keys.CompactSize)
	require.Equal(t, byte(identity.Separator), b[len("https://keys.example.org")])

	parsed, err := identity.Parse(b)
	require.NoError(t, err)
	require.True(t, parsed.Equal(pub))
	require.Equal(t, o.Fingerprint(), parsed.Fingerprint())
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := identity.Generate("https://keys.example.org", newGenerator(t, 2))
	require.NoError(t, err)
	b, err := identity.Generate("https://keys.example.org", newGenerator(t, 2))
	require.NoError(t, err)
	require.Equal(t, a.Public().Bytes(), b.Public().Bytes())
	require.Equal(t, a.MACKey.Bytes(), b.MACKey.Bytes())
}

func TestParsedIdentityIsUsable(t *testing.T) {
	g := newGenerator(t, 3)
	o, err := identity.Generate("https://keys.example.org", g)
	require.NoError(t, err)
	peer, err := identity.Parse(o.Public().Bytes())
	require.NoError(t, err)

	ct, sent, err := kem.Encrypt[keys.AuthEncKey](peer.KEMKey, g)
	require.NoError(t, err)
	got, err := kem.Decrypt[keys.AuthEncKey](ct, o.KEM.Private)
	require.NoError(t, err)
	require.Equal(t, sent.Enc.Bytes(), got.Enc.Bytes())

	resp, err := authentication.Respond([]byte("nonce"), o.Auth.Public, o.Auth.Private, g)
	require.NoError(t, err)
	ok, err := authentication.Check(resp, []byte("nonce"), peer.AuthKey)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestParse_Errors(t *testing.T) {
	raw, err := hex.DecodeString(olvidIdentity)
	require.NoError(t, err)

	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"empty", nil, identity.ErrMalformedIdentity},
		{"no terminator", []byte("https://server.olvid.io"), identity.ErrMalformedIdentity},
		{"short keys", raw[:len(raw)-1], identity.ErrMalformedIdentity},
		{"long keys", append(append([]byte{}, raw...), 0), identity.ErrMalformedIdentity},
		{"relative url", append([]byte("server.olvid.io"), raw[23:]...), identity.ErrInvalidServerURL},
		{"bad utf8", append([]byte{0xff}, raw[23:]...), identity.ErrInvalidServerURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := identity.Parse(tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}

	unknown := append([]byte{}, raw...)
	unknown[24] = 0x7f
	_, err = identity.Parse(unknown)
	require.ErrorIs(t, err, curve.ErrUnknownCurve)
}

func TestOwned_EncodeDecode(t *testing.T) {
	o, err := identity.Generate("https://keys.example.org", newGenerator(t, 4))
	require.NoError(t, err)

	enc, err := o.Encode()
	require.NoError(t, err)
	require.Equal(t, encoding.IDDictionary, enc.ID())

	got, err := identity.DecodeOwned(enc)
	require.NoError(t, err)
	require.Equal(t, o.ServerURL, got.ServerURL)
	require.True(t, o.Public().Equal(got.Public()))
	require.Equal(t, 0, o.Auth.Private.Scalar().Cmp(got.Auth.Private.Scalar()))
	require.Equal(t, 0, o.KEM.Private.Scalar().Cmp(got.KEM.Private.Scalar()))
	require.Equal(t, o.MACKey.Bytes(), got.MACKey.Bytes())
}

func TestDecodeOwned_RejectsMismatchedKeys(t *testing.T) {
	a, err := identity.Generate("https://keys.example.org", newGenerator(t, 5))
	require.NoError(t, err)
	b, err := identity.Generate("https://keys.example.org", newGenerator(t, 6))
	require.NoError(t, err)

	a.KEM.Private = b.KEM.Private
	enc, err := a.Encode()
	require.NoError(t, err)
	_, err = identity.DecodeOwned(enc)
	require.ErrorIs(t, err, encoding.ErrMalformed)
}

func TestDecodeOwned_MissingField(t *testing.T) {
	d := encoding.Dictionary{"server_url": encoding.EncodeString("https://keys.example.org")}
	enc, err := d.Encode()
	require.NoError(t, err)
	_, err = identity.DecodeOwned(enc)
	require.ErrorIs(t, err, keys.ErrMissingField)
}

func TestWipe(t *testing.T) {
	o, err := identity.Generate("https://keys.example.org", newGenerator(t, 7))
	require.NoError(t, err)
	o.Wipe()
	require.Zero(t, o.Auth.Private.Scalar().Sign())
	require.Equal(t, make([]byte, 32), o.MACKey.Bytes())
}
