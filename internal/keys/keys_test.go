package keys_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"keystone/internal/curve"
	"keystone/internal/encoding"
	"keystone/internal/keys"
	"keystone/internal/prng"
)

func testGenerator(t *testing.T) *prng.HMACDRBG {
	t.Helper()
	g, err := prng.New(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)
	return g
}

func TestAESKey(t *testing.T) {
	raw := bytes.Repeat([]byte{0x01}, keys.AESKeySize)
	k, err := keys.NewAESKey(raw)
	require.NoError(t, err)
	require.Equal(t, raw, k.Bytes())

	enc := k.Encode()
	require.Equal(t, encoding.IDSymmetricKey, enc.ID())

	back, err := keys.DecodeAESKey(enc)
	require.NoError(t, err)
	require.Equal(t, raw, back.Bytes())

	_, err = keys.NewAESKey(raw[:31])
	require.ErrorIs(t, err, keys.ErrKeyLength)
	_, err = keys.NewAESKey(append(raw, 0))
	require.ErrorIs(t, err, keys.ErrKeyLength)
}

func TestAESKey_RecordLayout(t *testing.T) {
	raw := bytes.Repeat([]byte{0xab}, keys.AESKeySize)
	k, err := keys.NewAESKey(raw)
	require.NoError(t, err)

	dict := append([]byte{0x04}, encoding.EncodeString("enckey")...)
	dict = append(dict, encoding.EncodeBytes(raw)...)
	head := encoding.EncodeBytes([]byte{0x00, 0x00})
	want := encoding.Pack(encoding.IDSymmetricKey, head, encoding.Encoded(dict))

	require.Equal(t, want, k.Encode())
}

func TestHMACKey(t *testing.T) {
	long := bytes.Repeat([]byte{0x02}, 48)
	k, err := keys.NewHMACKey(long)
	require.NoError(t, err)

	back, err := keys.DecodeHMACKey(k.Encode())
	require.NoError(t, err)
	require.Equal(t, long, back.Bytes())

	_, err = keys.NewHMACKey(long[:31])
	require.ErrorIs(t, err, keys.ErrKeyLength)
}

func TestAuthEncKey_Split(t *testing.T) {
	raw := make([]byte, keys.AuthEncKeySize)
	for i := range raw {
		raw[i] = byte(i)
	}
	k, err := keys.NewAuthEncKey(raw)
	require.NoError(t, err)
	require.Equal(t, raw[:32], k.MAC.Bytes())
	require.Equal(t, raw[32:], k.Enc.Bytes())

	back, err := keys.DecodeAuthEncKey(k.Encode())
	require.NoError(t, err)
	require.Equal(t, k.MAC.Bytes(), back.MAC.Bytes())
	require.Equal(t, k.Enc.Bytes(), back.Enc.Bytes())

	_, err = keys.NewAuthEncKey(raw[:63])
	require.ErrorIs(t, err, keys.ErrKeyLength)
}

func TestSymmetric_WrongClass(t *testing.T) {
	k, err := keys.NewAESKey(make([]byte, 32))
	require.NoError(t, err)

	_, err = keys.DecodeHMACKey(k.Encode())
	require.ErrorIs(t, err, keys.ErrWrongClass)

	_, err = keys.AuthEncKeyFromFields(encoding.Dictionary{"enckey": encoding.EncodeBytes(make([]byte, 32))})
	require.ErrorIs(t, err, keys.ErrMissingField)
}

func TestFromBytes_Generic(t *testing.T) {
	require.Equal(t, 32, keys.SizeOf[keys.AESKey]())
	require.Equal(t, 32, keys.SizeOf[keys.HMACKey]())
	require.Equal(t, 64, keys.SizeOf[keys.AuthEncKey]())

	a, err := keys.FromBytes[keys.AESKey](make([]byte, 32))
	require.NoError(t, err)
	require.Len(t, a.Bytes(), 32)

	ae, err := keys.FromBytes[keys.AuthEncKey](make([]byte, 64))
	require.NoError(t, err)
	require.Len(t, ae.Enc.Bytes(), 32)

	_, err = keys.FromBytes[keys.HMACKey](make([]byte, 40))
	require.ErrorIs(t, err, keys.ErrKeyLength)
}

func TestUsage(t *testing.T) {
	for _, u := range []keys.Usage{keys.UsageSignature, keys.UsageKEM, keys.UsageAuthentication} {
		got, err := keys.ParseUsage(byte(u))
		require.NoError(t, err)
		require.Equal(t, u, got)
	}
	_, err := keys.ParseUsage(0x13)
	require.ErrorIs(t, err, keys.ErrUnknownUsage)
}

func TestPublicKey_RecordRoundTrip(t *testing.T) {
	for _, c := range []*curve.Curve{curve.MDC(), curve.Curve25519()} {
		kp, err := keys.GenerateKeyPair(keys.UsageSignature, c, testGenerator(t))
		require.NoError(t, err)
		require.True(t, kp.Public.Point().HasX())

		back, err := keys.DecodePublicKey(kp.Public.Encode())
		require.NoError(t, err)
		require.True(t, back.Equal(kp.Public))
		require.True(t, back.Point().Equal(kp.Public.Point()))

		yOnly, err := keys.NewPublicKeyFromY(keys.UsageKEM, c, kp.Public.Y())
		require.NoError(t, err)
		back, err = keys.DecodePublicKey(yOnly.Encode())
		require.NoError(t, err)
		require.False(t, back.Point().HasX())
		require.True(t, back.Equal(yOnly))
	}
}

func TestPrivateKey_RecordRoundTrip(t *testing.T) {
	kp, err := keys.GenerateKeyPair(keys.UsageKEM, curve.Curve25519(), testGenerator(t))
	require.NoError(t, err)

	back, err := keys.DecodePrivateKey(kp.Private.Encode())
	require.NoError(t, err)
	require.Equal(t, keys.UsageKEM, back.Usage())
	require.Zero(t, back.Scalar().Cmp(kp.Private.Scalar()))

	pub, err := back.Public()
	require.NoError(t, err)
	require.True(t, pub.Equal(kp.Public))

	_, err = keys.DecodePrivateKey(kp.Public.Encode())
	require.ErrorIs(t, err, encoding.ErrIncorrectByteID)
}

func TestCompact(t *testing.T) {
	for _, c := range []*curve.Curve{curve.MDC(), curve.Curve25519()} {
		kp, err := keys.GenerateKeyPair(keys.UsageAuthentication, c, testGenerator(t))
		require.NoError(t, err)

		compact := kp.Public.Compact()
		require.Len(t, compact, keys.CompactSize)
		require.Equal(t, byte(c.ID()), compact[0])

		back, err := keys.ParseCompactPublicKey(keys.UsageAuthentication, compact)
		require.NoError(t, err)
		require.True(t, back.Equal(kp.Public))
		require.Same(t, c, back.Curve())

		_, err = keys.ParseCompactPublicKey(keys.UsageAuthentication, compact[:32])
		require.ErrorIs(t, err, keys.ErrKeyLength)
		_, err = keys.ParseCompactPublicKey(keys.UsageAuthentication, append(compact, 0))
		require.ErrorIs(t, err, keys.ErrKeyLength)
	}

	bad := make([]byte, keys.CompactSize)
	bad[0] = 0x09
	_, err := keys.ParseCompactPublicKey(keys.UsageKEM, bad)
	require.ErrorIs(t, err, curve.ErrUnknownCurve)
}

func TestNewPublicKey_RejectsOffCurve(t *testing.T) {
	c := curve.MDC()
	_, err := keys.NewPublicKey(keys.UsageSignature, c, c.NewPoint(big.NewInt(3), big.NewInt(4)))
	require.ErrorIs(t, err, curve.ErrPointNotOnCurve)

	_, err = keys.NewPublicKeyFromY(keys.UsageSignature, c, big.NewInt(2))
	require.ErrorIs(t, err, curve.ErrCoordinates)

	_, err = keys.NewPublicKey(keys.Usage(0x30), c, c.G())
	require.ErrorIs(t, err, keys.ErrUnknownUsage)
}

func TestAs_KeepsMaterial(t *testing.T) {
	kp, err := keys.GenerateKeyPair(keys.UsageAuthentication, curve.MDC(), testGenerator(t))
	require.NoError(t, err)

	sig := kp.As(keys.UsageSignature)
	require.Equal(t, keys.UsageSignature, sig.Public.Usage())
	require.Equal(t, keys.UsageSignature, sig.Private.Usage())
	require.Zero(t, sig.Private.Scalar().Cmp(kp.Private.Scalar()))
	require.True(t, sig.Public.Point().Equal(kp.Public.Point()))
	require.False(t, sig.Public.Equal(kp.Public))
	require.True(t, sig.Public.As(keys.UsageAuthentication).Equal(kp.Public))

	require.NoError(t, sig.Public.Require(keys.UsageSignature))
	require.ErrorIs(t, kp.Public.Require(keys.UsageSignature), keys.ErrUsageMismatch)
	require.ErrorIs(t, kp.Private.Require(keys.UsageKEM), keys.ErrUsageMismatch)
}
