package crypto_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"keystone/internal/crypto"
	"keystone/internal/keys"
	"keystone/internal/prng"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func counterBytes(start, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(start + i)
	}
	return b
}

func TestSHA(t *testing.T) {
	require.Equal(t,
		mustHex(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"),
		crypto.SHA256([]byte("a"), []byte("bc")))
	require.Equal(t,
		mustHex(t, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a"+
			"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"),
		crypto.SHA512([]byte("abc")))
}

// RFC 4231 test cases 6 and 7 use a 131-byte key.
func TestMAC_RFC4231(t *testing.T) {
	k, err := keys.NewHMACKey(bytes.Repeat([]byte{0xaa}, 131))
	require.NoError(t, err)

	cases := []struct {
		msg, tag string
	}{
		{
			"Test Using Larger Than Block-Size Key - Hash Key First",
			"60e431591ee0b67f0d8a26aacbf5b77f8e0bc6213728c5140546040f0ee37f54",
		},
		{
			"This is a test using a larger than block-size key and a larger than block-size data." +
				" The key needs to be hashed before being used by the HMAC algorithm.",
			"9b09ffa71b942fcb27635fbcd5b0e944bfdc63644f0713938a7f51535c3a35e2",
		},
	}
	for _, tc := range cases {
		tag := mustHex(t, tc.tag)
		require.Equal(t, tag, crypto.ComputeMAC(k, []byte(tc.msg)))
		require.True(t, crypto.VerifyMAC(k, []byte(tc.msg), tag))

		tag[0] ^= 0x01
		require.False(t, crypto.VerifyMAC(k, []byte(tc.msg), tag))
		require.False(t, crypto.VerifyMAC(k, []byte(tc.msg), tag[:31]))
	}
}

func TestCTR_EightByteIV(t *testing.T) {
	k, err := keys.NewAESKey(mustHex(t, "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4"))
	require.NoError(t, err)
	iv := mustHex(t, "0001020304050607")
	pt := mustHex(t, "6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e51")

	c, err := crypto.EncryptCTR(k, iv, pt)
	require.NoError(t, err)
	require.Equal(t, append(iv, mustHex(t, "7d07fc3a8635b12eb576a4807656c602fcbab6de77844957c5eb28dd8a1a060a")...), c)

	back, err := crypto.DecryptCTR(k, c)
	require.NoError(t, err)
	require.Equal(t, pt, back)

	_, err = crypto.EncryptCTR(k, iv[:7], pt)
	require.ErrorIs(t, err, crypto.ErrMalformedIV)
	_, err = crypto.DecryptCTR(k, c[:7])
	require.ErrorIs(t, err, crypto.ErrMalformedIV)
}

func TestSeal_Vector(t *testing.T) {
	k, err := keys.NewAuthEncKey(counterBytes(0, 64))
	require.NoError(t, err)
	g, err := prng.New(counterBytes(0, 32))
	require.NoError(t, err)

	c, err := crypto.Seal(k, []byte("attack at dawn"), g)
	require.NoError(t, err)

	want := mustHex(t, "3226437dd9f98b17"+
		"d69cb09d6bd09723d4491ad4befb"+
		"8d4d5866b2fa7608f56917ae72f3338d2b773509cb76f9ed95df0c5474dd32a6")
	require.Equal(t, want, c)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	g, err := prng.New(counterBytes(1, 32))
	require.NoError(t, err)
	k, err := keys.NewAuthEncKey(g.Bytes(64))
	require.NoError(t, err)

	for _, m := range [][]byte{nil, []byte("x"), bytes.Repeat([]byte("block"), 100)} {
		c, err := crypto.Seal(k, m, g)
		require.NoError(t, err)
		require.Len(t, c, crypto.IVSize+len(m)+crypto.MACSize)

		got, err := crypto.Open(k, c)
		require.NoError(t, err)
		require.Equal(t, len(m), len(got))
		require.True(t, bytes.Equal(m, got))
	}
}

func TestOpen_RejectsTampering(t *testing.T) {
	g, err := prng.New(counterBytes(2, 32))
	require.NoError(t, err)
	k, err := keys.NewAuthEncKey(g.Bytes(64))
	require.NoError(t, err)

	c, err := crypto.Seal(k, []byte("the quick brown fox"), g)
	require.NoError(t, err)

	for i := range c {
		tampered := append([]byte{}, c...)
		tampered[i] ^= 0x80
		_, err := crypto.Open(k, tampered)
		require.ErrorIs(t, err, crypto.ErrMACVerificationFailed, "byte %d", i)
	}

	other, err := keys.NewAuthEncKey(g.Bytes(64))
	require.NoError(t, err)
	_, err = crypto.Open(other, c)
	require.ErrorIs(t, err, crypto.ErrMACVerificationFailed)

	_, err = crypto.Open(k, c[:crypto.IVSize+crypto.MACSize-1])
	require.ErrorIs(t, err, crypto.ErrCiphertextTooShort)
}

func TestDeriveKey(t *testing.T) {
	seed := counterBytes(0, 32)

	aes, err := crypto.DeriveKey[keys.AESKey](seed)
	require.NoError(t, err)
	require.Equal(t, mustHex(t, "3226437dd9f98b17591aad731383303213439f64d029a5764e84e36256ddeb79"), aes.Bytes())

	ae, err := crypto.DeriveKey[keys.AuthEncKey](seed)
	require.NoError(t, err)
	require.Equal(t, mustHex(t, "3226437dd9f98b17591aad731383303213439f64d029a5764e84e36256ddeb79"), ae.MAC.Bytes())
	require.Equal(t, mustHex(t, "e2d0f9bbbac0520ef7319ac9509d6e04759f5c7bb2324f9c0c61e4869cd2f2a8"), ae.Enc.Bytes())

	mac, err := crypto.DeriveKey[keys.HMACKey](seed)
	require.NoError(t, err)
	require.Len(t, mac.Bytes(), keys.HMACKeySize)

	_, err = crypto.DeriveKey[keys.AESKey](seed[:16])
	require.ErrorIs(t, err, prng.ErrSeedTooShort)
}

func TestFingerprint(t *testing.T) {
	a := crypto.Fingerprint([]byte("identity-a"))
	b := crypto.Fingerprint([]byte("identity-b"))
	require.NotEqual(t, a, b)
	require.Equal(t, a, crypto.Fingerprint([]byte("identity-a")))
	require.NotContains(t, a, "0")
	require.NotContains(t, a, "l")
}

func TestB64(t *testing.T) {
	s := crypto.B64([]byte{0xde, 0xad, 0xbe, 0xef})
	require.Equal(t, "3q2+7w==", s)

	b, err := crypto.FromB64("  3q2+7w==\n")
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)
}
