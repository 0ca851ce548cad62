package message_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"keystone/internal/crypto"
	"keystone/internal/domain"
	"keystone/internal/prng"
	"keystone/internal/protocol/kem"
	identitysvc "keystone/internal/services/identity"
	messagesvc "keystone/internal/services/message"
	"keystone/internal/store"
)

const pass = "Correct-Horse-9"

func newServices(t *testing.T) (*identitysvc.Service, *messagesvc.Service) {
	t.Helper()
	st := store.NewIdentityFileStore(t.TempDir(), store.WithScryptParams(store.ScryptParams{N: 1 << 10, R: 8, P: 1}))
	ids := identitysvc.New(st, identitysvc.WithUnlockLimit(rate.Inf, 1))
	return ids, messagesvc.New(ids)
}

func TestSealOpen(t *testing.T) {
	ids, msgs := newServices(t)
	rec, _, err := ids.GenerateIdentity(pass, "https://keys.example.org", domain.IdentityDetails{})
	require.NoError(t, err)

	msg := []byte("meet at the usual place")
	sealed, err := msgs.Seal(rec.Identity, msg)
	require.NoError(t, err)
	require.Len(t, sealed, kem.CiphertextSize+8+len(msg)+crypto.MACSize)
	require.False(t, bytes.Contains(sealed, msg))

	got, err := msgs.Open(pass, rec.Fingerprint, sealed)
	require.NoError(t, err)
	require.Equal(t, msg, got)

	again, err := msgs.Seal(rec.Identity, msg)
	require.NoError(t, err)
	require.NotEqual(t, sealed, again)
}

func TestOpen_Tampered(t *testing.T) {
	ids, msgs := newServices(t)
	rec, _, err := ids.GenerateIdentity(pass, "https://keys.example.org", domain.IdentityDetails{})
	require.NoError(t, err)

	sealed, err := msgs.Seal(rec.Identity, []byte("payload"))
	require.NoError(t, err)

	for _, i := range []int{0, kem.CiphertextSize, len(sealed) - 1} {
		bad := append([]byte{}, sealed...)
		bad[i] ^= 0x01
		_, err := msgs.Open(pass, rec.Fingerprint, bad)
		require.Error(t, err, "byte %d", i)
	}

	_, err = msgs.Open(pass, rec.Fingerprint, sealed[:10])
	require.ErrorIs(t, err, messagesvc.ErrSealedTooShort)
}

func TestOpen_OtherIdentityFails(t *testing.T) {
	ids, msgs := newServices(t)
	alice, _, err := ids.GenerateIdentity(pass, "https://keys.example.org", domain.IdentityDetails{})
	require.NoError(t, err)
	bob, _, err := ids.GenerateIdentity(pass, "https://keys.example.org", domain.IdentityDetails{})
	require.NoError(t, err)

	sealed, err := msgs.Seal(alice.Identity, []byte("for alice"))
	require.NoError(t, err)

	_, err = msgs.Open(pass, bob.Fingerprint, sealed)
	require.ErrorIs(t, err, crypto.ErrMACVerificationFailed)
}

func TestSeal_BadRecipient(t *testing.T) {
	_, msgs := newServices(t)
	_, err := msgs.Seal([]byte("nope"), []byte("x"))
	require.Error(t, err)
}

type countingWipes struct {
	*prng.HMACDRBG
	wiped *int
}

func (g countingWipes) Wipe() {
	*g.wiped++
	g.HMACDRBG.Wipe()
}

func TestSeal_WipesItsGenerator(t *testing.T) {
	ids, _ := newServices(t)
	var wiped int
	msgs := messagesvc.New(ids, messagesvc.WithEntropy(func() (prng.Generator, error) {
		g, err := prng.New(bytes.Repeat([]byte{5}, 32))
		return countingWipes{HMACDRBG: g, wiped: &wiped}, err
	}))
	rec, _, err := ids.GenerateIdentity(pass, "https://keys.example.org", domain.IdentityDetails{})
	require.NoError(t, err)

	sealed, err := msgs.Seal(rec.Identity, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 1, wiped)

	got, err := msgs.Open(pass, rec.Fingerprint, sealed)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}
