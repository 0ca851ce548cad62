package identity

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"unicode/utf8"

	"keystone/internal/crypto"
	"keystone/internal/keys"
)

const (
	// Separator terminates the server URL in the byte form.
	Separator = 0x00

	keysSize = 2 * keys.CompactSize
)

var (
	// ErrMalformedIdentity is returned for byte strings that are not
	// identities.
	ErrMalformedIdentity = errors.New("identity: malformed identity")

	// ErrInvalidServerURL is returned when the server URL is not an absolute
	// URL.
	ErrInvalidServerURL = errors.New("identity: invalid server url")
)

// Identity is the public half of a cryptographic identity.
type Identity struct {
	ServerURL string
	AuthKey   keys.PublicKey
	KEMKey    keys.PublicKey
}

// New validates its inputs and returns an Identity.
func New(serverURL string, auth, kem keys.PublicKey) (Identity, error) {
	if err := checkServerURL(serverURL); err != nil {
		return Identity{}, err
	}
	if err := auth.Require(keys.UsageAuthentication); err != nil {
		return Identity{}, err
	}
	if err := kem.Require(keys.UsageKEM); err != nil {
		return Identity{}, err
	}
	return Identity{ServerURL: serverURL, AuthKey: auth, KEMKey: kem}, nil
}

// Bytes returns the wire form of id.
func (id Identity) Bytes() []byte {
	b := make([]byte, 0, len(id.ServerURL)+1+keysSize)
	b = append(b, id.ServerURL...)
	b = append(b, Separator)
	b = append(b, id.AuthKey.Compact()...)
	return append(b, id.KEMKey.Compact()...)
}

// Parse decodes the wire form produced by Bytes. The public keys come back
// y-only.
func Parse(b []byte) (Identity, error) {
	i := bytes.IndexByte(b, Separator)
	if i < 0 {
		return Identity{}, fmt.Errorf("%w: no url terminator", ErrMalformedIdentity)
	}
	rawURL, rest := b[:i], b[i+1:]
	if !utf8.Valid(rawURL) {
		return Identity{}, fmt.Errorf("%w: url is not utf-8", ErrInvalidServerURL)
	}
	if len(rest) != keysSize {
		return Identity{}, fmt.Errorf("%w: %d key bytes, want %d", ErrMalformedIdentity, len(rest), keysSize)
	}

	auth, err := keys.ParseCompactPublicKey(keys.UsageAuthentication, rest[:keys.CompactSize])
	if err != nil {
		return Identity{}, fmt.Errorf("authentication key: %w", err)
	}
	kem, err := keys.ParseCompactPublicKey(keys.UsageKEM, rest[keys.CompactSize:])
	if err != nil {
		return Identity{}, fmt.Errorf("kem key: %w", err)
	}
	return New(string(rawURL), auth, kem)
}

// Equal reports whether both identities have the same byte form.
func (id Identity) Equal(o Identity) bool {
	return bytes.Equal(id.Bytes(), o.Bytes())
}

// Fingerprint returns a short display identifier for id.
func (id Identity) Fingerprint() string {
	return crypto.Fingerprint(id.Bytes())
}

func checkServerURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidServerURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidServerURL, s)
	}
	return nil
}
