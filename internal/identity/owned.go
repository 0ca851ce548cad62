package identity

import (
	"fmt"

	"keystone/internal/crypto"
	"keystone/internal/curve"
	"keystone/internal/encoding"
	"keystone/internal/keys"
	"keystone/internal/prng"
)

const macSeedSize = 32

// Dictionary field names of an encoded Owned identity.
const (
	fieldServerURL   = "server_url"
	fieldAuthPublic  = "auth_public"
	fieldAuthPrivate = "auth_private"
	fieldKEMPublic   = "kem_public"
	fieldKEMPrivate  = "kem_private"
	fieldMACKey      = "mac_key"
)

// Owned is an identity together with its secrets.
type Owned struct {
	ServerURL string
	Auth      keys.KeyPair
	KEM       keys.KeyPair
	MACKey    keys.HMACKey
}

// Generate creates a fresh owned identity for serverURL. The authentication
// pair lives on MDC, the KEM pair on Curve25519.
func Generate(serverURL string, g prng.Generator) (*Owned, error) {
	if err := checkServerURL(serverURL); err != nil {
		return nil, err
	}
	auth, err := keys.GenerateKeyPair(keys.UsageAuthentication, curve.MDC(), g)
	if err != nil {
		return nil, err
	}
	kem, err := keys.GenerateKeyPair(keys.UsageKEM, curve.Curve25519(), g)
	if err != nil {
		return nil, err
	}
	mac, err := crypto.DeriveKey[keys.HMACKey](g.Bytes(macSeedSize))
	if err != nil {
		return nil, err
	}
	return &Owned{ServerURL: serverURL, Auth: auth, KEM: kem, MACKey: mac}, nil
}

// Public returns the shareable identity.
func (o *Owned) Public() Identity {
	return Identity{ServerURL: o.ServerURL, AuthKey: o.Auth.Public, KEMKey: o.KEM.Public}
}

// Fingerprint is the fingerprint of the public identity.
func (o *Owned) Fingerprint() string { return o.Public().Fingerprint() }

// Encode serialises o, private keys included, as a dictionary.
func (o *Owned) Encode() (encoding.Encoded, error) {
	return encoding.Dictionary{
		fieldServerURL:   encoding.EncodeString(o.ServerURL),
		fieldAuthPublic:  o.Auth.Public.Encode(),
		fieldAuthPrivate: o.Auth.Private.Encode(),
		fieldKEMPublic:   o.KEM.Public.Encode(),
		fieldKEMPrivate:  o.KEM.Private.Encode(),
		fieldMACKey:      o.MACKey.Encode(),
	}.Encode()
}

// Wipe clears the secrets held by o.
func (o *Owned) Wipe() {
	o.Auth.Private.Wipe()
	o.KEM.Private.Wipe()
	o.MACKey.Wipe()
}

// DecodeOwned parses the output of Owned.Encode.
func DecodeOwned(b []byte) (*Owned, error) {
	d, err := encoding.DecodeDictionary(b)
	if err != nil {
		return nil, err
	}
	get := func(name string) (encoding.Encoded, error) {
		v, ok := d.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", keys.ErrMissingField, name)
		}
		return v, nil
	}

	raw, err := get(fieldServerURL)
	if err != nil {
		return nil, err
	}
	serverURL, err := encoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}

	auth, err := decodePair(get, fieldAuthPublic, fieldAuthPrivate, keys.UsageAuthentication)
	if err != nil {
		return nil, fmt.Errorf("authentication key: %w", err)
	}
	kem, err := decodePair(get, fieldKEMPublic, fieldKEMPrivate, keys.UsageKEM)
	if err != nil {
		return nil, fmt.Errorf("kem key: %w", err)
	}

	if raw, err = get(fieldMACKey); err != nil {
		return nil, err
	}
	mac, err := keys.DecodeHMACKey(raw)
	if err != nil {
		return nil, err
	}

	if _, err := New(serverURL, auth.Public, kem.Public); err != nil {
		return nil, err
	}
	return &Owned{ServerURL: serverURL, Auth: auth, KEM: kem, MACKey: mac}, nil
}

func decodePair(get func(string) (encoding.Encoded, error), pubField, privField string, u keys.Usage) (keys.KeyPair, error) {
	raw, err := get(pubField)
	if err != nil {
		return keys.KeyPair{}, err
	}
	pub, err := keys.DecodePublicKey(raw)
	if err != nil {
		return keys.KeyPair{}, err
	}
	if raw, err = get(privField); err != nil {
		return keys.KeyPair{}, err
	}
	priv, err := keys.DecodePrivateKey(raw)
	if err != nil {
		return keys.KeyPair{}, err
	}
	if err := pub.Require(u); err != nil {
		return keys.KeyPair{}, err
	}
	if err := priv.Require(u); err != nil {
		return keys.KeyPair{}, err
	}

	derived, err := priv.Public()
	if err != nil {
		return keys.KeyPair{}, err
	}
	if !derived.Equal(pub) {
		return keys.KeyPair{}, fmt.Errorf("%w: public key does not match private key", encoding.ErrMalformed)
	}
	return keys.KeyPair{Public: pub, Private: priv}, nil
}
