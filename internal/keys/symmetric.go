package keys

import (
	"fmt"

	"keystone/internal/encoding"
	"keystone/internal/util/memzero"
)

// Symmetric key classes. All use implementation id ImplDefault.
const (
	ClassAES     byte = 0x00
	ClassHMAC    byte = 0x01
	ClassAuthEnc byte = 0x02

	ImplDefault byte = 0x00
)

// Sizes of raw symmetric key material.
const (
	AESKeySize     = 32
	HMACKeySize    = 32
	AuthEncKeySize = HMACKeySize + AESKeySize
)

const (
	fieldEncKey = "enckey"
	fieldMACKey = "mackey"
)

// Symmetric is satisfied by the three symmetric key types.
type Symmetric interface {
	AESKey | HMACKey | AuthEncKey
}

// SizeOf returns the raw length a key of type K is built from.
func SizeOf[K Symmetric]() int {
	var k K
	switch any(k).(type) {
	case AESKey:
		return AESKeySize
	case HMACKey:
		return HMACKeySize
	default:
		return AuthEncKeySize
	}
}

// FromBytes builds a key of type K from raw material of length SizeOf[K].
func FromBytes[K Symmetric](raw []byte) (K, error) {
	var zero K
	var (
		k   any
		err error
	)
	switch any(zero).(type) {
	case AESKey:
		k, err = NewAESKey(raw)
	case HMACKey:
		if len(raw) != HMACKeySize {
			return zero, fmt.Errorf("%w: HMAC key is %d bytes, want %d", ErrKeyLength, len(raw), HMACKeySize)
		}
		k, err = NewHMACKey(raw)
	default:
		k, err = NewAuthEncKey(raw)
	}
	if err != nil {
		return zero, err
	}
	return k.(K), nil
}

// AESKey is an AES-256 key.
type AESKey struct {
	key []byte
}

// NewAESKey copies raw, which must be exactly 32 bytes.
func NewAESKey(raw []byte) (AESKey, error) {
	if len(raw) != AESKeySize {
		return AESKey{}, fmt.Errorf("%w: AES key is %d bytes, want %d", ErrKeyLength, len(raw), AESKeySize)
	}
	return AESKey{key: append([]byte{}, raw...)}, nil
}

// AESKeyFromFields builds an AES key from the enckey entry of fields.
func AESKeyFromFields(fields encoding.Dictionary) (AESKey, error) {
	raw, err := bytesField(fields, fieldEncKey)
	if err != nil {
		return AESKey{}, err
	}
	return NewAESKey(raw)
}

// Bytes returns a copy of the key material.
func (k AESKey) Bytes() []byte { return append([]byte{}, k.key...) }

// Record returns the key record.
func (k AESKey) Record() Record {
	return symmetricRecord(ClassAES, encoding.Dictionary{fieldEncKey: encoding.EncodeBytes(k.key)})
}

// Encode returns the encoded key record.
func (k AESKey) Encode() encoding.Encoded { return mustEncode(k.Record()) }

// Wipe clears the key material.
func (k AESKey) Wipe() { memzero.Zero(k.key) }

// DecodeAESKey decodes an AES key record.
func DecodeAESKey(b []byte) (AESKey, error) {
	r, err := decodeSymmetric(b, ClassAES)
	if err != nil {
		return AESKey{}, err
	}
	return AESKeyFromFields(r.Fields)
}

// HMACKey is an HMAC-SHA-256 key of at least 32 bytes.
type HMACKey struct {
	key []byte
}

// NewHMACKey copies raw, which must be at least 32 bytes.
func NewHMACKey(raw []byte) (HMACKey, error) {
	if len(raw) < HMACKeySize {
		return HMACKey{}, fmt.Errorf("%w: HMAC key is %d bytes, want at least %d", ErrKeyLength, len(raw), HMACKeySize)
	}
	return HMACKey{key: append([]byte{}, raw...)}, nil
}

// HMACKeyFromFields builds an HMAC key from the mackey entry of fields.
func HMACKeyFromFields(fields encoding.Dictionary) (HMACKey, error) {
	raw, err := bytesField(fields, fieldMACKey)
	if err != nil {
		return HMACKey{}, err
	}
	return NewHMACKey(raw)
}

// Bytes returns a copy of the key material.
func (k HMACKey) Bytes() []byte { return append([]byte{}, k.key...) }

// Record returns the key record.
func (k HMACKey) Record() Record {
	return symmetricRecord(ClassHMAC, encoding.Dictionary{fieldMACKey: encoding.EncodeBytes(k.key)})
}

// Encode returns the encoded key record.
func (k HMACKey) Encode() encoding.Encoded { return mustEncode(k.Record()) }

// Wipe clears the key material.
func (k HMACKey) Wipe() { memzero.Zero(k.key) }

// DecodeHMACKey decodes an HMAC key record.
func DecodeHMACKey(b []byte) (HMACKey, error) {
	r, err := decodeSymmetric(b, ClassHMAC)
	if err != nil {
		return HMACKey{}, err
	}
	return HMACKeyFromFields(r.Fields)
}

// AuthEncKey pairs a MAC key with an encryption key.
type AuthEncKey struct {
	MAC HMACKey
	Enc AESKey
}

// NewAuthEncKey splits 64 raw bytes: the first half is the MAC key, the second
// the AES key.
func NewAuthEncKey(raw []byte) (AuthEncKey, error) {
	if len(raw) != AuthEncKeySize {
		return AuthEncKey{}, fmt.Errorf("%w: authenticated encryption key is %d bytes, want %d", ErrKeyLength, len(raw), AuthEncKeySize)
	}
	return AuthEncKeyFromFields(encoding.Dictionary{
		fieldMACKey: encoding.EncodeBytes(raw[:HMACKeySize]),
		fieldEncKey: encoding.EncodeBytes(raw[HMACKeySize:]),
	})
}

// AuthEncKeyFromFields builds the composite key from its mackey and enckey
// entries.
func AuthEncKeyFromFields(fields encoding.Dictionary) (AuthEncKey, error) {
	mac, err := HMACKeyFromFields(fields)
	if err != nil {
		return AuthEncKey{}, err
	}
	enc, err := AESKeyFromFields(fields)
	if err != nil {
		return AuthEncKey{}, err
	}
	return AuthEncKey{MAC: mac, Enc: enc}, nil
}

// Record returns the key record.
func (k AuthEncKey) Record() Record {
	return symmetricRecord(ClassAuthEnc, encoding.Dictionary{
		fieldMACKey: encoding.EncodeBytes(k.MAC.key),
		fieldEncKey: encoding.EncodeBytes(k.Enc.key),
	})
}

// Encode returns the encoded key record.
func (k AuthEncKey) Encode() encoding.Encoded { return mustEncode(k.Record()) }

// Wipe clears both halves.
func (k AuthEncKey) Wipe() {
	k.MAC.Wipe()
	k.Enc.Wipe()
}

// DecodeAuthEncKey decodes an authenticated encryption key record.
func DecodeAuthEncKey(b []byte) (AuthEncKey, error) {
	r, err := decodeSymmetric(b, ClassAuthEnc)
	if err != nil {
		return AuthEncKey{}, err
	}
	return AuthEncKeyFromFields(r.Fields)
}

func symmetricRecord(class byte, fields encoding.Dictionary) Record {
	return Record{
		ClassID:    class,
		ImplID:     ImplDefault,
		Fields:     fields,
		EncodingID: encoding.IDSymmetricKey,
	}
}

func decodeSymmetric(b []byte, class byte) (Record, error) {
	r, err := DecodeRecord(b)
	if err != nil {
		return Record{}, err
	}
	if err := r.expect(encoding.IDSymmetricKey, class); err != nil {
		return Record{}, err
	}
	return r, nil
}

func bytesField(fields encoding.Dictionary, name string) ([]byte, error) {
	v, ok := fields.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, name)
	}
	return encoding.DecodeBytes(v)
}
