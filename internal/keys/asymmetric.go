package keys

import (
	"fmt"
	"math/big"

	"keystone/internal/curve"
	"keystone/internal/encoding"
	"keystone/internal/prng"
	"keystone/internal/util/memzero"
)

// Usage tags a curve key with the protocol it serves. Its value is the
// algorithm class id written in key records.
type Usage byte

const (
	UsageSignature      Usage = 0x11
	UsageKEM            Usage = 0x12
	UsageAuthentication Usage = 0x14
)

// CompactSize is the length of a compact public key.
const CompactSize = 33

const (
	fieldX      = "x"
	fieldY      = "y"
	fieldScalar = "n"
)

// ParseUsage maps a class id to its usage.
func ParseUsage(class byte) (Usage, error) {
	switch u := Usage(class); u {
	case UsageSignature, UsageKEM, UsageAuthentication:
		return u, nil
	default:
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownUsage, class)
	}
}

// String returns the usage name.
func (u Usage) String() string {
	switch u {
	case UsageSignature:
		return "signature"
	case UsageKEM:
		return "kem"
	case UsageAuthentication:
		return "authentication"
	default:
		return fmt.Sprintf("usage(0x%02x)", byte(u))
	}
}

// PublicKey is a curve point tagged with a usage. The point may be y-only.
type PublicKey struct {
	usage Usage
	curve *curve.Curve
	point curve.Point
}

// NewPublicKey builds a public key from a full point after checking it lies on
// the curve.
func NewPublicKey(u Usage, c *curve.Curve, p curve.Point) (PublicKey, error) {
	if _, err := ParseUsage(byte(u)); err != nil {
		return PublicKey{}, err
	}
	if !p.HasX() {
		return NewPublicKeyFromY(u, c, p.Y())
	}
	if !c.IsOnCurve(p.X(), p.Y()) {
		return PublicKey{}, curve.ErrPointNotOnCurve
	}
	return PublicKey{usage: u, curve: c, point: c.NewPoint(p.X(), p.Y())}, nil
}

// NewPublicKeyFromY builds a public key known only by its y-coordinate. The
// y-value must correspond to a curve point.
func NewPublicKeyFromY(u Usage, c *curve.Curve, y *big.Int) (PublicKey, error) {
	if _, err := ParseUsage(byte(u)); err != nil {
		return PublicKey{}, err
	}
	if y.Sign() < 0 || y.Cmp(c.P()) >= 0 {
		return PublicKey{}, fmt.Errorf("%w: y out of range", curve.ErrPointNotOnCurve)
	}
	if _, err := c.XFromY(y); err != nil {
		return PublicKey{}, err
	}
	return PublicKey{usage: u, curve: c, point: c.PointFromY(y)}, nil
}

// ParseCompactPublicKey decodes the 33-byte compact form.
func ParseCompactPublicKey(u Usage, b []byte) (PublicKey, error) {
	if len(b) != CompactSize {
		return PublicKey{}, fmt.Errorf("%w: compact key is %d bytes, want %d", ErrKeyLength, len(b), CompactSize)
	}
	c, err := curve.ByID(curve.ID(b[0]))
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKeyFromY(u, c, new(big.Int).SetBytes(b[1:]))
}

// Usage returns the key's usage tag.
func (k PublicKey) Usage() Usage { return k.usage }

// Curve returns the curve the key lives on.
func (k PublicKey) Curve() *curve.Curve { return k.curve }

// Point returns the public point, possibly y-only.
func (k PublicKey) Point() curve.Point { return k.point }

// Y returns the y-coordinate.
func (k PublicKey) Y() *big.Int { return k.point.Y() }

// IsZero reports whether k is the zero value.
func (k PublicKey) IsZero() bool { return k.curve == nil }

// As returns the same key tagged for usage u.
func (k PublicKey) As(u Usage) PublicKey {
	k.usage = u
	return k
}

// Require returns ErrUsageMismatch unless k is tagged u.
func (k PublicKey) Require(u Usage) error {
	if k.usage != u {
		return fmt.Errorf("%w: %s key used for %s", ErrUsageMismatch, k.usage, u)
	}
	return nil
}

// Equal reports whether both keys have the same usage, curve and y. The
// x-coordinate is ignored since compact keys never carry it.
func (k PublicKey) Equal(o PublicKey) bool {
	if k.curve == nil || o.curve == nil {
		return k.curve == o.curve
	}
	return k.usage == o.usage && k.curve.ID() == o.curve.ID() && k.Y().Cmp(o.Y()) == 0
}

// Compact returns [curve id][32-byte big-endian y].
func (k PublicKey) Compact() []byte {
	out := make([]byte, CompactSize)
	out[0] = byte(k.curve.ID())
	k.point.Y().FillBytes(out[1:])
	return out
}

// Record returns the key record with the y-coordinate and, when known, x.
func (k PublicKey) Record() Record {
	fields := encoding.Dictionary{fieldY: mustBigUint(k.point.Y())}
	if k.point.HasX() {
		fields[fieldX] = mustBigUint(k.point.X())
	}
	return Record{
		ClassID:    byte(k.usage),
		ImplID:     byte(k.curve.ID()),
		Fields:     fields,
		EncodingID: encoding.IDPublicKey,
	}
}

// Encode returns the encoded key record.
func (k PublicKey) Encode() encoding.Encoded { return mustEncode(k.Record()) }

// DecodePublicKey decodes a public key record.
func DecodePublicKey(b []byte) (PublicKey, error) {
	r, err := DecodeRecord(b)
	if err != nil {
		return PublicKey{}, err
	}
	if r.EncodingID != encoding.IDPublicKey {
		return PublicKey{}, fmt.Errorf("%w: got 0x%02x, want 0x%02x", encoding.ErrIncorrectByteID, byte(r.EncodingID), byte(encoding.IDPublicKey))
	}
	u, err := ParseUsage(r.ClassID)
	if err != nil {
		return PublicKey{}, err
	}
	c, err := curve.ByID(curve.ID(r.ImplID))
	if err != nil {
		return PublicKey{}, err
	}
	rawY, err := r.field(fieldY)
	if err != nil {
		return PublicKey{}, err
	}
	y, err := encoding.DecodeBigUint(rawY)
	if err != nil {
		return PublicKey{}, err
	}
	rawX, ok := r.Fields.Get(fieldX)
	if !ok {
		return NewPublicKeyFromY(u, c, y)
	}
	x, err := encoding.DecodeBigUint(rawX)
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(u, c, c.NewPoint(x, y))
}

// PrivateKey is a scalar modulo the curve order tagged with a usage.
type PrivateKey struct {
	usage  Usage
	curve  *curve.Curve
	scalar *big.Int
}

// NewPrivateKey reduces n modulo q.
func NewPrivateKey(u Usage, c *curve.Curve, n *big.Int) (PrivateKey, error) {
	if _, err := ParseUsage(byte(u)); err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{usage: u, curve: c, scalar: new(big.Int).Mod(n, c.Q())}, nil
}

// Usage returns the key's usage tag.
func (k PrivateKey) Usage() Usage { return k.usage }

// Curve returns the curve the key lives on.
func (k PrivateKey) Curve() *curve.Curve { return k.curve }

// Scalar returns a copy of the secret scalar.
func (k PrivateKey) Scalar() *big.Int { return new(big.Int).Set(k.scalar) }

// IsZero reports whether k is the zero value.
func (k PrivateKey) IsZero() bool { return k.curve == nil }

// As returns the same key tagged for usage u.
func (k PrivateKey) As(u Usage) PrivateKey {
	k.usage = u
	return k
}

// Require returns ErrUsageMismatch unless k is tagged u.
func (k PrivateKey) Require(u Usage) error {
	if k.usage != u {
		return fmt.Errorf("%w: %s key used for %s", ErrUsageMismatch, k.usage, u)
	}
	return nil
}

// Public derives the full public point n·G.
func (k PrivateKey) Public() (PublicKey, error) {
	p, err := k.curve.ScalarMultWithX(k.scalar, k.curve.G())
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey{usage: k.usage, curve: k.curve, point: p}, nil
}

// Record returns the key record.
func (k PrivateKey) Record() Record {
	return Record{
		ClassID:    byte(k.usage),
		ImplID:     byte(k.curve.ID()),
		Fields:     encoding.Dictionary{fieldScalar: mustBigUint(k.scalar)},
		EncodingID: encoding.IDPrivateKey,
	}
}

// Encode returns the encoded key record.
func (k PrivateKey) Encode() encoding.Encoded { return mustEncode(k.Record()) }

// Wipe clears the scalar. The key must not be used afterwards.
func (k PrivateKey) Wipe() { memzero.Int(k.scalar) }

// DecodePrivateKey decodes a private key record.
func DecodePrivateKey(b []byte) (PrivateKey, error) {
	r, err := DecodeRecord(b)
	if err != nil {
		return PrivateKey{}, err
	}
	if r.EncodingID != encoding.IDPrivateKey {
		return PrivateKey{}, fmt.Errorf("%w: got 0x%02x, want 0x%02x", encoding.ErrIncorrectByteID, byte(r.EncodingID), byte(encoding.IDPrivateKey))
	}
	u, err := ParseUsage(r.ClassID)
	if err != nil {
		return PrivateKey{}, err
	}
	c, err := curve.ByID(curve.ID(r.ImplID))
	if err != nil {
		return PrivateKey{}, err
	}
	raw, err := r.field(fieldScalar)
	if err != nil {
		return PrivateKey{}, err
	}
	n, err := encoding.DecodeBigUint(raw)
	if err != nil {
		return PrivateKey{}, err
	}
	return NewPrivateKey(u, c, n)
}

// KeyPair holds matching public and private keys.
type KeyPair struct {
	Public  PublicKey
	Private PrivateKey
}

// GenerateKeyPair draws a fresh scalar on c and tags both halves with u.
func GenerateKeyPair(u Usage, c *curve.Curve, g prng.Generator) (KeyPair, error) {
	if _, err := ParseUsage(byte(u)); err != nil {
		return KeyPair{}, err
	}
	n, p, err := c.GenerateScalarAndPoint(g)
	if err != nil {
		return KeyPair{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return KeyPair{
		Public:  PublicKey{usage: u, curve: c, point: p},
		Private: PrivateKey{usage: u, curve: c, scalar: n},
	}, nil
}

// As re-tags both halves of the pair.
func (kp KeyPair) As(u Usage) KeyPair {
	return KeyPair{Public: kp.Public.As(u), Private: kp.Private.As(u)}
}

func mustBigUint(n *big.Int) encoding.Encoded {
	e, err := encoding.EncodeBigUint(n)
	if err != nil {
		// Coordinates and scalars are always reduced, hence non-negative.
		panic(err)
	}
	return e
}
