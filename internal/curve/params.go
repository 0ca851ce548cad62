package curve

import (
	"fmt"
	"math/big"
	"sync"
)

// ID is the one-byte curve implementation identifier used in key records.
type ID byte

const (
	IDMDC        ID = 0x00
	IDCurve25519 ID = 0x01
)

// String returns the curve name for id.
func (id ID) String() string {
	switch id {
	case IDMDC:
		return "MDC"
	case IDCurve25519:
		return "Curve25519"
	default:
		return fmt.Sprintf("curve(0x%02x)", byte(id))
	}
}

// Curve holds the immutable parameters of one Edwards curve.
type Curve struct {
	id       ID
	p        *big.Int
	d        *big.Int
	g        Point
	q        *big.Int
	cofactor *big.Int

	// Square root descriptor: p-1 = 2^s·t + (p-1 mod 2^s), nonQR a quadratic
	// non-residue.
	s     int
	nonQR *big.Int
	t     *big.Int

	// Derived once.
	halfP  *big.Int // (p-1)/2
	pMinus *big.Int // p-1
	c      *big.Int // (1-d)^-1 mod p
}

var (
	initOnce   sync.Once
	mdc        *Curve
	curve25519 *Curve
)

func initCurves() {
	mdc = newCurve(IDMDC,
		"109112363276961190442711090369149551676330307646118204517771511330536253156371",
		"39384817741350628573161184301225915800358770588933756071948264625804612259721",
		"82549803222202399340024462032964942512025856818700414254726364205096731424315",
		"91549545637415734422658288799119041756378259523097147807813396915125932811445",
		"27278090819240297610677772592287387918930509574048068887630978293185521973243",
		4, 1, 2,
	)
	curve25519 = newCurve(IDCurve25519,
		"57896044618658097711785492504343953926634992332820282019728792003956564819949",
		"20800338683988658368647408995589388737092878452977063003340006470870624536394",
		"9771384041963202563870679428059935816164187996444183106833894008023910952347",
		"46316835694926478169428394003475163141307993866256225615783033603165251855960",
		"7237005577332262213973186563042994240857116359379907606001950938285454250989",
		8, 2, 2,
	)
}

func newCurve(id ID, p, d, gx, gy, q string, cofactor int64, s int, nonQR int64) *Curve {
	c := &Curve{
		id:       id,
		p:        mustInt(p),
		d:        mustInt(d),
		q:        mustInt(q),
		cofactor: big.NewInt(cofactor),
		s:        s,
		nonQR:    big.NewInt(nonQR),
	}
	c.g = Point{x: mustInt(gx), y: mustInt(gy)}
	c.t = new(big.Int).Rsh(c.p, uint(s))
	c.pMinus = new(big.Int).Sub(c.p, one)
	c.halfP = new(big.Int).Rsh(c.pMinus, 1)
	c.c = new(big.Int).ModInverse(new(big.Int).Sub(one, c.d), c.p)
	if c.c == nil || !c.IsOnCurve(c.g.x, c.g.y) {
		panic(fmt.Sprintf("curve: invalid parameters for %s", id))
	}
	return c
}

func mustInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("curve: bad constant " + s)
	}
	return n
}

var one = big.NewInt(1)

// MDC returns the MDC curve.
func MDC() *Curve {
	initOnce.Do(initCurves)
	return mdc
}

// Curve25519 returns the Edwards form of Curve25519 with a = 1.
func Curve25519() *Curve {
	initOnce.Do(initCurves)
	return curve25519
}

// ByID maps an implementation identifier to its curve.
func ByID(id ID) (*Curve, error) {
	switch id {
	case IDMDC:
		return MDC(), nil
	case IDCurve25519:
		return Curve25519(), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownCurve, byte(id))
	}
}

// ID returns the curve's implementation identifier.
func (c *Curve) ID() ID { return c.id }

// P returns the field prime.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// D returns the curve coefficient.
func (c *Curve) D() *big.Int { return new(big.Int).Set(c.d) }

// Q returns the order of the prime subgroup generated by the base point.
func (c *Curve) Q() *big.Int { return new(big.Int).Set(c.q) }

// Cofactor returns the curve cofactor.
func (c *Curve) Cofactor() *big.Int { return new(big.Int).Set(c.cofactor) }

// G returns the base point.
func (c *Curve) G() Point { return c.g }

// ByteLen is the size of a field element in fixed-width encodings.
func (c *Curve) ByteLen() int { return (c.p.BitLen() + 7) / 8 }
