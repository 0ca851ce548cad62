package curve

import (
	"fmt"
	"math/big"

	"keystone/internal/prng"
)

// IsOnCurve reports whether x² + y² ≡ 1 + d·x²·y² (mod p).
func (c *Curve) IsOnCurve(x, y *big.Int) bool {
	x2 := new(big.Int).Mul(x, x)
	x2.Mod(x2, c.p)
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, c.p)

	left := new(big.Int).Add(x2, y2)
	left.Mod(left, c.p)

	right := new(big.Int).Mul(x2, y2)
	right.Mul(right, c.d)
	right.Add(right, one)
	right.Mod(right, c.p)

	return left.Cmp(right) == 0
}

// Add returns p1 + p2 using the unified addition law, which also doubles.
// Both points must be full points.
func (c *Curve) Add(p1, p2 Point) (Point, error) {
	if !p1.HasX() || !p2.HasX() {
		return Point{}, fmt.Errorf("%w: addition needs full points", ErrCoordinates)
	}
	x1x2 := new(big.Int).Mul(p1.x, p2.x)
	y1y2 := new(big.Int).Mul(p1.y, p2.y)

	t := new(big.Int).Mul(x1x2, y1y2)
	t.Mul(t, c.d)
	t.Mod(t, c.p)

	zx := new(big.Int).ModInverse(new(big.Int).Add(one, t), c.p)
	zy := new(big.Int).ModInverse(c.mod(new(big.Int).Sub(one, t)), c.p)
	if zx == nil || zy == nil {
		return Point{}, ErrComputation
	}

	x := new(big.Int).Mul(p1.x, p2.y)
	x.Add(x, new(big.Int).Mul(p1.y, p2.x))
	x.Mul(x, zx)
	x.Mod(x, c.p)

	y := new(big.Int).Sub(y1y2, x1x2)
	y.Mul(y, zy)
	y.Mod(y, c.p)

	return Point{x: x, y: y}, nil
}

// ScalarMultWithX returns n·p with a double-and-add ladder over full points.
func (c *Curve) ScalarMultWithX(n *big.Int, p Point) (Point, error) {
	if !p.HasX() {
		return Point{}, fmt.Errorf("%w: x-coordinate required", ErrCoordinates)
	}
	if !c.IsOnCurve(p.x, p.y) {
		return Point{}, ErrPointNotOnCurve
	}
	y := c.mod(p.y)
	if n.Sign() == 0 || y.Cmp(one) == 0 {
		return c.Identity(), nil
	}
	if y.Cmp(c.pMinus) == 0 {
		return Point{x: new(big.Int), y: c.parity(n)}, nil
	}

	p1 := c.Identity()
	p2 := c.NewPoint(p.x, y)
	var err error
	for i := n.BitLen() - 1; i >= 0; i-- {
		if n.Bit(i) == 0 {
			if p2, err = c.Add(p1, p2); err != nil {
				return Point{}, err
			}
			if p1, err = c.Add(p1, p1); err != nil {
				return Point{}, err
			}
		} else {
			if p1, err = c.Add(p1, p2); err != nil {
				return Point{}, err
			}
			if p2, err = c.Add(p2, p2); err != nil {
				return Point{}, err
			}
		}
	}
	return p1, nil
}

// ScalarMult returns the y-coordinate of n·P where P is any point with
// y-coordinate y. It runs a Montgomery ladder on the quotient curve and never
// needs x.
func (c *Curve) ScalarMult(n, y *big.Int) (*big.Int, error) {
	y = c.mod(y)
	if n.Sign() == 0 || y.Cmp(one) == 0 {
		return big.NewInt(1), nil
	}
	if y.Cmp(c.pMinus) == 0 {
		return c.parity(n), nil
	}

	uP := c.mod(new(big.Int).Add(one, y))
	wP := c.mod(new(big.Int).Sub(one, y))
	uQ, wQ := big.NewInt(1), big.NewInt(0)
	uR, wR := new(big.Int).Set(uP), new(big.Int).Set(wP)

	for i := n.BitLen() - 1; i >= 0; i-- {
		t1 := c.mulMod(new(big.Int).Sub(uQ, wQ), new(big.Int).Add(uR, wR))
		t2 := c.mulMod(new(big.Int).Add(uQ, wQ), new(big.Int).Sub(uR, wR))
		uQR := c.mulMod(wP, c.square(new(big.Int).Add(t1, t2)))
		wQR := c.mulMod(uP, c.square(new(big.Int).Sub(t1, t2)))

		if n.Bit(i) == 0 {
			uQ, wQ = c.double(uQ, wQ)
			uR, wR = uQR, wQR
		} else {
			uR, wR = c.double(uR, wR)
			uQ, wQ = uQR, wQR
		}
	}

	den := new(big.Int).ModInverse(c.mod(new(big.Int).Add(uQ, wQ)), c.p)
	if den == nil {
		return nil, ErrComputation
	}
	return c.mulMod(new(big.Int).Sub(uQ, wQ), den), nil
}

// double doubles a ladder element in (u, w) coordinates.
func (c *Curve) double(u, w *big.Int) (*big.Int, *big.Int) {
	t3 := c.square(new(big.Int).Add(u, w))
	t4 := c.square(new(big.Int).Sub(u, w))
	t5 := c.mod(new(big.Int).Sub(t3, t4))

	u2 := c.mulMod(t3, t4)
	w2 := c.mulMod(t5, new(big.Int).Add(t4, new(big.Int).Mul(c.c, t5)))
	return u2, w2
}

// XFromY returns one x with (x, y) on the curve; the other is p-x.
func (c *Curve) XFromY(y *big.Int) (*big.Int, error) {
	y2 := c.square(y)
	num := c.mod(new(big.Int).Sub(one, y2))
	den := c.mod(new(big.Int).Sub(one, new(big.Int).Mul(c.d, y2)))
	inv := new(big.Int).ModInverse(den, c.p)
	if inv == nil {
		return nil, ErrComputation
	}
	x2 := c.mulMod(num, inv)
	if x2.Sign() == 0 {
		return x2, nil
	}
	if new(big.Int).Exp(x2, c.halfP, c.p).Cmp(one) != 0 {
		return nil, ErrCoordinates
	}

	// p ≡ 3 (mod 4)
	if c.p.Bit(1) == 1 {
		e := new(big.Int).Add(c.p, one)
		e.Rsh(e, 2)
		return new(big.Int).Exp(x2, e, c.p), nil
	}

	// Tonelli-Shanks with a known non-residue: find e so that nonQR^e·x2 is a
	// 2^s-th power residue, then take the root.
	e := new(big.Int)
	for i := 1; i < c.s; i++ {
		base := new(big.Int).Exp(c.nonQR, e, c.p)
		base.Mul(base, x2)
		base.Mod(base, c.p)
		exp := new(big.Int).Rsh(c.halfP, uint(i))
		if new(big.Int).Exp(base, exp, c.p).Cmp(one) != 0 {
			e.Add(e, new(big.Int).Lsh(one, uint(i)))
		}
	}
	te := new(big.Int).Mul(c.t, e)
	te.Rsh(te, 1)
	half := new(big.Int).Add(c.t, one)
	half.Rsh(half, 1)

	x := new(big.Int).Exp(c.nonQR, te, c.p)
	x.Mul(x, new(big.Int).Exp(x2, half, c.p))
	return x.Mod(x, c.p), nil
}

// MulAdd returns a·p1 + b·p2. When p2 is y-only the sign of its x is unknown
// and both candidates are returned, one for each sign. For a full p2 the single
// result is returned twice.
func (c *Curve) MulAdd(a *big.Int, p1 Point, b *big.Int, p2 Point) (Point, Point, error) {
	p3, err := c.ScalarMultWithX(a, p1)
	if err != nil {
		return Point{}, Point{}, err
	}

	if p2.HasX() {
		p4, err := c.ScalarMultWithX(b, p2)
		if err != nil {
			return Point{}, Point{}, err
		}
		r, err := c.Add(p3, p4)
		if err != nil {
			return Point{}, Point{}, err
		}
		return r, r, nil
	}

	y4, err := c.ScalarMult(b, p2.y)
	if err != nil {
		return Point{}, Point{}, err
	}
	x4, err := c.XFromY(y4)
	if err != nil {
		return Point{}, Point{}, err
	}
	p4 := Point{x: x4, y: y4}

	r1, err := c.Add(p3, p4)
	if err != nil {
		return Point{}, Point{}, err
	}
	r2, err := c.Add(p3, c.Neg(p4))
	if err != nil {
		return Point{}, Point{}, err
	}
	return r1, r2, nil
}

// IsLowOrder reports whether the point with y-coordinate y has order dividing
// the cofactor.
func (c *Curve) IsLowOrder(y *big.Int) (bool, error) {
	r, err := c.ScalarMult(c.cofactor, y)
	if err != nil {
		return false, err
	}
	return r.Cmp(one) == 0, nil
}

// GenerateScalarAndPoint draws a scalar uniformly from [2, q-1] and returns it
// with its multiple of the base point.
func (c *Curve) GenerateScalarAndPoint(g prng.Generator) (*big.Int, Point, error) {
	var a *big.Int
	for {
		var err error
		if a, err = g.BigInt(c.q); err != nil {
			return nil, Point{}, err
		}
		if a.Cmp(one) > 0 {
			break
		}
	}
	p, err := c.ScalarMultWithX(a, c.g)
	if err != nil {
		return nil, Point{}, err
	}
	return a, p, nil
}

// parity returns 1 for even n and p-1 for odd n, the multiples of (0, -1).
func (c *Curve) parity(n *big.Int) *big.Int {
	if n.Bit(0) == 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Set(c.pMinus)
}

func (c *Curve) mulMod(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, c.p)
}

func (c *Curve) square(a *big.Int) *big.Int {
	return c.mulMod(a, a)
}
