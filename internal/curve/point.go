package curve

import (
	"fmt"
	"math/big"
)

// Point is an affine curve point, or only its y-coordinate when x is unknown.
// The zero Point is not valid.
type Point struct {
	x *big.Int
	y *big.Int
}

// NewPoint returns the full point (x, y) reduced mod p. It does not check the
// curve equation.
func (c *Curve) NewPoint(x, y *big.Int) Point {
	return Point{x: c.mod(x), y: c.mod(y)}
}

// PointFromY returns a point known only by y.
func (c *Curve) PointFromY(y *big.Int) Point {
	return Point{y: c.mod(y)}
}

// Identity returns the neutral element (0, 1).
func (c *Curve) Identity() Point {
	return Point{x: new(big.Int), y: big.NewInt(1)}
}

// HasX reports whether the x-coordinate is known.
func (p Point) HasX() bool { return p.x != nil }

// X returns a copy of the x-coordinate, or nil if it is unknown.
func (p Point) X() *big.Int {
	if p.x == nil {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y-coordinate.
func (p Point) Y() *big.Int {
	if p.y == nil {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and o have the same coordinates. A y-only point only
// equals another y-only point.
func (p Point) Equal(o Point) bool {
	if p.y == nil || o.y == nil || p.y.Cmp(o.y) != 0 {
		return false
	}
	if p.x == nil || o.x == nil {
		return p.x == nil && o.x == nil
	}
	return p.x.Cmp(o.x) == 0
}

// String formats the point for debugging.
func (p Point) String() string {
	if p.x == nil {
		return fmt.Sprintf("(?, %s)", p.y)
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

// Neg returns (p-x, y).
func (c *Curve) Neg(p Point) Point {
	if p.x == nil {
		return p
	}
	return Point{x: c.mod(new(big.Int).Neg(p.x)), y: p.y}
}

func (c *Curve) mod(n *big.Int) *big.Int {
	return new(big.Int).Mod(n, c.p)
}
