// Package curve implements arithmetic on the two Edwards curves
// x² + y² = 1 + d·x²·y² (mod p) used by the engine.
//
// # Curves
//
//   - MDC (id 0x00), p ≡ 3 (mod 4), cofactor 4
//   - the Curve25519 family (id 0x01), birationally equivalent to Curve25519,
//     p ≡ 5 (mod 8), cofactor 8
//
// Both are built once on first use and shared by pointer. Their parameters are
// never mutated; accessors return copies.
//
// # Points
//
// A Point is always reduced mod p. It may be known only by its y-coordinate:
// for a given y the curve admits exactly the two x-values x and p-x, so code
// working from y alone must carry both candidates (see MulAdd).
//
// # Errors
//
// Failures wrap ErrComputation, ErrCoordinates, ErrPointNotOnCurve or
// ErrUnknownCurve. None are retried.
//
// # Timing
//
// ScalarMult and ScalarMultWithX branch on the bits of the scalar and use
// math/big, which is not constant time.
package curve
