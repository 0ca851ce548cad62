// Package signature implements the Schnorr-style signature scheme used for
// identity keys.
//
// # Overview
//
// A signature is h || y, 64 bytes:
//
//	(r, R) ← fresh scalar and point
//	h      = SHA256(pad32(R.y) || pad32(A.y) || m)
//	y      = r − a·h mod q
//
// Verification recomputes R as y·G + h·A. Public keys exchanged in compact
// form carry only a y-coordinate, which leaves the sign of x open; Verify
// therefore tries both candidates and accepts if either reproduces h.
//
// # Errors
//
// ErrDifferentCurve when the key halves passed to Sign disagree on the curve;
// ErrInvalidSignatureLength when σ is not 64 bytes. A well-formed signature
// that does not verify is reported as false with a nil error.
package signature
