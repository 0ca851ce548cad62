// Package authentication implements challenge-response proof of possession of
// an authentication key.
//
// # Overview
//
// The responder picks a 16-byte suffix and signs
//
//	"authentChallenge" || challenge || suffix
//
// with the signature view of its authentication key pair. The response is
// suffix || σ. The suffix stops a challenger from obtaining a signature over
// a message of its own choosing.
//
// # Errors
//
// ErrDifferentCurve when the key halves disagree on the curve;
// ErrInvalidResponse when a response has the wrong length.
package authentication
