// Package encoding implements the self-describing TLV format used to move keys,
// identities and protocol values between implementations.
//
// # Format
//
// Every value is encoded as
//
//	[type id : 1][content length : 4, big-endian][content]
//
// except dictionaries, which are written as the id byte followed by the
// concatenation of (string key, value) TLV pairs with no outer length. A
// dictionary's extent is therefore the rest of the buffer it is found in.
//
// # Errors
//
// Decoders never panic on malformed input. Failures wrap one of ErrInvalidLength,
// ErrIncorrectByteID, ErrMalformed or ErrInvalidUTF8 and can be matched with
// errors.Is.
package encoding
