package encoding

import "errors"

var (
	// ErrInvalidLength is returned when a buffer is too short for a header or
	// the declared content length disagrees with the buffer.
	ErrInvalidLength = errors.New("encoding: invalid length")

	// ErrIncorrectByteID is returned when a value carries an unexpected type id.
	ErrIncorrectByteID = errors.New("encoding: incorrect byte identifier")

	// ErrMalformed is returned when the content of a value cannot be interpreted.
	ErrMalformed = errors.New("encoding: malformed content")

	// ErrInvalidUTF8 is returned when a string value is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("encoding: invalid utf-8")

	// ErrNestedDictionaries is returned when a dictionary holds more than one
	// dictionary value. Without an outer length the first would absorb the
	// rest.
	ErrNestedDictionaries = errors.New("encoding: more than one nested dictionary")
)
