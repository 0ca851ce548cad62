package encoding

import (
	"fmt"
	"sort"
)

// Dictionary maps string keys to encoded values.
type Dictionary map[string]Encoded

// Encode writes the entries sorted by key so that equal dictionaries encode
// to equal bytes. A dictionary-valued entry has no length of its own and is
// always written last, so at most one entry may hold a dictionary.
func (d Dictionary) Encode() (Encoded, error) {
	keys := make([]string, 0, len(d))
	nested := 0
	for k, v := range d {
		keys = append(keys, k)
		if v.ID() == IDDictionary {
			nested++
		}
	}
	if nested > 1 {
		return nil, fmt.Errorf("%w: %d dictionary-valued entries", ErrNestedDictionaries, nested)
	}
	sort.Strings(keys)
	sort.SliceStable(keys, func(i, j int) bool {
		return d[keys[i]].ID() != IDDictionary && d[keys[j]].ID() == IDDictionary
	})

	parts := make([]Encoded, 0, 2*len(d))
	for _, k := range keys {
		parts = append(parts, EncodeString(k), d[k])
	}
	return Pack(IDDictionary, parts...), nil
}

// Get returns the value stored under key.
func (d Dictionary) Get(key string) (Encoded, bool) {
	v, ok := d[key]
	return v, ok
}

// DecodeDictionary scans b as a dictionary. Entries are read until fewer than
// a header's worth of bytes remain; any leftover bytes are an error.
func DecodeDictionary(b []byte) (Dictionary, error) {
	e, err := ParseAs(b, IDDictionary)
	if err != nil {
		return nil, err
	}
	d := make(Dictionary)
	rest := e.Content()
	for len(rest) >= HeaderLen {
		var rawKey, value Encoded
		rawKey, rest, err = ExtractFirst(rest)
		if err != nil {
			return nil, fmt.Errorf("dictionary key: %w", err)
		}
		key, err := DecodeString(rawKey)
		if err != nil {
			return nil, fmt.Errorf("dictionary key: %w", err)
		}
		if len(rest) == 0 {
			return nil, fmt.Errorf("%w: dictionary key %q has no value", ErrInvalidLength, key)
		}
		value, rest, err = ExtractFirst(rest)
		if err != nil {
			return nil, fmt.Errorf("dictionary value %q: %w", key, err)
		}
		if _, dup := d[key]; dup {
			return nil, fmt.Errorf("%w: duplicate dictionary key %q", ErrMalformed, key)
		}
		d[key] = append(Encoded{}, value...)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes in dictionary", ErrInvalidLength, len(rest))
	}
	return d, nil
}
