// Package memzero clears secret material held in byte slices and big integers.
package memzero

import (
	"crypto/subtle"
	"math/big"
)

// Zero overwrites b with zeros.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}

// Int clears the words backing n and sets it to zero. Copies made earlier by
// big.Int arithmetic are not reached.
func Int(n *big.Int) {
	if n == nil {
		return
	}
	words := n.Bits()
	for i := range words {
		words[i] = 0
	}
	n.SetInt64(0)
}
