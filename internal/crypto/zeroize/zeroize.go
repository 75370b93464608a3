// Package zeroize overwrites the secret limbs of a big.Int in place before
// it is dropped, for commitment-randomness records that must not linger in
// memory after a Sigma-protocol proof consumes them.
//
// No example repo in the retrieval pack zeroizes big.Int state (Go's GC
// makes it easy to forget this matters); this is implemented directly
// against the invariant rather than ported from a reference.
package zeroize

import "math/big"

// BigInt overwrites every word backing x with zero and resets x to 0.
// big.Int.Bits returns a slice sharing x's backing array, so writing
// through it clears the limbs directly instead of merely dropping the
// Int's reference to them.
func BigInt(x *big.Int) {
	if x == nil {
		return
	}
	bits := x.Bits()
	for i := range bits {
		bits[i] = 0
	}
	x.SetInt64(0)
}

// BigInts zeroizes every non-nil pointer in xs.
func BigInts(xs ...*big.Int) {
	for _, x := range xs {
		BigInt(x)
	}
}
