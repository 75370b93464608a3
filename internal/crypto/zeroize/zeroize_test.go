package zeroize

import (
	"math/big"
	"testing"
)

func TestBigIntClearsBackingLimbs(t *testing.T) {
	x := new(big.Int).Lsh(big.NewInt(1), 1000)
	x.Sub(x, big.NewInt(1)) // all-ones pattern across many words

	limbs := x.Bits()
	BigInt(x)

	// The same backing array the secret lived in must now be all zero,
	// not merely dereferenced.
	for i, w := range limbs {
		if w != 0 {
			t.Fatalf("limb %d not cleared: %x", i, w)
		}
	}
	if x.Sign() != 0 {
		t.Fatalf("value not reset to zero: %s", x)
	}
}

func TestBigIntsHandlesNil(t *testing.T) {
	a := big.NewInt(42)
	BigInts(a, nil, big.NewInt(7))
	if a.Sign() != 0 {
		t.Fatalf("value not reset to zero: %s", a)
	}
}
