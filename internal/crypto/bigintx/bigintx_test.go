package bigintx

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"
)

func TestFixedBytesPadsToLength(t *testing.T) {
	x := big.NewInt(0xABCD)
	got := FixedBytes(x, 8)
	want := []byte{0, 0, 0, 0, 0, 0, 0xAB, 0xCD}
	if !bytes.Equal(got, want) {
		t.Fatalf("FixedBytes = %x, want %x", got, want)
	}
	if len(FixedBytes(big.NewInt(0), 4)) != 4 {
		t.Fatalf("zero must still occupy the full width")
	}
}

func TestMulAsymModAsym(t *testing.T) {
	// A deliberately lopsided pair: a ~3072-bit operand against a 256-bit
	// one, the shape proof exponents take against the curve order.
	x := new(big.Int).Lsh(big.NewInt(1), 3072)
	x.Sub(x, big.NewInt(12345))
	y := new(big.Int).Lsh(big.NewInt(1), 256)
	y.Sub(y, big.NewInt(189))

	prod := MulAsym(x, y)
	if want := new(big.Int).Mul(x, y); prod.Cmp(want) != 0 {
		t.Fatalf("MulAsym truncated the product")
	}

	m := new(big.Int).Lsh(big.NewInt(1), 255)
	m.Sub(m, big.NewInt(19))
	if got, want := ModAsym(prod, m), new(big.Int).Mod(prod, m); got.Cmp(want) != 0 {
		t.Fatalf("ModAsym = %s, want %s", got, want)
	}
}

func TestPowVariantsAgree(t *testing.T) {
	m, _ := rand.Prime(rand.Reader, 256)
	newOperand := func() *big.Int {
		v, err := rand.Int(rand.Reader, m)
		if err != nil {
			t.Fatalf("rand.Int failed: %v", err)
		}
		return v
	}
	b1, e1 := newOperand(), newOperand()
	b2, e2 := newOperand(), newOperand()
	b3, e3 := newOperand(), newOperand()
	b4, e4 := newOperand(), newOperand()

	naive := func(pairs ...[2]*big.Int) *big.Int {
		r := big.NewInt(1)
		for _, p := range pairs {
			r.Mul(r, new(big.Int).Exp(p[0], p[1], m))
			r.Mod(r, m)
		}
		return r
	}

	if got := SkPow2(b1, e1, b2, e2, m); got.Cmp(naive([2]*big.Int{b1, e1}, [2]*big.Int{b2, e2})) != 0 {
		t.Errorf("SkPow2 mismatch")
	}
	want3 := naive([2]*big.Int{b1, e1}, [2]*big.Int{b2, e2}, [2]*big.Int{b3, e3})
	if got := SkPow3(b1, e1, b2, e2, b3, e3, m); got.Cmp(want3) != 0 {
		t.Errorf("SkPow3 mismatch")
	}
	if got := Pow3(b1, e1, b2, e2, b3, e3, m); got.Cmp(want3) != 0 {
		t.Errorf("Pow3 mismatch")
	}
	want4 := naive([2]*big.Int{b1, e1}, [2]*big.Int{b2, e2}, [2]*big.Int{b3, e3}, [2]*big.Int{b4, e4})
	if got := Pow4(b1, e1, b2, e2, b3, e3, b4, e4, m); got.Cmp(want4) != 0 {
		t.Errorf("Pow4 mismatch")
	}
}

func TestCRTReconstructs(t *testing.T) {
	p, _ := rand.Prime(rand.Reader, 128)
	q, _ := rand.Prime(rand.Reader, 128)
	n := new(big.Int).Mul(p, q)

	x, err := rand.Int(rand.Reader, n)
	if err != nil {
		t.Fatalf("rand.Int failed: %v", err)
	}
	xp := new(big.Int).Mod(x, p)
	xq := new(big.Int).Mod(x, q)

	if got := CRT(xp, xq, p, q); got.Cmp(x) != 0 {
		t.Fatalf("CRT = %s, want %s", got, x)
	}
}

func TestCRTExpMatchesDirectExp(t *testing.T) {
	p, _ := rand.Prime(rand.Reader, 128)
	q, _ := rand.Prime(rand.Reader, 128)
	n := new(big.Int).Mul(p, q)

	base, _ := rand.Int(rand.Reader, n)
	exp, _ := rand.Int(rand.Reader, n)

	got := CRTExp(base, exp, p, q)
	want := new(big.Int).Exp(base, exp, n)
	if got.Cmp(want) != 0 {
		t.Fatalf("CRTExp = %s, want %s", got, want)
	}
}
