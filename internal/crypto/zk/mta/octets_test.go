package mta

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestProofOctetsRoundTrip(t *testing.T) {
	pkA, pp := setup(t)

	a := big.NewInt(17)
	b := big.NewInt(23)
	zPlain := big.NewInt(29)
	r, _ := rand.Int(rand.Reader, pkA.N)

	c1, c2 := buildCiphertexts(t, pkA, a, b, zPlain, r)

	proof, err := Prove(pkA, &pp.PublicParams, curveOrder, c1, c2, b, zPlain, r)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	raw := proof.Bytes()
	if len(raw) != ProofLen {
		t.Fatalf("serialized length = %d, want %d", len(raw), ProofLen)
	}

	got, err := ParseProof(raw)
	if err != nil {
		t.Fatalf("ParseProof failed: %v", err)
	}
	fields := []struct {
		name string
		a, b *big.Int
	}{
		{"Z", proof.Z, got.Z},
		{"Z1", proof.Z1, got.Z1},
		{"T", proof.T, got.T},
		{"V", proof.V, got.V},
		{"W", proof.W, got.W},
		{"S", proof.S, got.S},
		{"S1", proof.S1, got.S1},
		{"S2", proof.S2, got.S2},
		{"T1", proof.T1, got.T1},
		{"T2", proof.T2, got.T2},
	}
	for _, f := range fields {
		if f.a.Cmp(f.b) != 0 {
			t.Errorf("field %s did not round-trip: %s != %s", f.name, f.a, f.b)
		}
	}

	// A parsed proof must still verify as-is.
	if err := Verify(pkA, pp, curveOrder, c1, c2, got); err != nil {
		t.Fatalf("Verify of round-tripped proof failed: %v", err)
	}
}

func TestParseProofRejectsWrongLength(t *testing.T) {
	if _, err := ParseProof(make([]byte, ProofLen-1)); err == nil {
		t.Errorf("expected error for truncated input")
	}
	if _, err := ParseProof(nil); err == nil {
		t.Errorf("expected error for nil input")
	}
}
