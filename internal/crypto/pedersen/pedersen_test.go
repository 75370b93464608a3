package pedersen

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestGenerateParams(t *testing.T) {
	priv, err := GenerateParams(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("GenerateParams failed: %v", err)
	}

	if priv.Ntilde.BitLen() < 1023 {
		t.Errorf("expected Ntilde bit length ~1024, got %d", priv.Ntilde.BitLen())
	}
	if new(big.Int).Mul(priv.P, priv.Q).Cmp(priv.Ntilde) != 0 {
		t.Errorf("P*Q does not reconstruct Ntilde")
	}
	if priv.H1.Cmp(priv.H2) == 0 {
		t.Errorf("h1 and h2 must not be equal")
	}
	if priv.H1.Sign() <= 0 || priv.H1.Cmp(priv.Ntilde) >= 0 {
		t.Errorf("h1 out of range")
	}
	if priv.H2.Sign() <= 0 || priv.H2.Cmp(priv.Ntilde) >= 0 {
		t.Errorf("h2 out of range")
	}
}

func TestGenerateParamsRejectsSmallBits(t *testing.T) {
	if _, err := GenerateParams(rand.Reader, 512); err == nil {
		t.Errorf("expected error for undersized modulus")
	}
}
