package mta

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// TestTwoPartySignReproducesKnownAnswerScenario runs the same two-MtA,
// two-signature-share scenario as the original C mpc library's "test_s"
// known-answer test (src/mta.c's MPC_MTA_CLIENT1/SERVER/CLIENT2 sequence
// and MPC_SUM_MTA/MPC_S/MPC_SUM_S, exercised by test/unit/test_s.c): each
// party encrypts its own nonce contribution K_i, the peer folds in its
// ECDSA key share W_i through the MtA server role, and the resulting
// additive shares combine into sigma_i = K_i*W_i + alpha_i + beta_i and
// then an ECDSA component s_i = m*K_i + r*sigma_i. test_s.c compares its
// result against a SIG_SGOLDEN loaded from an external test-vector file
// that isn't part of this retrieval pack, so this reproduces the scenario
// end to end against a standard ECDSA verifier instead of a hardcoded
// golden hex string.
func TestTwoPartySignReproducesKnownAnswerScenario(t *testing.T) {
	curve := secp256k1.S256()
	q := curve.N

	sk1 := genKey(t)
	sk2 := genKey(t)

	k1, _ := rand.Int(rand.Reader, q)
	k2, _ := rand.Int(rand.Reader, q)
	w1, _ := rand.Int(rand.Reader, q)
	w2, _ := rand.Int(rand.Reader, q)

	// Joint nonce k = k1+k2; R = k^-1 . G, r = Rx mod q.
	k := new(big.Int).Add(k1, k2)
	k.Mod(k, q)
	kInv := new(big.Int).ModInverse(k, q)
	rx, _ := curve.ScalarBaseMult(kInv.Bytes())
	r := new(big.Int).Mod(rx, q)

	// Joint ECDSA public key W = w1.G + w2.G.
	w1x, w1y := curve.ScalarBaseMult(w1.Bytes())
	w2x, w2y := curve.ScalarBaseMult(w2.Bytes())
	pkX, pkY := curve.Add(w1x, w1y, w2x, w2y)

	// ALPHA1 + BETA2 = K1 * W2: party 1 as MtA client, party 2 as server.
	c1res, err := Client1(&sk1.PublicKey, k1)
	if err != nil {
		t.Fatalf("Client1 (party 1): %v", err)
	}
	srv12, err := Server(&sk1.PublicKey, c1res.CA, w2)
	if err != nil {
		t.Fatalf("Server (party 2, under party 1's key): %v", err)
	}
	alpha1, err := Client2(sk1, srv12.CB)
	if err != nil {
		t.Fatalf("Client2 (party 1): %v", err)
	}
	beta2 := srv12.Beta

	// ALPHA2 + BETA1 = K2 * W1: party 2 as MtA client, party 1 as server.
	c2res, err := Client1(&sk2.PublicKey, k2)
	if err != nil {
		t.Fatalf("Client1 (party 2): %v", err)
	}
	srv21, err := Server(&sk2.PublicKey, c2res.CA, w1)
	if err != nil {
		t.Fatalf("Server (party 1, under party 2's key): %v", err)
	}
	alpha2, err := Client2(sk2, srv21.CB)
	if err != nil {
		t.Fatalf("Client2 (party 2): %v", err)
	}
	beta1 := srv21.Beta

	// sigma_i = k_i*w_i + alpha_i + beta_i mod q
	sigma1 := SumMta(k1, w1, alpha1, beta1, big.NewInt(0), big.NewInt(0))
	sigma2 := SumMta(k2, w2, alpha2, beta2, big.NewInt(0), big.NewInt(0))

	msg := []byte("two-party MtA known-answer scenario")
	hash := sha256.Sum256(msg)
	m := new(big.Int).SetBytes(hash[:])

	// s_i = m*k_i + r*sigma_i mod q
	s1 := new(big.Int).Mul(m, k1)
	s1.Add(s1, new(big.Int).Mul(r, sigma1))
	s1.Mod(s1, q)

	s2 := new(big.Int).Mul(m, k2)
	s2.Add(s2, new(big.Int).Mul(r, sigma2))
	s2.Mod(s2, q)

	s := new(big.Int).Add(s1, s2)
	s.Mod(s, q)

	var fx, fy secp256k1.FieldVal
	fx.SetByteSlice(pkX.Bytes())
	fy.SetByteSlice(pkY.Bytes())
	pk := secp256k1.NewPublicKey(&fx, &fy)

	var rMod, sMod secp256k1.ModNScalar
	rMod.SetByteSlice(r.Bytes())
	sMod.SetByteSlice(s.Bytes())
	sig := ecdsa.NewSignature(&rMod, &sMod)

	if !sig.Verify(hash[:], pk) {
		t.Fatalf("signature assembled from the two MtA-derived sigma shares does not verify")
	}
}
