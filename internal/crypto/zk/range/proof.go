// Package range_proof implements the Fujisaki-Okamoto-style range proof: a
// Sigma-protocol proving a Paillier ciphertext c encrypts a witness m in
// [0, bound] without revealing m, bound to the verifier's bit-commitment
// modulus (Ntilde, h1, h2) so the commitment is statistically hiding and
// computationally binding.
//
// Named range_proof rather than range because range is a reserved word.
package range_proof

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/bigintx"
	"github.com/smallyu/mta-core/internal/crypto/paillier"
	"github.com/smallyu/mta-core/internal/crypto/pedersen"
	"github.com/smallyu/mta-core/internal/crypto/zeroize"
	"github.com/smallyu/mta-core/internal/crypto/zkerrors"
)

// Proof bundles the RP commitment (Z, U, W) and the proof responses
// (S, S1, S2); they travel together on the wire.
type Proof struct {
	Z *big.Int // h1^m * h2^rho mod Ntilde
	U *big.Int // g^alpha * beta^N mod N^2
	W *big.Int // h1^alpha * h2^gamma mod Ntilde

	S  *big.Int // beta * r^e mod N
	S1 *big.Int // e*m + alpha, unreduced
	S2 *big.Int // e*rho + gamma, unreduced
}

// randomness holds the commitment-phase witnesses. It is zeroized as soon
// as Prove has derived the responses that depend on it.
type randomness struct {
	alpha, beta, gamma, rho *big.Int
}

func (r *randomness) zeroize() {
	zeroize.BigInts(r.alpha, r.beta, r.gamma, r.rho)
}

// Prove proves that c = Encrypt(priv.PublicKey, m, r) with m in [0, q^3].
// priv is the prover's own Paillier private key (the key that produced c),
// so the commitment's Paillier-side term can be CRT-accelerated over its
// factorization. pp is the verifier's bit-commitment public parameters.
func Prove(priv *paillier.PrivateKey, pp *pedersen.PublicParams, q, c, m, r *big.Int) (*Proof, error) {
	q3 := new(big.Int).Exp(q, big.NewInt(3), nil)
	if m.Sign() < 0 || m.Cmp(q3) > 0 {
		return nil, zkerrors.ErrInputOutOfRange
	}

	rv, err := sampleRandomness(priv.N, pp.Ntilde, q, q3)
	if err != nil {
		return nil, err
	}
	defer rv.zeroize()

	z := bigintx.SkPow2(pp.H1, m, pp.H2, rv.rho, pp.Ntilde)

	// u = g^alpha * beta^N mod N^2, with the N^2 exponentiation
	// CRT-accelerated over the prover's own P^2, Q^2.
	gAlpha := bigintx.MulAsym(priv.N, rv.alpha)
	gAlpha.Add(gAlpha, one)
	gAlpha.Mod(gAlpha, priv.N2)
	betaN := bigintx.CRTExp(rv.beta, priv.N, priv.P2, priv.Q2)
	u := new(big.Int).Mul(gAlpha, betaN)
	u.Mod(u, priv.N2)

	w := bigintx.SkPow2(pp.H1, rv.alpha, pp.H2, rv.gamma, pp.Ntilde)

	e := challenge(priv.Gamma(), pp, q, c, z, u, w)

	// s = beta * r^e mod N, CRT-accelerated over the prover's own P, Q.
	rE := bigintx.CRTExp(r, e, priv.P, priv.Q)
	s := new(big.Int).Mul(rv.beta, rE)
	s.Mod(s, priv.N)

	s1 := new(big.Int).Mul(e, m)
	s1.Add(s1, rv.alpha)

	s2 := new(big.Int).Mul(e, rv.rho)
	s2.Add(s2, rv.gamma)

	return &Proof{Z: z, U: u, W: w, S: s, S1: s1, S2: s2}, nil
}

// Verify checks an RP proof against ciphertext c under pub, using priv's
// factorization of Ntilde to CRT-accelerate the bit-commitment checks.
func Verify(pub *paillier.PublicKey, priv *pedersen.PrivateParams, q, c *big.Int, proof *Proof) error {
	q3 := new(big.Int).Exp(q, big.NewInt(3), nil)
	if proof.S1.Sign() < 0 || proof.S1.Cmp(q3) > 0 {
		return zkerrors.ErrProofRejected
	}

	e := challenge(pub.Gamma(), &priv.PublicParams, q, c, proof.Z, proof.U, proof.W)

	okW := checkW(priv, proof, e)
	okU := checkU(pub, c, proof, e)
	if !okW || !okU {
		return zkerrors.ErrProofRejected
	}
	return nil
}

func checkW(priv *pedersen.PrivateParams, proof *Proof, e *big.Int) bool {
	zInv := new(big.Int).ModInverse(proof.Z, priv.Ntilde)
	if zInv == nil {
		return false
	}

	okP := wPrimeMatches(priv.H1, priv.H2, zInv, proof.S1, proof.S2, e, priv.P, proof.W)
	okQ := wPrimeMatches(priv.H1, priv.H2, zInv, proof.S1, proof.S2, e, priv.Q, proof.W)
	return okP && okQ
}

func wPrimeMatches(h1, h2, zInv, s1, s2, e, prime, w *big.Int) bool {
	wPrime := bigintx.Pow3(
		new(big.Int).Mod(h1, prime), s1,
		new(big.Int).Mod(h2, prime), s2,
		new(big.Int).Mod(zInv, prime), e,
		prime,
	)
	return wPrime.Cmp(new(big.Int).Mod(w, prime)) == 0
}

func checkU(pub *paillier.PublicKey, c *big.Int, proof *Proof, e *big.Int) bool {
	cInv := new(big.Int).ModInverse(c, pub.N2)
	if cInv == nil {
		return false
	}
	uPrime := bigintx.Pow3(pub.Gamma(), proof.S1, proof.S, pub.N, cInv, e, pub.N2)
	return uPrime.Cmp(proof.U) == 0
}

// sampleRandomness draws the commitment witnesses alpha, beta, gamma, rho
// over [0,q^3], [0,N], [0,Ntilde*q^3], and [0,Ntilde*q] respectively.
func sampleRandomness(n, ntilde, q, q3 *big.Int) (*randomness, error) {
	alpha, err := rand.Int(rand.Reader, new(big.Int).Add(q3, one))
	if err != nil {
		return nil, err
	}
	beta, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, err
	}
	ntildeQ3 := new(big.Int).Mul(ntilde, q3)
	gamma, err := rand.Int(rand.Reader, new(big.Int).Add(ntildeQ3, one))
	if err != nil {
		return nil, err
	}
	ntildeQ := new(big.Int).Mul(ntilde, q)
	rho, err := rand.Int(rand.Reader, new(big.Int).Add(ntildeQ, one))
	if err != nil {
		return nil, err
	}
	return &randomness{alpha: alpha, beta: beta, gamma: gamma, rho: rho}, nil
}

// Octet lengths for the transcript fields: Paillier.g and the
// bit-commitment modulus/outputs are 256-byte (2048-bit) fields, the
// ciphertext and U are 512-byte (Paillier-ciphertext width), and the
// curve-order-reduced challenge is a 32-byte q-scalar.
const (
	fs2048 = 256
	fs4096 = 512
	qLen   = 32
)

func challenge(g *big.Int, pp *pedersen.PublicParams, q, c, z, u, w *big.Int) *big.Int {
	h := sha256.New()
	h.Write(bigintx.FixedBytes(g, fs2048))
	h.Write(bigintx.FixedBytes(pp.Ntilde, fs2048))
	h.Write(bigintx.FixedBytes(pp.H1, fs2048))
	h.Write(bigintx.FixedBytes(pp.H2, fs2048))
	h.Write(bigintx.FixedBytes(q, qLen))
	h.Write(bigintx.FixedBytes(c, fs4096))
	h.Write(bigintx.FixedBytes(z, fs2048))
	h.Write(bigintx.FixedBytes(u, fs4096))
	h.Write(bigintx.FixedBytes(w, fs2048))
	e := new(big.Int).SetBytes(h.Sum(nil))
	return e.Mod(e, q)
}

var one = big.NewInt(1)
