// Package mta implements the MtA-with-check zero-knowledge proof: Bob's
// Sigma-protocol proof that, given Alice's ciphertext c1 = E_A(a) and his
// response c2 = c1^b * E_A(z), he used b in [0, q^3] and z in [0, N] to
// build c2 honestly.
//
// Grounded on the GG18/GG20 "Bob" proof family. The statement has no
// elliptic-curve consistency term (no X=g^b check): the only check on c2
// is against the Paillier and bit-commitment equations.
package mta

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

var one = big.NewInt(1)

// Proof bundles the ZK commitment (Z, Z1, T, V, W) and the proof
// responses (S, S1, S2, T1, T2).
type Proof struct {
	Z  *big.Int // h1^b * h2^rho mod Ntilde
	Z1 *big.Int // h1^alpha * h2^rho1 mod Ntilde
	T  *big.Int // h1^zPlain * h2^sigma mod Ntilde
	V  *big.Int // c1^alpha * g^gamma * beta^N mod N^2
	W  *big.Int // h1^gamma * h2^tau mod Ntilde

	S  *big.Int // beta * r^e mod N
	S1 *big.Int // e*b + alpha, unreduced
	S2 *big.Int // e*rho + rho1, unreduced
	T1 *big.Int // e*zPlain + gamma, unreduced
	T2 *big.Int // e*sigma + tau, unreduced
}

type randomness struct {
	alpha, beta, gamma, rho, rho1, sigma, tau *big.Int
}

func (r *randomness) zeroize() {
	zeroize.BigInts(r.alpha, r.beta, r.gamma, r.rho, r.rho1, r.sigma, r.tau)
}

// Prove proves that c2 = c1^b * Encrypt(pkA, zPlain, r) was formed
// honestly, where pkA is Alice's Paillier public key (c1 and c2 were both
// produced under it), b is Bob's MtA multiplicand, zPlain is the masking
// value Bob added, and r is the randomness he used to encrypt it. pp is
// Alice's bit-commitment public parameters.
func Prove(pkA *paillier.PublicKey, pp *pedersen.PublicParams, q, c1, c2, b, zPlain, r *big.Int) (*Proof, error) {
	if b.Sign() < 0 || b.Cmp(q) >= 0 {
		return nil, zkerrors.ErrInputOutOfRange
	}
	if zPlain.Sign() < 0 || zPlain.Cmp(pkA.N) >= 0 {
		return nil, zkerrors.ErrInputOutOfRange
	}

	q3 := new(big.Int).Exp(q, big.NewInt(3), nil)

	rv, err := sampleRandomness(pkA.N, pp.Ntilde, q, q3)
	if err != nil {
		return nil, err
	}
	defer rv.zeroize()

	z := bigintx.SkPow2(pp.H1, b, pp.H2, rv.rho, pp.Ntilde)
	z1 := bigintx.SkPow2(pp.H1, rv.alpha, pp.H2, rv.rho1, pp.Ntilde)
	t := bigintx.SkPow2(pp.H1, zPlain, pp.H2, rv.sigma, pp.Ntilde)
	w := bigintx.SkPow2(pp.H1, rv.gamma, pp.H2, rv.tau, pp.Ntilde)

	g := pkA.Gamma()
	v := bigintx.SkPow3(c1, rv.alpha, g, rv.gamma, rv.beta, pkA.N, pkA.N2)

	e := challenge(g, pp, q, c1, c2, z, z1, t, v, w)

	rE := new(big.Int).Exp(r, e, pkA.N)
	s := new(big.Int).Mul(rv.beta, rE)
	s.Mod(s, pkA.N)

	s1 := new(big.Int).Mul(e, b)
	s1.Add(s1, rv.alpha)

	s2 := new(big.Int).Mul(e, rv.rho)
	s2.Add(s2, rv.rho1)

	t1 := new(big.Int).Mul(e, zPlain)
	t1.Add(t1, rv.gamma)

	t2 := new(big.Int).Mul(e, rv.sigma)
	t2.Add(t2, rv.tau)

	return &Proof{Z: z, Z1: z1, T: t, V: v, W: w, S: s, S1: s1, S2: s2, T1: t1, T2: t2}, nil
}

// Verify checks a Proof against (c1, c2) under Alice's public key pkA,
// using priv's factorization of Ntilde to CRT-accelerate the
// bit-commitment checks.
func Verify(pkA *paillier.PublicKey, priv *pedersen.PrivateParams, q, c1, c2 *big.Int, proof *Proof) error {
	q3 := new(big.Int).Exp(q, big.NewInt(3), nil)
	if proof.S1.Sign() < 0 || proof.S1.Cmp(q3) > 0 {
		return zkerrors.ErrProofRejected
	}
	if proof.S.Sign() == 0 {
		return zkerrors.ErrProofRejected
	}

	g := pkA.Gamma()
	e := challenge(g, &priv.PublicParams, q, c1, c2, proof.Z, proof.Z1, proof.T, proof.V, proof.W)

	if !checkZ(priv, proof, e) {
		return zkerrors.ErrProofRejected
	}
	if !checkT(priv, proof, e) {
		return zkerrors.ErrProofRejected
	}
	if !checkV(pkA, c1, c2, proof, e) {
		return zkerrors.ErrProofRejected
	}
	return nil
}

// checkZ verifies h1^s1 * h2^s2 * z^-e == z1 (mod Ntilde), CRT-split over P, Q.
func checkZ(priv *pedersen.PrivateParams, proof *Proof, e *big.Int) bool {
	zInv := new(big.Int).ModInverse(proof.Z, priv.Ntilde)
	if zInv == nil {
		return false
	}
	okP := matches3(priv.H1, priv.H2, zInv, proof.S1, proof.S2, e, priv.P, proof.Z1)
	okQ := matches3(priv.H1, priv.H2, zInv, proof.S1, proof.S2, e, priv.Q, proof.Z1)
	return okP && okQ
}

// checkT verifies h1^t1 * h2^t2 * t^-e == w (mod Ntilde), CRT-split over P, Q.
// t1 can exceed P-1 or Q-1 since it is an unreduced sum over Z, not a
// residue; math/big's Exp handles an oversized exponent correctly, it just
// forgoes the Euler's-theorem reduction a hand-tuned implementation could
// apply first.
func checkT(priv *pedersen.PrivateParams, proof *Proof, e *big.Int) bool {
	tInv := new(big.Int).ModInverse(proof.T, priv.Ntilde)
	if tInv == nil {
		return false
	}
	okP := matches3(priv.H1, priv.H2, tInv, proof.T1, proof.T2, e, priv.P, proof.W)
	okQ := matches3(priv.H1, priv.H2, tInv, proof.T1, proof.T2, e, priv.Q, proof.W)
	return okP && okQ
}

func matches3(h1, h2, inv, e1, e2, e, prime, target *big.Int) bool {
	got := bigintx.Pow3(
		new(big.Int).Mod(h1, prime), e1,
		new(big.Int).Mod(h2, prime), e2,
		new(big.Int).Mod(inv, prime), e,
		prime,
	)
	return got.Cmp(new(big.Int).Mod(target, prime)) == 0
}

// checkV verifies c1^s1 * s^N * g^t1 * c2^-e == v (mod N^2).
func checkV(pkA *paillier.PublicKey, c1, c2 *big.Int, proof *Proof, e *big.Int) bool {
	c2Inv := new(big.Int).ModInverse(c2, pkA.N2)
	if c2Inv == nil {
		return false
	}
	got := bigintx.Pow4(
		c1, proof.S1,
		proof.S, pkA.N,
		pkA.Gamma(), proof.T1,
		c2Inv, e,
		pkA.N2,
	)
	return got.Cmp(proof.V) == 0
}

// sampleRandomness draws the commitment witnesses for the proof: alpha in
// [0,q^3]; beta, gamma in [0,N]; rho, sigma, tau in [0,Ntilde*q]; rho1 in
// [0,Ntilde*q^3].
func sampleRandomness(n, ntilde, q, q3 *big.Int) (*randomness, error) {
	alpha, err := rand.Int(rand.Reader, new(big.Int).Add(q3, one))
	if err != nil {
		return nil, err
	}
	beta, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, err
	}
	gamma, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, err
	}
	ntildeQ := new(big.Int).Mul(ntilde, q)
	rho, err := rand.Int(rand.Reader, new(big.Int).Add(ntildeQ, one))
	if err != nil {
		return nil, err
	}
	sigma, err := rand.Int(rand.Reader, new(big.Int).Add(ntildeQ, one))
	if err != nil {
		return nil, err
	}
	tau, err := rand.Int(rand.Reader, new(big.Int).Add(ntildeQ, one))
	if err != nil {
		return nil, err
	}
	ntildeQ3 := new(big.Int).Mul(ntilde, q3)
	rho1, err := rand.Int(rand.Reader, new(big.Int).Add(ntildeQ3, one))
	if err != nil {
		return nil, err
	}
	return &randomness{alpha: alpha, beta: beta, gamma: gamma, rho: rho, rho1: rho1, sigma: sigma, tau: tau}, nil
}

// Octet lengths for the transcript fields: Paillier.g and the
// Ntilde/h1/h2/z/z1/t/w bit-commitment terms are 256-byte (2048-bit), the
// Paillier ciphertexts c1/c2 and the V commitment are 512-byte, and the
// curve-order-reduced challenge is a 32-byte q-scalar.
const (
	fs2048 = 256
	fs4096 = 512
	qLen   = 32
)

func challenge(g *big.Int, pp *pedersen.PublicParams, q, c1, c2, z, z1, t, v, w *big.Int) *big.Int {
	h := sha256.New()
	h.Write(bigintx.FixedBytes(g, fs2048))
	h.Write(bigintx.FixedBytes(pp.Ntilde, fs2048))
	h.Write(bigintx.FixedBytes(pp.H1, fs2048))
	h.Write(bigintx.FixedBytes(pp.H2, fs2048))
	h.Write(bigintx.FixedBytes(q, qLen))
	h.Write(bigintx.FixedBytes(c1, fs4096))
	h.Write(bigintx.FixedBytes(c2, fs4096))
	h.Write(bigintx.FixedBytes(z, fs2048))
	h.Write(bigintx.FixedBytes(z1, fs2048))
	h.Write(bigintx.FixedBytes(t, fs2048))
	h.Write(bigintx.FixedBytes(v, fs4096))
	h.Write(bigintx.FixedBytes(w, fs2048))
	e := new(big.Int).SetBytes(h.Sum(nil))
	return e.Mod(e, q)
}
