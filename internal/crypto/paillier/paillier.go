// Package paillier implements the Paillier-homomorphic encryption scheme
// used as the MtA core's transport: a plaintext sum maps to a ciphertext
// product, and a plaintext scalar-multiply maps to a ciphertext exponent.
//
// Decryption is CRT-accelerated: it reduces modulo each ~1024-bit prime
// factor separately and recombines with bigintx.CRT, instead of
// exponentiating once modulo the full N^2 (4096 bits for a 2048-bit N) as the textbook scheme
// does.
package paillier

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/bigintx"
	"github.com/smallyu/mta-core/internal/crypto/zkerrors"
)

var one = big.NewInt(1)

// PublicKey is a Paillier public key (N, g, N^2) with g fixed to N+1, the
// standard optimization that turns the g^m term into the cheap 1+N*m.
type PublicKey struct {
	N  *big.Int // modulus N = P*Q
	N2 *big.Int // N*N, cached for performance
}

// PrivateKey is a Paillier private key stored in CRT form: the prime
// factors of N plus the per-prime Carmichael values and the precomputed
// L(g^lambda mod p^2)^-1 inversion constants that let Decrypt avoid ever
// exponentiating modulo the full N^2.
type PrivateKey struct {
	PublicKey
	P, Q             *big.Int // the two ~1024-bit prime factors of N, P != Q
	LambdaP, LambdaQ *big.Int // P-1, Q-1 (Carmichael value per prime factor)
	P2, Q2           *big.Int // P^2, Q^2
	MuP, MuQ         *big.Int // L(g^lambdaP mod P^2)^-1 mod P, and the Q analogue
}

// Gamma returns g = N+1.
func (pk *PublicKey) Gamma() *big.Int {
	return new(big.Int).Add(pk.N, one)
}

// GenerateKey generates a Paillier key pair with the given bit length for
// the modulus N (2048 is the recommended size). bits must be at least 1024.
// P and Q are two distinct random primes from crypto/rand.Prime; they are
// not safe primes.
func GenerateKey(random io.Reader, bits int) (*PrivateKey, error) {
	if bits < 1024 {
		return nil, zkerrors.ErrInputOutOfRange
	}

	half := bits / 2
	p, err := rand.Prime(random, half)
	if err != nil {
		return nil, err
	}
	q, err := rand.Prime(random, half)
	if err != nil {
		return nil, err
	}
	for p.Cmp(q) == 0 {
		q, err = rand.Prime(random, half)
		if err != nil {
			return nil, err
		}
	}

	n := new(big.Int).Mul(p, q)
	n2 := new(big.Int).Mul(n, n)

	lambdaP := new(big.Int).Sub(p, one)
	lambdaQ := new(big.Int).Sub(q, one)

	p2 := new(big.Int).Mul(p, p)
	q2 := new(big.Int).Mul(q, q)

	gamma := new(big.Int).Add(n, one)

	gP2 := new(big.Int).Mod(gamma, p2)
	uP := new(big.Int).Exp(gP2, lambdaP, p2)
	muP := new(big.Int).ModInverse(lFunc(uP, p), p)
	if muP == nil {
		return nil, zkerrors.ErrDecryptFailure
	}

	gQ2 := new(big.Int).Mod(gamma, q2)
	uQ := new(big.Int).Exp(gQ2, lambdaQ, q2)
	muQ := new(big.Int).ModInverse(lFunc(uQ, q), q)
	if muQ == nil {
		return nil, zkerrors.ErrDecryptFailure
	}

	return &PrivateKey{
		PublicKey: PublicKey{N: n, N2: n2},
		P:         p,
		Q:         q,
		LambdaP:   lambdaP,
		LambdaQ:   lambdaQ,
		P2:        p2,
		Q2:        q2,
		MuP:       muP,
		MuQ:       muQ,
	}, nil
}

// lFunc computes L(u) = (u-1)/p for u = 1 mod p.
func lFunc(u, p *big.Int) *big.Int {
	t := new(big.Int).Sub(u, one)
	return t.Div(t, p)
}

// Encrypt encrypts m under pk, drawing fresh randomness r from Z_N.
// m must be in the range [0, N).
func (pk *PublicKey) Encrypt(m *big.Int) (c *big.Int, r *big.Int, err error) {
	if m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, nil, zkerrors.ErrInputOutOfRange
	}
	r, err = rand.Int(rand.Reader, pk.N)
	if err != nil {
		return nil, nil, err
	}
	if r.Sign() == 0 {
		r = new(big.Int).Set(one)
	}
	c, err = pk.EncryptWithR(m, r)
	return c, r, err
}

// EncryptWithR encrypts m with a caller-supplied randomness r. Used by the
// deterministic/KAT signing mode and by the range proof and MtA-ZK proof
// commitments, which must re-derive ciphertexts under specific witnesses.
func (pk *PublicKey) EncryptWithR(m, r *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, zkerrors.ErrInputOutOfRange
	}
	// c = (1 + N*m) * r^N mod N^2
	gm := bigintx.MulAsym(pk.N, m)
	gm.Add(gm, one)
	rn := new(big.Int).Exp(r, pk.N, pk.N2)
	c := gm.Mul(gm, rn)
	return c.Mod(c, pk.N2), nil
}

// Decrypt recovers the plaintext m from ciphertext c, using CRT: reduce
// modulo P^2 and Q^2 separately and recombine with bigintx.CRT.
func (priv *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	if c.Sign() <= 0 || c.Cmp(priv.N2) >= 0 {
		return nil, zkerrors.ErrInputOutOfRange
	}

	cP := bigintx.ModAsym(c, priv.P2)
	cQ := bigintx.ModAsym(c, priv.Q2)

	uP := new(big.Int).Exp(cP, priv.LambdaP, priv.P2)
	mP := new(big.Int).Mul(lFunc(uP, priv.P), priv.MuP)
	mP.Mod(mP, priv.P)

	uQ := new(big.Int).Exp(cQ, priv.LambdaQ, priv.Q2)
	mQ := new(big.Int).Mul(lFunc(uQ, priv.Q), priv.MuQ)
	mQ.Mod(mQ, priv.Q)

	m := bigintx.CRT(mP, mQ, priv.P, priv.Q)
	if m.Sign() < 0 || m.Cmp(priv.N) >= 0 {
		return nil, zkerrors.ErrDecryptFailure
	}
	return m, nil
}

// Add is the homomorphic plaintext-sum operation: E(m1)*E(m2) = E(m1+m2).
func (pk *PublicKey) Add(c1, c2 *big.Int) *big.Int {
	c := new(big.Int).Mul(c1, c2)
	return c.Mod(c, pk.N2)
}

// Mul is the homomorphic plaintext-scalar-multiply operation:
// E(m)^k = E(m*k).
func (pk *PublicKey) Mul(c, k *big.Int) *big.Int {
	return new(big.Int).Exp(c, k, pk.N2)
}

// ValidateCiphertext checks that c lies in the required range [1, N^2).
// Full coprimality-with-N checking is left to callers that need it; the
// MtA-ZK proof verifier performs its own GCD check at that boundary.
func (pk *PublicKey) ValidateCiphertext(c *big.Int) error {
	if c.Sign() <= 0 || c.Cmp(pk.N2) >= 0 {
		return zkerrors.ErrInputOutOfRange
	}
	return nil
}
