// Package pedersen builds the bit-commitment modulus (Ntilde, h1, h2) the
// range proof and MtA zero-knowledge proof verifiers use to host their
// statistically-hiding, computationally-binding Sigma-protocol commitments.
//
// Ntilde is an RSA-type modulus generated by the verifier; h1 and h2 are two
// quadratic residues mod Ntilde with unknown relative discrete log. The
// verifier privately keeps the factorization (P, Q) so it can CRT-accelerate
// its own verification exponentiations, exactly as Paillier's private key
// keeps P and Q for CRT-accelerated decryption.
package pedersen

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/zkerrors"
)

var one = big.NewInt(1)

// PublicParams is the (Ntilde, h1, h2) triple every prover that talks to a
// given verifier holds a copy of.
type PublicParams struct {
	Ntilde *big.Int
	H1     *big.Int
	H2     *big.Int
}

// PrivateParams additionally carries the factorization of Ntilde, known
// only to the verifier that generated it.
type PrivateParams struct {
	PublicParams
	P, Q *big.Int // prime factors of Ntilde
}

// GenerateParams generates a fresh bit-commitment modulus of the given bit
// length for Ntilde (2048 is the recommended size, matching the Paillier
// modulus).
func GenerateParams(random io.Reader, bits int) (*PrivateParams, error) {
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

	ntilde := new(big.Int).Mul(p, q)

	// h2 = f^2 mod Ntilde for random f, giving a quadratic residue of
	// unknown discrete log w.r.t. any other such residue; h1 = h2^alpha
	// for a random alpha we then discard, so h1's discrete log base h2
	// is likewise unknown to anyone but us, and we don't keep it either.
	f, err := rand.Int(random, ntilde)
	if err != nil {
		return nil, err
	}
	h2 := new(big.Int).Exp(f, big.NewInt(2), ntilde)

	alpha, err := rand.Int(random, ntilde)
	if err != nil {
		return nil, err
	}
	h1 := new(big.Int).Exp(h2, alpha, ntilde)

	return &PrivateParams{
		PublicParams: PublicParams{
			Ntilde: ntilde,
			H1:     h1,
			H2:     h2,
		},
		P: p,
		Q: q,
	}, nil
}
