// Package mta implements the multiplicative-to-additive conversion: the
// three-message exchange that turns Alice's secret a and Bob's secret b,
// each in [0, q), into additive shares alpha and beta with
// alpha+beta = a*b (mod q), using Alice's Paillier key as the homomorphic
// transport.
package mta

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/smallyu/mta-core/internal/crypto/paillier"
	"github.com/smallyu/mta-core/internal/crypto/zkerrors"
)

var curveOrder = secp256k1.S256().N

// Client1Result is Alice's CLIENT1 output: the ciphertext sent to Bob plus
// the randomness she must keep to re-derive it for the accompanying range
// proof.
type Client1Result struct {
	CA *big.Int // Encrypt_A(a; rA), sent to Bob
	RA *big.Int // randomness used, kept by Alice for the range proof
}

// Client1 encrypts Alice's secret a under her own Paillier key, producing
// the message sent to Bob to start the exchange. a must be in [0, q).
func Client1(pkA *paillier.PublicKey, a *big.Int) (*Client1Result, error) {
	return client1(rand.Reader, pkA, a, nil)
}

// Client1Deterministic is the KAT variant of Client1: it accepts the
// encryption randomness r externally instead of drawing it from a CSPRNG,
// for reproducible known-answer test vectors.
func Client1Deterministic(pkA *paillier.PublicKey, a, r *big.Int) (*Client1Result, error) {
	return client1(nil, pkA, a, r)
}

func client1(random io.Reader, pkA *paillier.PublicKey, a, r *big.Int) (*Client1Result, error) {
	if a.Sign() < 0 || a.Cmp(curveOrder) >= 0 {
		return nil, zkerrors.ErrInputOutOfRange
	}
	if r != nil {
		cA, err := pkA.EncryptWithR(a, r)
		if err != nil {
			return nil, err
		}
		return &Client1Result{CA: cA, RA: r}, nil
	}
	cA, rA, err := pkA.Encrypt(a)
	if err != nil {
		return nil, err
	}
	return &Client1Result{CA: cA, RA: rA}, nil
}

// ServerResult is Bob's SERVER output: the ciphertext sent back to Alice
// plus the additive share beta and masking randomness/value Bob keeps for
// the accompanying MtA zero-knowledge proof.
type ServerResult struct {
	CB   *big.Int // homomorphic combination sent back to Alice
	Beta *big.Int // Bob's additive share, (q - z) mod q
	Z    *big.Int // the masking value encrypted into CB, kept for the ZK proof
	RZ   *big.Int // randomness used to encrypt z, kept for the ZK proof
}

// Server runs Bob's half of the exchange: given Alice's public key, her
// ciphertext cA, and Bob's secret b, homomorphically compute cA^b * E(z)
// for a fresh random mask z, and derive beta = (q-z) mod q so that
// decrypting CB and reducing mod q on Alice's side yields a*b - beta.
func Server(pkA *paillier.PublicKey, cA, b *big.Int) (*ServerResult, error) {
	return server(rand.Reader, pkA, cA, b, nil, nil)
}

// ServerDeterministic is the KAT variant of Server: z and rZ are supplied
// externally instead of drawn from a CSPRNG. z is truncated to 32 bytes
// before use so existing test vectors reproduce; new deployments should
// use the random path instead.
func ServerDeterministic(pkA *paillier.PublicKey, cA, b, z, rZ *big.Int) (*ServerResult, error) {
	truncated := truncateTo32Bytes(z)
	return server(nil, pkA, cA, b, truncated, rZ)
}

func server(random io.Reader, pkA *paillier.PublicKey, cA, b, z, rZ *big.Int) (*ServerResult, error) {
	if b.Sign() < 0 || b.Cmp(curveOrder) >= 0 {
		return nil, zkerrors.ErrInputOutOfRange
	}
	if err := pkA.ValidateCiphertext(cA); err != nil {
		return nil, err
	}

	var err error
	if z == nil {
		// The mask is drawn full-range over N and reduced mod q, so the
		// decrypted plaintext a*b+z stays below q^2+q < N and never wraps
		// modulo N on Alice's side.
		z, err = rand.Int(random, pkA.N)
		if err != nil {
			return nil, err
		}
		z.Mod(z, curveOrder)
	}

	cT := pkA.Mul(cA, b)

	var cZ *big.Int
	if rZ != nil {
		cZ, err = pkA.EncryptWithR(z, rZ)
		if err != nil {
			return nil, err
		}
	} else {
		cZ, rZ, err = pkA.Encrypt(z)
		if err != nil {
			return nil, err
		}
	}

	cB := pkA.Add(cT, cZ)

	beta := new(big.Int).Sub(curveOrder, new(big.Int).Mod(z, curveOrder))
	beta.Mod(beta, curveOrder)

	return &ServerResult{CB: cB, Beta: beta, Z: z, RZ: rZ}, nil
}

// Client2 finishes the exchange: Alice decrypts Bob's ciphertext and
// reduces the result mod q to recover her additive share alpha.
func Client2(skA *paillier.PrivateKey, cB *big.Int) (*big.Int, error) {
	m, err := skA.Decrypt(cB)
	if err != nil {
		return nil, err
	}
	alpha := new(big.Int).Mod(m, curveOrder)
	return alpha, nil
}

// SumMta combines the additive shares from two independent MtA exchanges
// (the k*gamma and k*w conversions of the outer signing protocol) with the
// two parties' own multiplicative inputs into a single scalar mod q.
func SumMta(a, b, alpha1, beta1, alpha2, beta2 *big.Int) *big.Int {
	sum := new(big.Int).Mul(a, b)
	sum.Add(sum, alpha1)
	sum.Add(sum, beta1)
	sum.Add(sum, alpha2)
	sum.Add(sum, beta2)
	return sum.Mod(sum, curveOrder)
}

func truncateTo32Bytes(z *big.Int) *big.Int {
	b := z.Bytes()
	if len(b) <= 32 {
		return new(big.Int).Set(z)
	}
	return new(big.Int).SetBytes(b[len(b)-32:])
}
