// Package bigintx is the field-arithmetic adapter the rest of the MtA core
// builds on: every place a Sigma-protocol or Paillier operation needs an
// operation across mismatched moduli (the curve order q, the Paillier
// modulus N, the verifier's bit-commitment modulus Ntilde) goes through
// here, so the "no truncation of high limbs" contract lives in one place
// instead of being re-derived at every call site.
//
// Go's math/big already stores integers with no fixed limb width, so the
// asymmetric-length multiply/reduce primitives a fixed-width big-integer
// library would need collapse to ordinary Mul/Mod here, kept as named
// wrappers rather than inlined, so the boundary stays explicit even though
// the underlying representation needs no chunking trick to stay correct.
package bigintx

import "math/big"

// FixedBytes left-pads x to exactly length bytes, big-endian. Call sites
// that feed a Fiat-Shamir transcript MUST use this rather than x.Bytes():
// the minimal encoding big.Int.Bytes() returns varies with x's bit length,
// which makes the hashed transcript ambiguous (two different (value, N)
// pairs whose concatenated minimal encodings collide would hash the
// same). x must fit in length bytes; a value that doesn't is a caller bug,
// not a runtime condition, so this mirrors big.Int.FillBytes and panics
// the same way it does on too-small a buffer.
func FixedBytes(x *big.Int, length int) []byte {
	return x.FillBytes(make([]byte, length))
}

// MulAsym returns x*y with no truncation, regardless of the relative
// bit-lengths of x and y. Proof exponents routinely span N*q^3 (~3072
// bits) against operands of very different sizes; math/big already grows
// to fit the product, so this is the named boundary the rest of the
// package calls through.
func MulAsym(x, y *big.Int) *big.Int {
	return new(big.Int).Mul(x, y)
}

// ModAsym reduces x modulo m, again with no limb-width assumption on
// either operand.
func ModAsym(x, m *big.Int) *big.Int {
	return new(big.Int).Mod(x, m)
}

// SkPow2 computes b1^e1 * b2^e2 mod m. Call sites where e1 or e2 carries
// secret material (a signing share, Paillier randomness, a commitment
// witness) MUST use this name rather than ad hoc Exp calls, so the
// secret-exponent boundary stays visible at the call site and swappable
// for a hardened backend without touching callers.
func SkPow2(b1, e1, b2, e2, m *big.Int) *big.Int {
	return pow2(b1, e1, b2, e2, m)
}

// SkPow3 is the three-base secret-exponent variant (used by the MtA
// zero-knowledge proof's v-commitment).
func SkPow3(b1, e1, b2, e2, b3, e3, m *big.Int) *big.Int {
	return pow3(b1, e1, b2, e2, b3, e3, m)
}

// Pow3 is the verification-path (non-secret-exponent) three-base variant.
func Pow3(b1, e1, b2, e2, b3, e3, m *big.Int) *big.Int {
	return pow3(b1, e1, b2, e2, b3, e3, m)
}

// Pow4 is the verification-path four-base variant (used by the MtA
// zero-knowledge proof's final consistency check).
func Pow4(b1, e1, b2, e2, b3, e3, b4, e4, m *big.Int) *big.Int {
	r := pow3(b1, e1, b2, e2, b3, e3, m)
	t := new(big.Int).Exp(b4, e4, m)
	r.Mul(r, t)
	return r.Mod(r, m)
}

func pow2(b1, e1, b2, e2, m *big.Int) *big.Int {
	r := new(big.Int).Exp(b1, e1, m)
	t := new(big.Int).Exp(b2, e2, m)
	r.Mul(r, t)
	return r.Mod(r, m)
}

func pow3(b1, e1, b2, e2, b3, e3, m *big.Int) *big.Int {
	r := pow2(b1, e1, b2, e2, m)
	t := new(big.Int).Exp(b3, e3, m)
	r.Mul(r, t)
	return r.Mod(r, m)
}

// CRTExp computes base^exp mod (p*q) by exponentiating modulo p and q
// separately and recombining with CRT, the same trick Paillier's
// CRT-accelerated decryption uses, applied to an arbitrary base/exponent
// pair. p and q must be coprime.
func CRTExp(base, exp, p, q *big.Int) *big.Int {
	bp := new(big.Int).Mod(base, p)
	bq := new(big.Int).Mod(base, q)
	rp := new(big.Int).Exp(bp, exp, p)
	rq := new(big.Int).Exp(bq, exp, q)
	return CRT(rp, rq, p, q)
}

// CRT reconstructs x mod (p*q) given its residues xp = x mod p and
// xq = x mod q, via Garner's formula. p and q must be coprime. Used by
// Paillier's CRT-accelerated decryption and by the verifier's
// CRT-accelerated checks against P, Q (the factorization of the
// bit-commitment modulus Ntilde = P*Q).
func CRT(xp, xq, p, q *big.Int) *big.Int {
	pInvModQ := new(big.Int).ModInverse(p, q)
	// h = (xq - xp) * p^-1 mod q
	h := new(big.Int).Sub(xq, xp)
	h.Mul(h, pInvModQ)
	h.Mod(h, q)
	if h.Sign() < 0 {
		h.Add(h, q)
	}
	// x = xp + h*p
	x := new(big.Int).Mul(h, p)
	x.Add(x, xp)
	return x
}
