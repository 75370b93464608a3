package range_proof

import (
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/bigintx"
	"github.com/smallyu/mta-core/internal/crypto/zkerrors"
)

// Wire widths for each proof field, big-endian and left-padded with zeros.
// The commitment halves are modulus-width (Z and W live mod Ntilde, U mod
// N^2); the responses are bounded integers, so they get the half-width
// slots their ranges actually need: S lives mod N, S1 is at most q^4, and
// S2 at most Ntilde*q^3 plus change.
const (
	hfs2048 = fs2048 / 2
	hfs4096 = fs4096 / 2

	zLen  = fs2048
	uLen  = fs4096
	wLen  = fs2048
	sLen  = hfs4096
	s1Len = hfs2048
	s2Len = fs2048 + hfs2048

	// ProofLen is the canonical serialized length of a Proof.
	ProofLen = zLen + uLen + wLen + sLen + s1Len + s2Len
)

// Bytes serializes the proof to its canonical fixed-length octet form:
// Z | U | W | S | S1 | S2, each field left-padded to its wire width.
func (p *Proof) Bytes() []byte {
	out := make([]byte, 0, ProofLen)
	out = append(out, bigintx.FixedBytes(p.Z, zLen)...)
	out = append(out, bigintx.FixedBytes(p.U, uLen)...)
	out = append(out, bigintx.FixedBytes(p.W, wLen)...)
	out = append(out, bigintx.FixedBytes(p.S, sLen)...)
	out = append(out, bigintx.FixedBytes(p.S1, s1Len)...)
	out = append(out, bigintx.FixedBytes(p.S2, s2Len)...)
	return out
}

// ParseProof deserializes a proof from its canonical octet form. The only
// structural requirement is the exact length; range checks on the decoded
// values are Verify's job, so a malformed proof still parses and is then
// rejected through the single uniform rejection channel.
func ParseProof(b []byte) (*Proof, error) {
	if len(b) != ProofLen {
		return nil, zkerrors.ErrInputOutOfRange
	}
	next := func(n int) *big.Int {
		v := new(big.Int).SetBytes(b[:n])
		b = b[n:]
		return v
	}
	return &Proof{
		Z:  next(zLen),
		U:  next(uLen),
		W:  next(wLen),
		S:  next(sLen),
		S1: next(s1Len),
		S2: next(s2Len),
	}, nil
}
