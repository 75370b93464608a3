package mta

import (
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/bigintx"
	"github.com/smallyu/mta-core/internal/crypto/zkerrors"
)

// Wire widths for each proof field, big-endian and left-padded with zeros.
// Z, Z1, T and W live mod Ntilde and V mod N^2, so they get modulus-width
// slots; the responses are bounded integers (S mod N, S1 at most q^4,
// T1 at most q*q + N, S2 and T2 at most Ntilde*q^3 plus change) and get
// the slots their ranges actually need.
const (
	hfs2048 = fs2048 / 2

	zWireLen  = fs2048
	z1WireLen = fs2048
	tWireLen  = fs2048
	vWireLen  = fs4096
	wWireLen  = fs2048
	sWireLen  = fs2048
	s1WireLen = hfs2048
	s2WireLen = fs2048 + hfs2048
	t1WireLen = fs2048
	t2WireLen = fs2048 + hfs2048

	// ProofLen is the canonical serialized length of a Proof.
	ProofLen = zWireLen + z1WireLen + tWireLen + vWireLen + wWireLen +
		sWireLen + s1WireLen + s2WireLen + t1WireLen + t2WireLen
)

// Bytes serializes the proof to its canonical fixed-length octet form:
// Z | Z1 | T | V | W | S | S1 | S2 | T1 | T2, each field left-padded to
// its wire width.
func (p *Proof) Bytes() []byte {
	out := make([]byte, 0, ProofLen)
	out = append(out, bigintx.FixedBytes(p.Z, zWireLen)...)
	out = append(out, bigintx.FixedBytes(p.Z1, z1WireLen)...)
	out = append(out, bigintx.FixedBytes(p.T, tWireLen)...)
	out = append(out, bigintx.FixedBytes(p.V, vWireLen)...)
	out = append(out, bigintx.FixedBytes(p.W, wWireLen)...)
	out = append(out, bigintx.FixedBytes(p.S, sWireLen)...)
	out = append(out, bigintx.FixedBytes(p.S1, s1WireLen)...)
	out = append(out, bigintx.FixedBytes(p.S2, s2WireLen)...)
	out = append(out, bigintx.FixedBytes(p.T1, t1WireLen)...)
	out = append(out, bigintx.FixedBytes(p.T2, t2WireLen)...)
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
		Z:  next(zWireLen),
		Z1: next(z1WireLen),
		T:  next(tWireLen),
		V:  next(vWireLen),
		W:  next(wWireLen),
		S:  next(sWireLen),
		S1: next(s1WireLen),
		S2: next(s2WireLen),
		T1: next(t1WireLen),
		T2: next(t2WireLen),
	}, nil
}
