// Package keys provides the minimal local two-party key-material
// constructor the signing pipeline needs as input. Distributed key
// generation (Feldman VSS, proofs of possession, key refresh, resharing)
// is treated as an external collaborator; this package instead builds the
// same shape of output directly, as if that collaborator had already run,
// for local testing and for hosts that bring their own key-generation
// protocol.
//
// The two shares are independent random scalars that sum to the joint
// private key: plain two-of-two additive sharing, not a Shamir
// polynomial, so the signing pipeline's share-combination step needs no
// Lagrange reweighting for this constructor's output.
package keys

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/smallyu/mta-core/internal/crypto/paillier"
	"github.com/smallyu/mta-core/internal/crypto/pedersen"
	"github.com/smallyu/mta-core/internal/protocol/keygen"
	"github.com/smallyu/mta-core/pkg/tss"
)

// PaillierBits is the Paillier modulus bit length used throughout.
const PaillierBits = 2048

// PedersenBits is the bit-commitment modulus bit length used throughout.
const PedersenBits = 2048

// GenerateTwoParty builds local key material for two parties whose scalar
// shares sum to a freshly generated joint private key. It performs no
// network round-trip and proves nothing about honest generation; it is the
// local stand-in for the external key-generation collaborator.
func GenerateTwoParty(party1, party2 tss.PartyID) (map[string]*keygen.LocalPartySaveData, error) {
	curve := secp256k1.S256()
	q := curve.N

	x1, err := rand.Int(rand.Reader, q)
	if err != nil {
		return nil, err
	}
	x2, err := rand.Int(rand.Reader, q)
	if err != nil {
		return nil, err
	}

	x1X, x1Y := curve.ScalarBaseMult(x1.Bytes())
	x2X, x2Y := curve.ScalarBaseMult(x2.Bytes())
	pubX, pubY := curve.Add(x1X, x1Y, x2X, x2Y)

	sk1, err := paillier.GenerateKey(rand.Reader, PaillierBits)
	if err != nil {
		return nil, fmt.Errorf("keys: generating party 1 paillier key: %w", err)
	}
	sk2, err := paillier.GenerateKey(rand.Reader, PaillierBits)
	if err != nil {
		return nil, fmt.Errorf("keys: generating party 2 paillier key: %w", err)
	}

	pp1, err := pedersen.GenerateParams(rand.Reader, PedersenBits)
	if err != nil {
		return nil, fmt.Errorf("keys: generating party 1 pedersen params: %w", err)
	}
	pp2, err := pedersen.GenerateParams(rand.Reader, PedersenBits)
	if err != nil {
		return nil, fmt.Errorf("keys: generating party 2 pedersen params: %w", err)
	}

	save1 := &keygen.LocalPartySaveData{
		LocalPartyID:    party1,
		ECDSAPubX:       pubX,
		ECDSAPubY:       pubY,
		ShareID:         big.NewInt(1),
		PaillierSk:      sk1,
		PaillierPk:      &sk1.PublicKey,
		PeerPaillierPks: map[string]*paillier.PublicKey{party2.ID(): &sk2.PublicKey},
		PedersenPriv:    pp1,
		PeerPedersenPub: map[string]*pedersen.PublicParams{party2.ID(): &pp2.PublicParams},
		Xi:              x1,
		XiX:             x1X,
		XiY:             x1Y,
		PublicKeyX:      pubX,
		PublicKeyY:      pubY,
	}

	save2 := &keygen.LocalPartySaveData{
		LocalPartyID:    party2,
		ECDSAPubX:       pubX,
		ECDSAPubY:       pubY,
		ShareID:         big.NewInt(2),
		PaillierSk:      sk2,
		PaillierPk:      &sk2.PublicKey,
		PeerPaillierPks: map[string]*paillier.PublicKey{party1.ID(): &sk1.PublicKey},
		PedersenPriv:    pp2,
		PeerPedersenPub: map[string]*pedersen.PublicParams{party1.ID(): &pp1.PublicParams},
		Xi:              x2,
		XiX:             x2X,
		XiY:             x2Y,
		PublicKeyX:      pubX,
		PublicKeyY:      pubY,
	}

	return map[string]*keygen.LocalPartySaveData{
		party1.ID(): save1,
		party2.ID(): save2,
	}, nil
}
