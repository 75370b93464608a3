package sign

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/commitment"
	"github.com/smallyu/mta-core/internal/crypto/curves"
	"github.com/smallyu/mta-core/internal/crypto/mta"
	range_proof "github.com/smallyu/mta-core/internal/crypto/zk/range"
	"github.com/smallyu/mta-core/pkg/tss"
)

type Round1Payload struct {
	EncK       []byte // Paillier ciphertext of k_i
	GammaC     []byte // commitment to Gamma_i, revealed in round 2
	RangeProof []byte // canonical octet form; proves EncK encrypts k_i in range, to the peer's Pedersen params
}

func (s *state) round1() (tss.StateMachine, []tss.Message, error) {
	curve := curves.NewSecp256k1()

	// 1. Generate k_i, gamma_i
	ki, err := curve.NewScalar()
	if err != nil {
		return nil, nil, err
	}
	gammai, err := curve.NewScalar()
	if err != nil {
		return nil, nil, err
	}

	s.tempData["ki"] = ki
	s.tempData["gammai"] = gammai

	// w_i is the party's own share, reweighted by its Lagrange coefficient.
	// internal/keys hands out plain two-of-two additive shares rather than
	// Shamir/VSS shares, so the coefficient is always 1 here; the step is
	// kept so a host supplying Shamir-shared key material only needs to
	// swap in a real coefficient, not restructure the round.
	lambda, err := s.calcLagrangeCoeffs()
	if err != nil {
		return nil, nil, err
	}

	wi := new(big.Int).Mul(s.keyData.Xi, lambda)
	wi.Mod(wi, curve.Params().N)
	s.tempData["wi"] = wi

	// 2. Start the MtA exchange for k_i: the CLIENT1 message is just k_i
	// encrypted under our own Paillier key.
	mtaClient1, err := mta.Client1(s.keyData.PaillierPk, ki)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encrypt k_i: %w", err)
	}
	encK, rK := mtaClient1.CA, mtaClient1.RA
	s.tempData["encK"] = encK

	// 3. Compute Gamma_i = gamma_i * G, and commit to it rather than
	// revealing it yet: an adversary who saw Gamma_i before choosing its own
	// gamma could bias the joint R = delta^-1 * Gamma. The opening is
	// revealed alongside the round 2 MtA response.
	Gx, Gy := curve.ScalarBaseMult(gammai)
	s.tempData["GammaX"] = Gx
	s.tempData["GammaY"] = Gy

	gammaCommit, err := commitment.NewComplex(commitment.IntToBytes(Gx), commitment.IntToBytes(Gy))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to commit to Gamma_i: %w", err)
	}
	s.tempData["gammaD"] = gammaCommit.D

	// Prove EncK encrypts k_i in range, bound to the peer's bit-commitment
	// params so it alone can verify the proof.
	peerID, err := s.peerID()
	if err != nil {
		return nil, nil, err
	}
	peerPP := s.keyData.PeerPedersenPub[peerID]
	if peerPP == nil {
		return nil, nil, fmt.Errorf("missing pedersen params for peer %s", peerID)
	}
	rp, err := range_proof.Prove(s.keyData.PaillierSk, peerPP, curve.Params().N, encK, ki, rK)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build range proof for k_i: %w", err)
	}

	// 4. Broadcast
	payload := Round1Payload{
		EncK:       encK.Bytes(),
		GammaC:     gammaCommit.C,
		RangeProof: rp.Bytes(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	msg := &SignMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       data,
		TypeString: "SignRound1",
		RoundNum:   1,
	}

	return s, []tss.Message{msg}, nil
}

// calcLagrangeCoeffs returns this party's Lagrange coefficient for
// combining scalar shares into the joint key. internal/keys' two-party
// constructor produces plain additive shares (the constant term of a
// degree-0 "polynomial" each party already holds outright), so every
// party's coefficient is 1; this stays a distinct step, rather than being
// inlined away, so a Shamir-shared key source can be dropped in later
// without reshaping the round.
func (s *state) calcLagrangeCoeffs() (*big.Int, error) {
	for _, p := range s.params.Parties {
		if p.ID() == s.params.PartyID.ID() {
			return big.NewInt(1), nil
		}
	}
	return nil, fmt.Errorf("party not found in list")
}
