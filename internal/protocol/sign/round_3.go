package sign

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/commitment"
	"github.com/smallyu/mta-core/internal/crypto/curves"
	"github.com/smallyu/mta-core/internal/crypto/mta"
	zkmta "github.com/smallyu/mta-core/internal/crypto/zk/mta"
	"github.com/smallyu/mta-core/pkg/tss"
)

type Round3Payload struct {
	DeltaI *big.Int
}

func (s *state) round3() (tss.StateMachine, []tss.Message, error) {
	curve := curves.NewSecp256k1()
	N := curve.Params().N

	peerID, err := s.peerID()
	if err != nil {
		return nil, nil, err
	}

	// 1. Process the Round 2 MtA response: C_delta, C_sigma and their ZK
	// proofs of honest construction, checked against our own EncK and
	// Pedersen trapdoor before any decrypted value is trusted.
	msgs := s.receivedMsgs[peerID]
	if len(msgs) == 0 {
		return nil, nil, fmt.Errorf("missing round 2 message from %s", peerID)
	}
	var payload Round2Payload
	if err := json.Unmarshal(msgs[0].Payload(), &payload); err != nil {
		return nil, nil, err
	}
	zkDelta, err := zkmta.ParseProof(payload.ZKDelta)
	if err != nil {
		return nil, nil, fmt.Errorf("malformed delta MtA proof from %s: %w", peerID, err)
	}
	zkSigma, err := zkmta.ParseProof(payload.ZKSigma)
	if err != nil {
		return nil, nil, fmt.Errorf("malformed sigma MtA proof from %s: %w", peerID, err)
	}

	// Open the round 1 commitment to Gamma_j before trusting it.
	peerGammaC, _ := s.tempData["peerGammaC"].([]byte)
	if !commitment.VerifyComplex(peerGammaC, payload.GammaD,
		commitment.IntToBytes(payload.GammaX), commitment.IntToBytes(payload.GammaY)) {
		return nil, nil, fmt.Errorf("Gamma commitment from %s failed to open", peerID)
	}
	s.tempData["peerGammaX"] = payload.GammaX
	s.tempData["peerGammaY"] = payload.GammaY

	encK := s.tempData["encK"].(*big.Int)

	if err := zkmta.Verify(s.keyData.PaillierPk, s.keyData.PedersenPriv, N, encK, payload.C_delta, zkDelta); err != nil {
		return nil, nil, fmt.Errorf("delta MtA proof from %s rejected: %w", peerID, err)
	}
	if err := zkmta.Verify(s.keyData.PaillierPk, s.keyData.PedersenPriv, N, encK, payload.C_sigma, zkSigma); err != nil {
		return nil, nil, fmt.Errorf("sigma MtA proof from %s rejected: %w", peerID, err)
	}

	// CLIENT2 side: decrypt the peer's response to MY EncK with MY Paillier
	// key to recover alpha_ij and mu_ij.
	alpha, err := mta.Client2(s.keyData.PaillierSk, payload.C_delta)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrypt alpha from %s: %w", peerID, err)
	}
	mu, err := mta.Client2(s.keyData.PaillierSk, payload.C_sigma)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrypt mu from %s: %w", peerID, err)
	}

	// 2. Compute delta_i and sigma_i: the own-product term plus our CLIENT2
	// share (alpha) plus our own SERVER share from round 2 (beta), which
	// mta.Server already returns pre-negated so these all add.
	// delta_i = k_i*gamma_i + alpha_ij + beta_i ; sigma_i = k_i*w_i + mu_ij + nu_i
	ki := s.tempData["ki"].(*big.Int)
	gammai := s.tempData["gammai"].(*big.Int)
	wi := s.tempData["wi"].(*big.Int)
	beta := s.tempData["beta"].(*big.Int)
	nu := s.tempData["nu"].(*big.Int)

	delta_i := new(big.Int).Mul(ki, gammai)
	delta_i.Add(delta_i, alpha)
	delta_i.Add(delta_i, beta)
	delta_i.Mod(delta_i, N)

	sigma_i := new(big.Int).Mul(ki, wi)
	sigma_i.Add(sigma_i, mu)
	sigma_i.Add(sigma_i, nu)
	sigma_i.Mod(sigma_i, N)

	s.tempData["delta_i"] = delta_i
	s.tempData["sigma_i"] = sigma_i

	// 3. Broadcast delta_i
	payload3 := Round3Payload{
		DeltaI: delta_i,
	}
	data, err := json.Marshal(payload3)
	if err != nil {
		return nil, nil, err
	}

	msg := &SignMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       data,
		TypeString: "SignRound3_Delta",
		RoundNum:   3,
	}

	newState := &state{
		params:       s.params,
		keyData:      s.keyData,
		msgToSign:    s.msgToSign,
		round:        3,
		tempData:     s.tempData,
		receivedMsgs: make(map[string][]tss.Message),
	}

	return newState, []tss.Message{msg}, nil
}
