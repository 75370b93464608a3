package sign

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/curves"
	"github.com/smallyu/mta-core/internal/crypto/mta"
	zkmta "github.com/smallyu/mta-core/internal/crypto/zk/mta"
	range_proof "github.com/smallyu/mta-core/internal/crypto/zk/range"
	"github.com/smallyu/mta-core/pkg/tss"
)

type Round2Payload struct {
	C_delta *big.Int
	C_sigma *big.Int

	// ZK proofs (canonical octet form) that C_delta and C_sigma were built
	// honestly from the peer's EncK under its own Paillier key, bound to
	// its Pedersen params.
	ZKDelta []byte
	ZKSigma []byte

	// Reveal of the round 1 commitment to Gamma_i.
	GammaX *big.Int
	GammaY *big.Int
	GammaD []byte
}

func (s *state) round2() (tss.StateMachine, []tss.Message, error) {
	curve := curves.NewSecp256k1()
	q := curve.Params().N

	peerID, err := s.peerID()
	if err != nil {
		return nil, nil, err
	}

	// 1. Process Round 1 Message: EncK, the commitment to Gamma_j (opened
	// next round), and the range proof over EncK.
	msgs := s.receivedMsgs[peerID]
	if len(msgs) == 0 {
		return nil, nil, fmt.Errorf("missing round 1 message from %s", peerID)
	}
	var payload Round1Payload
	if err := json.Unmarshal(msgs[0].Payload(), &payload); err != nil {
		return nil, nil, err
	}
	encKj := new(big.Int).SetBytes(payload.EncK)

	pkj := s.keyData.PeerPaillierPks[peerID]
	if pkj == nil {
		return nil, nil, fmt.Errorf("missing paillier key for %s", peerID)
	}
	rp, err := range_proof.ParseProof(payload.RangeProof)
	if err != nil {
		return nil, nil, fmt.Errorf("malformed range proof from %s: %w", peerID, err)
	}
	if err := range_proof.Verify(pkj, s.keyData.PedersenPriv, q, encKj, rp); err != nil {
		return nil, nil, fmt.Errorf("range proof from %s rejected: %w", peerID, err)
	}

	s.tempData["peerEncK"] = encKj
	s.tempData["peerGammaC"] = payload.GammaC

	// 2. Perform MtA with the peer, for both the delta- and sigma-conversion,
	// attaching an MtA-with-check ZK proof of honest construction to each.
	peerPP := s.keyData.PeerPedersenPub[peerID]
	if peerPP == nil {
		return nil, nil, fmt.Errorf("missing pedersen params for peer %s", peerID)
	}

	gammai := s.tempData["gammai"].(*big.Int)
	wi := s.tempData["wi"].(*big.Int)

	// SERVER side of two independent MtA exchanges against the peer's k_j:
	// one converting k_j*gamma_i, one converting k_j*w_i.
	srvDelta, err := mta.Server(pkj, encKj, gammai)
	if err != nil {
		return nil, nil, fmt.Errorf("mta server (delta) failed: %w", err)
	}
	zkDelta, err := zkmta.Prove(pkj, peerPP, q, encKj, srvDelta.CB, gammai, srvDelta.Z, srvDelta.RZ)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build delta MtA proof: %w", err)
	}

	srvSigma, err := mta.Server(pkj, encKj, wi)
	if err != nil {
		return nil, nil, fmt.Errorf("mta server (sigma) failed: %w", err)
	}
	zkSigma, err := zkmta.Prove(pkj, peerPP, q, encKj, srvSigma.CB, wi, srvSigma.Z, srvSigma.RZ)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build sigma MtA proof: %w", err)
	}

	// Our own additive shares of k_j*gamma_i and k_j*w_i, kept for round 3.
	s.tempData["beta"] = srvDelta.Beta
	s.tempData["nu"] = srvSigma.Beta

	respPayload := Round2Payload{
		C_delta: srvDelta.CB,
		C_sigma: srvSigma.CB,
		ZKDelta: zkDelta.Bytes(),
		ZKSigma: zkSigma.Bytes(),
		GammaX:  s.tempData["GammaX"].(*big.Int),
		GammaY:  s.tempData["GammaY"].(*big.Int),
		GammaD:  s.tempData["gammaD"].([]byte),
	}
	data, err := json.Marshal(respPayload)
	if err != nil {
		return nil, nil, err
	}

	msg := &SignMessage{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       data,
		TypeString: "SignRound2_MtA",
		RoundNum:   2,
	}

	newState := &state{
		params:       s.params,
		keyData:      s.keyData,
		msgToSign:    s.msgToSign,
		round:        2,
		tempData:     s.tempData,
		receivedMsgs: make(map[string][]tss.Message),
	}

	return newState, []tss.Message{msg}, nil
}
