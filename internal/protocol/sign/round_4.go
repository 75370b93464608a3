package sign

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/curves"
	"github.com/smallyu/mta-core/pkg/tss"
)

type Round4Payload struct {
	Si *big.Int
}

func (s *state) round4() (tss.StateMachine, []tss.Message, error) {
	curve := curves.NewSecp256k1()
	N := curve.Params().N

	// 1. Process Round 3 Messages (Delta_j)
	delta := new(big.Int).Set(s.tempData["delta_i"].(*big.Int))
	
	for _, msgs := range s.receivedMsgs {
		if len(msgs) == 0 { continue }
		var payload Round3Payload
		if err := json.Unmarshal(msgs[0].Payload(), &payload); err != nil {
			return nil, nil, err
		}
		delta.Add(delta, payload.DeltaI)
		delta.Mod(delta, N)
	}
	
	// 2. Compute R = delta^-1 * Gamma
	// Gamma = sum(Gamma_j)
	
	// Start with own Gamma_i
	GammaX := s.tempData["GammaX"].(*big.Int)
	GammaY := s.tempData["GammaY"].(*big.Int)
	
	peerGammaX := s.tempData["peerGammaX"].(*big.Int)
	peerGammaY := s.tempData["peerGammaY"].(*big.Int)
	GammaX, GammaY = curve.Add(GammaX, GammaY, peerGammaX, peerGammaY)
	
	// delta^-1
	deltaInv := new(big.Int).ModInverse(delta, N)
	if deltaInv == nil {
		return nil, nil, fmt.Errorf("delta is not invertible")
	}
	
	// R = delta^-1 * Gamma
	Rx, Ry := curve.ScalarMult(GammaX, GammaY, deltaInv)
	
	r := Rx
	r.Mod(r, N)
	if r.Sign() == 0 {
		return nil, nil, fmt.Errorf("calculated r is 0, retry signing")
	}
	
	ki := s.tempData["ki"].(*big.Int)
	sigma_i := s.tempData["sigma_i"].(*big.Int)

	s.tempData["r"] = r
	s.tempData["Rx"] = Rx
	s.tempData["Ry"] = Ry

	// Presign mode: R, k_i and sigma_i are the full offline-phase output.
	// s_i depends on the message, so it's deferred to the online phase.
	if s.msgToSign == nil {
		ps := &PreSignature{
			R:      r,
			Rx:     Rx,
			Ry:     Ry,
			Ki:     ki,
			SigmaI: sigma_i,
		}
		return &finishedState{preSignature: ps}, nil, nil
	}

	// 3. Compute s_i = m * k_i + r * sigma_i
	// m is the hashed digest passed in as msgToSign, already reduced to the
	// curve order's byte length by the caller.
	m := new(big.Int).SetBytes(s.msgToSign)

	// term1 = m * k_i
	term1 := new(big.Int).Mul(m, ki)
	term1.Mod(term1, N)

	// term2 = r * sigma_i
	term2 := new(big.Int).Mul(r, sigma_i)
	term2.Mod(term2, N)

	si := new(big.Int).Add(term1, term2)
	si.Mod(si, N)

	s.tempData["si"] = si

	// 4. Broadcast s_i
	payload := Round4Payload{
		Si: si,
	}
	data, err := json.Marshal(payload)
	if err != nil { return nil, nil, err }
	
	msg := &SignMessage{
		FromParty: s.params.PartyID,
		ToParties: nil,
		IsBcast:   true,
		Data:      data,
		TypeString: "SignRound4_Si",
		RoundNum:  4,
	}
	
	newState := &state{
		params:       s.params,
		keyData:      s.keyData,
		msgToSign:    s.msgToSign,
		round:        4,
		tempData:     s.tempData,
		receivedMsgs: make(map[string][]tss.Message),
	}

	return newState, []tss.Message{msg}, nil
}
