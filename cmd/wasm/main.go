//go:build js && wasm

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/mta-core/internal/crypto/paillier"
	"github.com/smallyu/mta-core/internal/crypto/pedersen"
	"github.com/smallyu/mta-core/internal/keys"
	"github.com/smallyu/mta-core/internal/protocol/keygen"
	"github.com/smallyu/mta-core/internal/protocol/sign"
	"github.com/smallyu/mta-core/pkg/tss"
)

// Global map to store active signing sessions.
// Key: Session ID (string)
var sessions = make(map[string]tss.StateMachine)

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("mta-core WASM initialized")

	js.Global().Set("MtaCore", map[string]interface{}{
		"GenerateTwoPartyKeys": js.FuncOf(GenerateTwoPartyKeys),
		"NewSign":              js.FuncOf(NewSign),
		"Update":               js.FuncOf(Update),
		"Result":               js.FuncOf(Result),
	})

	<-c
}

// GenerateTwoPartyKeys builds local two-party key material for a demo or
// test session. Distributed key generation is out of scope for this core;
// this stands in for that external collaborator, exactly as
// internal/keys.GenerateTwoParty does for in-process callers.
// Arguments:
// 0: JSON array of the two party IDs, e.g. ["alice","bob"]
// Returns:
// JSON object keyed by party ID, each value the party's LocalPartySaveData.
func GenerateTwoPartyKeys(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (jsonPartyIDs)"
	}

	var ids []string
	if err := json.Unmarshal([]byte(args[0].String()), &ids); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}
	if len(ids) != 2 {
		return "error: exactly two party IDs are required"
	}

	p1 := &SimplePartyID{IDVal: ids[0], MonikerVal: ids[0]}
	p2 := &SimplePartyID{IDVal: ids[1], MonikerVal: ids[1]}

	saveData, err := keys.GenerateTwoParty(p1, p2)
	if err != nil {
		return fmt.Sprintf("error: key generation failed: %v", err)
	}

	respBytes, err := json.Marshal(saveData)
	if err != nil {
		return fmt.Sprintf("error: marshal failed: %v", err)
	}
	return string(respBytes)
}

// NewSign initializes a new signing session for one party.
// Arguments:
// 0: JSON string of parameters (partyID, allParties, sessionID)
// 1: hex-encoded digest to sign
// 2: JSON-encoded keygen.LocalPartySaveData for this party, as produced by
//    GenerateTwoPartyKeys or an external key-generation collaborator
// Returns:
// JSON object { sessionID, messages } or an "error: ..." string
func NewSign(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (jsonParams, hexDigest, jsonKeyData)"
	}

	type ParamsInput struct {
		PartyID    string   `json:"partyID"`
		AllParties []string `json:"allParties"`
		SessionID  string   `json:"sessionID"`
	}

	var input ParamsInput
	if err := json.Unmarshal([]byte(args[0].String()), &input); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}

	digest, err := hex.DecodeString(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: invalid hex digest: %v", err)
	}

	keyData, err := unmarshalKeyData(args[2].String())
	if err != nil {
		return fmt.Sprintf("error: invalid key data: %v", err)
	}

	parties := make([]tss.PartyID, len(input.AllParties))
	var localParty tss.PartyID
	for i, pid := range input.AllParties {
		p := &SimplePartyID{IDVal: pid, MonikerVal: pid}
		parties[i] = p
		if pid == input.PartyID {
			localParty = p
		}
	}
	if localParty == nil {
		return "error: local party ID not found in allParties"
	}

	params := &tss.Parameters{
		PartyID:   localParty,
		Parties:   parties,
		Threshold: 1,
		Curve:     "secp256k1",
		SessionID: []byte(input.SessionID),
	}

	sm, outMsgs, err := sign.NewStateMachine(params, keyData, digest)
	if err != nil {
		return fmt.Sprintf("error: failed to create sign state machine: %v", err)
	}

	sessionHandle := fmt.Sprintf("%s-%s", input.PartyID, input.SessionID)
	sessions[sessionHandle] = sm

	resp := map[string]interface{}{
		"sessionID": sessionHandle,
		"messages":  encodeMessages(outMsgs),
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// Update processes an incoming message for a session.
// Arguments:
// 0: Session ID (string)
// 1: JSON string of a message DTO (see MessageDTO)
// Returns:
// JSON array of output messages, or an "error: ..." string
func Update(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (sessionID, jsonMsg)"
	}

	sessionID := args[0].String()
	sm, ok := sessions[sessionID]
	if !ok {
		return "error: session not found"
	}

	var dto MessageDTO
	if err := json.Unmarshal([]byte(args[1].String()), &dto); err != nil {
		return fmt.Sprintf("error: invalid message dto: %v", err)
	}

	dataBytes, err := hex.DecodeString(dto.Data)
	if err != nil {
		return fmt.Sprintf("error: invalid hex data: %v", err)
	}

	fromParty := &SimplePartyID{IDVal: dto.From, MonikerVal: dto.From}
	var toParties []tss.PartyID
	for _, t := range dto.To {
		toParties = append(toParties, &SimplePartyID{IDVal: t, MonikerVal: t})
	}

	realMsg := &sign.SignMessage{
		FromParty:  fromParty,
		ToParties:  toParties,
		IsBcast:    dto.IsBroadcast,
		Data:       dataBytes,
		TypeString: dto.Type,
		RoundNum:   dto.Round,
	}

	nextSm, outMsgs, err := sm.Update(realMsg)
	if err != nil {
		return fmt.Sprintf("error: update failed: %v", err)
	}
	if nextSm != nil {
		sessions[sessionID] = nextSm
	}

	return marshalMessages(outMsgs)
}

// Result returns the final result if the session has finished.
// Arguments:
// 0: Session ID (string)
// Returns:
// JSON string of the result, null if not yet finished, or an "error: ..." string
func Result(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (sessionID)"
	}
	sessionID := args[0].String()
	sm, ok := sessions[sessionID]
	if !ok {
		return "error: session not found"
	}

	res := sm.Result()
	if res == nil {
		return nil
	}

	resBytes, err := json.Marshal(res)
	if err != nil {
		return fmt.Sprintf("error: marshal result failed: %v", err)
	}
	return string(resBytes)
}

// keyDataDTO mirrors keygen.LocalPartySaveData but drops the LocalPartyID
// field: tss.PartyID is a non-empty interface and encoding/json has no
// concrete type to allocate for it. The sign package never reads
// LocalPartyID off save data (it uses params.PartyID instead), so it is
// safe to leave unset after reconstruction.
type keyDataDTO struct {
	ECDSAPubX       *big.Int
	ECDSAPubY       *big.Int
	ShareID         *big.Int
	PaillierSk      *paillier.PrivateKey
	PaillierPk      *paillier.PublicKey
	PeerPaillierPks map[string]*paillier.PublicKey
	PedersenPriv    *pedersen.PrivateParams
	PeerPedersenPub map[string]*pedersen.PublicParams
	Ui              *big.Int
	Xi              *big.Int
	XiX             *big.Int
	XiY             *big.Int
	PublicKeyX      *big.Int
	PublicKeyY      *big.Int
}

func unmarshalKeyData(raw string) (*keygen.LocalPartySaveData, error) {
	var dto keyDataDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return nil, err
	}
	return &keygen.LocalPartySaveData{
		ECDSAPubX:       dto.ECDSAPubX,
		ECDSAPubY:       dto.ECDSAPubY,
		ShareID:         dto.ShareID,
		PaillierSk:      dto.PaillierSk,
		PaillierPk:      dto.PaillierPk,
		PeerPaillierPks: dto.PeerPaillierPks,
		PedersenPriv:    dto.PedersenPriv,
		PeerPedersenPub: dto.PeerPedersenPub,
		Ui:              dto.Ui,
		Xi:              dto.Xi,
		XiX:             dto.XiX,
		XiY:             dto.XiY,
		PublicKeyX:      dto.PublicKeyX,
		PublicKeyY:      dto.PublicKeyY,
	}, nil
}

// Helpers

type SimplePartyID struct {
	IDVal      string
	MonikerVal string
}

func (p *SimplePartyID) ID() string      { return p.IDVal }
func (p *SimplePartyID) Moniker() string { return p.MonikerVal }
func (p *SimplePartyID) Key() []byte     { return []byte(p.IDVal) }

type MessageDTO struct {
	From        string   `json:"from"`
	To          []string `json:"to"`
	IsBroadcast bool     `json:"isBroadcast"`
	Data        string   `json:"data"` // hex encoded
	Type        string   `json:"type"`
	Round       uint32   `json:"round"`
}

func encodeMessages(msgs []tss.Message) []interface{} {
	var out []interface{}
	for _, m := range msgs {
		var ids []string
		for _, p := range m.To() {
			ids = append(ids, p.ID())
		}
		out = append(out, map[string]interface{}{
			"from":        m.From().ID(),
			"to":          ids,
			"isBroadcast": m.IsBroadcast(),
			"data":        hex.EncodeToString(m.Payload()),
			"type":        m.Type(),
			"round":       m.RoundNumber(),
		})
	}
	return out
}

func marshalMessages(msgs []tss.Message) string {
	b, _ := json.Marshal(encodeMessages(msgs))
	return string(b)
}
