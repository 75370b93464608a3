package sign

import (
	"crypto/sha256"
	"testing"

	"github.com/smallyu/mta-core/internal/keys"
	"github.com/smallyu/mta-core/internal/protocol/keygen"
	"github.com/smallyu/mta-core/pkg/tss"
)

func TestBatchSign(t *testing.T) {
	parties := []tss.PartyID{&MockPartyID{id: "1"}, &MockPartyID{id: "2"}}

	keyDataByID, err := keys.GenerateTwoParty(parties[0], parties[1])
	if err != nil {
		t.Fatalf("failed to generate two-party key material: %v", err)
	}
	keyData := []*keygen.LocalPartySaveData{keyDataByID[parties[0].ID()], keyDataByID[parties[1].ID()]}

	messages := [][]byte{
		sha256Hash([]byte("message 1")),
		sha256Hash([]byte("message 2")),
		sha256Hash([]byte("message 3")),
	}

	t.Run("BatchSignFirstMessage", func(t *testing.T) {
		batchSMs := make([]tss.StateMachine, 2)
		batchOutMsgs := make([][]tss.Message, 2)

		for i := 0; i < 2; i++ {
			params := &tss.Parameters{
				PartyID:   parties[i],
				Parties:   parties,
				Threshold: 1,
				Curve:     "secp256k1",
				SessionID: []byte("test-session-batch"),
			}
			batchSMs[i], batchOutMsgs[i], err = NewBatchSignStateMachine(params, keyData[i], messages[:1])
			if err != nil {
				t.Fatalf("failed to create batch sign state machine: %v", err)
			}
		}

		for r := 1; r <= 4; r++ {
			batchSMs, batchOutMsgs = route(parties, batchSMs, batchOutMsgs, t)
		}

		for i := 0; i < 2; i++ {
			res := batchSMs[i].Result()
			if res == nil {
				t.Fatalf("batch signing failed for party %d", i)
			}
			sig, ok := res.(*Signature)
			if !ok {
				t.Fatalf("expected *Signature, got %T", res)
			}
			if sig.R == nil || sig.S == nil {
				t.Fatalf("invalid signature")
			}
		}
	})
}

func TestBatchSignMultipleMessages(t *testing.T) {
	parties := []tss.PartyID{&MockPartyID{id: "1"}, &MockPartyID{id: "2"}}

	keyDataByID, err := keys.GenerateTwoParty(parties[0], parties[1])
	if err != nil {
		t.Fatalf("failed to generate two-party key material: %v", err)
	}
	keyData := []*keygen.LocalPartySaveData{keyDataByID[parties[0].ID()], keyDataByID[parties[1].ID()]}

	messages := [][]byte{
		sha256Hash([]byte("first")),
		sha256Hash([]byte("second")),
	}

	batchSMs := make([]tss.StateMachine, 2)
	batchOutMsgs := make([][]tss.Message, 2)

	for i := 0; i < 2; i++ {
		params := &tss.Parameters{
			PartyID:   parties[i],
			Parties:   parties,
			Threshold: 1,
			Curve:     "secp256k1",
			SessionID: []byte("test-session-batch-multi"),
		}
		var err error
		batchSMs[i], batchOutMsgs[i], err = NewBatchSign(params, keyData[i], messages)
		if err != nil {
			t.Fatalf("failed to create batch sign session: %v", err)
		}
	}

	// Each message requires 4 rounds; two messages are signed sequentially.
	for r := 1; r <= 8; r++ {
		batchSMs, batchOutMsgs = route(parties, batchSMs, batchOutMsgs, t)
	}

	for i := 0; i < 2; i++ {
		res := batchSMs[i].Result()
		if res == nil {
			t.Fatalf("batch signing did not complete for party %d", i)
		}
		result, ok := res.(*BatchSignResult)
		if !ok {
			t.Fatalf("expected *BatchSignResult, got %T", res)
		}
		if len(result.Signatures) != len(messages) {
			t.Fatalf("expected %d signatures, got %d", len(messages), len(result.Signatures))
		}
	}
}

func sha256Hash(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}
