package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

type mockPartyID struct{ id string }

func (m *mockPartyID) ID() string      { return m.id }
func (m *mockPartyID) Moniker() string { return m.id }
func (m *mockPartyID) Key() []byte     { return []byte(m.id) }

func TestGenerateTwoPartySharesSumToJointKey(t *testing.T) {
	party1 := &mockPartyID{id: "alice"}
	party2 := &mockPartyID{id: "bob"}

	saveData, err := GenerateTwoParty(party1, party2)
	require.NoError(t, err)
	require.Len(t, saveData, 2)

	d1 := saveData[party1.ID()]
	d2 := saveData[party2.ID()]
	require.NotNil(t, d1)
	require.NotNil(t, d2)

	curve := secp256k1.S256()
	sumX, sumY := curve.Add(d1.XiX, d1.XiY, d2.XiX, d2.XiY)

	assert.Equal(t, d1.PublicKeyX, sumX)
	assert.Equal(t, d1.PublicKeyY, sumY)
	assert.Equal(t, d1.PublicKeyX, d2.PublicKeyX)
	assert.Equal(t, d1.PublicKeyY, d2.PublicKeyY)

	// Each party's Paillier/Pedersen keys back the other's view of them.
	assert.Equal(t, d1.PaillierPk.N, d2.PeerPaillierPks[party1.ID()].N)
	assert.Equal(t, d2.PaillierPk.N, d1.PeerPaillierPks[party2.ID()].N)
	assert.Equal(t, d1.PedersenPriv.Ntilde, d2.PeerPedersenPub[party1.ID()].Ntilde)
	assert.Equal(t, d2.PedersenPriv.Ntilde, d1.PeerPedersenPub[party2.ID()].Ntilde)
}

func TestGenerateTwoPartySharesAreIndependent(t *testing.T) {
	party1 := &mockPartyID{id: "alice"}
	party2 := &mockPartyID{id: "bob"}

	saveData, err := GenerateTwoParty(party1, party2)
	require.NoError(t, err)

	d1 := saveData[party1.ID()]
	d2 := saveData[party2.ID()]
	assert.NotEqual(t, d1.Xi, d2.Xi)
	assert.NotEqual(t, d1.PaillierSk.N, d2.PaillierSk.N)
}
