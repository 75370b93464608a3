package keygen

import (
	"math/big"

	"github.com/smallyu/mta-core/internal/crypto/paillier"
	"github.com/smallyu/mta-core/internal/crypto/pedersen"
	"github.com/smallyu/mta-core/pkg/tss"
)

// LocalPartySaveData is the local key material a party holds going into
// signing: its scalar share, the joint public key, its own Paillier and
// bit-commitment trapdoors, and its counterparts' public parameters.
// internal/keys constructs this directly for the two-party case; key
// generation itself (how Xi was derived, proved, and distributed) is out
// of scope.
type LocalPartySaveData struct {
	LocalPartyID tss.PartyID

	// Public Key (X)
	// For now we store coordinates, later we might use a specific Point type
	ECDSAPubX *big.Int
	ECDSAPubY *big.Int

	// Identifies which share this party holds.
	ShareID *big.Int

	// Paillier Keys
	PaillierSk *paillier.PrivateKey
	PaillierPk *paillier.PublicKey
	PeerPaillierPks map[string]*paillier.PublicKey

	// Bit-commitment modulus: ours (so peers can prove RP/ZK statements to
	// us) and each peer's public params (so we can commit proofs to them).
	PedersenPriv    *pedersen.PrivateParams
	PeerPedersenPub map[string]*pedersen.PublicParams

	// u_i, the constant term of a party's Shamir/VSS polynomial.
	// internal/keys leaves it nil and signing does not read it.
	Ui *big.Int

	// This party's additive share x_i of the joint secret key
	Xi *big.Int
	// The public key share X_i = x_i * G
	XiX *big.Int
	XiY *big.Int

	// The joint public key X = sum of all parties' X_i
	PublicKeyX *big.Int
	PublicKeyY *big.Int
}

// KeyGenMessage is a concrete implementation of tss.Message for KeyGen
type KeyGenMessage struct {
	FromParty   tss.PartyID
	ToParties   []tss.PartyID
	IsBcast     bool
	Data        []byte
	TypeString  string
	RoundNum    uint32
}

func (m *KeyGenMessage) Type() string {
	return m.TypeString
}

func (m *KeyGenMessage) From() tss.PartyID {
	return m.FromParty
}

func (m *KeyGenMessage) To() []tss.PartyID {
	return m.ToParties
}

func (m *KeyGenMessage) IsBroadcast() bool {
	return m.IsBcast
}

func (m *KeyGenMessage) Payload() []byte {
	return m.Data
}

func (m *KeyGenMessage) RoundNumber() uint32 {
	return m.RoundNum
}
