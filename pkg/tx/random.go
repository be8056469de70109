package tx

import (
	"crypto/rand"

	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// RandomSignedTx builds and signs a single transaction with random
// input and output fields: a random previous-output hash and index,
// a random transaction id, and an output paying a fresh key pair's
// own address since no economic transfer is intended. Grounded on
// original_source/src/generator.rs's random-transaction construction
// (there, shared between the miner and generator loops); used here as
// filler content when the miner has nothing real to include.
func RandomSignedTx() (SignedTx, error) {
	id, err := randomHash256()
	if err != nil {
		return SignedTx{}, err
	}
	prevHash, err := randomHash256()
	if err != nil {
		return SignedTx{}, err
	}
	var index [1]byte
	if _, err := rand.Read(index[:]); err != nil {
		return SignedTx{}, err
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return SignedTx{}, err
	}

	txn := Transaction{
		ID:      id,
		Inputs:  []Input{{Index: index[0], PreviousHash: prevHash}},
		Outputs: []Output{{Balance: 1, Address: key.Address()}},
	}
	signed, err := Sign(txn, key)
	if err != nil {
		return SignedTx{}, err
	}
	return *signed, nil
}

func randomHash256() (types.Hash256, error) {
	var h types.Hash256
	_, err := rand.Read(h[:])
	return h, err
}
