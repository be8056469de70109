package tx

import (
	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// Builder constructs a transaction incrementally, for use by the
// generator loop.
type Builder struct {
	tx Transaction
}

// NewBuilder creates a new transaction builder seeded with the given
// identity. The generator mints a fresh, random ID per transaction.
func NewBuilder(id types.Hash256) *Builder {
	return &Builder{tx: Transaction{ID: id}}
}

// AddInput appends an input referencing a previous output.
func (b *Builder) AddInput(index uint8, previousHash types.Hash256) *Builder {
	b.tx.Inputs = append(b.tx.Inputs, Input{Index: index, PreviousHash: previousHash})
	return b
}

// AddOutput appends an output paying balance to address.
func (b *Builder) AddOutput(balance uint8, address types.Address) *Builder {
	b.tx.Outputs = append(b.tx.Outputs, Output{Balance: balance, Address: address})
	return b
}

// Build returns the constructed, unsigned transaction.
func (b *Builder) Build() Transaction {
	return b.tx
}

// Sign builds the transaction and signs it with key, returning the
// resulting SignedTx.
func (b *Builder) Sign(key *crypto.PrivateKey) (*SignedTx, error) {
	return Sign(b.tx, key)
}
