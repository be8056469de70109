// Package block defines block types, Merkle root computation, and
// structural validation.
package block

import (
	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// Block is immutable once created. Equality is by hash.
type Block struct {
	Header  Header      `json:"header"`
	Content []tx.SignedTx `json:"content"`
}

// NewBlock creates a new block from a header and its content.
func NewBlock(header Header, content []tx.SignedTx) Block {
	return Block{Header: header, Content: content}
}

// Hash returns the block's identity: its header hash.
func (b *Block) Hash() types.Hash256 {
	return b.Header.Hash()
}
