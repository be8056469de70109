package chain

import (
	"github.com/driftchain-network/driftchain/pkg/block"
	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// genesisDifficulty is a deliberately easy target: any block hash whose
// top four bits are zero satisfies it (about one hash in sixteen), so
// the first real miner does not stall. Nothing adjusts the target
// afterwards; it stays fixed for the life of the chain.
func genesisDifficulty() types.Hash256 {
	var d types.Hash256
	d[0] = 0x0f
	for i := 1; i < len(d); i++ {
		d[i] = 0xff
	}
	return d
}

// genesisSeed is the fixed seed used to build the single genesis
// transaction. It has no economic meaning; it exists only to give
// the genesis block non-empty, deterministic content.
var genesisSeed = types.Hash256{'d', 'r', 'i', 'f', 't', 'c', 'h', 'a', 'i', 'n'}

// genesisBlock constructs the deterministic genesis block: zero
// parent, height 0, timestamp 0, the easy genesis difficulty, and a
// seeded transaction whose only requirement is a valid Merkle root.
func genesisBlock() block.Block {
	key, err := crypto.PrivateKeyFromSeed(genesisSeed[:32])
	if err != nil {
		panic("chain: invalid genesis seed: " + err.Error())
	}

	genesisTx := tx.Transaction{
		ID: genesisSeed,
		Inputs: []tx.Input{
			{Index: 0, PreviousHash: types.Hash256{}},
		},
		Outputs: []tx.Output{
			{Balance: 0, Address: key.Address()},
		},
	}

	signed, err := tx.Sign(genesisTx, key)
	if err != nil {
		panic("chain: failed to sign genesis transaction: " + err.Error())
	}

	content := []tx.SignedTx{*signed}
	header := block.Header{
		Parent:     types.Hash256{},
		Nonce:      0,
		Difficulty: genesisDifficulty(),
		Timestamp:  0,
		MerkleRoot: block.ComputeMerkleRoot(block.ContentHashes(content)),
	}

	return block.NewBlock(header, content)
}
