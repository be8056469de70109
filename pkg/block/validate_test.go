package block

import (
	"errors"
	"testing"

	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

func testSignedTx(t *testing.T, seed byte) tx.SignedTx {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	txn := tx.Transaction{
		ID:      types.Hash256{seed},
		Inputs:  []tx.Input{{Index: 0, PreviousHash: types.Hash256{seed, 0x01}}},
		Outputs: []tx.Output{{Balance: 10, Address: types.Address{seed}}},
	}
	signed, err := tx.Sign(txn, key)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	return *signed
}

// validBlock creates a minimal valid block with a correct Merkle root
// and a difficulty the block's hash is guaranteed to satisfy (all-
// ones target).
func validBlock(t *testing.T) Block {
	t.Helper()
	content := []tx.SignedTx{testSignedTx(t, 0x01)}
	root := ComputeMerkleRoot(ContentHashes(content))

	header := Header{
		Parent:     types.Hash256{0xaa},
		Difficulty: maxHash256(),
		Timestamp:  1700000000,
		MerkleRoot: root,
	}
	return NewBlock(header, content)
}

func maxHash256() types.Hash256 {
	var h types.Hash256
	for i := range h {
		h[i] = 0xff
	}
	return h
}

func TestBlock_ValidateStructure_Valid(t *testing.T) {
	blk := validBlock(t)
	if err := blk.ValidateStructure(); err != nil {
		t.Errorf("valid block should pass: %v", err)
	}
}

func TestBlock_ValidateStructure_NoContent(t *testing.T) {
	blk := Block{Header: Header{}}
	if err := blk.ValidateStructure(); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got: %v", err)
	}
}

func TestBlock_ValidateStructure_BadMerkleRoot(t *testing.T) {
	blk := validBlock(t)
	blk.Header.MerkleRoot = types.Hash256{0xde, 0xad}
	if err := blk.ValidateStructure(); !errors.Is(err, ErrBadMerkleRoot) {
		t.Errorf("expected ErrBadMerkleRoot, got: %v", err)
	}
}

func TestBlock_ValidatePoW_Success(t *testing.T) {
	blk := validBlock(t)
	if err := blk.ValidatePoW(); err != nil {
		t.Errorf("block with max-difficulty target should pass PoW: %v", err)
	}
}

func TestBlock_ValidatePoW_Failure(t *testing.T) {
	blk := validBlock(t)
	blk.Header.Difficulty = types.Hash256{} // zero target, virtually unreachable
	if err := blk.ValidatePoW(); !errors.Is(err, ErrPoWFailed) {
		t.Errorf("expected ErrPoWFailed, got: %v", err)
	}
}

func TestBlock_Hash_Deterministic(t *testing.T) {
	blk := validBlock(t)
	h1 := blk.Hash()
	h2 := blk.Hash()
	if h1 != h2 {
		t.Error("Block.Hash() should be deterministic")
	}
	if h1.IsZero() {
		t.Error("Block.Hash() should not be zero")
	}
}

func TestBlock_MultipleContentEntries(t *testing.T) {
	content := []tx.SignedTx{testSignedTx(t, 0x01), testSignedTx(t, 0x02)}
	root := ComputeMerkleRoot(ContentHashes(content))

	blk := NewBlock(Header{
		Parent:     types.Hash256{0xbb},
		Difficulty: maxHash256(),
		Timestamp:  1700000001,
		MerkleRoot: root,
	}, content)

	if err := blk.ValidateStructure(); err != nil {
		t.Errorf("multi-entry block should validate: %v", err)
	}
}
