package chain

import (
	"errors"
	"testing"

	"github.com/driftchain-network/driftchain/pkg/block"
	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// child builds a minimally valid block whose parent and content seed
// are given explicitly. Each call signs with a fresh random key, so
// every returned block has a distinct hash.
func child(t *testing.T, parent types.Hash256, seed byte) block.Block {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	txn := tx.Transaction{
		ID:      types.Hash256{seed},
		Inputs:  []tx.Input{{Index: 0, PreviousHash: types.Hash256{seed, 0x01}}},
		Outputs: []tx.Output{{Balance: seed, Address: key.Address()}},
	}
	signed, err := tx.Sign(txn, key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	content := []tx.SignedTx{*signed}

	header := block.Header{
		Parent:     parent,
		Nonce:      uint32(seed),
		Difficulty: maxDifficulty(),
		Timestamp:  uint64(seed),
		MerkleRoot: block.ComputeMerkleRoot(block.ContentHashes(content)),
	}
	return block.NewBlock(header, content)
}

func maxDifficulty() types.Hash256 {
	var d types.Hash256
	for i := range d {
		d[i] = 0xff
	}
	return d
}

func TestNew_GenesisState(t *testing.T) {
	s := New()
	if s.Height() != 0 {
		t.Errorf("Height() = %d, want 0", s.Height())
	}
	if !s.Contains(s.Tip()) {
		t.Error("genesis tip should be in the store")
	}
	if !s.OnChain(s.Tip()) {
		t.Error("genesis should be on-chain")
	}
}

// S1: empty chain -> insert B1(parent=G). tip=B1, height=1.
func TestInsert_ExtendTip(t *testing.T) {
	s := New()
	g := s.Tip()
	b1 := child(t, g, 1)

	if err := s.Insert(b1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if s.Tip() != b1.Hash() {
		t.Error("tip should be b1")
	}
	if s.Height() != 1 {
		t.Errorf("Height() = %d, want 1", s.Height())
	}
	if !s.OnChain(g) || !s.OnChain(b1.Hash()) {
		t.Error("genesis and b1 should both be on-chain")
	}
}

// S2: fork. B1(parent=G), B2(parent=G), B3(parent=B2), B4(parent=B1),
// B5(parent=B3). Final on-chain = {G, B2, B3, B5}; tip=B5; height=3.
func TestInsert_Fork(t *testing.T) {
	s := New()
	g := s.Tip()

	b1 := child(t, g, 1)
	b2 := child(t, g, 2)
	b3 := child(t, b2.Hash(), 3)
	b4 := child(t, b1.Hash(), 4)
	b5 := child(t, b3.Hash(), 5)

	for _, b := range []block.Block{b1, b2, b3, b4, b5} {
		if err := s.Insert(b); err != nil {
			t.Fatalf("Insert %x: %v", b.Hash(), err)
		}
	}

	if s.Tip() != b5.Hash() {
		t.Error("tip should be b5")
	}
	if s.Height() != 3 {
		t.Errorf("Height() = %d, want 3", s.Height())
	}
	for _, h := range []types.Hash256{g, b2.Hash(), b3.Hash(), b5.Hash()} {
		if !s.OnChain(h) {
			t.Errorf("%x should be on-chain", h)
		}
	}
	for _, h := range []types.Hash256{b1.Hash(), b4.Hash()} {
		if s.OnChain(h) {
			t.Errorf("%x should not be on-chain", h)
		}
		if !s.Contains(h) {
			t.Errorf("%x should still be recorded in blocks", h)
		}
	}
}

// S3: reorg trigger. Insert B1(parent=G); then B2(parent=G),
// B3(parent=B2). Tip switches from B1 to B3.
func TestInsert_Reorg(t *testing.T) {
	s := New()
	g := s.Tip()

	b1 := child(t, g, 1)
	if err := s.Insert(b1); err != nil {
		t.Fatalf("Insert b1: %v", err)
	}

	b2 := child(t, g, 2)
	b3 := child(t, b2.Hash(), 3)
	if err := s.Insert(b2); err != nil {
		t.Fatalf("Insert b2: %v", err)
	}
	if err := s.Insert(b3); err != nil {
		t.Fatalf("Insert b3: %v", err)
	}

	if s.Tip() != b3.Hash() {
		t.Error("tip should switch to b3")
	}
	if s.Height() != 2 {
		t.Errorf("Height() = %d, want 2", s.Height())
	}
	if !s.OnChain(g) || !s.OnChain(b2.Hash()) || !s.OnChain(b3.Hash()) {
		t.Error("g, b2, b3 should be on-chain")
	}
	if s.OnChain(b1.Hash()) {
		t.Error("b1 should no longer be on-chain")
	}
	if !s.Contains(b1.Hash()) {
		t.Error("b1 should still be recorded in blocks")
	}
}

func TestInsert_EqualHeightKeepsFirstSeenTip(t *testing.T) {
	s := New()
	g := s.Tip()

	b1 := child(t, g, 1)
	b2 := child(t, g, 2)
	if err := s.Insert(b1); err != nil {
		t.Fatalf("Insert b1: %v", err)
	}
	if err := s.Insert(b2); err != nil {
		t.Fatalf("Insert b2: %v", err)
	}

	if s.Tip() != b1.Hash() {
		t.Error("equal-height arrival should not displace the first-seen tip")
	}
	if !s.Contains(b2.Hash()) {
		t.Error("b2 should still be recorded as a side branch")
	}
}

func TestInsert_UnknownParent(t *testing.T) {
	s := New()
	orphan := child(t, types.Hash256{0xde, 0xad}, 1)

	if err := s.Insert(orphan); !errors.Is(err, ErrUnknownParent) {
		t.Errorf("expected ErrUnknownParent, got: %v", err)
	}
	if s.Contains(orphan.Hash()) {
		t.Error("orphan must not be admitted to the store")
	}
}

// Property 3: insertion idempotence.
func TestInsert_Idempotent(t *testing.T) {
	s := New()
	g := s.Tip()
	b1 := child(t, g, 1)

	if err := s.Insert(b1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Insert(b1); err != nil {
		t.Fatalf("second Insert: %v", err)
	}
	if s.Height() != 1 {
		t.Errorf("Height() = %d, want 1 after duplicate insert", s.Height())
	}
}

// Property 4: orphan convergence via reorg order. Deliver the
// longer chain before the shorter one and confirm the same tip.
func TestInsert_ConvergesRegardlessOfOrder(t *testing.T) {
	s1 := New()
	g := s1.Tip()
	a1 := child(t, g, 1)
	b1 := child(t, g, 2)
	b2 := child(t, b1.Hash(), 3)

	s1.Insert(a1)
	s1.Insert(b1)
	s1.Insert(b2)

	s2 := New()
	s2.Insert(b1)
	s2.Insert(b2)
	s2.Insert(a1)

	if s1.Tip() != s2.Tip() {
		t.Error("final tip should not depend on insertion order")
	}
}

func TestDifficulty_ReadFromTip(t *testing.T) {
	s := New()
	if s.Difficulty() != genesisDifficulty() {
		t.Error("Difficulty() should read the genesis target before any insert")
	}
	b1 := child(t, s.Tip(), 1)
	s.Insert(b1)
	if s.Difficulty() != maxDifficulty() {
		t.Error("Difficulty() should read the new tip's target after Insert")
	}
}
