package mempool

import (
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

func TestPool_AddAndContains(t *testing.T) {
	p := New()
	signed := testSignedTx(t, 0x01)

	if p.Contains(signed.Hash()) {
		t.Fatal("Contains should be false before Add")
	}
	p.Add(signed)
	if !p.Contains(signed.Hash()) {
		t.Fatal("Contains should be true after Add")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPool_Add_Idempotent(t *testing.T) {
	p := New()
	signed := testSignedTx(t, 0x01)

	p.Add(signed)
	p.Add(signed)
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after duplicate Add", p.Len())
	}
}

func TestPool_Remove(t *testing.T) {
	p := New()
	signed := testSignedTx(t, 0x01)
	p.Add(signed)

	p.Remove(signed.Hash())
	if p.Contains(signed.Hash()) {
		t.Error("Contains should be false after Remove")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestPool_Remove_AbsentIsNoOp(t *testing.T) {
	p := New()
	p.Remove(types.Hash256{0xff})
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestPool_RemoveAll(t *testing.T) {
	p := New()
	tx1 := testSignedTx(t, 0x01)
	tx2 := testSignedTx(t, 0x02)
	p.Add(tx1)
	p.Add(tx2)

	p.RemoveAll([]tx.SignedTx{tx1})
	if p.Contains(tx1.Hash()) {
		t.Error("tx1 should be removed")
	}
	if !p.Contains(tx2.Hash()) {
		t.Error("tx2 should still be present")
	}
}

func TestPool_Get(t *testing.T) {
	p := New()
	signed := testSignedTx(t, 0x01)
	p.Add(signed)

	got, ok := p.Get(signed.Hash())
	if !ok {
		t.Fatal("Get should find the added transaction")
	}
	if got.Hash() != signed.Hash() {
		t.Error("Get returned wrong transaction")
	}

	_, ok = p.Get(types.Hash256{0xff})
	if ok {
		t.Error("Get should not find an unknown hash")
	}
}

func TestPool_Select(t *testing.T) {
	p := New()
	tx1 := testSignedTx(t, 0x01)
	tx2 := testSignedTx(t, 0x02)
	p.Add(tx1)
	p.Add(tx2)

	selected := p.Select(1)
	if len(selected) != 1 {
		t.Fatalf("Select(1) returned %d entries, want 1", len(selected))
	}
	if p.Len() != 2 {
		t.Errorf("Select should not remove entries, Len() = %d, want 2", p.Len())
	}

	all := p.Select(10)
	if len(all) != 2 {
		t.Errorf("Select(10) returned %d entries, want 2", len(all))
	}
}

func TestPool_Select_Empty(t *testing.T) {
	p := New()
	if selected := p.Select(5); selected != nil {
		t.Errorf("Select() on empty pool = %v, want nil", selected)
	}
}

func TestPool_Drain(t *testing.T) {
	p := New()
	p.Add(testSignedTx(t, 0x01))
	p.Add(testSignedTx(t, 0x02))

	drained := p.Drain()
	if len(drained) != 2 {
		t.Fatalf("Drain() returned %d entries, want 2", len(drained))
	}
	if p.Len() != 0 {
		t.Errorf("pool should be empty after Drain, Len() = %d", p.Len())
	}
}

func TestPool_Drain_Empty(t *testing.T) {
	p := New()
	if drained := p.Drain(); drained != nil {
		t.Errorf("Drain() on empty pool = %v, want nil", drained)
	}
}

func TestPool_Hashes(t *testing.T) {
	p := New()
	tx1 := testSignedTx(t, 0x01)
	tx2 := testSignedTx(t, 0x02)
	p.Add(tx1)
	p.Add(tx2)

	hashes := p.Hashes()
	if len(hashes) != 2 {
		t.Fatalf("Hashes() returned %d, want 2", len(hashes))
	}
}
