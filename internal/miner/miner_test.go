package miner

import (
	"sync"
	"testing"
	"time"

	"github.com/driftchain-network/driftchain/internal/mempool"
	"github.com/driftchain-network/driftchain/pkg/block"
	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

func maxDifficulty() types.Hash256 {
	var h types.Hash256
	for i := range h {
		h[i] = 0xff
	}
	return h
}

// fakeChain accepts every block unless rejectAll is set, without
// checking its parent; wide-open difficulty means the miner's first nonce attempt always
// satisfies the PoW check, so tests don't depend on how many nonces
// happen to be tried.
type fakeChain struct {
	mu        sync.Mutex
	tip       types.Hash256
	inserted  []block.Block
	rejectAll bool
}

func (c *fakeChain) Tip() types.Hash256 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tip
}

func (c *fakeChain) Difficulty() types.Hash256 {
	return maxDifficulty()
}

func (c *fakeChain) Insert(blk block.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rejectAll {
		return errRejected
	}
	c.inserted = append(c.inserted, blk)
	c.tip = blk.Hash()
	return nil
}

func (c *fakeChain) insertedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inserted)
}

var errRejected = fakeErr("rejected")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls [][]types.Hash256
}

func (b *fakeBroadcaster) BroadcastNewBlockHashes(hashes []types.Hash256) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, hashes)
}

func (b *fakeBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func testSignedTx(t *testing.T, seed byte) tx.SignedTx {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	txn := tx.Transaction{
		ID:      types.Hash256{seed},
		Inputs:  []tx.Input{{Index: 0, PreviousHash: types.Hash256{seed, 0x01}}},
		Outputs: []tx.Output{{Balance: 1, Address: types.Address{seed}}},
	}
	signed, err := tx.Sign(txn, key)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	return *signed
}

func waitForInsert(t *testing.T, chain *fakeChain, count int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if chain.insertedCount() >= count {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d inserted block(s), got %d", count, chain.insertedCount())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestMiner_MinesFromMempool(t *testing.T) {
	chain := &fakeChain{}
	pool := mempool.New()
	pool.Add(testSignedTx(t, 0x01))
	broadcaster := &fakeBroadcaster{}

	m, handle := New(chain, pool, broadcaster)
	go m.Run()
	defer handle.Exit()

	handle.Start(0)
	waitForInsert(t, chain, 1)

	if pool.Len() != 0 {
		t.Errorf("mempool should be drained of the committed tx, Len() = %d", pool.Len())
	}
	if broadcaster.count() == 0 {
		t.Error("expected at least one NewBlockHashes broadcast")
	}
}

func TestMiner_FallsBackToRandomTxWhenMempoolEmpty(t *testing.T) {
	chain := &fakeChain{}
	pool := mempool.New()

	m, handle := New(chain, pool, nil)
	go m.Run()
	defer handle.Exit()

	handle.Start(0)
	waitForInsert(t, chain, 1)

	if len(chain.inserted[0].Content) != 1 {
		t.Errorf("fallback block should carry exactly one transaction, got %d", len(chain.inserted[0].Content))
	}
}

func TestMiner_RereadsTipEveryIteration(t *testing.T) {
	chain := &fakeChain{}
	pool := mempool.New()

	m, handle := New(chain, pool, nil)
	go m.Run()
	defer handle.Exit()

	handle.Start(0)
	waitForInsert(t, chain, 2)

	if chain.inserted[1].Header.Parent != chain.inserted[0].Hash() {
		t.Error("second mined block should extend the first, not fork from genesis")
	}
}

func TestMiner_Stats(t *testing.T) {
	chain := &fakeChain{}
	pool := mempool.New()

	m, handle := New(chain, pool, nil)
	go m.Run()
	defer handle.Exit()

	handle.Start(0)
	waitForInsert(t, chain, 1)

	stats := m.Stats()
	if stats.Mined == 0 {
		t.Error("Stats().Mined should be > 0 after mining")
	}
	if stats.Inserted == 0 {
		t.Error("Stats().Inserted should be > 0 after a successful insert")
	}
}
