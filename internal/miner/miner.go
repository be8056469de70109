// Package miner implements the block-production loop: re-read the
// chain tip and difficulty every iteration, assemble a candidate from
// the mempool, search one nonce, and insert on success.
package miner

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/driftchain-network/driftchain/internal/control"
	"github.com/driftchain-network/driftchain/internal/mempool"
	"github.com/driftchain-network/driftchain/pkg/block"
	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// maxBlockTxs bounds how many pending transactions a single mined
// block draws from the mempool.
const maxBlockTxs = 64

// ChainStore is the subset of internal/chain.Store the miner needs.
type ChainStore interface {
	Tip() types.Hash256
	Difficulty() types.Hash256
	Insert(blk block.Block) error
}

// Broadcaster fans a message out to every connected peer.
type Broadcaster interface {
	BroadcastNewBlockHashes(hashes []types.Hash256)
}

// Stats reports basic mining throughput, mirroring the mined/inserted
// counters original_source/src/miner.rs keeps for its own logging.
type Stats struct {
	Mined     uint64
	Inserted  uint64
	StartedAt time.Time
}

// Miner runs the mining loop under a control.Loop: Paused/Running/
// ShutDown, driven by a Handle from another goroutine.
type Miner struct {
	loop        *control.Loop
	chain       ChainStore
	pool        *mempool.Pool
	broadcaster Broadcaster

	mined     atomic.Uint64
	inserted  atomic.Uint64
	startedAt time.Time
}

// New creates a Miner paired with the Handle used to start/stop it.
// The loop starts Paused; call handle.Start to begin mining.
func New(chain ChainStore, pool *mempool.Pool, broadcaster Broadcaster) (*Miner, control.Handle) {
	loop, handle := control.NewLoop()
	return &Miner{loop: loop, chain: chain, pool: pool, broadcaster: broadcaster, startedAt: time.Now()}, handle
}

// Run executes the mining loop until the control handle signals Exit.
// It blocks; the caller runs it on its own goroutine.
func (m *Miner) Run() {
	for {
		if m.loop.Poll() == control.ShutDown {
			return
		}

		parent := m.chain.Tip()
		difficulty := m.chain.Difficulty()

		content, err := m.selectContent()
		if err != nil {
			continue
		}
		merkle := block.ComputeMerkleRoot(block.ContentHashes(content))

		header := block.Header{
			Parent:     parent,
			Nonce:      rand.Uint32(),
			Difficulty: difficulty,
			Timestamp:  uint64(time.Now().UnixMilli()),
			MerkleRoot: merkle,
		}
		candidate := block.NewBlock(header, content)
		m.mined.Add(1)

		hash := candidate.Hash()
		if hash.LessOrEqual(difficulty) {
			if err := m.chain.Insert(candidate); err == nil {
				m.inserted.Add(1)
				m.pool.RemoveAll(content)
				if m.broadcaster != nil {
					m.broadcaster.BroadcastNewBlockHashes([]types.Hash256{hash})
				}
			}
		}

		if interval := m.loop.Interval(); interval > 0 {
			time.Sleep(interval)
		}
	}
}

// selectContent returns a non-empty content set for the next
// candidate block: a mempool selection if one is available, or a
// single freshly generated transaction otherwise (spec.md's open
// question on content selection permits either; this implementation
// prefers the mempool and falls back so a miner with no generator
// peer still produces valid blocks).
func (m *Miner) selectContent() ([]tx.SignedTx, error) {
	if selected := m.pool.Select(maxBlockTxs); len(selected) > 0 {
		return selected, nil
	}
	fallback, err := tx.RandomSignedTx()
	if err != nil {
		return nil, err
	}
	return []tx.SignedTx{fallback}, nil
}

// Stats returns the miner's running throughput counters.
func (m *Miner) Stats() Stats {
	return Stats{Mined: m.mined.Load(), Inserted: m.inserted.Load(), StartedAt: m.startedAt}
}
