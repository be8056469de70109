// Package generator implements the transaction-generation loop: each
// iteration manufactures one random transaction, signs it with a
// freshly generated key pair, adds it to the mempool, and broadcasts
// its hash.
package generator

import (
	"crypto/rand"
	"sync/atomic"
	"time"

	"github.com/driftchain-network/driftchain/internal/control"
	"github.com/driftchain-network/driftchain/internal/mempool"
	"github.com/driftchain-network/driftchain/internal/wallet"
	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// Broadcaster fans a message out to every connected peer.
type Broadcaster interface {
	BroadcastNewTransactionHashes(hashes []types.Hash256)
}

// Stats reports basic generator throughput, mirroring
// original_source/src/generator.rs's own counters.
type Stats struct {
	Generated uint64
	StartedAt time.Time
}

// Generator runs the transaction-generation loop under a
// control.Loop: Paused/Running/ShutDown, driven by a Handle from
// another goroutine.
type Generator struct {
	loop        *control.Loop
	pool        *mempool.Pool
	addrs       *wallet.AddressPool // nil => destination is an arbitrary fresh address
	broadcaster Broadcaster

	generated atomic.Uint64
	startedAt time.Time
}

// New creates a Generator paired with the Handle used to start/stop
// it. addrs may be nil, in which case each transaction pays an
// arbitrary freshly generated address instead of one drawn from a
// known-address pool. The loop starts Paused.
func New(pool *mempool.Pool, addrs *wallet.AddressPool, broadcaster Broadcaster) (*Generator, control.Handle) {
	loop, handle := control.NewLoop()
	return &Generator{loop: loop, pool: pool, addrs: addrs, broadcaster: broadcaster, startedAt: time.Now()}, handle
}

// Run executes the generator loop until the control handle signals
// Exit. It blocks; the caller runs it on its own goroutine.
func (g *Generator) Run() {
	for {
		if g.loop.Poll() == control.ShutDown {
			return
		}

		signed, err := g.generate()
		if err == nil {
			g.pool.Add(signed)
			g.generated.Add(1)
			if g.broadcaster != nil {
				g.broadcaster.BroadcastNewTransactionHashes([]types.Hash256{signed.Hash()})
			}
		}

		if interval := g.loop.Interval(); interval > 0 {
			time.Sleep(interval)
		}
	}
}

// generate manufactures one random transaction: a random input
// (previous-output hash and index), a random id, and an output
// paying the chosen destination, signed by a freshly generated
// Ed25519 key pair. Grounded on original_source/src/generator.rs's
// per-iteration construction.
func (g *Generator) generate() (tx.SignedTx, error) {
	id, err := randomHash256()
	if err != nil {
		return tx.SignedTx{}, err
	}
	prevHash, err := randomHash256()
	if err != nil {
		return tx.SignedTx{}, err
	}
	var index [1]byte
	if _, err := rand.Read(index[:]); err != nil {
		return tx.SignedTx{}, err
	}

	dest, err := g.destination()
	if err != nil {
		return tx.SignedTx{}, err
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return tx.SignedTx{}, err
	}

	builder := tx.NewBuilder(id).AddInput(index[0], prevHash).AddOutput(1, dest)
	signed, err := builder.Sign(key)
	if err != nil {
		return tx.SignedTx{}, err
	}
	return *signed, nil
}

// destination picks the transaction's output address: a uniformly
// random entry from the known-address pool if one is configured (see
// original_source/src/generator.rs's bc.address_list), or an
// arbitrary fresh key pair's own address otherwise.
func (g *Generator) destination() (types.Address, error) {
	if g.addrs != nil && g.addrs.Len() > 0 {
		var idx [1]byte
		if _, err := rand.Read(idx[:]); err != nil {
			return types.Address{}, err
		}
		return g.addrs.At(int(idx[0])), nil
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		return types.Address{}, err
	}
	return key.Address(), nil
}

func randomHash256() (types.Hash256, error) {
	var h types.Hash256
	_, err := rand.Read(h[:])
	return h, err
}

// Stats returns the generator's running throughput counters.
func (g *Generator) Stats() Stats {
	return Stats{Generated: g.generated.Load(), StartedAt: g.startedAt}
}
