// Package mempool manages pending transactions waiting for block inclusion.
package mempool

import (
	"sync"

	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// Pool holds unconfirmed signed transactions, keyed by SignedTx hash.
// There is no eviction policy: callers bound growth externally.
type Pool struct {
	mu  sync.RWMutex
	txs map[types.Hash256]tx.SignedTx
}

// New creates an empty mempool.
func New() *Pool {
	return &Pool{
		txs: make(map[types.Hash256]tx.SignedTx),
	}
}

// Add inserts a signed transaction. Idempotent by hash: adding the
// same transaction twice is a no-op.
func (p *Pool) Add(signed tx.SignedTx) {
	h := signed.Hash()
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.txs[h]; exists {
		return
	}
	p.txs[h] = signed
}

// Remove deletes a transaction by hash. No-op if absent.
func (p *Pool) Remove(hash types.Hash256) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.txs, hash)
}

// RemoveAll removes every transaction in the given set, e.g. the
// content of a newly committed block.
func (p *Pool) RemoveAll(content []tx.SignedTx) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, signed := range content {
		delete(p.txs, signed.Hash())
	}
}

// Len returns the number of pending transactions.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.txs)
}

// Contains reports whether a transaction with the given hash is pending.
func (p *Pool) Contains(hash types.Hash256) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, exists := p.txs[hash]
	return exists
}

// Get retrieves a pending transaction by hash.
func (p *Pool) Get(hash types.Hash256) (tx.SignedTx, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	signed, exists := p.txs[hash]
	return signed, exists
}

// Select returns up to limit pending transactions without removing
// them, for speculative block assembly. The caller commits the
// selection with RemoveAll only once the candidate block is actually
// inserted — a failed PoW attempt must not cost the pool its content.
func (p *Pool) Select(limit int) []tx.SignedTx {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if limit <= 0 || len(p.txs) == 0 {
		return nil
	}
	if limit > len(p.txs) {
		limit = len(p.txs)
	}
	out := make([]tx.SignedTx, 0, limit)
	for _, signed := range p.txs {
		if len(out) == limit {
			break
		}
		out = append(out, signed)
	}
	return out
}

// Drain returns all pending transactions and empties the pool.
// The mining loop does not use it; it calls Select and RemoveAll.
func (p *Pool) Drain() []tx.SignedTx {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.txs) == 0 {
		return nil
	}
	out := make([]tx.SignedTx, 0, len(p.txs))
	for _, signed := range p.txs {
		out = append(out, signed)
	}
	p.txs = make(map[types.Hash256]tx.SignedTx)
	return out
}

// Hashes returns the hashes of all pending transactions.
func (p *Pool) Hashes() []types.Hash256 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	hashes := make([]types.Hash256, 0, len(p.txs))
	for h := range p.txs {
		hashes = append(hashes, h)
	}
	return hashes
}
