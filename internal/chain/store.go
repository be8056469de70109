// Package chain implements the in-memory, fork-aware block store.
package chain

import (
	"errors"
	"sync"

	"github.com/driftchain-network/driftchain/pkg/block"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// ErrUnknownParent is returned by Insert when the block's parent has
// not been seen by the store. Orphans are never admitted; the caller
// (the gossip worker) is responsible for buffering them.
var ErrUnknownParent = errors.New("chain: parent block not found")

type entry struct {
	block  block.Block
	height uint32
}

// Store is the fork-aware block index. It tracks every block it has
// ever accepted, which subset of those blocks forms the current
// on-chain path from genesis to tip, and the tip itself. Access is
// serialized by a single mutex held for the whole of every method.
type Store struct {
	mu      sync.Mutex
	blocks  map[types.Hash256]entry
	onChain map[types.Hash256]bool
	tip     types.Hash256
	height  uint32
}

// New constructs a chain store seeded with the deterministic genesis
// block: parent is the all-zero hash, height 0, timestamp 0, an easy
// fixed difficulty target, and a single seeded transaction whose only
// purpose is to produce a valid Merkle root.
func New() *Store {
	genesis := genesisBlock()
	hash := genesis.Hash()

	return &Store{
		blocks:  map[types.Hash256]entry{hash: {block: genesis, height: 0}},
		onChain: map[types.Hash256]bool{hash: true},
		tip:     hash,
		height:  0,
	}
}

// Insert adds a block to the store. The block's parent must already
// be known; otherwise Insert returns ErrUnknownParent and leaves the
// store unchanged.
//
// Three cases, decided by the new block's height relative to the
// current tip height:
//
//  1. Extend tip: the block's parent is the current tip. Appended
//     directly, tip and height advance.
//  2. Reorg: the new height is strictly greater than the current
//     height but the block does not extend the tip. The ancestor path
//     back to the fork point is walked, the stale on-chain suffix is
//     unmarked, and the new path (fork point exclusive) is marked
//     on-chain in genesis-to-tip order.
//  3. Side branch: the new height does not exceed the current height.
//     The block is recorded in the index only; on-chain set and tip
//     are untouched.
//
// Equal height never displaces the existing tip: first-seen wins.
func (s *Store) Insert(blk block.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parentHash := blk.Header.Parent
	parent, ok := s.blocks[parentHash]
	if !ok {
		return ErrUnknownParent
	}

	hash := blk.Hash()
	if _, exists := s.blocks[hash]; exists {
		return nil
	}

	newHeight := parent.height + 1
	s.blocks[hash] = entry{block: blk, height: newHeight}

	switch {
	case parentHash == s.tip:
		s.onChain[hash] = true
		s.tip = hash
		s.height = newHeight

	case newHeight > s.height:
		s.reorgTo(hash, newHeight)

	default:
		// Side branch: recorded above, chain state unchanged.
	}

	return nil
}

// reorgTo switches the on-chain path to end at newTip, which must
// already be present in s.blocks at the given height. Must be called
// with s.mu held.
func (s *Store) reorgTo(newTip types.Hash256, newHeight uint32) {
	// Walk from newTip toward genesis, collecting ancestors until we
	// hit a hash already on-chain (the fork point).
	var ancestors []types.Hash256
	cursor := newTip
	for !s.onChain[cursor] {
		ancestors = append(ancestors, cursor)
		cursor = s.blocks[cursor].block.Header.Parent
	}
	forkPoint := cursor

	// Unmark the stale on-chain suffix from the old tip back to (but
	// not including) the fork point.
	old := s.tip
	for old != forkPoint {
		delete(s.onChain, old)
		old = s.blocks[old].block.Header.Parent
	}

	// Mark the collected ancestors on-chain in genesis-to-tip order
	// (ancestors was collected tip-to-fork-point, so reverse it).
	for i := len(ancestors) - 1; i >= 0; i-- {
		s.onChain[ancestors[i]] = true
	}

	s.tip = newTip
	s.height = newHeight
}

// Tip returns the hash of the current chain tip.
func (s *Store) Tip() types.Hash256 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tip
}

// Height returns the height of the current chain tip.
func (s *Store) Height() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// Difficulty returns the difficulty target recorded in the tip's header.
func (s *Store) Difficulty() types.Hash256 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks[s.tip].block.Header.Difficulty
}

// Contains reports whether a block with the given hash is known to
// the store, on-chain or not.
func (s *Store) Contains(hash types.Hash256) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blocks[hash]
	return ok
}

// Get retrieves a block by hash.
func (s *Store) Get(hash types.Hash256) (block.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blocks[hash]
	if !ok {
		return block.Block{}, false
	}
	return e.block, true
}

// HeightOf returns the height of a known block.
func (s *Store) HeightOf(hash types.Hash256) (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blocks[hash]
	if !ok {
		return 0, false
	}
	return e.height, true
}

// OnChain reports whether a known block is currently part of the
// active path from genesis to tip.
func (s *Store) OnChain(hash types.Hash256) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onChain[hash]
}
