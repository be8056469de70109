package gossip

import (
	"strconv"

	"github.com/driftchain-network/driftchain/pkg/block"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// PeerHandle sends a message to one specific peer (spec §6's
// PeerHandle::write collaborator contract).
type PeerHandle interface {
	Write(msg Message) error
}

// ServerHandle fans a message out to every connected peer (spec §6's
// ServerHandle::broadcast collaborator contract).
type ServerHandle interface {
	Broadcast(msg Message)
}

// Frame pairs an inbound wire frame with the peer it arrived from, the
// shape spec §6 describes for the frame inbound channel.
type Frame struct {
	Data []byte
	Peer PeerHandle
}

// ChainStore is the subset of internal/chain.Store the gossip worker
// needs.
type ChainStore interface {
	Contains(hash types.Hash256) bool
	Get(hash types.Hash256) (block.Block, bool)
	Insert(blk block.Block) error
}

// Worker processes one inbound frame at a time and owns a private
// orphan buffer: a map from parent hash to the block awaiting that
// parent (spec §4.5). One entry per parent hash, per spec.md's Design
// Notes — a race between two children of the same parent lets the
// last writer win; the lost sibling re-arrives via gossip.
type Worker struct {
	chain   ChainStore
	server  ServerHandle
	orphans map[types.Hash256]block.Block
}

// NewWorker creates a single gossip worker.
func NewWorker(chain ChainStore, server ServerHandle) *Worker {
	return &Worker{chain: chain, server: server, orphans: make(map[types.Hash256]block.Block)}
}

// HandleFrame decodes and dispatches one inbound frame. A malformed
// frame is dropped; this is success, not an error the caller must act
// on (spec §7).
func (w *Worker) HandleFrame(f Frame) {
	msg, err := Unmarshal(f.Data)
	if err != nil {
		return
	}
	w.Handle(msg, f.Peer)
}

// Handle dispatches one already-decoded message.
func (w *Worker) Handle(msg Message, peer PeerHandle) {
	switch msg.Tag {
	case TagPing:
		peer.Write(PongMsg(strconv.FormatUint(msg.PingNonce, 10)))
	case TagPong:
		// Recognized and dropped; nothing to do here.
	case TagNewBlockHashes:
		w.handleNewBlockHashes(msg.Hashes, peer)
	case TagGetBlocks:
		w.handleGetBlocks(msg.Hashes, peer)
	case TagBlocks:
		w.handleBlocks(msg.Blocks, peer)
	case TagNewTransactionHashes:
		// Recognized and dropped; the worker never requests the
		// announced transactions with GetTransactions.
	case TagGetTransactions:
		// The worker has no local transaction store to serve from;
		// the request is dropped unanswered.
	case TagTransactions:
		// Dropped; no local admission path is wired here (mempool
		// admission happens in the generator loop).
	}
}

func (w *Worker) handleNewBlockHashes(hashes []types.Hash256, peer PeerHandle) {
	var unknown []types.Hash256
	for _, h := range hashes {
		if !w.chain.Contains(h) {
			unknown = append(unknown, h)
		}
	}
	if len(unknown) > 0 {
		peer.Write(GetBlocksMsg(unknown))
	}
}

func (w *Worker) handleGetBlocks(hashes []types.Hash256, peer PeerHandle) {
	var found []block.Block
	for _, h := range hashes {
		if blk, ok := w.chain.Get(h); ok {
			found = append(found, blk)
		}
	}
	if len(found) > 0 {
		peer.Write(BlocksMsg(found))
	}
}

// handleBlocks runs the validation and insertion pipeline in the
// order spec §4.5 mandates: duplicate check, PoW check, parent check,
// commit, orphan chaining — for each block in the batch, then
// broadcasts the accumulated set of newly committed hashes once.
func (w *Worker) handleBlocks(blocks []block.Block, peer PeerHandle) {
	var announced []types.Hash256
	for _, blk := range blocks {
		w.processBlock(blk, peer, &announced)
	}
	if len(announced) > 0 && w.server != nil {
		w.server.Broadcast(NewBlockHashesMsg(announced))
	}
}

func (w *Worker) processBlock(blk block.Block, peer PeerHandle, announced *[]types.Hash256) {
	hash := blk.Hash()
	if w.chain.Contains(hash) {
		return
	}
	if err := blk.ValidatePoW(); err != nil {
		return
	}
	if !w.chain.Contains(blk.Header.Parent) {
		w.orphans[blk.Header.Parent] = blk
		peer.Write(GetBlocksMsg([]types.Hash256{blk.Header.Parent}))
		return
	}
	if err := w.chain.Insert(blk); err != nil {
		return
	}
	*announced = append(*announced, hash)
	w.drainOrphans(hash, announced)
}

// drainOrphans pops and inserts descendants of the just-committed
// block, one linear chain per call, following spec §4.5 step 5.
func (w *Worker) drainOrphans(cursor types.Hash256, announced *[]types.Hash256) {
	for {
		child, ok := w.orphans[cursor]
		if !ok {
			return
		}
		delete(w.orphans, cursor)
		if err := w.chain.Insert(child); err != nil {
			return
		}
		cursor = child.Hash()
		*announced = append(*announced, cursor)
	}
}
