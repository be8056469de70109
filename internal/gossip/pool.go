package gossip

// Pool runs N worker goroutines sharing one inbound frame channel
// (spec §4.5: "a pool of N worker tasks sharing one inbound frame
// channel"). Each worker owns its own orphan buffer; which worker
// handles a given frame is arbitrary, so a block and the arrival of
// its parent may land on different workers — acceptable per spec.md's
// Design Notes, since the chain store's own mutex serializes inserts
// and an orphan's parent re-announces itself via GetBlocks regardless
// of which worker is holding it.
type Pool struct {
	inbox chan Frame
}

// NewPool starts n workers reading from a shared inbound channel of
// the given buffer size.
func NewPool(n, bufferSize int, chain ChainStore, server ServerHandle) *Pool {
	inbox := make(chan Frame, bufferSize)
	for i := 0; i < n; i++ {
		w := NewWorker(chain, server)
		go func() {
			for f := range inbox {
				w.HandleFrame(f)
			}
		}()
	}
	return &Pool{inbox: inbox}
}

// Submit enqueues an inbound frame for processing by the next free
// worker.
func (p *Pool) Submit(f Frame) {
	p.inbox <- f
}
