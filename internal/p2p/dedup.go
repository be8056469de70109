package p2p

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"
)

// dedupCacheSize bounds the number of recently-seen frame fingerprints
// kept at the transport's ingestion edge. GossipSub guarantees every
// subscriber sees each publish at least once per connected path, so
// duplicate frames are the normal case, not an error (spec.md §7) —
// this cache drops them before they reach the gossip worker pool
// instead of letting Worker.processBlock's duplicate check (which
// requires a chain-store lookup) absorb the cost for every relay hop.
const dedupCacheSize = 4096

// dedupCache is a non-consensus LRU of BLAKE3 fingerprints over raw
// inbound frame bytes. It never influences chain state — only which
// frames are worth decoding and handing to the worker pool at all.
type dedupCache struct {
	seen *lru.Cache[[32]byte, struct{}]
}

func newDedupCache() *dedupCache {
	c, _ := lru.New[[32]byte, struct{}](dedupCacheSize)
	return &dedupCache{seen: c}
}

// seenBefore reports whether data was already recorded, and records it
// if not. A single call does both so the check-then-insert is atomic
// with respect to the cache's own lock.
func (d *dedupCache) seenBefore(data []byte) bool {
	fp := blake3.Sum256(data)
	ok, _ := d.seen.ContainsOrAdd(fp, struct{}{})
	return ok
}
