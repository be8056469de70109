// Command devnet boots a 2-node local network from scratch: one miner,
// one follower, connected directly over libp2p with no discovery. The
// miner produces blocks on a short interval and gossips them; the
// follower applies them purely from the wire. After a fixed run it
// checks both chains converged on the same tip. Ctrl+C for early exit.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftchain-network/driftchain/internal/chain"
	"github.com/driftchain-network/driftchain/internal/control"
	"github.com/driftchain-network/driftchain/internal/gossip"
	klog "github.com/driftchain-network/driftchain/internal/log"
	"github.com/driftchain-network/driftchain/internal/mempool"
	"github.com/driftchain-network/driftchain/internal/miner"
	"github.com/driftchain-network/driftchain/internal/p2p"
	libp2ppeer "github.com/libp2p/go-libp2p/core/peer"
)

const (
	runFor       = 30 * time.Second
	mineInterval = 200 * time.Millisecond
)

// node bundles one logical peer's components.
type node struct {
	name  string
	chain *chain.Store
	pool  *mempool.Pool
	p2p   *p2p.Node
	miner *miner.Miner
	mh    control.Handle
}

func main() {
	klog.Init("info", false, "")
	logger := klog.WithComponent("devnet")
	logger.Info().Msg("Starting 2-node local devnet")

	n1 := buildNode("node-1")
	n2 := buildNode("node-2")

	if err := n1.p2p.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start node-1 p2p")
	}
	if err := n2.p2p.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start node-2 p2p")
	}
	defer n1.p2p.Stop()
	defer n2.p2p.Stop()

	connect(n1.p2p, n2.p2p)
	time.Sleep(500 * time.Millisecond) // let the GossipSub mesh settle.

	logger.Info().
		Int("node1_peers", n1.p2p.PeerCount()).
		Int("node2_peers", n2.p2p.PeerCount()).
		Msg("Nodes connected")

	go n1.miner.Run()
	go n2.miner.Run()
	n1.mh.Start(mineInterval) // node-2's handle is never Started: it only follows.

	ctx, cancel := context.WithTimeout(context.Background(), runFor)
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}
	n1.mh.Exit()
	n2.mh.Exit()
	time.Sleep(1 * time.Second) // let any in-flight block finish gossiping.

	h1, h2 := n1.chain.Height(), n2.chain.Height()
	t1, t2 := n1.chain.Tip(), n2.chain.Tip()
	logger.Info().
		Uint32("node1_height", h1).Uint32("node2_height", h2).
		Str("node1_tip", t1.String()[:16]+"...").
		Str("node2_tip", t2.String()[:16]+"...").
		Msg("Final chain state")

	if h1 == h2 && t1 == t2 && h1 > 0 {
		logger.Info().Msg("SUCCESS: both nodes converged")
		return
	}
	logger.Error().Msg("FAILURE: chains did not converge")
	os.Exit(1)
}

func buildNode(name string) *node {
	ch := chain.New()
	pool := mempool.New()

	p2pNode := p2p.New(p2p.Config{
		ListenAddr: "127.0.0.1",
		Port:       0, // OS-assigned.
		NoDiscover: true,
		NetworkID:  "devnet",
	})
	p2pNode.SetGenesisHash(ch.Tip())
	p2pNode.SetHeightFn(func() uint64 { return uint64(ch.Height()) })

	gossipPool := gossip.NewPool(2, 64, ch, p2pNode)
	p2pNode.SetPool(gossipPool)

	m, mh := miner.New(ch, pool, p2pNode)

	return &node{name: name, chain: ch, pool: pool, p2p: p2pNode, miner: m, mh: mh}
}

// connect has b dial a directly, bypassing discovery entirely.
func connect(a, b *p2p.Node) {
	info := libp2ppeer.AddrInfo{ID: a.Host().ID(), Addrs: a.Host().Addrs()}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	b.Host().Connect(ctx, info)
}
