package p2p

import (
	"io"

	"github.com/driftchain-network/driftchain/internal/gossip"
	klog "github.com/driftchain-network/driftchain/internal/log"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
)

// registerDirectHandler sets up the stream handler for messages
// addressed to this node specifically (Pong, GetBlocks/Blocks replies,
// GetTransactions/Transactions replies). One message per stream: the
// sender writes the frame then half-closes, so the handler just reads
// to EOF instead of needing its own length prefix.
func (n *Node) registerDirectHandler() {
	n.host.SetStreamHandler(DirectProtocol, func(stream network.Stream) {
		defer stream.Close()
		from := stream.Conn().RemotePeer()
		data, err := io.ReadAll(io.LimitReader(stream, maxDirectFrameBytes))
		if err != nil {
			return
		}
		n.ingest(data, from)
	})
}

// ingest deduplicates and submits one inbound frame — whether it
// arrived over GossipSub or a direct stream — to the gossip worker
// pool, pairing it with a PeerHandle the worker can reply through.
func (n *Node) ingest(data []byte, from peer.ID) {
	if n.dedup != nil && n.dedup.seenBefore(data) {
		return
	}
	if n.pool == nil {
		return
	}
	n.pool.Submit(gossip.Frame{Data: data, Peer: directPeerHandle{node: n, id: from}})
}

// directPeerHandle implements gossip.PeerHandle by opening a fresh
// stream to one peer on DirectProtocol for every targeted write —
// there is no persistent connection to keep alive between messages.
type directPeerHandle struct {
	node *Node
	id   peer.ID
}

// Write marshals msg and sends it over a new direct stream to the peer.
func (p directPeerHandle) Write(msg gossip.Message) error {
	data, err := msg.Marshal()
	if err != nil {
		return err
	}
	stream, err := p.node.host.NewStream(p.node.ctx, p.id, DirectProtocol)
	if err != nil {
		klog.WithComponent("p2p").Debug().Err(err).Str("peer", p.id.String()[:16]).Msg("open direct stream failed")
		return err
	}
	defer stream.Close()
	if _, err := stream.Write(data); err != nil {
		return err
	}
	return stream.CloseWrite()
}
