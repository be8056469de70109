package p2p

import (
	"github.com/driftchain-network/driftchain/internal/gossip"
	klog "github.com/driftchain-network/driftchain/internal/log"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// joinGossipTopic subscribes to the single GossipSub topic carrying
// encoded gossip.Message frames.
func (n *Node) joinGossipTopic() error {
	topic, err := n.pubsub.Join(GossipTopic)
	if err != nil {
		return err
	}
	sub, err := topic.Subscribe()
	if err != nil {
		topic.Close()
		return err
	}
	n.topic = topic
	n.sub = sub
	return nil
}

// Broadcast implements gossip.ServerHandle by publishing msg to every
// subscriber of GossipTopic. GossipSub handles the actual fan-out and
// re-delivery to peers this node isn't directly connected to.
func (n *Node) Broadcast(msg gossip.Message) {
	if n.topic == nil {
		return
	}
	data, err := msg.Marshal()
	if err != nil {
		klog.WithComponent("p2p").Warn().Err(err).Msg("discarding unmarshalable broadcast")
		return
	}
	if err := n.topic.Publish(n.ctx, data); err != nil {
		klog.WithComponent("p2p").Debug().Err(err).Msg("gossip publish failed")
	}
}

// BroadcastNewBlockHashes lets internal/miner depend only on a narrow
// Broadcaster interface (hashes in, nothing out) instead of on
// gossip.Message or libp2p directly.
func (n *Node) BroadcastNewBlockHashes(hashes []types.Hash256) {
	n.Broadcast(gossip.NewBlockHashesMsg(hashes))
}

// BroadcastNewTransactionHashes is internal/generator's equivalent
// entry point for announcing newly admitted transactions.
func (n *Node) BroadcastNewTransactionHashes(hashes []types.Hash256) {
	n.Broadcast(gossip.NewTransactionHashesMsg(hashes))
}

// gossipReadLoop pulls every inbound GossipSub message for GossipTopic
// and hands it to ingest, same as a message arriving over a direct
// stream.
func (n *Node) gossipReadLoop() {
	for {
		msg, err := n.sub.Next(n.ctx)
		if err != nil {
			return // n.ctx cancelled, or subscription closed on Stop.
		}
		if msg.ReceivedFrom == n.host.ID() {
			continue
		}
		n.addPeer(msg.ReceivedFrom)
		n.ingest(msg.Data, msg.ReceivedFrom)
	}
}
