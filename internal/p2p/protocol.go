package p2p

import (
	"github.com/libp2p/go-libp2p/core/protocol"
)

// GossipTopic is the single GossipSub topic carrying encoded
// gossip.Message frames: NewBlockHashes/NewTransactionHashes
// announcements and anything else a peer chooses to broadcast rather
// than send to one peer directly.
const GossipTopic = "/driftchain/gossip/1.0.0"

// DirectProtocol is the stream protocol ID used for messages addressed
// to one specific peer: Pong, GetBlocks/Blocks, GetTransactions/
// Transactions replies — spec §6's PeerHandle::write collaborator.
const DirectProtocol = protocol.ID("/driftchain/direct/1.0.0")

// Handshake protocol constants.
const (
	// HandshakeProtocol is the stream protocol ID for peer compatibility checking.
	HandshakeProtocol = protocol.ID("/driftchain/handshake/1.0.0")

	// ProtocolVersion is the current protocol version advertised during handshake.
	ProtocolVersion uint32 = 1

	// MinProtocolVersion is the minimum protocol version we accept from peers.
	MinProtocolVersion uint32 = 1
)
