// Package gossip implements the wire protocol's message union and the
// worker pool that validates and applies inbound blocks and
// transactions (spec §4.5, §6). It is transport-agnostic: internal/p2p
// supplies frames and PeerHandle/ServerHandle implementations over
// libp2p; this package only knows about Message and the chain/mempool
// side effects of handling one.
package gossip

import (
	"encoding/binary"
	"fmt"

	"github.com/driftchain-network/driftchain/pkg/block"
	"github.com/driftchain-network/driftchain/pkg/tx"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// Tag identifies a Message's variant in the wire tagged union.
type Tag uint8

const (
	TagPing Tag = iota + 1
	TagPong
	TagNewBlockHashes
	TagGetBlocks
	TagBlocks
	TagNewTransactionHashes
	TagGetTransactions
	TagTransactions
)

// Message is the wire protocol's tagged union (spec §6): exactly the
// field(s) matching Tag are meaningful.
type Message struct {
	Tag Tag

	PingNonce uint64
	PongNonce string
	Hashes    []types.Hash256
	Blocks    []block.Block
	Txs       []tx.SignedTx
}

func PingMsg(nonce uint64) Message                   { return Message{Tag: TagPing, PingNonce: nonce} }
func PongMsg(nonce string) Message                   { return Message{Tag: TagPong, PongNonce: nonce} }
func NewBlockHashesMsg(hashes []types.Hash256) Message {
	return Message{Tag: TagNewBlockHashes, Hashes: hashes}
}
func GetBlocksMsg(hashes []types.Hash256) Message { return Message{Tag: TagGetBlocks, Hashes: hashes} }
func BlocksMsg(blocks []block.Block) Message      { return Message{Tag: TagBlocks, Blocks: blocks} }
func NewTransactionHashesMsg(hashes []types.Hash256) Message {
	return Message{Tag: TagNewTransactionHashes, Hashes: hashes}
}
func GetTransactionsMsg(hashes []types.Hash256) Message {
	return Message{Tag: TagGetTransactions, Hashes: hashes}
}
func TransactionsMsg(txs []tx.SignedTx) Message { return Message{Tag: TagTransactions, Txs: txs} }

// Marshal encodes a Message as a tag byte followed by its payload,
// using each payload type's canonical field-tuple encoding (the same
// encoding pkg/tx and pkg/block use for hashing), so the wire format
// is exactly the "field tuples in declared order" spec.md §6 asks for.
func (m Message) Marshal() ([]byte, error) {
	buf := []byte{byte(m.Tag)}
	switch m.Tag {
	case TagPing:
		buf = binary.LittleEndian.AppendUint64(buf, m.PingNonce)
	case TagPong:
		buf = appendString(buf, m.PongNonce)
	case TagNewBlockHashes, TagGetBlocks, TagNewTransactionHashes, TagGetTransactions:
		buf = appendHashes(buf, m.Hashes)
	case TagBlocks:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Blocks)))
		for i := range m.Blocks {
			buf = appendBlock(buf, &m.Blocks[i])
		}
	case TagTransactions:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Txs)))
		for i := range m.Txs {
			buf = append(buf, m.Txs[i].CanonicalBytes()...)
		}
	default:
		return nil, fmt.Errorf("gossip: unknown message tag %d", m.Tag)
	}
	return buf, nil
}

// Unmarshal decodes a Message previously produced by Marshal. A
// malformed frame returns an error; the caller (the worker pool) drops
// it and continues per spec.md §7's error-handling design.
func Unmarshal(data []byte) (Message, error) {
	if len(data) == 0 {
		return Message{}, fmt.Errorf("gossip: empty frame")
	}
	tag := Tag(data[0])
	rest := data[1:]

	switch tag {
	case TagPing:
		if len(rest) < 8 {
			return Message{}, fmt.Errorf("gossip: short Ping frame")
		}
		return Message{Tag: TagPing, PingNonce: binary.LittleEndian.Uint64(rest)}, nil
	case TagPong:
		s, _, err := readString(rest)
		if err != nil {
			return Message{}, err
		}
		return Message{Tag: TagPong, PongNonce: s}, nil
	case TagNewBlockHashes, TagGetBlocks, TagNewTransactionHashes, TagGetTransactions:
		hashes, _, err := readHashes(rest)
		if err != nil {
			return Message{}, err
		}
		return Message{Tag: tag, Hashes: hashes}, nil
	case TagBlocks:
		if len(rest) < 4 {
			return Message{}, fmt.Errorf("gossip: short Blocks frame")
		}
		count := binary.LittleEndian.Uint32(rest)
		rest = rest[4:]
		blocks := make([]block.Block, 0, count)
		for i := uint32(0); i < count; i++ {
			blk, n, err := readBlock(rest)
			if err != nil {
				return Message{}, err
			}
			blocks = append(blocks, blk)
			rest = rest[n:]
		}
		return Message{Tag: TagBlocks, Blocks: blocks}, nil
	case TagTransactions:
		if len(rest) < 4 {
			return Message{}, fmt.Errorf("gossip: short Transactions frame")
		}
		count := binary.LittleEndian.Uint32(rest)
		rest = rest[4:]
		txs := make([]tx.SignedTx, 0, count)
		for i := uint32(0); i < count; i++ {
			signed, n, err := readSignedTx(rest)
			if err != nil {
				return Message{}, err
			}
			txs = append(txs, signed)
			rest = rest[n:]
		}
		return Message{Tag: TagTransactions, Txs: txs}, nil
	default:
		return Message{}, fmt.Errorf("gossip: unknown message tag %d", tag)
	}
}

func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

func readString(data []byte) (string, int, error) {
	if len(data) < 4 {
		return "", 0, fmt.Errorf("gossip: short string length prefix")
	}
	n := binary.LittleEndian.Uint32(data)
	data = data[4:]
	if uint32(len(data)) < n {
		return "", 0, fmt.Errorf("gossip: short string payload")
	}
	return string(data[:n]), 4 + int(n), nil
}

func appendHashes(buf []byte, hashes []types.Hash256) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(hashes)))
	for _, h := range hashes {
		buf = append(buf, h[:]...)
	}
	return buf
}

func readHashes(data []byte) ([]types.Hash256, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("gossip: short hash-list length prefix")
	}
	count := binary.LittleEndian.Uint32(data)
	data = data[4:]
	consumed := 4
	hashes := make([]types.Hash256, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < types.Hash256Size {
			return nil, 0, fmt.Errorf("gossip: short hash entry")
		}
		var h types.Hash256
		copy(h[:], data[:types.Hash256Size])
		hashes = append(hashes, h)
		data = data[types.Hash256Size:]
		consumed += types.Hash256Size
	}
	return hashes, consumed, nil
}

// appendBlock encodes a block as its header's canonical bytes (fixed
// size) followed by its content count and each content entry's
// canonical bytes (self-delimiting via their own length prefixes).
func appendBlock(buf []byte, blk *block.Block) []byte {
	buf = append(buf, blk.Header.CanonicalBytes()...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(blk.Content)))
	for i := range blk.Content {
		buf = append(buf, blk.Content[i].CanonicalBytes()...)
	}
	return buf
}

const headerSize = types.Hash256Size*3 + 4 + 8

func readBlock(data []byte) (block.Block, int, error) {
	if len(data) < headerSize+4 {
		return block.Block{}, 0, fmt.Errorf("gossip: short block header")
	}
	header, err := readHeader(data[:headerSize])
	if err != nil {
		return block.Block{}, 0, err
	}
	consumed := headerSize
	count := binary.LittleEndian.Uint32(data[consumed:])
	consumed += 4

	content := make([]tx.SignedTx, 0, count)
	for i := uint32(0); i < count; i++ {
		signed, n, err := readSignedTx(data[consumed:])
		if err != nil {
			return block.Block{}, 0, err
		}
		content = append(content, signed)
		consumed += n
	}
	return block.NewBlock(header, content), consumed, nil
}

func readHeader(data []byte) (block.Header, error) {
	if len(data) < headerSize {
		return block.Header{}, fmt.Errorf("gossip: short header")
	}
	var h block.Header
	copy(h.Parent[:], data[:types.Hash256Size])
	data = data[types.Hash256Size:]
	h.Nonce = binary.LittleEndian.Uint32(data)
	data = data[4:]
	copy(h.Difficulty[:], data[:types.Hash256Size])
	data = data[types.Hash256Size:]
	h.Timestamp = binary.LittleEndian.Uint64(data)
	data = data[8:]
	copy(h.MerkleRoot[:], data[:types.Hash256Size])
	return h, nil
}

func readSignedTx(data []byte) (tx.SignedTx, int, error) {
	txn, n, err := readTransaction(data)
	if err != nil {
		return tx.SignedTx{}, 0, err
	}
	consumed := n

	sig, n, err := readBytes(data[consumed:])
	if err != nil {
		return tx.SignedTx{}, 0, err
	}
	consumed += n

	pub, n, err := readBytes(data[consumed:])
	if err != nil {
		return tx.SignedTx{}, 0, err
	}
	consumed += n

	return tx.SignedTx{Transaction: txn, Signature: sig, PubKey: pub}, consumed, nil
}

func readTransaction(data []byte) (tx.Transaction, int, error) {
	if len(data) < types.Hash256Size+4 {
		return tx.Transaction{}, 0, fmt.Errorf("gossip: short transaction id")
	}
	var txn tx.Transaction
	copy(txn.ID[:], data[:types.Hash256Size])
	consumed := types.Hash256Size

	inputCount := binary.LittleEndian.Uint32(data[consumed:])
	consumed += 4
	txn.Inputs = make([]tx.Input, 0, inputCount)
	for i := uint32(0); i < inputCount; i++ {
		if len(data) < consumed+1+types.Hash256Size {
			return tx.Transaction{}, 0, fmt.Errorf("gossip: short transaction input")
		}
		var in tx.Input
		in.Index = data[consumed]
		consumed++
		copy(in.PreviousHash[:], data[consumed:consumed+types.Hash256Size])
		consumed += types.Hash256Size
		txn.Inputs = append(txn.Inputs, in)
	}

	if len(data) < consumed+4 {
		return tx.Transaction{}, 0, fmt.Errorf("gossip: short transaction output count")
	}
	outputCount := binary.LittleEndian.Uint32(data[consumed:])
	consumed += 4
	txn.Outputs = make([]tx.Output, 0, outputCount)
	for i := uint32(0); i < outputCount; i++ {
		if len(data) < consumed+1+types.AddressSize {
			return tx.Transaction{}, 0, fmt.Errorf("gossip: short transaction output")
		}
		var out tx.Output
		out.Balance = data[consumed]
		consumed++
		copy(out.Address[:], data[consumed:consumed+types.AddressSize])
		consumed += types.AddressSize
		txn.Outputs = append(txn.Outputs, out)
	}

	return txn, consumed, nil
}

func readBytes(data []byte) ([]byte, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("gossip: short byte-slice length prefix")
	}
	n := binary.LittleEndian.Uint32(data)
	data = data[4:]
	if uint32(len(data)) < n {
		return nil, 0, fmt.Errorf("gossip: short byte-slice payload")
	}
	out := make([]byte, n)
	copy(out, data[:n])
	return out, 4 + int(n), nil
}
