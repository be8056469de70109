// Package tx defines transaction types, canonical encoding, and
// signing/verification for the core ledger.
package tx

import (
	"encoding/binary"

	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/types"
)

// Input references a previous transaction output being consumed.
type Input struct {
	Index        uint8         `json:"index"`
	PreviousHash types.Hash256 `json:"previous_hash"`
}

// Output creates a new balance at an address.
type Output struct {
	Balance uint8         `json:"balance"`
	Address types.Address `json:"address"`
}

// Transaction is the unsigned transaction body. ID is assigned by the
// caller (the generator loop mints a fresh one per transaction) rather
// than derived, so two structurally identical transactions can still
// carry distinct identities.
type Transaction struct {
	ID      types.Hash256 `json:"id"`
	Inputs  []Input       `json:"inputs"`
	Outputs []Output      `json:"outputs"`
}

// CanonicalBytes returns the canonical field-tuple encoding of the
// transaction, in declared order: id, inputs, outputs.
func (t *Transaction) CanonicalBytes() []byte {
	var buf []byte
	buf = append(buf, t.ID[:]...)

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Inputs)))
	for _, in := range t.Inputs {
		buf = append(buf, in.Index)
		buf = append(buf, in.PreviousHash[:]...)
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.Outputs)))
	for _, out := range t.Outputs {
		buf = append(buf, out.Balance)
		buf = append(buf, out.Address[:]...)
	}

	return buf
}

// Digest returns the SHA-256 digest of the transaction's canonical
// bytes. This is the value that SignedTx signatures cover.
func (t *Transaction) Digest() types.Hash256 {
	return crypto.Hash(t.CanonicalBytes())
}

// SignedTx wraps a transaction with the Ed25519 signature and public
// key that authorize it.
type SignedTx struct {
	Transaction Transaction `json:"transaction"`
	Signature   []byte      `json:"signature"`
	PubKey      []byte      `json:"pubkey"`
}

// CanonicalBytes returns the canonical field-tuple encoding of the
// whole SignedTx: transaction, signature, pubkey.
func (s *SignedTx) CanonicalBytes() []byte {
	buf := s.Transaction.CanonicalBytes()
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.Signature)))
	buf = append(buf, s.Signature...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.PubKey)))
	buf = append(buf, s.PubKey...)
	return buf
}

// Hash computes the SignedTx's identity: SHA-256 of the canonical
// serialization of the whole (transaction, signature, pubkey) tuple.
func (s *SignedTx) Hash() types.Hash256 {
	return crypto.Hash(s.CanonicalBytes())
}

// Sign produces a SignedTx by signing the transaction's digest with
// key and attaching key's public key.
func Sign(transaction Transaction, key *crypto.PrivateKey) (*SignedTx, error) {
	digest := transaction.Digest()
	sig, err := key.Sign(digest[:])
	if err != nil {
		return nil, err
	}
	return &SignedTx{
		Transaction: transaction,
		Signature:   sig,
		PubKey:      key.PublicKey(),
	}, nil
}

// Verify checks that the SignedTx's signature is valid over its
// transaction's digest under its attached public key.
func (s *SignedTx) Verify() bool {
	digest := s.Transaction.Digest()
	return crypto.VerifySignature(digest[:], s.Signature, s.PubKey)
}
