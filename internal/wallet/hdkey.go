package wallet

import (
	"fmt"

	"github.com/driftchain-network/driftchain/pkg/crypto"
	"github.com/driftchain-network/driftchain/pkg/types"
	"github.com/tyler-smith/go-bip32"
)

// BIP-44-shaped derivation path constants.
// Full path: m/44'/CoinType'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeDriftchain is this chain's (placeholder) coin type (hardened).
	CoinTypeDriftchain = bip32.FirstHardenedChild + 8889

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0

	// ChangeInternal is for change addresses.
	ChangeInternal = 1
)

// HDKey wraps a BIP-32 node. BIP-32 derivation is curve-agnostic: the
// 32-byte "private key" at each node is the output of an HMAC-SHA512
// tree, not a secp256k1 scalar. This lets the hierarchy be reused
// unmodified while feeding each derived 32 bytes into Ed25519 as a
// signing seed via crypto.PrivateKeyFromSeed, rather than treating it
// as a secp256k1 key. bip32's own PublicKeyBytes (a secp256k1 point)
// is never used for anything address- or signature-related here.
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte BIP-39 seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveChild derives a child key at the given index. Add
// bip32.FirstHardenedChild to the index for hardened derivation.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveAddress derives the key at m/44'/8889'/account'/change/index.
func (k *HDKey) DeriveAddress(account, change, index uint32) (*HDKey, error) {
	return k.DerivePath(
		PurposeBIP44,
		CoinTypeDriftchain,
		bip32.FirstHardenedChild+account,
		change,
		index,
	)
}

// seedBytes returns the raw 32-byte HMAC-SHA512 output at this node,
// to be used as an Ed25519 signing seed. Returns nil for a public-only
// (neutered) key, which carries no such seed.
func (k *HDKey) seedBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// Signer derives the Ed25519 signing key at this node.
func (k *HDKey) Signer() (*crypto.PrivateKey, error) {
	seed := k.seedBytes()
	if seed == nil {
		return nil, fmt.Errorf("cannot derive a signer from a public-only key")
	}
	return crypto.PrivateKeyFromSeed(seed)
}

// Address derives this node's Ed25519-backed address. Requires a
// private (non-neutered) key since the address is computed from the
// actual Ed25519 public key, not the BIP-32 node's own (secp256k1)
// public key bytes.
func (k *HDKey) Address() (types.Address, error) {
	signer, err := k.Signer()
	if err != nil {
		return types.Address{}, err
	}
	return signer.Address(), nil
}

// IsPrivate returns true if this key contains a private seed.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}
