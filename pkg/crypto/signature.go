package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/driftchain-network/driftchain/pkg/types"
)

// SignatureSize is the length of an Ed25519 signature in bytes.
const SignatureSize = ed25519.SignatureSize

// PublicKeySize is the length of an Ed25519 public key in bytes.
const PublicKeySize = ed25519.PublicKeySize

// Signer signs a 32-byte digest with a private key.
type Signer interface {
	// Sign produces an Ed25519 signature over a 32-byte digest.
	Sign(digest []byte) ([]byte, error)
	// PublicKey returns the 32-byte Ed25519 public key.
	PublicKey() []byte
}

// Verifier verifies Ed25519 signatures.
type Verifier interface {
	// Verify checks a signature against a digest and public key.
	Verify(digest, signature, publicKey []byte) bool
}

// PrivateKey wraps an Ed25519 private key used to sign transactions
// and blocks.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenerateKey creates a new random Ed25519 private key.
func GenerateKey() (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromSeed derives a PrivateKey from a 32-byte seed, as used
// when expanding a BIP-32 child key (see internal/wallet).
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 64-byte serialized
// Ed25519 private key.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(b))
	}
	key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	copy(key, b)
	return &PrivateKey{key: key}, nil
}

// Sign produces an Ed25519 signature over a 32-byte digest.
func (pk *PrivateKey) Sign(digest []byte) ([]byte, error) {
	if len(digest) != types.Hash256Size {
		return nil, fmt.Errorf("digest must be %d bytes, got %d", types.Hash256Size, len(digest))
	}
	return ed25519.Sign(pk.key, digest), nil
}

// PublicKey returns the 32-byte Ed25519 public key.
func (pk *PrivateKey) PublicKey() []byte {
	pub, ok := pk.key.Public().(ed25519.PublicKey)
	if !ok {
		return nil
	}
	b := make([]byte, len(pub))
	copy(b, pub)
	return b
}

// Serialize returns the 64-byte private key.
func (pk *PrivateKey) Serialize() []byte {
	b := make([]byte, len(pk.key))
	copy(b, pk.key)
	return b
}

// Address derives the Hash160 address of this key's public key.
func (pk *PrivateKey) Address() types.Address {
	return AddressFromPubKey(pk.PublicKey())
}

// Zero overwrites the private key material in place.
func (pk *PrivateKey) Zero() {
	for i := range pk.key {
		pk.key[i] = 0
	}
}

// VerifySignature checks an Ed25519 signature against a 32-byte digest
// and public key. Returns false on any malformed input.
func VerifySignature(digest, signature, publicKey []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(publicKey, digest, signature)
}

// Ed25519Verifier implements the Verifier interface.
type Ed25519Verifier struct{}

// Verify checks an Ed25519 signature against a digest and public key.
func (Ed25519Verifier) Verify(digest, signature, publicKey []byte) bool {
	return VerifySignature(digest, signature, publicKey)
}

var (
	_ Signer   = (*PrivateKey)(nil)
	_ Verifier = Ed25519Verifier{}
)
