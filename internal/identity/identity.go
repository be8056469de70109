package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/driftchain-network/driftchain/pkg/crypto"
)

const keyFileName = "identity.key"

// keyFile is the on-disk JSON format for the node's encrypted signing key.
type keyFile struct {
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	EncryptedKey []byte    `json:"encrypted_key"`
}

// LoadOrCreate loads the node's Ed25519 signing key from dataDir,
// decrypting it with passphrase, or generates a new one and persists
// it encrypted if none exists yet. The returned bool reports whether a
// new key was generated.
func LoadOrCreate(dataDir string, passphrase []byte) (*crypto.PrivateKey, bool, error) {
	path := filepath.Join(dataDir, keyFileName)

	if _, err := os.Stat(path); err == nil {
		key, err := load(path, passphrase)
		if err != nil {
			return nil, false, err
		}
		return key, false, nil
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, false, fmt.Errorf("generate identity key: %w", err)
	}
	if err := save(path, key, passphrase, DefaultParams()); err != nil {
		return nil, false, err
	}
	return key, true, nil
}

func load(path string, passphrase []byte) (*crypto.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identity key: %w", err)
	}

	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse identity key file: %w", err)
	}
	if kf.Version != 1 {
		return nil, fmt.Errorf("unsupported identity key file version: %d", kf.Version)
	}

	raw, err := Decrypt(kf.EncryptedKey, passphrase)
	if err != nil {
		return nil, fmt.Errorf("decrypt identity key: %w", err)
	}
	defer zero(raw)

	return crypto.PrivateKeyFromBytes(raw)
}

func save(path string, key *crypto.PrivateKey, passphrase []byte, params EncryptionParams) error {
	raw := key.Serialize()
	defer zero(raw)

	encrypted, err := Encrypt(raw, passphrase, params)
	if err != nil {
		return fmt.Errorf("encrypt identity key: %w", err)
	}

	kf := keyFile{Version: 1, CreatedAt: time.Now().UTC(), EncryptedKey: encrypted}
	data, err := json.MarshalIndent(&kf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal identity key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write identity key file: %w", err)
	}
	return nil
}

// ChangePassphrase re-encrypts the identity key at dataDir under a new
// passphrase.
func ChangePassphrase(dataDir string, oldPassphrase, newPassphrase []byte) error {
	path := filepath.Join(dataDir, keyFileName)
	key, err := load(path, oldPassphrase)
	if err != nil {
		return err
	}
	defer key.Zero()
	return save(path, key, newPassphrase, DefaultParams())
}
