// derive_key prints the public key and address for a node signing key,
// or generates a fresh one. It operates on raw hex-encoded 64-byte Ed25519
// private keys (the 32-byte seed followed by the public key), not on the
// encrypted identity.key files internal/identity produces —
// useful for scripting testnet fixtures without going through the
// interactive passphrase prompt in cmd/driftchaind.
//
// Usage:
//
//	go run scripts/derive_key.go <keyfile>   print pubkey/address for an existing key
//	go run scripts/derive_key.go -new        generate a key, print it plus pubkey/address
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/driftchain-network/driftchain/pkg/crypto"
)

func main() {
	newKey := flag.Bool("new", false, "generate a new key instead of reading one")
	flag.Parse()

	var key *crypto.PrivateKey
	var err error

	if *newKey {
		key, err = crypto.GenerateKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("seed=%s\n", hex.EncodeToString(key.Serialize()))
	} else {
		args := flag.Args()
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> | derive_key -new")
			os.Exit(1)
		}
		data, err2 := os.ReadFile(args[0])
		if err2 != nil {
			fmt.Fprintln(os.Stderr, err2)
			os.Exit(1)
		}
		keyBytes, err3 := hex.DecodeString(strings.TrimSpace(string(data)))
		if err3 != nil {
			fmt.Fprintln(os.Stderr, err3)
			os.Exit(1)
		}
		key, err = crypto.PrivateKeyFromBytes(keyBytes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer key.Zero()

	pub := key.PublicKey()
	addr := crypto.AddressFromPubKey(pub)
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(pub))
	fmt.Printf("address=%s\n", addr.String())
}
