package wallet

import (
	"fmt"

	"github.com/driftchain-network/driftchain/pkg/types"
)

// AddressPool is the generator loop's known-address set: a fixed
// batch of addresses derived up front from one master key, mirroring
// the original generator's address_list (see
// original_source/src/generator.rs). The generator picks a
// destination from this set instead of a wholly random Hash160 on
// every iteration when one is configured.
type AddressPool struct {
	addresses []types.Address
}

// NewAddressPool derives `count` external receiving addresses
// (m/44'/8889'/0'/0/i for i in [0,count)) from a master key.
func NewAddressPool(master *HDKey, count int) (*AddressPool, error) {
	if count <= 0 {
		return nil, fmt.Errorf("address pool count must be positive, got %d", count)
	}
	addresses := make([]types.Address, count)
	for i := 0; i < count; i++ {
		key, err := master.DeriveAddress(0, ChangeExternal, uint32(i))
		if err != nil {
			return nil, fmt.Errorf("derive address %d: %w", i, err)
		}
		addr, err := key.Address()
		if err != nil {
			return nil, fmt.Errorf("address %d: %w", i, err)
		}
		addresses[i] = addr
	}
	return &AddressPool{addresses: addresses}, nil
}

// Len returns the number of addresses in the pool.
func (p *AddressPool) Len() int {
	return len(p.addresses)
}

// At returns the address at the given index, wrapping modulo the
// pool's length. Used by the generator with a randomly chosen index.
func (p *AddressPool) At(index int) types.Address {
	return p.addresses[index%len(p.addresses)]
}
