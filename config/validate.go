package config

import "fmt"

// Validate checks runtime node config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.P2P.Port < 0 || cfg.P2P.Port > 65535 {
		return fmt.Errorf("p2p.port must be in range [0, 65535]")
	}
	if cfg.P2P.MaxPeers < 0 {
		return fmt.Errorf("p2p.maxpeers must not be negative")
	}
	if cfg.Gossip.Workers <= 0 {
		return fmt.Errorf("gossip.workers must be positive")
	}
	if cfg.Gossip.BufferSize <= 0 {
		return fmt.Errorf("gossip.buffer must be positive")
	}
	if cfg.Generator.KnownAddresses < 0 {
		return fmt.Errorf("generator.addresses must not be negative")
	}
	return nil
}
