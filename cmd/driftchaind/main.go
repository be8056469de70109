// Driftchain full node daemon.
//
// Usage:
//
//	driftchaind [flags]    Run a node
//	driftchaind --help     Show help
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftchain-network/driftchain/config"
	"github.com/driftchain-network/driftchain/internal/chain"
	"github.com/driftchain-network/driftchain/internal/generator"
	"github.com/driftchain-network/driftchain/internal/gossip"
	"github.com/driftchain-network/driftchain/internal/identity"
	klog "github.com/driftchain-network/driftchain/internal/log"
	"github.com/driftchain-network/driftchain/internal/mempool"
	"github.com/driftchain-network/driftchain/internal/miner"
	"github.com/driftchain-network/driftchain/internal/p2p"
	"github.com/driftchain-network/driftchain/internal/storage"
	"github.com/driftchain-network/driftchain/internal/wallet"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// flags holds the command-line overrides layered on top of the file-
// and default-derived config. Everything else lives in config.Config.
type flags struct {
	datadir    string
	network    string
	configFile string
	mine       bool
	generate   bool
	p2pPort    int
	seeds      string
	noDiscover bool
	dhtServer  bool
	clearBans  bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.datadir, "datadir", "", "data directory (default: "+config.DefaultDataDir()+")")
	flag.StringVar(&f.network, "network", string(config.Mainnet), "mainnet or testnet")
	flag.StringVar(&f.configFile, "config", "", "path to a .conf file (default: <datadir>/driftchain.conf)")
	flag.BoolVar(&f.mine, "mine", false, "enable block production")
	flag.BoolVar(&f.generate, "generate", false, "enable transaction generation")
	flag.IntVar(&f.p2pPort, "port", 0, "p2p listen port (0: use config default)")
	flag.StringVar(&f.seeds, "seeds", "", "comma-separated seed multiaddrs")
	flag.BoolVar(&f.noDiscover, "nodiscover", false, "disable peer discovery")
	flag.BoolVar(&f.dhtServer, "dht-server", false, "run the DHT in server mode")
	flag.BoolVar(&f.clearBans, "clear-bans", false, "clear all peer bans on startup")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	network := config.NetworkType(f.network)
	cfg := config.Default(network)
	if f.datadir != "" {
		cfg.DataDir = f.datadir
	}

	configFile := f.configFile
	if configFile == "" {
		configFile = cfg.ConfigFile()
	}
	values, err := config.LoadFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyFileConfig(cfg, values); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying config file: %v\n", err)
		os.Exit(1)
	}

	if f.mine {
		cfg.Mining.Enabled = true
	}
	if f.generate {
		cfg.Generator.Enabled = true
	}
	if f.p2pPort != 0 {
		cfg.P2P.Port = f.p2pPort
	}
	if f.seeds != "" {
		cfg.P2P.Seeds = append(cfg.P2P.Seeds, splitSeeds(f.seeds)...)
	}
	if f.noDiscover {
		cfg.P2P.NoDiscover = true
	}
	if f.dhtServer {
		cfg.P2P.DHTServer = true
	}
	cfg.P2P.ClearBans = f.clearBans

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.ChainDataDir(), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data dir: %v\n", err)
		os.Exit(1)
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logsDir := cfg.LogsDir()
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logs dir: %v\n", err)
			os.Exit(1)
		}
		logFile = logsDir + "/driftchain.log"
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	logger := klog.WithComponent("node")

	passphrase, err := readIdentityPassphrase()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to read identity passphrase")
	}
	identityKey, created, err := identity.LoadOrCreate(cfg.IdentityDir(), passphrase)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load identity key")
	}
	defer identityKey.Zero()
	identityAddr := identityKey.Address()
	logger.Info().
		Str("address", hex.EncodeToString(identityAddr[:])[:16]+"...").
		Bool("created", created).
		Msg("Identity key ready")

	db, err := storage.NewBadger(cfg.ChainDataDir())
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ChainDataDir()).Msg("Failed to open database")
	}
	defer db.Close()

	ch := chain.New()
	genesisHash := ch.Tip()
	pool := mempool.New()

	logger.Info().
		Str("network", string(cfg.Network)).
		Str("genesis", genesisHash.String()[:16]+"...").
		Msg("Starting Driftchain node")

	p2pNode := p2p.New(p2p.Config{
		ListenAddr: cfg.P2P.ListenAddr,
		Port:       cfg.P2P.Port,
		Seeds:      cfg.P2P.Seeds,
		MaxPeers:   cfg.P2P.MaxPeers,
		NoDiscover: cfg.P2P.NoDiscover,
		DB:         db,
		DHTServer:  cfg.P2P.DHTServer,
		NetworkID:  string(cfg.Network),
		DataDir:    cfg.ChainDataDir(),
	})
	p2pNode.SetGenesisHash(genesisHash)
	p2pNode.SetHeightFn(func() uint64 { return uint64(ch.Height()) })

	gossipPool := gossip.NewPool(cfg.Gossip.Workers, cfg.Gossip.BufferSize, ch, p2pNode)
	p2pNode.SetPool(gossipPool)

	if cfg.P2P.ClearBans {
		for _, rec := range p2pNode.BanManager.BanList() {
			id, err := peer.Decode(rec.ID)
			if err != nil {
				continue
			}
			p2pNode.BanManager.Unban(id)
		}
	}

	if err := p2pNode.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start P2P")
	}
	defer p2pNode.Stop()

	logger.Info().
		Str("id", p2pNode.ID().String()).
		Int("port", cfg.P2P.Port).
		Bool("discovery", !cfg.P2P.NoDiscover).
		Msg("P2P node started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m, minerHandle := miner.New(ch, pool, p2pNode)
	go m.Run()
	if cfg.Mining.Enabled {
		minerHandle.Start(cfg.Mining.Interval)
		logger.Info().Dur("interval", cfg.Mining.Interval).Msg("Block production enabled")
	}

	g, generatorHandle := generator.New(pool, knownAddressPool(cfg, logger), p2pNode)
	go g.Run()
	if cfg.Generator.Enabled {
		generatorHandle.Start(cfg.Generator.Interval)
		logger.Info().Dur("interval", cfg.Generator.Interval).Msg("Transaction generation enabled")
	}

	go reportStats(ctx, m, g, logger)

	logger.Info().
		Uint32("height", ch.Height()).
		Bool("mining", cfg.Mining.Enabled).
		Bool("generating", cfg.Generator.Enabled).
		Msg("Node started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

	minerHandle.Exit()
	generatorHandle.Exit()
	cancel()
	logger.Info().Msg("Goodbye!")
}

// knownAddressPool derives an ephemeral known-address pool for the
// generator loop from a freshly generated mnemonic. The pool exists
// only to give generated transactions varied, stable-looking
// destinations for the lifetime of this process; it is not a wallet
// and holds no funds (this spec's Output balances are not real value).
func knownAddressPool(cfg *config.Config, logger zerolog.Logger) *wallet.AddressPool {
	if cfg.Generator.KnownAddresses <= 0 {
		return nil
	}
	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to generate known-address mnemonic, generator will use fresh addresses")
		return nil
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to derive known-address seed")
		return nil
	}
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to derive known-address master key")
		return nil
	}
	addrs, err := wallet.NewAddressPool(master, cfg.Generator.KnownAddresses)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to derive known-address pool")
		return nil
	}
	return addrs
}

func reportStats(ctx context.Context, m *miner.Miner, g *generator.Generator, logger zerolog.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ms := m.Stats()
			gs := g.Stats()
			logger.Info().
				Uint64("mined", ms.Mined).
				Uint64("inserted", ms.Inserted).
				Uint64("generated", gs.Generated).
				Msg("Loop stats")
		}
	}
}

func readIdentityPassphrase() ([]byte, error) {
	if env := os.Getenv("DRIFTCHAIN_PASSPHRASE"); env != "" {
		return []byte(env), nil
	}
	fmt.Fprint(os.Stderr, "Identity key passphrase: ")
	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return passphrase, nil
}

func splitSeeds(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
