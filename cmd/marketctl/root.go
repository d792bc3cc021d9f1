package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/api/shared/executor"
	"github.com/duanblockchain/marketview/internal/config"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/engine"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/session"
)

var (
	rootCmd = &cobra.Command{
		Use:   "marketctl",
		Short: "Browse and trade on the NFT marketplace from the terminal",

		// All child commands share the connection set up here
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

			config.ChdirRepoRoot()
			conf, err = config.LoadCLIConfig(cfgFile, envPath)
			if err != nil {
				return
			}

			err = logger.Initialize(logger.Config{
				Debug:     conf.Debug,
				SentryDSN: conf.SentryDSN,
				Service:   "marketctl",
			})
			if err != nil {
				return
			}

			eng, err = engine.New(ctx, adapter.NewEthClientDialer(), engine.Options{
				Ethereum: conf.Ethereum,
				Metadata: conf.Metadata,
				Worker:   conf.Worker,
				Explorer: conf.Explorer,
			})
			if err != nil {
				return
			}

			sess, err = openSession(conf, addressFlag)
			if err != nil {
				return
			}

			// Reads run through a single-entry registry holding the CLI session
			registry := session.NewRegistry(eng.Chain, 0)
			registry.Put(sess)
			exec = executor.NewExecutor(registry, eng.Reader, eng.Reconstructor, eng.Links, eng.Clock, eng.Contract)
			return
		},

		SilenceUsage: true,
	}

	// Configuration
	conf        *config.CLIConfig
	cfgFile     string
	envPath     string
	addressFlag string
	pretty      bool

	// Shared state
	ctx    context.Context
	cancel context.CancelFunc = func() {}
	eng    *engine.Engine
	sess   *session.Session
	exec   executor.Executor
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file path")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "config/", "path to environment files")
	rootCmd.PersistentFlags().StringVar(&addressFlag, "address", "", "read as this address instead of the configured wallet")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "indent JSON output")
}

// shutdown releases what PersistentPreRunE opened; cobra skips post-run hooks on error
func shutdown() {
	if eng != nil {
		eng.Close()
	}
	cancel()
	logger.Sync()
	logger.Flush(2 * time.Second)
}

// openSession signs with wallet.private_key when set, otherwise reads as wallet.address
func openSession(conf *config.CLIConfig, override string) (*session.Session, error) {
	if override != "" {
		address, err := domain.ParseAddress(override)
		if err != nil {
			return nil, err
		}
		return session.NewReadOnly(conf.Ethereum.ChainID, address), nil
	}

	if conf.Wallet.PrivateKey != "" {
		return session.NewSigning(conf.Ethereum.ChainID, conf.Wallet.PrivateKey)
	}

	address := domain.ZeroAddress
	if conf.Wallet.Address != "" {
		parsed, err := domain.ParseAddress(conf.Wallet.Address)
		if err != nil {
			return nil, fmt.Errorf("wallet.address: %w", err)
		}
		address = parsed
	}
	return session.NewReadOnly(conf.Ethereum.ChainID, address), nil
}

// printJSON writes v to stdout
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
