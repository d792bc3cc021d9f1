package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/api/server"
	"github.com/duanblockchain/marketview/internal/api/shared/executor"
	"github.com/duanblockchain/marketview/internal/config"
	"github.com/duanblockchain/marketview/internal/engine"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/session"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "api-server",
		Tags: map[string]string{
			"service": "api-server",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting marketview API")

	// Connect to the chain and wire the readers
	eng, err := engine.New(ctx, adapter.NewEthClientDialer(), engine.Options{
		Ethereum: cfg.Ethereum,
		Metadata: cfg.Metadata,
		Worker:   cfg.Worker,
		Explorer: cfg.Explorer,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to chain",
			zap.Error(err),
			zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}
	defer eng.Close()

	exec := executor.NewExecutor(
		session.NewRegistry(eng.Chain, cfg.Session.IdleTTL),
		eng.Reader,
		eng.Reconstructor,
		eng.Links,
		eng.Clock,
		eng.Contract,
	)

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,

		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}, exec)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}

	// Don't reuse ctx, the pool is bound to it
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
