package engine

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/block"
	"github.com/duanblockchain/marketview/internal/config"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/explorer"
	"github.com/duanblockchain/marketview/internal/history"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/market"
	"github.com/duanblockchain/marketview/internal/metadata"
	"github.com/duanblockchain/marketview/internal/providers/ethereum"
	"github.com/duanblockchain/marketview/internal/session"
)

// Engine holds the read-side components every binary shares
type Engine struct {
	Chain         domain.Chain
	Contract      common.Address
	EthClient     adapter.EthClient
	Client        ethereum.MarketplaceClient
	Blocks        block.BlockProvider
	Reader        market.Reader
	Reconstructor history.Reconstructor
	Links         *explorer.Explorer
	Clock         adapter.Clock

	pool pond.Pool
}

// Options is the subset of configuration the engine is built from
type Options struct {
	Ethereum config.EthereumConfig
	Metadata config.MetadataConfig
	Worker   config.WorkerConfig
	Explorer config.ExplorerConfig
}

// New dials the RPC endpoint, checks it serves the configured chain and wires the readers
func New(ctx context.Context, dialer adapter.EthClientDialer, opts Options) (*Engine, error) {
	contract := common.HexToAddress(opts.Ethereum.ContractAddress)

	ethClient, err := dialer.Dial(ctx, opts.Ethereum.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", opts.Ethereum.RPCURL, err)
	}

	client, err := ethereum.NewClient(opts.Ethereum.ChainID, contract, ethClient)
	if err != nil {
		ethClient.Close()
		return nil, err
	}

	if err := session.Connect(ctx, client, opts.Ethereum.ChainID); err != nil {
		ethClient.Close()
		return nil, err
	}
	logger.InfoCtx(ctx, "Connected to chain",
		zap.String("chain", string(opts.Ethereum.ChainID)),
		zap.String("contract", contract.Hex()),
	)

	clock := adapter.NewClock()
	blocks := block.NewBlockProvider(
		ethereum.NewBlockFetcher(ethClient, clock),
		block.Config{
			TTL:         opts.Ethereum.BlockHeadTTL,
			StaleWindow: opts.Ethereum.BlockHeadStaleWindow,
		},
		clock,
	)

	resolver := metadata.NewResolver(
		adapter.NewHTTPClient(opts.Metadata.HTTPTimeout, opts.Metadata.RetryMaxElapsed),
		metadata.Config{
			IPFSGateways:    opts.Metadata.IPFSGateways,
			ArweaveGateways: opts.Metadata.ArweaveGateways,
		},
	)

	pool := pond.NewPool(
		opts.Worker.WorkerPoolSize,
		pond.WithQueueSize(opts.Worker.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	return &Engine{
		Chain:     opts.Ethereum.ChainID,
		Contract:  contract,
		EthClient: ethClient,
		Client:    client,
		Blocks:    blocks,
		Reader:    market.NewReader(client, resolver, pool),
		Reconstructor: history.NewReconstructor(client, blocks, pool, history.Config{
			Window:            opts.Ethereum.HistoryWindow,
			RequestsPerSecond: opts.Ethereum.RequestsPerSecond,
		}),
		Links: explorer.New(opts.Explorer.BaseURL),
		Clock: clock,
		pool:  pool,
	}, nil
}

// Close drains the worker pool and closes the RPC connection
func (e *Engine) Close() {
	e.pool.StopAndWait()
	e.Client.Close()
}
