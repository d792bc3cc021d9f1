package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/block"
)

type blockFetcher struct {
	client adapter.EthClient
	clock  adapter.Clock
}

// NewBlockFetcher returns a block.BlockFetcher backed by JSON-RPC headers
func NewBlockFetcher(client adapter.EthClient, clock adapter.Clock) block.BlockFetcher {
	return &blockFetcher{client: client, clock: clock}
}

// FetchLatestBlock fetches the head block number
func (f *blockFetcher) FetchLatestBlock(ctx context.Context) (uint64, error) {
	header, err := f.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// FetchBlockTimestamp fetches the timestamp of a block from its header
func (f *blockFetcher) FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	header, err := f.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get header %d: %w", blockNumber, err)
	}
	return f.clock.Unix(int64(header.Time), 0), nil //nolint:gosec,G115
}
