package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/logger"
)

// Range is an inclusive block range
type Range struct {
	From uint64
	To   uint64
}

// BlockProvider provides cached access to the chain head and block timestamps.
// Several history runs per session hit the same head and the same blocks, so
// both are served from memory for a short while.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the timestamp of a block, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)

	// TrailingWindow returns [max(0, head-size), head]
	TrailingWindow(ctx context.Context, size uint64) (Range, error)
}

// BlockFetcher fetches block information from the chain
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block number
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp of a block
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long the head block number is served from cache
	TTL time.Duration

	// StaleWindow is how long a cached head may still be served when a refresh fails
	StaleWindow time.Duration

	// TimestampTTL is how long a block timestamp stays cached, DEFAULT_TIMESTAMP_TTL when zero
	TimestampTTL time.Duration
}

const (
	DEFAULT_TIMESTAMP_TTL      = time.Hour
	TIMESTAMP_CLEANUP_INTERVAL = 10 * time.Minute
)

type head struct {
	number    uint64
	fetchedAt time.Time
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu   sync.RWMutex
	head *head

	// confirmed block timestamps never change, they only age out of the window
	timestamps *cache.Cache
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	if config.TimestampTTL <= 0 {
		config.TimestampTTL = DEFAULT_TIMESTAMP_TTL
	}
	cleanup := TIMESTAMP_CLEANUP_INTERVAL
	if config.TimestampTTL < cleanup {
		cleanup = config.TimestampTTL
	}

	return &blockProvider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: cache.New(config.TimestampTTL, cleanup),
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()
	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block number", logger.Block(cached.number))
		return cached.number, nil
	}

	number, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Serving stale block number",
				logger.Block(cached.number),
				zap.Error(err))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &head{number: number, fetchedAt: now}
	p.mu.Unlock()

	return number, nil
}

// GetBlockTimestamp returns the timestamp of a block, fetching it once per block
func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	key := fmt.Sprintf("%d", blockNumber)
	if ts, ok := p.timestamps.Get(key); ok {
		return ts.(time.Time), nil
	}

	ts, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch timestamp of block %d: %w", blockNumber, err)
	}

	p.timestamps.Set(key, ts, cache.DefaultExpiration)
	return ts, nil
}

// TrailingWindow returns the last size blocks up to and including the head
func (p *blockProvider) TrailingWindow(ctx context.Context, size uint64) (Range, error) {
	latest, err := p.GetLatestBlock(ctx)
	if err != nil {
		return Range{}, err
	}

	from := uint64(0)
	if latest > size {
		from = latest - size
	}
	return Range{From: from, To: latest}, nil
}
