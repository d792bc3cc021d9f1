package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/duanblockchain/marketview/internal/block"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/providers/ethereum"
)

// Reconstructor rebuilds the transaction history of an address from contract events
//
//go:generate mockgen -source=reconstructor.go -destination=../mocks/history_reconstructor.go -package=mocks -mock_names=Reconstructor=MockHistoryReconstructor
type Reconstructor interface {
	// Reconstruct scans the trailing block window and returns the address's
	// entries, deduplicated by (hash, tokenId) and newest first.
	// It fails only when the chain head or the transfer events cannot be read.
	Reconstruct(ctx context.Context, address common.Address) ([]domain.Transaction, error)
}

// Config holds reconstructor configuration
type Config struct {
	// Window is the number of trailing blocks scanned
	Window uint64

	// RequestsPerSecond caps enrichment RPCs; 0 means unlimited
	RequestsPerSecond float64
}

type reconstructor struct {
	client  ethereum.MarketplaceClient
	blocks  block.BlockProvider
	pool    pond.Pool
	limiter *rate.Limiter
	window  uint64
}

// NewReconstructor creates a history reconstructor. Enrichment runs on pool.
func NewReconstructor(client ethereum.MarketplaceClient, blocks block.BlockProvider, pool pond.Pool, config Config) Reconstructor {
	window := config.Window
	if window == 0 {
		window = domain.HISTORY_WINDOW
	}

	limit := rate.Inf
	burst := 1
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
		burst = max(int(config.RequestsPerSecond), 1)
	}

	return &reconstructor{
		client:  client,
		blocks:  blocks,
		pool:    pool,
		limiter: rate.NewLimiter(limit, burst),
		window:  window,
	}
}

func (r *reconstructor) Reconstruct(ctx context.Context, address common.Address) ([]domain.Transaction, error) {
	if address == domain.ZeroAddress {
		return nil, fmt.Errorf("%w: history needs a caller address", domain.ErrNotConnected)
	}

	window, err := r.blocks.TrailingWindow(ctx, r.window)
	if err != nil {
		return nil, fmt.Errorf("failed to get history window: %w", err)
	}

	logger.DebugCtx(ctx, "Scanning history window",
		logger.Address(address),
		zap.Uint64("from_block", window.From),
		zap.Uint64("to_block", window.To))

	transfers, err := r.client.FilterTransfers(ctx, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer events: %w", err)
	}

	transferTxs, err := r.transferEntries(ctx, address, transfers)
	if err != nil {
		return nil, err
	}

	listingTxs, err := r.listingEntries(ctx, address, window)
	if err != nil {
		return nil, err
	}

	txs := Dedup(append(transferTxs, listingTxs...))
	SortNewestFirst(txs)
	return txs, nil
}

// transferEntries enriches transfers with their block time and origin, keeping
// the ones relevant to address. Events that cannot be enriched are skipped.
func (r *reconstructor) transferEntries(ctx context.Context, address common.Address, transfers []domain.TransferEvent) ([]domain.Transaction, error) {
	entries := make([]*domain.Transaction, len(transfers))
	origins := newOriginCache()

	group := r.pool.NewGroupContext(ctx)
	for i := range transfers {
		group.Submit(func() {
			event := transfers[i]

			origin, err := origins.get(event.TxHash, func() (*domain.TxOrigin, error) {
				if err := r.limiter.Wait(ctx); err != nil {
					return nil, err
				}
				return r.client.TxOrigin(ctx, event.TxHash)
			})
			if err != nil {
				logger.WarnCtx(ctx, "Skipping transfer without origin",
					logger.TxHash(event.TxHash),
					logger.TokenID(event.TokenID),
					zap.Error(err))
				return
			}

			if !IsRelevant(event, *origin, address) {
				return
			}

			timestamp, err := r.timestamp(ctx, event.BlockNumber)
			if err != nil {
				logger.WarnCtx(ctx, "Skipping transfer without block time",
					logger.TxHash(event.TxHash),
					logger.Block(event.BlockNumber),
					zap.Error(err))
				return
			}

			kind, price := Classify(event, *origin, address)
			entries[i] = &domain.Transaction{
				Hash:        event.TxHash,
				Kind:        kind,
				TokenID:     event.TokenID,
				From:        event.From.Hex(),
				To:          event.To.Hex(),
				Price:       price,
				Timestamp:   timestamp,
				BlockNumber: event.BlockNumber,
			}
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to enrich transfers: %w", err)
	}

	return compact(entries), nil
}

// listingEntries returns the listings created by address. A failed listing
// query yields no entries rather than failing the run.
func (r *reconstructor) listingEntries(ctx context.Context, address common.Address, window block.Range) ([]domain.Transaction, error) {
	listings, err := r.client.FilterListings(ctx, window.From, window.To)
	if err != nil {
		logger.WarnCtx(ctx, "Listing events unavailable, continuing without them", zap.Error(err))
		return []domain.Transaction{}, nil
	}

	entries := make([]*domain.Transaction, len(listings))
	group := r.pool.NewGroupContext(ctx)
	for i := range listings {
		if listings[i].Seller != address {
			continue
		}

		group.Submit(func() {
			event := listings[i]

			timestamp, err := r.timestamp(ctx, event.BlockNumber)
			if err != nil {
				logger.WarnCtx(ctx, "Skipping listing without block time",
					logger.TxHash(event.TxHash),
					logger.Block(event.BlockNumber),
					zap.Error(err))
				return
			}

			entries[i] = &domain.Transaction{
				Hash:        event.TxHash,
				Kind:        ListingKind(event),
				TokenID:     event.TokenID,
				From:        event.Seller.Hex(),
				To:          domain.MARKETPLACE_LABEL,
				Price:       event.Price,
				Timestamp:   timestamp,
				BlockNumber: event.BlockNumber,
			}
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to enrich listings: %w", err)
	}

	return compact(entries), nil
}

func (r *reconstructor) timestamp(ctx context.Context, blockNumber uint64) (int64, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	t, err := r.blocks.GetBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

func compact(entries []*domain.Transaction) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			result = append(result, *entry)
		}
	}
	return result
}

// originCache fetches each transaction's origin at most once per run.
// Several transfers of a batch sale share one transaction.
type originCache struct {
	mu      sync.Mutex
	entries map[common.Hash]*originEntry
}

type originEntry struct {
	once   sync.Once
	origin *domain.TxOrigin
	err    error
}

func newOriginCache() *originCache {
	return &originCache{entries: make(map[common.Hash]*originEntry)}
}

func (c *originCache) get(hash common.Hash, fetch func() (*domain.TxOrigin, error)) (*domain.TxOrigin, error) {
	c.mu.Lock()
	entry, ok := c.entries[hash]
	if !ok {
		entry = &originEntry{}
		c.entries[hash] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.origin, entry.err = fetch()
	})
	return entry.origin, entry.err
}
