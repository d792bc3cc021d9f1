package market

import (
	"context"
	"fmt"
	"math/big"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/metadata"
	"github.com/duanblockchain/marketview/internal/providers/ethereum"
	"github.com/duanblockchain/marketview/internal/session"
)

// Reader loads marketplace collections joined with their metadata
//
//go:generate mockgen -source=reader.go -destination=../mocks/market_reader.go -package=mocks -mock_names=Reader=MockMarketReader
type Reader interface {
	// LoadAll returns every unsold item currently offered on the market
	LoadAll(ctx context.Context, sess *session.Session) ([]domain.MarketItem, error)

	// LoadOwned returns the items held by the session caller
	LoadOwned(ctx context.Context, sess *session.Session) ([]domain.MarketItem, error)

	// LoadListed returns the items the session caller has put on sale
	LoadListed(ctx context.Context, sess *session.Session) ([]domain.MarketItem, error)

	// FindItem looks a token up in the market, owned and listed collections in that order.
	// Missing metadata degrades to a placeholder instead of failing.
	FindItem(ctx context.Context, sess *session.Session, tokenID uint64) (*domain.MarketItem, error)

	// LookupItem is FindItem without the metadata join
	LookupItem(ctx context.Context, sess *session.Session, tokenID uint64) (*domain.Item, error)

	// ListingFee returns the fee the contract charges to list an item
	ListingFee(ctx context.Context) (*big.Int, error)

	// Snapshot reloads all three collections for the session caller
	Snapshot(ctx context.Context, sess *session.Session) (*domain.Snapshot, error)
}

type reader struct {
	client   ethereum.MarketplaceClient
	resolver metadata.Resolver
	pool     pond.Pool
}

// NewReader creates a Reader. Metadata is resolved on pool.
func NewReader(client ethereum.MarketplaceClient, resolver metadata.Resolver, pool pond.Pool) Reader {
	return &reader{
		client:   client,
		resolver: resolver,
		pool:     pool,
	}
}

func (r *reader) LoadAll(ctx context.Context, sess *session.Session) ([]domain.MarketItem, error) {
	items, err := r.client.FetchMarketItems(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("failed to load market items: %w", err)
	}
	return r.withMetadata(ctx, sess, items)
}

func (r *reader) LoadOwned(ctx context.Context, sess *session.Session) ([]domain.MarketItem, error) {
	items, err := r.client.FetchMyNFTs(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("failed to load owned items: %w", err)
	}
	return r.withMetadata(ctx, sess, items)
}

func (r *reader) LoadListed(ctx context.Context, sess *session.Session) ([]domain.MarketItem, error) {
	items, err := r.client.FetchItemsListed(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("failed to load listed items: %w", err)
	}
	return r.withMetadata(ctx, sess, items)
}

func (r *reader) FindItem(ctx context.Context, sess *session.Session, tokenID uint64) (*domain.MarketItem, error) {
	item, err := r.LookupItem(ctx, sess, tokenID)
	if err != nil {
		return nil, err
	}

	md, err := r.metadataFor(ctx, sess, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "Using placeholder metadata",
			logger.TokenID(tokenID),
			zap.Error(err))
		md = metadata.Placeholder(tokenID)
	}
	return &domain.MarketItem{Item: *item, Metadata: md}, nil
}

func (r *reader) LookupItem(ctx context.Context, sess *session.Session, tokenID uint64) (*domain.Item, error) {
	sources := []struct {
		name  string
		fetch func(context.Context, common.Address) ([]domain.Item, error)
	}{
		{"market", r.client.FetchMarketItems},
		{"owned", r.client.FetchMyNFTs},
		{"listed", r.client.FetchItemsListed},
	}

	for _, source := range sources {
		items, err := source.fetch(ctx, sess.Caller)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s items: %w", source.name, err)
		}

		for i := range items {
			if items[i].TokenID == tokenID {
				return &items[i], nil
			}
		}
	}

	return nil, fmt.Errorf("%w: token %d", domain.ErrItemNotFound, tokenID)
}

func (r *reader) ListingFee(ctx context.Context) (*big.Int, error) {
	fee, err := r.client.ListingPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing fee: %w", err)
	}
	return fee, nil
}

func (r *reader) Snapshot(ctx context.Context, sess *session.Session) (*domain.Snapshot, error) {
	all, err := r.LoadAll(ctx, sess)
	if err != nil {
		return nil, err
	}
	owned, err := r.LoadOwned(ctx, sess)
	if err != nil {
		return nil, err
	}
	listed, err := r.LoadListed(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{Market: all, Owned: owned, Listed: listed}, nil
}

// withMetadata resolves metadata for every item concurrently.
// Items whose metadata cannot be resolved are dropped; the rest keep their order.
func (r *reader) withMetadata(ctx context.Context, sess *session.Session, items []domain.Item) ([]domain.MarketItem, error) {
	if len(items) == 0 {
		return []domain.MarketItem{}, nil
	}

	resolved := make([]*domain.Metadata, len(items))
	group := r.pool.NewGroupContext(ctx)
	for i := range items {
		group.Submit(func() {
			md, err := r.metadataFor(ctx, sess, items[i].TokenID)
			if err != nil {
				logger.WarnCtx(ctx, "Skipping item without metadata",
					logger.TokenID(items[i].TokenID),
					zap.Error(err))
				return
			}
			resolved[i] = md
		})
	}
	if err := group.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to resolve metadata: %w", err)
	}

	result := make([]domain.MarketItem, 0, len(items))
	for i, item := range items {
		if resolved[i] == nil {
			continue
		}
		result = append(result, domain.MarketItem{Item: item, Metadata: resolved[i]})
	}
	return result, nil
}

func (r *reader) metadataFor(ctx context.Context, sess *session.Session, tokenID uint64) (*domain.Metadata, error) {
	if sess.Metadata != nil {
		if md, ok := sess.Metadata.Get(tokenID); ok {
			return md, nil
		}
	}

	uri, err := r.client.TokenURI(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("%w: token uri: %w", domain.ErrMetadataUnavailable, err)
	}

	md, err := r.resolver.Resolve(ctx, uri)
	if err != nil {
		return nil, err
	}

	if sess.Metadata != nil {
		sess.Metadata.Set(tokenID, md)
	}
	return md, nil
}
