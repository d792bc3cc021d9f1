package executor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/api/shared/dto"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/explorer"
	"github.com/duanblockchain/marketview/internal/history"
	"github.com/duanblockchain/marketview/internal/market"
	"github.com/duanblockchain/marketview/internal/session"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// ListItems returns the market catalog as seen by caller, narrowed by category and search
	ListItems(ctx context.Context, caller common.Address, category string, search string) (*dto.ItemListResponse, error)

	// GetItem returns a single item as seen by caller
	GetItem(ctx context.Context, caller common.Address, tokenID uint64) (*dto.ItemResponse, error)

	// GetListingFee returns the fee charged to list an item
	GetListingFee(ctx context.Context) (*dto.ListingFeeResponse, error)

	// GetOwnedItems returns the items held by address
	GetOwnedItems(ctx context.Context, address common.Address) (*dto.ItemListResponse, error)

	// GetListedItems returns the items address has put on sale
	GetListedItems(ctx context.Context, address common.Address) (*dto.ItemListResponse, error)

	// GetHistory returns one tab of address's transaction history
	GetHistory(ctx context.Context, address common.Address, filter domain.HistoryFilter) (*dto.HistoryResponse, error)
}

type executor struct {
	sessions      *session.Registry
	reader        market.Reader
	reconstructor history.Reconstructor
	links         *explorer.Explorer
	clock         adapter.Clock
	contract      common.Address
}

func NewExecutor(
	sessions *session.Registry,
	reader market.Reader,
	reconstructor history.Reconstructor,
	links *explorer.Explorer,
	clock adapter.Clock,
	contract common.Address,
) Executor {
	return &executor{
		sessions:      sessions,
		reader:        reader,
		reconstructor: reconstructor,
		links:         links,
		clock:         clock,
		contract:      contract,
	}
}

func (e *executor) ListItems(ctx context.Context, caller common.Address, category string, search string) (*dto.ItemListResponse, error) {
	sess := e.sessions.Get(caller)

	items, err := e.reader.LoadAll(ctx, sess)
	if err != nil {
		return nil, err
	}

	items = market.Filter(items, market.Query{Category: category, Search: search})
	return dto.MapItemsToDTO(items, caller, e.clock.Now(), e.links, e.contract), nil
}

func (e *executor) GetItem(ctx context.Context, caller common.Address, tokenID uint64) (*dto.ItemResponse, error) {
	sess := e.sessions.Get(caller)

	item, err := e.reader.FindItem(ctx, sess, tokenID)
	if err != nil {
		return nil, err
	}

	resp := dto.MapItemToDTO(*item, caller, e.clock.Now(), e.links, e.contract)
	return &resp, nil
}

func (e *executor) GetListingFee(ctx context.Context) (*dto.ListingFeeResponse, error) {
	fee, err := e.reader.ListingFee(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ListingFeeResponse{
		Fee:        fee.String(),
		FeeDisplay: domain.FormatAmount(fee),
	}, nil
}

func (e *executor) GetOwnedItems(ctx context.Context, address common.Address) (*dto.ItemListResponse, error) {
	sess := e.sessions.Get(address)

	items, err := e.reader.LoadOwned(ctx, sess)
	if err != nil {
		return nil, err
	}

	return dto.MapItemsToDTO(items, address, e.clock.Now(), e.links, e.contract), nil
}

func (e *executor) GetListedItems(ctx context.Context, address common.Address) (*dto.ItemListResponse, error) {
	sess := e.sessions.Get(address)

	items, err := e.reader.LoadListed(ctx, sess)
	if err != nil {
		return nil, err
	}

	return dto.MapItemsToDTO(items, address, e.clock.Now(), e.links, e.contract), nil
}

func (e *executor) GetHistory(ctx context.Context, address common.Address, filter domain.HistoryFilter) (*dto.HistoryResponse, error) {
	if !domain.IsValidHistoryFilter(filter) {
		return nil, fmt.Errorf("unknown history filter: %s", filter)
	}

	txs, err := e.reconstructor.Reconstruct(ctx, address)
	if err != nil {
		return nil, err
	}

	return dto.MapHistoryToDTO(address.Hex(), filter, history.Filter(txs, filter), history.Counts(txs), e.links), nil
}
