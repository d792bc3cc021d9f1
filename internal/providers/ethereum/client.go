package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/logger"
)

// MarketplaceClient is the read side of the marketplace contract
//
//go:generate mockgen -source=client.go -destination=../../mocks/marketplace_client.go -package=mocks -mock_names=MarketplaceClient=MockMarketplaceClient
type MarketplaceClient interface {
	// ChainID returns the chain the connected node serves
	ChainID(ctx context.Context) (domain.Chain, error)

	// ContractAddress returns the marketplace contract address
	ContractAddress() common.Address

	// FetchMarketItems returns every unsold listing and auction
	FetchMarketItems(ctx context.Context, caller common.Address) ([]domain.Item, error)

	// FetchMyNFTs returns the items owned by the caller
	FetchMyNFTs(ctx context.Context, caller common.Address) ([]domain.Item, error)

	// FetchItemsListed returns the items the caller has put on the market
	FetchItemsListed(ctx context.Context, caller common.Address) ([]domain.Item, error)

	// TokenURI returns the metadata locator of a token
	TokenURI(ctx context.Context, tokenID uint64) (string, error)

	// ListingPrice returns the fee required to list or start an auction
	ListingPrice(ctx context.Context) (*big.Int, error)

	// FilterTransfers returns the Transfer events of the contract in [fromBlock, toBlock]
	FilterTransfers(ctx context.Context, fromBlock, toBlock uint64) ([]domain.TransferEvent, error)

	// FilterListings returns the MarketItemCreated events of the contract in [fromBlock, toBlock]
	FilterListings(ctx context.Context, fromBlock, toBlock uint64) ([]domain.ListingEvent, error)

	// TxOrigin returns the sender and value of a transaction
	TxOrigin(ctx context.Context, txHash common.Hash) (*domain.TxOrigin, error)

	// Close closes the connection
	Close()
}

type marketplaceClient struct {
	chainID  *big.Int
	contract common.Address
	client   adapter.EthClient
}

// NewClient binds the marketplace contract on an EVM chain
func NewClient(chain domain.Chain, contract common.Address, client adapter.EthClient) (MarketplaceClient, error) {
	chainID, err := chain.ChainID()
	if err != nil {
		return nil, err
	}
	return &marketplaceClient{chainID: chainID, contract: contract, client: client}, nil
}

// ChainID returns the chain the connected node serves
func (c *marketplaceClient) ChainID(ctx context.Context) (domain.Chain, error) {
	id, err := c.client.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get chain id: %w", err)
	}
	return domain.NewEIP155Chain(id), nil
}

func (c *marketplaceClient) ContractAddress() common.Address {
	return c.contract
}

func (c *marketplaceClient) FetchMarketItems(ctx context.Context, caller common.Address) ([]domain.Item, error) {
	return c.fetchItems(ctx, MethodFetchMarketItems, caller)
}

func (c *marketplaceClient) FetchMyNFTs(ctx context.Context, caller common.Address) ([]domain.Item, error) {
	return c.fetchItems(ctx, MethodFetchMyNFTs, caller)
}

func (c *marketplaceClient) FetchItemsListed(ctx context.Context, caller common.Address) ([]domain.Item, error) {
	return c.fetchItems(ctx, MethodFetchItemsListed, caller)
}

// fetchItems calls one of the item list views. The contract filters on msg.sender,
// so the caller goes into the call's From field.
func (c *marketplaceClient) fetchItems(ctx context.Context, method string, caller common.Address) ([]domain.Item, error) {
	out, err := c.call(ctx, caller, method)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected %s output length %d", method, len(out))
	}

	raws := *abi.ConvertType(out[0], new([]rawMarketItem)).(*[]rawMarketItem)

	items := make([]domain.Item, 0, len(raws))
	for _, raw := range raws {
		item, err := normalizeItem(raw)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed market item",
				zap.String("method", method),
				zap.Error(err))
			continue
		}
		items = append(items, *item)
	}

	return items, nil
}

// normalizeItem validates a raw contract record and picks its sale variant
func normalizeItem(raw rawMarketItem) (*domain.Item, error) {
	if raw.TokenId == nil || !raw.TokenId.IsUint64() {
		return nil, fmt.Errorf("token id out of range: %v", raw.TokenId)
	}
	if raw.CreatedAt == nil || !raw.CreatedAt.IsInt64() {
		return nil, fmt.Errorf("createdAt out of range for token %s", raw.TokenId)
	}

	item := &domain.Item{
		TokenID:   raw.TokenId.Uint64(),
		Seller:    raw.Seller,
		Owner:     raw.Owner,
		Creator:   raw.Creator,
		Category:  raw.Category,
		CreatedAt: time.Unix(raw.CreatedAt.Int64(), 0),
	}

	price := nonNil(raw.Price)
	if raw.IsAuction {
		if raw.EndTime == nil || !raw.EndTime.IsInt64() {
			return nil, fmt.Errorf("endTime out of range for token %d", item.TokenID)
		}
		item.Sale = &domain.Auction{
			StartPrice:    price,
			EndTime:       time.Unix(raw.EndTime.Int64(), 0),
			HighestBid:    nonNil(raw.HighestBid),
			HighestBidder: raw.HighestBidder,
		}
	} else {
		item.Sale = &domain.FixedListing{
			Price: price,
			Sold:  raw.Sold,
		}
	}

	return item, nil
}

// TokenURI returns the metadata locator of a token
func (c *marketplaceClient) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	out, err := c.call(ctx, domain.ZeroAddress, MethodTokenURI, new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	uri, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected tokenURI output type %T", out[0])
	}
	return uri, nil
}

// ListingPrice returns the listing fee in wei
func (c *marketplaceClient) ListingPrice(ctx context.Context) (*big.Int, error) {
	out, err := c.call(ctx, domain.ZeroAddress, MethodGetListingPrice)
	if err != nil {
		return nil, err
	}

	fee, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected getListingPrice output type %T", out[0])
	}
	return fee, nil
}

// call packs, executes and unpacks a view function
func (c *marketplaceClient) call(ctx context.Context, from common.Address, method string, args ...interface{}) ([]interface{}, error) {
	data, err := marketplaceABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		From: from,
		To:   &c.contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	out, err := marketplaceABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty %s output", method)
	}
	return out, nil
}

// FilterTransfers returns the decoded Transfer events in the range
func (c *marketplaceClient) FilterTransfers(ctx context.Context, fromBlock, toBlock uint64) ([]domain.TransferEvent, error) {
	logs, err := c.filterLogs(ctx, transferEventSignature, fromBlock, toBlock)
	if err != nil {
		return nil, err
	}

	events := make([]domain.TransferEvent, 0, len(logs))
	for _, vLog := range logs {
		event, err := parseTransferLog(vLog)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed Transfer log",
				logger.TxHash(vLog.TxHash),
				logger.Block(vLog.BlockNumber),
				zap.Error(err))
			continue
		}
		events = append(events, *event)
	}

	return events, nil
}

// FilterListings returns the decoded MarketItemCreated events in the range
func (c *marketplaceClient) FilterListings(ctx context.Context, fromBlock, toBlock uint64) ([]domain.ListingEvent, error) {
	logs, err := c.filterLogs(ctx, marketItemCreatedEventSignature, fromBlock, toBlock)
	if err != nil {
		return nil, err
	}

	events := make([]domain.ListingEvent, 0, len(logs))
	for _, vLog := range logs {
		event, err := parseListingLog(vLog)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed MarketItemCreated log",
				logger.TxHash(vLog.TxHash),
				logger.Block(vLog.BlockNumber),
				zap.Error(err))
			continue
		}
		events = append(events, *event)
	}

	return events, nil
}

func parseTransferLog(vLog types.Log) (*domain.TransferEvent, error) {
	// ERC20 transfers share the signature but carry 3 topics
	if len(vLog.Topics) != 4 {
		return nil, fmt.Errorf("invalid Transfer event: expected 4 topics, got %d", len(vLog.Topics))
	}

	tokenID := new(big.Int).SetBytes(vLog.Topics[3].Bytes())
	if !tokenID.IsUint64() {
		return nil, fmt.Errorf("token id out of range: %s", tokenID)
	}

	return &domain.TransferEvent{
		TxHash:      vLog.TxHash,
		BlockNumber: vLog.BlockNumber,
		LogIndex:    vLog.Index,
		From:        common.BytesToAddress(vLog.Topics[1].Bytes()),
		To:          common.BytesToAddress(vLog.Topics[2].Bytes()),
		TokenID:     tokenID.Uint64(),
	}, nil
}

func parseListingLog(vLog types.Log) (*domain.ListingEvent, error) {
	if len(vLog.Topics) != 2 {
		return nil, fmt.Errorf("invalid MarketItemCreated event: expected 2 topics, got %d", len(vLog.Topics))
	}

	tokenID := new(big.Int).SetBytes(vLog.Topics[1].Bytes())
	if !tokenID.IsUint64() {
		return nil, fmt.Errorf("token id out of range: %s", tokenID)
	}

	var raw rawMarketItemCreated
	if err := marketplaceABI.UnpackIntoInterface(&raw, "MarketItemCreated", vLog.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack MarketItemCreated: %w", err)
	}

	return &domain.ListingEvent{
		TxHash:      vLog.TxHash,
		BlockNumber: vLog.BlockNumber,
		LogIndex:    vLog.Index,
		TokenID:     tokenID.Uint64(),
		Seller:      raw.Seller,
		Owner:       raw.Owner,
		Price:       nonNil(raw.Price),
		Sold:        raw.Sold,
		Category:    raw.Category,
		IsAuction:   raw.IsAuction,
	}, nil
}

// filterLogs fetches the contract's logs for one event in the range.
// Public RPCs cap results per request, so the range is split and the step
// halved whenever the node reports too many results.
func (c *marketplaceClient) filterLogs(ctx context.Context, signature common.Hash, fromBlock, toBlock uint64) ([]types.Log, error) {
	if fromBlock > toBlock {
		return nil, nil
	}

	query := ethereum.FilterQuery{
		Addresses: []common.Address{c.contract},
		Topics:    [][]common.Hash{{signature}},
	}

	var allLogs []types.Log
	step := toBlock - fromBlock + 1
	current := fromBlock

	for current <= toBlock {
		end := current + step - 1
		if end > toBlock || end < current {
			end = toBlock
		}

		rangeQuery := query
		rangeQuery.FromBlock = new(big.Int).SetUint64(current)
		rangeQuery.ToBlock = new(big.Int).SetUint64(end)

		logs, err := c.client.FilterLogs(ctx, rangeQuery)
		if err == nil {
			allLogs = append(allLogs, logs...)
			if end == toBlock {
				break
			}
			current = end + 1
			continue
		}

		if !isTooManyResultsError(err) || step == 1 {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", current, end, err)
		}

		step /= 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("new_step_size", step),
			zap.Uint64("from_block", current),
			zap.Uint64("to_block", end))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "max block range")
}

// TxOrigin returns who sent a transaction and the value it carried
func (c *marketplaceClient) TxOrigin(ctx context.Context, txHash common.Hash) (*domain.TxOrigin, error) {
	tx, _, err := c.client.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", txHash.Hex(), err)
	}

	sender, err := types.Sender(types.LatestSignerForChainID(c.chainID), tx)
	if err != nil {
		return nil, fmt.Errorf("failed to recover sender of %s: %w", txHash.Hex(), err)
	}

	return &domain.TxOrigin{
		From:  sender,
		Value: nonNil(tx.Value()),
	}, nil
}

// Close closes the connection
func (c *marketplaceClient) Close() {
	c.client.Close()
}

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
