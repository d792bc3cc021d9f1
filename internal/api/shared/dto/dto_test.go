package dto_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duanblockchain/marketview/internal/api/shared/dto"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/explorer"
)

var (
	contract = common.HexToAddress("0xd1F56c851bE795AEa85eCE4A58B7c0220FfeF215")
	seller   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	now      = time.Unix(1_700_000_000, 0)
)

func shortHex(a common.Address) string {
	h := a.Hex()
	return h[:6] + "..." + h[len(h)-4:]
}

func TestMapItemToDTO_EndedAuctionWithoutBids(t *testing.T) {
	item := domain.MarketItem{
		Item: domain.Item{
			TokenID: 4,
			Seller:  seller,
			Sale: &domain.Auction{
				StartPrice: big.NewInt(500),
				EndTime:    now.Add(-time.Minute),
				HighestBid: big.NewInt(0),
			},
		},
		Metadata: &domain.Metadata{Name: "NFT #4", Placeholder: true},
	}

	resp := dto.MapItemToDTO(item, seller, now, explorer.New(""), contract)
	require.NotNil(t, resp.Auction)
	assert.True(t, resp.Auction.Ended)
	assert.Nil(t, resp.Auction.HighestBidder)
	assert.Equal(t, "500", resp.Auction.CurrentPrice)
	assert.Empty(t, resp.Metadata.Hash)
	assert.NotNil(t, resp.Metadata.Attributes)
	assert.True(t, resp.Actions.CanEnd)
	assert.False(t, resp.Actions.CanBid)
}

func TestMapItemToDTO_ShortAddresses(t *testing.T) {
	bidder := common.HexToAddress("0x00000000000000000000000000000000000000b2")
	item := domain.MarketItem{
		Item: domain.Item{
			TokenID: 5,
			Seller:  seller,
			Owner:   contract,
			Creator: seller,
			Sale: &domain.Auction{
				StartPrice:    big.NewInt(500),
				EndTime:       now.Add(time.Hour),
				HighestBid:    big.NewInt(700),
				HighestBidder: bidder,
			},
		},
	}

	resp := dto.MapItemToDTO(item, bidder, now, explorer.New(""), contract)
	assert.Equal(t, shortHex(seller), resp.SellerShort)
	assert.Equal(t, shortHex(seller), resp.CreatorShort)
	assert.Equal(t, shortHex(contract), resp.OwnerShort)
	assert.Len(t, resp.OwnerShort, 13)
	require.NotNil(t, resp.Auction.HighestBidderShort)
	assert.Equal(t, shortHex(bidder), *resp.Auction.HighestBidderShort)
}

func TestItemResponse_ETag(t *testing.T) {
	base := dto.ItemResponse{TokenID: 5, Auction: &dto.AuctionResponse{HighestBid: "700"}}
	same := dto.ItemResponse{TokenID: 5, Auction: &dto.AuctionResponse{HighestBid: "700"}}
	outbid := dto.ItemResponse{TokenID: 5, Auction: &dto.AuctionResponse{HighestBid: "900"}}

	a, err := base.ETag()
	require.NoError(t, err)
	b, err := same.ETag()
	require.NoError(t, err)
	c, err := outbid.ETag()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^"[0-9a-f]{64}"$`, a)
}

func TestMapHistoryToDTO_ShortAddresses(t *testing.T) {
	txs := []domain.Transaction{{
		Hash:  common.HexToHash("0x01"),
		Kind:  domain.TransactionKindSell,
		From:  seller.Hex(),
		To:    domain.MARKETPLACE_LABEL,
		Price: big.NewInt(1),
	}}

	resp := dto.MapHistoryToDTO(seller.Hex(), domain.HistoryFilterAll, txs, nil, explorer.New(""))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, shortHex(seller), resp.Transactions[0].FromShort)
	assert.Equal(t, domain.MARKETPLACE_LABEL, resp.Transactions[0].ToShort)
}

func TestMapMetadataToDTO_Nil(t *testing.T) {
	assert.Nil(t, dto.MapMetadataToDTO(nil))
}

func TestMapTradeToDTO(t *testing.T) {
	hash := common.HexToHash("0xbeef")
	links := explorer.New("https://explorer.example/")

	snapshot := &domain.Snapshot{
		Owned: []domain.MarketItem{{
			Item: domain.Item{TokenID: 9, Sale: &domain.FixedListing{Price: big.NewInt(1)}},
		}},
	}

	resp := dto.MapTradeToDTO(hash, 120, 9, snapshot, seller, now, links, contract)
	assert.Equal(t, hash.Hex(), resp.TxHash)
	assert.Equal(t, "https://explorer.example/tx/"+hash.Hex(), resp.ExplorerURL)
	assert.Equal(t, 0, resp.Market.Total)
	assert.Equal(t, 1, resp.Owned.Total)
	assert.Empty(t, resp.Listed.Items)

	resp = dto.MapTradeToDTO(hash, 120, 0, nil, seller, now, links, contract)
	assert.Nil(t, resp.Market)
	assert.Nil(t, resp.Owned)
}
