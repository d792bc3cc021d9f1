package domain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_ChainID(t *testing.T) {
	tests := []struct {
		name        string
		chain       Chain
		expected    int64
		expectError bool
	}{
		{
			name:     "cronos testnet",
			chain:    ChainCronosTestnet,
			expected: 338,
		},
		{
			name:     "round trip",
			chain:    NewEIP155Chain(big.NewInt(25)),
			expected: 25,
		},
		{
			name:        "non evm namespace",
			chain:       Chain("tezos:mainnet"),
			expectError: true,
		},
		{
			name:        "garbage reference",
			chain:       Chain("eip155:abc"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.chain.ChainID()
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id.Int64())
		})
	}
}

func TestItem_SaleVariant(t *testing.T) {
	fixed := Item{TokenID: 1, Sale: &FixedListing{Price: big.NewInt(10)}}
	assert.False(t, fixed.IsAuction())
	assert.Nil(t, fixed.Auction())
	assert.NotNil(t, fixed.Listing())

	auction := Item{TokenID: 2, Sale: &Auction{StartPrice: big.NewInt(10), HighestBid: big.NewInt(0)}}
	assert.True(t, auction.IsAuction())
	assert.NotNil(t, auction.Auction())
	assert.Nil(t, auction.Listing())
	assert.False(t, auction.Auction().HasBid())

	auction.Auction().HighestBid = big.NewInt(11)
	auction.Auction().HighestBidder = common.HexToAddress("0xabc")
	assert.True(t, auction.Auction().HasBid())
	assert.Equal(t, "2", auction.Key())
}

func TestHistoryFilter_Matches(t *testing.T) {
	tests := []struct {
		filter  HistoryFilter
		kind    TransactionKind
		matches bool
	}{
		{HistoryFilterAll, TransactionKindTransfer, true},
		{HistoryFilterMint, TransactionKindMint, true},
		{HistoryFilterMint, TransactionKindBuy, false},
		{HistoryFilterBuy, TransactionKindBuy, true},
		{HistoryFilterSell, TransactionKindSell, true},
		{HistoryFilterSell, TransactionKindListedForSale, true},
		{HistoryFilterSell, TransactionKindAuctionStarted, false},
		{HistoryFilterAuction, TransactionKindAuctionStarted, true},
		{HistoryFilterAuction, TransactionKindListedForSale, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter)+"/"+string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.filter.Matches(tt.kind))
		})
	}

	assert.True(t, IsValidHistoryFilter("sell"))
	assert.False(t, IsValidHistoryFilter("burn"))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		wei      *big.Int
		expected string
	}{
		{"nil", nil, "0.0000"},
		{"one unit", big.NewInt(1_000_000_000_000_000_000), "1.0000"},
		{"min increment", MinBidIncrement, "0.0010"},
		{"rounds half away from zero", big.NewInt(12_350_000_000_000_000), "0.0124"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.wei))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "integer", input: "2", expected: "2000000000000000000"},
		{name: "decimal", input: "1.001", expected: "1001000000000000000"},
		{name: "smallest unit", input: "0.000000000000000001", expected: "1"},
		{name: "too precise", input: "0.0000000000000000001", expectError: true},
		{name: "negative", input: "-1", expectError: true},
		{name: "fraction syntax", input: "1/2", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wei, err := ParseAmount(tt.input)
			if tt.expectError {
				assert.True(t, errors.Is(err, ErrInvalidAmount))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, wei.String())
		})
	}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "hex address", input: "0x123456789012345678901234567890123456abcd", expected: "0x1234...abcd"},
		{name: "checksummed", input: "0xd1F56c851bE795AEa85eCE4A58B7c0220FfeF215", expected: "0xd1F5...F215"},
		{name: "label", input: "Marketplace", expected: "Marketplace"},
		{name: "long label", input: "Marketplace Contract", expected: "Marketplace Contract"},
		{name: "short hex", input: "0x1234", expected: "0x1234"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAddress(tt.input))
		})
	}
}

func TestCanonicalHash_KeyOrder(t *testing.T) {
	a, err := CanonicalHash(map[string]interface{}{"b": 1, "a": "x"})
	require.NoError(t, err)
	b, err := CanonicalHash(struct {
		A string `json:"a"`
		B int    `json:"b"`
	}{A: "x", B: 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMetadata_Hash(t *testing.T) {
	a := &Metadata{Name: "A", Description: "d", Image: "ipfs://x", Attributes: []Attribute{{TraitType: "color", Value: "red"}}}
	b := &Metadata{Name: "A", Description: "d", Image: "ipfs://x", Attributes: []Attribute{{TraitType: "color", Value: "red"}}}
	c := &Metadata{Name: "B"}

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	hc, err := c.Hash()
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
	assert.Len(t, ha, 64)
}

func TestRevertError(t *testing.T) {
	err := error(&RevertError{Method: "placeBid", Reason: "Auction ended"})
	assert.True(t, errors.Is(err, ErrCallReverted))
	assert.Equal(t, "placeBid reverted: Auction ended", err.Error())
}
