package domain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainCronosMainnet Chain = "eip155:25"
	ChainCronosTestnet Chain = "eip155:338"
	ChainHardhatLocal  Chain = "eip155:31337"
)

// NewEIP155Chain builds the CAIP-2 identifier for an EVM chain id
func NewEIP155Chain(chainID *big.Int) Chain {
	return Chain(fmt.Sprintf("eip155:%s", chainID.String()))
}

// ChainID returns the numeric EVM chain id of an eip155 chain
func (c Chain) ChainID() (*big.Int, error) {
	ref, ok := strings.CutPrefix(string(c), "eip155:")
	if !ok {
		return nil, fmt.Errorf("unsupported chain namespace: %s", c)
	}
	id, ok := new(big.Int).SetString(ref, 10)
	if !ok {
		return nil, fmt.Errorf("invalid chain reference: %s", c)
	}
	return id, nil
}

// Sale is the mode an item is offered in. It is either a *FixedListing or an *Auction.
type Sale interface {
	isSale()
}

// FixedListing is a fixed-price offer
type FixedListing struct {
	Price *big.Int
	Sold  bool
}

func (*FixedListing) isSale() {}

// Auction is a timed ascending auction
type Auction struct {
	// StartPrice is the reserve price the first bid is measured against
	StartPrice    *big.Int
	EndTime       time.Time
	HighestBid    *big.Int
	HighestBidder common.Address
}

func (*Auction) isSale() {}

// HasBid reports whether anyone has bid yet
func (a *Auction) HasBid() bool {
	return a.HighestBidder != (common.Address{}) || (a.HighestBid != nil && a.HighestBid.Sign() > 0)
}

// Item is one marketplace token as read from the contract
type Item struct {
	TokenID   uint64
	Seller    common.Address
	Owner     common.Address
	Creator   common.Address
	Category  string
	CreatedAt time.Time
	Sale      Sale
}

// IsAuction reports whether the item is offered as an auction
func (i *Item) IsAuction() bool {
	_, ok := i.Sale.(*Auction)
	return ok
}

// Auction returns the auction variant, or nil for fixed listings
func (i *Item) Auction() *Auction {
	a, _ := i.Sale.(*Auction)
	return a
}

// Listing returns the fixed listing variant, or nil for auctions
func (i *Item) Listing() *FixedListing {
	l, _ := i.Sale.(*FixedListing)
	return l
}

// Key returns the token id as used for map keys
func (i *Item) Key() string {
	return TokenKey(i.TokenID)
}

// TokenKey formats a token id as a cache/map key
func TokenKey(tokenID uint64) string {
	return strconv.FormatUint(tokenID, 10)
}

// Attribute is one display trait of an asset
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Metadata is the off-chain description of a token
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`

	// Placeholder is set when the real document could not be resolved
	Placeholder bool `json:"-"`
}

// MarketItem joins an item with its resolved metadata
type MarketItem struct {
	Item     Item
	Metadata *Metadata
}

// Snapshot is the three collections a caller sees after a full reload
type Snapshot struct {
	Market []MarketItem
	Owned  []MarketItem
	Listed []MarketItem
}

// TransactionKind is the user-facing classification of a history entry
type TransactionKind string

const (
	TransactionKindMint           TransactionKind = "Mint"
	TransactionKindBuy            TransactionKind = "Buy"
	TransactionKindSell           TransactionKind = "Sell"
	TransactionKindTransfer       TransactionKind = "Transfer"
	TransactionKindListedForSale  TransactionKind = "Listed for Sale"
	TransactionKindAuctionStarted TransactionKind = "Auction Started"
)

// IsAuction reports whether the kind belongs to the auction tab
func (k TransactionKind) IsAuction() bool {
	return strings.Contains(string(k), "Auction")
}

// Transaction is one derived history entry
type Transaction struct {
	Hash        common.Hash
	Kind        TransactionKind
	TokenID     uint64
	From        string
	To          string
	Price       *big.Int
	Timestamp   int64
	BlockNumber uint64
}

// Key returns the uniqueness key of the entry
func (t *Transaction) Key() TransactionKey {
	return TransactionKey{Hash: t.Hash, TokenID: t.TokenID}
}

// TransactionKey identifies a history entry: one ledger transaction may touch several tokens
type TransactionKey struct {
	Hash    common.Hash
	TokenID uint64
}

// TransferEvent is a decoded Transfer(from, to, tokenId) log
type TransferEvent struct {
	TxHash      common.Hash
	BlockNumber uint64
	LogIndex    uint
	From        common.Address
	To          common.Address
	TokenID     uint64
}

// IsMint reports whether the transfer originates from the zero address
func (e *TransferEvent) IsMint() bool {
	return e.From == ZeroAddress
}

// ListingEvent is a decoded MarketItemCreated log
type ListingEvent struct {
	TxHash      common.Hash
	BlockNumber uint64
	LogIndex    uint
	TokenID     uint64
	Seller      common.Address
	Owner       common.Address
	Price       *big.Int
	Sold        bool
	Category    string
	IsAuction   bool
}

// TxOrigin is the part of a transaction the history needs
type TxOrigin struct {
	From  common.Address
	Value *big.Int
}

// HistoryFilter selects a tab of the transaction history
type HistoryFilter string

const (
	HistoryFilterAll     HistoryFilter = "all"
	HistoryFilterMint    HistoryFilter = "mint"
	HistoryFilterBuy     HistoryFilter = "buy"
	HistoryFilterSell    HistoryFilter = "sell"
	HistoryFilterAuction HistoryFilter = "auction"
)

// HistoryFilters lists every tab in display order
var HistoryFilters = []HistoryFilter{
	HistoryFilterAll,
	HistoryFilterMint,
	HistoryFilterBuy,
	HistoryFilterSell,
	HistoryFilterAuction,
}

// IsValidHistoryFilter checks if a filter is known
func IsValidHistoryFilter(f HistoryFilter) bool {
	for _, known := range HistoryFilters {
		if f == known {
			return true
		}
	}
	return false
}

// Matches reports whether a transaction kind belongs to the tab
func (f HistoryFilter) Matches(kind TransactionKind) bool {
	switch f {
	case HistoryFilterMint:
		return kind == TransactionKindMint
	case HistoryFilterBuy:
		return kind == TransactionKindBuy
	case HistoryFilterSell:
		return kind == TransactionKindSell || kind == TransactionKindListedForSale
	case HistoryFilterAuction:
		return kind.IsAuction()
	default:
		return true
	}
}
