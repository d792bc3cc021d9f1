package ethereum

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const marketItemComponents = `[
	{"name":"tokenId","type":"uint256"},
	{"name":"seller","type":"address"},
	{"name":"owner","type":"address"},
	{"name":"price","type":"uint256"},
	{"name":"sold","type":"bool"},
	{"name":"category","type":"string"},
	{"name":"createdAt","type":"uint256"},
	{"name":"isAuction","type":"bool"},
	{"name":"endTime","type":"uint256"},
	{"name":"highestBid","type":"uint256"},
	{"name":"highestBidder","type":"address"},
	{"name":"creator","type":"address"}
]`

// marketplaceABIJSON covers the subset of the marketplace contract the engine uses
var marketplaceABIJSON = `[
	{"type":"function","name":"fetchMarketItems","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":` + marketItemComponents + `}]},
	{"type":"function","name":"fetchMyNFTs","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":` + marketItemComponents + `}]},
	{"type":"function","name":"fetchItemsListed","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":` + marketItemComponents + `}]},
	{"type":"function","name":"tokenURI","stateMutability":"view","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"getListingPrice","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"tokenURI","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"listForSale","stateMutability":"payable","inputs":[{"name":"tokenId","type":"uint256"},{"name":"price","type":"uint256"},{"name":"category","type":"string"}],"outputs":[]},
	{"type":"function","name":"startAuction","stateMutability":"payable","inputs":[{"name":"tokenId","type":"uint256"},{"name":"startPrice","type":"uint256"},{"name":"duration","type":"uint256"},{"name":"category","type":"string"}],"outputs":[]},
	{"type":"function","name":"placeBid","stateMutability":"payable","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"endAuction","stateMutability":"nonpayable","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"createMarketSale","stateMutability":"payable","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"cancelListing","stateMutability":"nonpayable","inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"tokenId","type":"uint256","indexed":true}]},
	{"type":"event","name":"MarketItemCreated","anonymous":false,"inputs":[{"name":"tokenId","type":"uint256","indexed":true},{"name":"seller","type":"address","indexed":false},{"name":"owner","type":"address","indexed":false},{"name":"price","type":"uint256","indexed":false},{"name":"sold","type":"bool","indexed":false},{"name":"category","type":"string","indexed":false},{"name":"isAuction","type":"bool","indexed":false}]}
]`

// Contract method names
const (
	MethodFetchMarketItems = "fetchMarketItems"
	MethodFetchMyNFTs      = "fetchMyNFTs"
	MethodFetchItemsListed = "fetchItemsListed"
	MethodTokenURI         = "tokenURI"
	MethodGetListingPrice  = "getListingPrice"
	MethodMint             = "mint"
	MethodListForSale      = "listForSale"
	MethodStartAuction     = "startAuction"
	MethodPlaceBid         = "placeBid"
	MethodEndAuction       = "endAuction"
	MethodCreateMarketSale = "createMarketSale"
	MethodCancelListing    = "cancelListing"
)

var (
	marketplaceABI = mustParseABI(marketplaceABIJSON)

	// Transfer(address indexed from, address indexed to, uint256 indexed tokenId)
	transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	// MarketItemCreated(uint256 indexed tokenId, address seller, address owner, uint256 price, bool sold, string category, bool isAuction)
	marketItemCreatedEventSignature = crypto.Keccak256Hash([]byte("MarketItemCreated(uint256,address,address,uint256,bool,string,bool)"))
)

// rawMarketItem mirrors the contract's MarketItem struct
type rawMarketItem struct {
	TokenId       *big.Int //nolint:revive,stylecheck // must match the ABI component name
	Seller        common.Address
	Owner         common.Address
	Price         *big.Int
	Sold          bool
	Category      string
	CreatedAt     *big.Int
	IsAuction     bool
	EndTime       *big.Int
	HighestBid    *big.Int
	HighestBidder common.Address
	Creator       common.Address
}

// rawMarketItemCreated holds the non-indexed fields of MarketItemCreated
type rawMarketItemCreated struct {
	Seller    common.Address
	Owner     common.Address
	Price     *big.Int
	Sold      bool
	Category  string
	IsAuction bool
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid marketplace ABI: %v", err))
	}
	return parsed
}
