package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY    = "https://ipfs.io"
	DEFAULT_ARWEAVE_GATEWAY = "https://arweave.net"

	// Explorer constants
	DEFAULT_EXPLORER_URL = "https://testnet.cronoscan.com"

	// HISTORY_WINDOW is how many trailing blocks the history scan covers.
	// It stays below the public RPC's max block range per eth_getLogs.
	HISTORY_WINDOW uint64 = 500

	// MARKETPLACE_LABEL is the counterparty shown for listing entries
	MARKETPLACE_LABEL = "Marketplace"

	// AUCTION_ENDED_LABEL is shown instead of a countdown once an auction is over
	AUCTION_ENDED_LABEL = "Ended"

	// NATIVE_DECIMALS is the number of decimals of the native currency
	NATIVE_DECIMALS = 18
)

// ZeroAddress means "no account": the source of a mint or an auction without bids
var ZeroAddress = common.Address{}

// MinBidIncrement is 0.001 of the native currency in wei
var MinBidIncrement = big.NewInt(1_000_000_000_000_000)
