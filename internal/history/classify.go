package history

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/duanblockchain/marketview/internal/domain"
)

// IsRelevant reports whether address took part in a transfer as sender, recipient or tx origin
func IsRelevant(event domain.TransferEvent, origin domain.TxOrigin, address common.Address) bool {
	return event.To == address || event.From == address || origin.From == address
}

// Classify derives the kind of a transfer as seen by address, and the price paid if any
func Classify(event domain.TransferEvent, origin domain.TxOrigin, address common.Address) (domain.TransactionKind, *big.Int) {
	if event.IsMint() {
		return domain.TransactionKindMint, new(big.Int)
	}

	if origin.Value == nil || origin.Value.Sign() <= 0 {
		return domain.TransactionKindTransfer, new(big.Int)
	}

	switch address {
	case origin.From:
		return domain.TransactionKindBuy, new(big.Int).Set(origin.Value)
	case event.From:
		return domain.TransactionKindSell, new(big.Int).Set(origin.Value)
	default:
		return domain.TransactionKindTransfer, new(big.Int)
	}
}

// ListingKind returns the kind of a listing-created entry
func ListingKind(event domain.ListingEvent) domain.TransactionKind {
	if event.IsAuction {
		return domain.TransactionKindAuctionStarted
	}
	return domain.TransactionKindListedForSale
}

// Dedup keeps the first entry of every (hash, tokenId) pair
func Dedup(txs []domain.Transaction) []domain.Transaction {
	seen := make(map[domain.TransactionKey]struct{}, len(txs))
	result := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		key := tx.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, tx)
	}
	return result
}

// SortNewestFirst orders entries by timestamp, newest first. Ties keep their order.
func SortNewestFirst(txs []domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp > txs[j].Timestamp
	})
}

// Filter returns the entries belonging to a history tab
func Filter(txs []domain.Transaction, filter domain.HistoryFilter) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if filter.Matches(tx.Kind) {
			result = append(result, tx)
		}
	}
	return result
}

// Counts returns how many entries each tab holds
func Counts(txs []domain.Transaction) map[domain.HistoryFilter]int {
	counts := make(map[domain.HistoryFilter]int, len(domain.HistoryFilters))
	for _, f := range domain.HistoryFilters {
		counts[f] = 0
	}
	for _, tx := range txs {
		for _, f := range domain.HistoryFilters {
			if f.Matches(tx.Kind) {
				counts[f]++
			}
		}
	}
	return counts
}
