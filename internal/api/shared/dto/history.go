package dto

import (
	"math/big"

	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/explorer"
)

// TransactionResponse is one history entry
type TransactionResponse struct {
	Hash         string `json:"hash"`
	Type         string `json:"type"`
	TokenID      uint64 `json:"token_id"`
	From         string `json:"from"`
	FromShort    string `json:"from_short"`
	To           string `json:"to"`
	ToShort      string `json:"to_short"`
	Price        string `json:"price"`
	PriceDisplay string `json:"price_display"`
	Timestamp    int64  `json:"timestamp"`
	BlockNumber  uint64 `json:"block_number"`
	ExplorerURL  string `json:"explorer_url"`
}

// HistoryResponse is one tab of an address's history plus the size of every tab
type HistoryResponse struct {
	Address      string                `json:"address"`
	Filter       string                `json:"filter"`
	Transactions []TransactionResponse `json:"transactions"`
	Counts       map[string]int        `json:"counts"`
}

// MapTransactionToDTO maps a history entry
func MapTransactionToDTO(tx domain.Transaction, links *explorer.Explorer) TransactionResponse {
	return TransactionResponse{
		Hash:         tx.Hash.Hex(),
		Type:         string(tx.Kind),
		TokenID:      tx.TokenID,
		From:         tx.From,
		FromShort:    domain.FormatAddress(tx.From),
		To:           tx.To,
		ToShort:      domain.FormatAddress(tx.To),
		Price:        weiString(tx.Price),
		PriceDisplay: domain.FormatAmount(tx.Price),
		Timestamp:    tx.Timestamp,
		BlockNumber:  tx.BlockNumber,
		ExplorerURL:  links.TxURL(tx.Hash),
	}
}

// MapHistoryToDTO maps the selected tab and the per-tab counts
func MapHistoryToDTO(address string, filter domain.HistoryFilter, txs []domain.Transaction, counts map[domain.HistoryFilter]int, links *explorer.Explorer) *HistoryResponse {
	resp := &HistoryResponse{
		Address:      address,
		Filter:       string(filter),
		Transactions: make([]TransactionResponse, 0, len(txs)),
		Counts:       make(map[string]int, len(counts)),
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, MapTransactionToDTO(tx, links))
	}
	for f, n := range counts {
		resp.Counts[string(f)] = n
	}
	return resp
}

func weiString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
