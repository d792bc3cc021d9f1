package dto

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/explorer"
)

// TradeResponse is a mined write and the caller's collections reloaded after it
type TradeResponse struct {
	TxHash      string            `json:"tx_hash"`
	BlockNumber uint64            `json:"block_number"`
	TokenID     uint64            `json:"token_id,omitempty"`
	ExplorerURL string            `json:"explorer_url"`
	Market      *ItemListResponse `json:"market,omitempty"`
	Owned       *ItemListResponse `json:"owned,omitempty"`
	Listed      *ItemListResponse `json:"listed,omitempty"`
}

// MapTradeToDTO maps a confirmed write; snapshot may be nil when the reload failed
func MapTradeToDTO(
	txHash common.Hash,
	blockNumber uint64,
	tokenID uint64,
	snapshot *domain.Snapshot,
	caller common.Address,
	now time.Time,
	links *explorer.Explorer,
	contract common.Address,
) *TradeResponse {
	resp := &TradeResponse{
		TxHash:      txHash.Hex(),
		BlockNumber: blockNumber,
		TokenID:     tokenID,
		ExplorerURL: links.TxURL(txHash),
	}
	if snapshot != nil {
		resp.Market = MapItemsToDTO(snapshot.Market, caller, now, links, contract)
		resp.Owned = MapItemsToDTO(snapshot.Owned, caller, now, links, contract)
		resp.Listed = MapItemsToDTO(snapshot.Listed, caller, now, links, contract)
	}
	return resp
}
