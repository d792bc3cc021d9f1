package explorer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/duanblockchain/marketview/internal/domain"
)

// Explorer builds block-explorer links
type Explorer struct {
	baseURL string
}

// New creates an Explorer for baseURL, falling back to the default explorer
func New(baseURL string) *Explorer {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = domain.DEFAULT_EXPLORER_URL
	}
	return &Explorer{baseURL: baseURL}
}

// TxURL links to a transaction
func (e *Explorer) TxURL(hash common.Hash) string {
	return fmt.Sprintf("%s/tx/%s", e.baseURL, hash.Hex())
}

// TokenURL links to a token of a contract
func (e *Explorer) TokenURL(contract common.Address, tokenID uint64) string {
	return fmt.Sprintf("%s/token/%s?a=%d", e.baseURL, contract.Hex(), tokenID)
}
