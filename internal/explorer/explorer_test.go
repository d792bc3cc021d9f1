package explorer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestExplorer(t *testing.T) {
	hash := common.HexToHash("0x01")
	contract := common.HexToAddress("0xd1F56c851bE795AEa85eCE4A58B7c0220FfeF215")

	tests := []struct {
		name     string
		baseURL  string
		expected string
	}{
		{name: "default", baseURL: "", expected: "https://testnet.cronoscan.com"},
		{name: "trailing slash", baseURL: "https://explorer.cronos.org/testnet/", expected: "https://explorer.cronos.org/testnet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.baseURL)
			assert.Equal(t, tt.expected+"/tx/"+hash.Hex(), e.TxURL(hash))
			assert.Equal(t, tt.expected+"/token/0xd1F56c851bE795AEa85eCE4A58B7c0220FfeF215?a=17", e.TokenURL(contract, 17))
		})
	}
}
