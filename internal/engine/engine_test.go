package engine_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duanblockchain/marketview/internal/config"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/engine"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func options() engine.Options {
	return engine.Options{
		Ethereum: config.EthereumConfig{
			RPCURL:          "http://localhost:8545",
			ChainID:         domain.ChainCronosTestnet,
			ContractAddress: "0xd1F56c851bE795AEa85eCE4A58B7c0220FfeF215",
			BlockHeadTTL:    5 * time.Second,
			HistoryWindow:   domain.HISTORY_WINDOW,
		},
		Metadata: config.MetadataConfig{HTTPTimeout: time.Second},
		Worker:   config.WorkerConfig{WorkerPoolSize: 2, WorkerQueueSize: 8},
	}
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	dialer := mocks.NewMockEthClientDialer(ctrl)
	client := mocks.NewMockEthClient(ctrl)

	dialer.EXPECT().Dial(ctx, "http://localhost:8545").Return(client, nil)
	client.EXPECT().ChainID(ctx).Return(big.NewInt(338), nil)
	client.EXPECT().Close()

	e, err := engine.New(ctx, dialer, options())
	require.NoError(t, err)
	assert.Equal(t, "0xd1F56c851bE795AEa85eCE4A58B7c0220FfeF215", e.Contract.Hex())
	assert.NotNil(t, e.Reader)
	assert.NotNil(t, e.Reconstructor)
	assert.Equal(t, "https://testnet.cronoscan.com/token/0xd1F56c851bE795AEa85eCE4A58B7c0220FfeF215?a=5", e.Links.TokenURL(e.Contract, 5))
	e.Close()
}

func TestNew_ChainMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	dialer := mocks.NewMockEthClientDialer(ctrl)
	client := mocks.NewMockEthClient(ctrl)

	dialer.EXPECT().Dial(ctx, gomock.Any()).Return(client, nil)
	client.EXPECT().ChainID(ctx).Return(big.NewInt(1), nil)
	client.EXPECT().Close()

	_, err := engine.New(ctx, dialer, options())
	assert.ErrorIs(t, err, domain.ErrChainMismatch)
}

func TestNew_Unreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	dialer := mocks.NewMockEthClientDialer(ctrl)
	client := mocks.NewMockEthClient(ctrl)

	dialer.EXPECT().Dial(ctx, gomock.Any()).Return(client, nil)
	client.EXPECT().ChainID(ctx).Return(nil, errors.New("connection refused"))
	client.EXPECT().Close()

	_, err := engine.New(ctx, dialer, options())
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestNew_DialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dialer := mocks.NewMockEthClientDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, errors.New("bad url"))

	_, err := engine.New(context.Background(), dialer, options())
	assert.Error(t, err)
}
