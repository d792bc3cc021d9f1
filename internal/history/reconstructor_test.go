package history_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duanblockchain/marketview/internal/block"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/history"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/mocks"
)

var (
	mintTx    = common.HexToHash("0x1111")
	saleTx    = common.HexToHash("0x2222")
	foreignTx = common.HexToHash("0x3333")
	auctionTx = common.HexToHash("0x4444")
	window    = block.Range{From: 9500, To: 10000}
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testReconstructorMocks struct {
	ctrl          *gomock.Controller
	client        *mocks.MockMarketplaceClient
	blocks        *mocks.MockBlockProvider
	pool          pond.Pool
	reconstructor history.Reconstructor
}

func setupReconstructorTest(t *testing.T) *testReconstructorMocks {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMarketplaceClient(ctrl)
	blocks := mocks.NewMockBlockProvider(ctrl)
	pool := pond.NewPool(4)

	// Block n is timestamped n*100 seconds
	blocks.EXPECT().GetBlockTimestamp(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, blockNumber uint64) (time.Time, error) {
			return time.Unix(int64(blockNumber)*100, 0), nil //nolint:gosec,G115
		}).AnyTimes()

	return &testReconstructorMocks{
		ctrl:          ctrl,
		client:        client,
		blocks:        blocks,
		pool:          pool,
		reconstructor: history.NewReconstructor(client, blocks, pool, history.Config{}),
	}
}

func tearDownReconstructorTest(m *testReconstructorMocks) {
	m.pool.StopAndWait()
	m.ctrl.Finish()
}

func keys(txs []domain.Transaction) []domain.TransactionKey {
	result := make([]domain.TransactionKey, 0, len(txs))
	for _, tx := range txs {
		result = append(result, tx.Key())
	}
	return result
}

func TestReconstruct(t *testing.T) {
	m := setupReconstructorTest(t)
	defer tearDownReconstructorTest(m)

	ctx := context.Background()
	transfers := []domain.TransferEvent{
		{TxHash: mintTx, BlockNumber: 9600, From: domain.ZeroAddress, To: alice, TokenID: 1},
		{TxHash: saleTx, BlockNumber: 9700, From: bob, To: alice, TokenID: 7},
		{TxHash: saleTx, BlockNumber: 9700, From: bob, To: alice, TokenID: 8},
		{TxHash: foreignTx, BlockNumber: 9900, From: carol, To: bob, TokenID: 3},
	}
	listings := []domain.ListingEvent{
		{TxHash: auctionTx, BlockNumber: 9800, TokenID: 9, Seller: alice, Price: oneUnit, IsAuction: true},
		{TxHash: saleTx, BlockNumber: 9700, TokenID: 7, Seller: alice, Price: oneUnit},
		{TxHash: foreignTx, BlockNumber: 9900, TokenID: 3, Seller: carol, Price: oneUnit},
	}

	m.blocks.EXPECT().TrailingWindow(ctx, domain.HISTORY_WINDOW).Return(window, nil)
	m.client.EXPECT().FilterTransfers(ctx, window.From, window.To).Return(transfers, nil)
	m.client.EXPECT().FilterListings(ctx, window.From, window.To).Return(listings, nil)
	m.client.EXPECT().TxOrigin(gomock.Any(), mintTx).Return(&domain.TxOrigin{From: alice, Value: big.NewInt(0)}, nil)
	m.client.EXPECT().TxOrigin(gomock.Any(), saleTx).Return(&domain.TxOrigin{From: alice, Value: oneUnit}, nil).Times(1)
	m.client.EXPECT().TxOrigin(gomock.Any(), foreignTx).Return(&domain.TxOrigin{From: carol, Value: big.NewInt(0)}, nil)

	txs, err := m.reconstructor.Reconstruct(ctx, alice)
	require.NoError(t, err)

	assert.Equal(t, []domain.TransactionKey{
		{Hash: auctionTx, TokenID: 9},
		{Hash: saleTx, TokenID: 7},
		{Hash: saleTx, TokenID: 8},
		{Hash: mintTx, TokenID: 1},
	}, keys(txs))

	auction := txs[0]
	assert.Equal(t, domain.TransactionKindAuctionStarted, auction.Kind)
	assert.Equal(t, domain.MARKETPLACE_LABEL, auction.To)
	assert.Equal(t, alice.Hex(), auction.From)
	assert.Equal(t, int64(980000), auction.Timestamp)

	// the transfer wins over the listing of the same (hash, tokenId)
	assert.Equal(t, domain.TransactionKindBuy, txs[1].Kind)
	assert.Equal(t, 0, oneUnit.Cmp(txs[1].Price))
	assert.Equal(t, bob.Hex(), txs[1].From)

	assert.Equal(t, domain.TransactionKindMint, txs[3].Kind)
	assert.Equal(t, uint64(9600), txs[3].BlockNumber)

	for i := 1; i < len(txs); i++ {
		assert.GreaterOrEqual(t, txs[i-1].Timestamp, txs[i].Timestamp)
	}
}

func TestReconstruct_MintFromZeroPaidByRecipient(t *testing.T) {
	m := setupReconstructorTest(t)
	defer tearDownReconstructorTest(m)

	ctx := context.Background()
	m.blocks.EXPECT().TrailingWindow(ctx, domain.HISTORY_WINDOW).Return(window, nil)
	m.client.EXPECT().FilterTransfers(ctx, window.From, window.To).Return([]domain.TransferEvent{
		{TxHash: mintTx, BlockNumber: 9600, From: domain.ZeroAddress, To: alice, TokenID: 1},
	}, nil)
	m.client.EXPECT().FilterListings(ctx, window.From, window.To).Return(nil, nil)
	m.client.EXPECT().TxOrigin(gomock.Any(), mintTx).Return(&domain.TxOrigin{From: alice, Value: oneUnit}, nil)

	txs, err := m.reconstructor.Reconstruct(ctx, alice)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionKindMint, txs[0].Kind)
	assert.Equal(t, 0, txs[0].Price.Sign())
}

func TestReconstruct_DuplicateEventsCollapse(t *testing.T) {
	m := setupReconstructorTest(t)
	defer tearDownReconstructorTest(m)

	ctx := context.Background()
	event := domain.TransferEvent{TxHash: saleTx, BlockNumber: 9700, From: bob, To: alice, TokenID: 5}

	m.blocks.EXPECT().TrailingWindow(ctx, domain.HISTORY_WINDOW).Return(window, nil)
	m.client.EXPECT().FilterTransfers(ctx, window.From, window.To).Return([]domain.TransferEvent{event, event}, nil)
	m.client.EXPECT().FilterListings(ctx, window.From, window.To).Return(nil, nil)
	m.client.EXPECT().TxOrigin(gomock.Any(), saleTx).Return(&domain.TxOrigin{From: alice, Value: oneUnit}, nil)

	txs, err := m.reconstructor.Reconstruct(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestReconstruct_ListingQueryFailureIsTolerated(t *testing.T) {
	m := setupReconstructorTest(t)
	defer tearDownReconstructorTest(m)

	ctx := context.Background()
	m.blocks.EXPECT().TrailingWindow(ctx, domain.HISTORY_WINDOW).Return(window, nil)
	m.client.EXPECT().FilterTransfers(ctx, window.From, window.To).Return([]domain.TransferEvent{
		{TxHash: mintTx, BlockNumber: 9600, From: domain.ZeroAddress, To: alice, TokenID: 1},
	}, nil)
	m.client.EXPECT().FilterListings(ctx, window.From, window.To).Return(nil, errors.New("method not supported"))
	m.client.EXPECT().TxOrigin(gomock.Any(), mintTx).Return(&domain.TxOrigin{From: alice, Value: big.NewInt(0)}, nil)

	txs, err := m.reconstructor.Reconstruct(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestReconstruct_EnrichmentFailureSkipsEvent(t *testing.T) {
	m := setupReconstructorTest(t)
	defer tearDownReconstructorTest(m)

	ctx := context.Background()
	m.blocks.EXPECT().TrailingWindow(ctx, domain.HISTORY_WINDOW).Return(window, nil)
	m.client.EXPECT().FilterTransfers(ctx, window.From, window.To).Return([]domain.TransferEvent{
		{TxHash: mintTx, BlockNumber: 9600, From: domain.ZeroAddress, To: alice, TokenID: 1},
		{TxHash: saleTx, BlockNumber: 9700, From: bob, To: alice, TokenID: 7},
	}, nil)
	m.client.EXPECT().FilterListings(ctx, window.From, window.To).Return(nil, nil)
	m.client.EXPECT().TxOrigin(gomock.Any(), mintTx).Return(&domain.TxOrigin{From: alice, Value: big.NewInt(0)}, nil)
	m.client.EXPECT().TxOrigin(gomock.Any(), saleTx).Return(nil, errors.New("not found"))

	txs, err := m.reconstructor.Reconstruct(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []domain.TransactionKey{{Hash: mintTx, TokenID: 1}}, keys(txs))
}

func TestReconstruct_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *testReconstructorMocks, ctx context.Context)
	}{
		{
			name: "chain head unavailable",
			setup: func(m *testReconstructorMocks, ctx context.Context) {
				m.blocks.EXPECT().TrailingWindow(ctx, domain.HISTORY_WINDOW).Return(block.Range{}, errors.New("rpc down"))
			},
		},
		{
			name: "transfer query fails",
			setup: func(m *testReconstructorMocks, ctx context.Context) {
				m.blocks.EXPECT().TrailingWindow(ctx, domain.HISTORY_WINDOW).Return(window, nil)
				m.client.EXPECT().FilterTransfers(ctx, window.From, window.To).Return(nil, errors.New("range too large"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupReconstructorTest(t)
			defer tearDownReconstructorTest(m)

			ctx := context.Background()
			tt.setup(m, ctx)

			txs, err := m.reconstructor.Reconstruct(ctx, alice)
			assert.Error(t, err)
			assert.Nil(t, txs)
		})
	}
}

func TestReconstruct_RequiresAddress(t *testing.T) {
	m := setupReconstructorTest(t)
	defer tearDownReconstructorTest(m)

	_, err := m.reconstructor.Reconstruct(context.Background(), domain.ZeroAddress)
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestReconstruct_CustomWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockMarketplaceClient(ctrl)
	blocks := mocks.NewMockBlockProvider(ctrl)
	pool := pond.NewPool(2)
	defer pool.StopAndWait()

	reconstructor := history.NewReconstructor(client, blocks, pool, history.Config{Window: 100, RequestsPerSecond: 50})

	ctx := context.Background()
	blocks.EXPECT().TrailingWindow(ctx, uint64(100)).Return(block.Range{From: 900, To: 1000}, nil)
	client.EXPECT().FilterTransfers(ctx, uint64(900), uint64(1000)).Return(nil, nil)
	client.EXPECT().FilterListings(ctx, uint64(900), uint64(1000)).Return(nil, nil)

	txs, err := reconstructor.Reconstruct(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
