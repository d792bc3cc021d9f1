package ethereum

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/mocks"
)

type testTransactorMocks struct {
	ctrl       *gomock.Controller
	ethClient  *mocks.MockEthClient
	transactor Transactor
}

func setupTransactorTest(t *testing.T) *testTransactorMocks {
	ctrl := gomock.NewController(t)
	ethClient := mocks.NewMockEthClient(ctrl)

	transactor, err := NewTransactor(domain.ChainCronosTestnet, testContract, ethClient, 5*time.Second)
	require.NoError(t, err)

	return &testTransactorMocks{ctrl: ctrl, ethClient: ethClient, transactor: transactor}
}

// revertData encodes Error(string) the way solidity does for require messages
func revertData(t *testing.T, reason string) []byte {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	return append(crypto.Keccak256([]byte("Error(string)"))[:4], packed...)
}

type dataError struct {
	msg  string
	data string
}

func (e *dataError) Error() string          { return e.msg }
func (e *dataError) ErrorData() interface{} { return e.data }

func TestTransact_SubmitsAndWaits(t *testing.T) {
	tm := setupTransactorTest(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	fee := big.NewInt(25_000_000_000_000_000)

	var sent *types.Transaction
	tm.ethClient.EXPECT().PendingNonceAt(ctx, from).Return(uint64(4), nil)
	tm.ethClient.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(5_000_000_000_000), nil)
	tm.ethClient.EXPECT().
		EstimateGas(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
			assert.Equal(t, from, msg.From)
			assert.Equal(t, fee, msg.Value)
			return uint64(120_000), nil
		})
	tm.ethClient.EXPECT().
		SendTransaction(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})
	tm.ethClient.EXPECT().
		TransactionReceipt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
			return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash, BlockNumber: big.NewInt(900)}, nil
		})

	receipt, err := tm.transactor.Transact(ctx, key, MethodListForSale, fee, big.NewInt(3), big.NewInt(1_000_000_000_000_000_000), "art")
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, sent.Hash(), receipt.TxHash)
	assert.Equal(t, uint64(4), sent.Nonce())
	assert.Equal(t, uint64(120_000), sent.Gas())
	assert.Equal(t, testContract, *sent.To())
	assert.Equal(t, fee, sent.Value())
	assert.Equal(t, int64(338), sent.ChainId().Int64())

	expectedData, err := marketplaceABI.Pack(MethodListForSale, big.NewInt(3), big.NewInt(1_000_000_000_000_000_000), "art")
	require.NoError(t, err)
	assert.Equal(t, expectedData, sent.Data())
}

func TestTransact_EstimateGasRevert(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "reason in message",
			err:      errors.New("execution reverted: Only seller can cancel"),
			expected: "Only seller can cancel",
		},
		{
			name:     "reason in error data",
			err:      &dataError{msg: "execution reverted", data: hexutil.Encode(revertData(t, "Auction has ended"))},
			expected: "Auction has ended",
		},
		{
			name:     "bare revert",
			err:      errors.New("execution reverted"),
			expected: "execution reverted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTransactorTest(t)
			defer tm.ctrl.Finish()

			ctx := context.Background()
			key, err := crypto.GenerateKey()
			require.NoError(t, err)

			tm.ethClient.EXPECT().PendingNonceAt(ctx, gomock.Any()).Return(uint64(0), nil)
			tm.ethClient.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1), nil)
			tm.ethClient.EXPECT().EstimateGas(ctx, gomock.Any()).Return(uint64(0), tt.err)

			_, err = tm.transactor.Transact(ctx, key, MethodCancelListing, nil, big.NewInt(1))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCallReverted)

			var revertErr *domain.RevertError
			require.ErrorAs(t, err, &revertErr)
			assert.Equal(t, MethodCancelListing, revertErr.Method)
			assert.Equal(t, tt.expected, revertErr.Reason)
		})
	}
}

func TestTransact_EstimateGasConnectivityError(t *testing.T) {
	tm := setupTransactorTest(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	tm.ethClient.EXPECT().PendingNonceAt(ctx, gomock.Any()).Return(uint64(0), nil)
	tm.ethClient.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1), nil)
	tm.ethClient.EXPECT().EstimateGas(ctx, gomock.Any()).Return(uint64(0), errors.New("dial tcp: connection refused"))

	_, err = tm.transactor.Transact(ctx, key, MethodPlaceBid, big.NewInt(1), big.NewInt(1))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCallReverted)
}

func TestTransact_FailedReceipt(t *testing.T) {
	tm := setupTransactorTest(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	tm.ethClient.EXPECT().PendingNonceAt(ctx, gomock.Any()).Return(uint64(0), nil)
	tm.ethClient.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1), nil)
	tm.ethClient.EXPECT().EstimateGas(ctx, gomock.Any()).Return(uint64(50_000), nil)
	tm.ethClient.EXPECT().SendTransaction(ctx, gomock.Any()).Return(nil)
	tm.ethClient.EXPECT().
		TransactionReceipt(gomock.Any(), gomock.Any()).
		Return(&types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(10)}, nil)

	receipt, err := tm.transactor.Transact(ctx, key, MethodEndAuction, nil, big.NewInt(2))
	assert.ErrorIs(t, err, domain.ErrCallReverted)
	require.NotNil(t, receipt)
	assert.Equal(t, types.ReceiptStatusFailed, receipt.Status)
}

func TestTransact_RequiresKey(t *testing.T) {
	tm := setupTransactorTest(t)
	defer tm.ctrl.Finish()

	_, err := tm.transactor.Transact(context.Background(), nil, MethodMint, nil, "ipfs://x")
	assert.ErrorIs(t, err, domain.ErrSignerRequired)
}

func TestMintedTokenID(t *testing.T) {
	other := common.HexToAddress("0x0000000000000000000000000000000000000123")
	foreign := transferLog(common.HexToHash("0x01"), 1, common.Address{}, testSeller, 99)
	foreign.Address = other
	mint := transferLog(common.HexToHash("0x01"), 1, common.Address{}, testSeller, 12)

	receipt := &types.Receipt{Logs: []*types.Log{&foreign, &mint}}

	tokenID, err := MintedTokenID(receipt, testContract)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), tokenID)

	_, err = MintedTokenID(&types.Receipt{}, testContract)
	assert.Error(t, err)
}
