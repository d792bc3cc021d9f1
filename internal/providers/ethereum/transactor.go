package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/logger"
)

// Transactor submits marketplace writes and waits for them to be mined
//
//go:generate mockgen -source=transactor.go -destination=../../mocks/transactor.go -package=mocks -mock_names=Transactor=MockTransactor
type Transactor interface {
	// Transact signs and sends a call to method with value attached, then waits for its receipt.
	// Reverts, both at gas estimation and in the mined receipt, come back as *domain.RevertError.
	Transact(ctx context.Context, key *ecdsa.PrivateKey, method string, value *big.Int, args ...interface{}) (*types.Receipt, error)
}

type transactor struct {
	chainID             *big.Int
	contract            common.Address
	client              adapter.EthClient
	confirmationTimeout time.Duration
}

// NewTransactor creates a Transactor for the marketplace contract
func NewTransactor(chain domain.Chain, contract common.Address, client adapter.EthClient, confirmationTimeout time.Duration) (Transactor, error) {
	chainID, err := chain.ChainID()
	if err != nil {
		return nil, err
	}
	return &transactor{
		chainID:             chainID,
		contract:            contract,
		client:              client,
		confirmationTimeout: confirmationTimeout,
	}, nil
}

func (t *transactor) Transact(ctx context.Context, key *ecdsa.PrivateKey, method string, value *big.Int, args ...interface{}) (*types.Receipt, error) {
	if key == nil {
		return nil, domain.ErrSignerRequired
	}
	if value == nil {
		value = new(big.Int)
	}

	data, err := marketplaceABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := t.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := t.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}

	gas, err := t.client.EstimateGas(ctx, ethereum.CallMsg{
		From:     from,
		To:       &t.contract,
		GasPrice: gasPrice,
		Value:    value,
		Data:     data,
	})
	if err != nil {
		if reason, ok := revertReason(err); ok {
			return nil, &domain.RevertError{Method: method, Reason: reason}
		}
		return nil, fmt.Errorf("failed to estimate gas for %s: %w", method, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &t.contract,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(t.chainID), key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s: %w", method, err)
	}

	if err := t.client.SendTransaction(ctx, signed); err != nil {
		if reason, ok := revertReason(err); ok {
			return nil, &domain.RevertError{Method: method, Reason: reason}
		}
		return nil, fmt.Errorf("failed to send %s: %w", method, err)
	}

	logger.InfoCtx(ctx, "Transaction submitted",
		zap.String("method", method),
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("from", from.Hex()))

	waitCtx := ctx
	if t.confirmationTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, t.confirmationTimeout)
		defer cancel()
	}

	receipt, err := bind.WaitMined(waitCtx, t.client, signed)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s (%s): %w", method, signed.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, &domain.RevertError{
			Method: method,
			Reason: fmt.Sprintf("transaction %s failed in block %d", receipt.TxHash.Hex(), receipt.BlockNumber),
		}
	}

	return receipt, nil
}

// revertReason extracts the contract's revert message from an RPC error
func revertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if raw, ok := dataErr.ErrorData().(string); ok {
			if data, decodeErr := hexutil.Decode(raw); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return reason, true
				}
			}
		}
	}

	msg := err.Error()
	if idx := strings.Index(msg, "execution reverted"); idx >= 0 {
		reason := strings.TrimPrefix(msg[idx:], "execution reverted")
		reason = strings.TrimSpace(strings.TrimPrefix(reason, ":"))
		if reason == "" {
			reason = "execution reverted"
		}
		return reason, true
	}

	return "", false
}

// MintedTokenID returns the token id created by a mint receipt
func MintedTokenID(receipt *types.Receipt, contract common.Address) (uint64, error) {
	for _, vLog := range receipt.Logs {
		if vLog == nil || vLog.Address != contract || len(vLog.Topics) == 0 || vLog.Topics[0] != transferEventSignature {
			continue
		}
		event, err := parseTransferLog(*vLog)
		if err != nil {
			continue
		}
		if event.IsMint() {
			return event.TokenID, nil
		}
	}
	return 0, fmt.Errorf("no mint Transfer log in receipt %s", receipt.TxHash.Hex())
}
