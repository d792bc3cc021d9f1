package trade

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/duanblockchain/marketview/internal/adapter"
	"github.com/duanblockchain/marketview/internal/auction"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/market"
	"github.com/duanblockchain/marketview/internal/providers/ethereum"
	"github.com/duanblockchain/marketview/internal/session"
)

// Outcome is the result of a mined write and the state reloaded after it
type Outcome struct {
	TxHash      common.Hash
	BlockNumber uint64
	TokenID     uint64
	Snapshot    *domain.Snapshot
}

// Service performs marketplace writes on behalf of a signing session.
// Every write waits for its receipt and then reloads the caller's collections.
// When the write reverted after submission, both the Outcome and the revert error are returned.
type Service interface {
	Mint(ctx context.Context, sess *session.Session, tokenURI string) (*Outcome, error)
	ListForSale(ctx context.Context, sess *session.Session, tokenID uint64, price *big.Int, category string) (*Outcome, error)
	StartAuction(ctx context.Context, sess *session.Session, tokenID uint64, startPrice *big.Int, duration time.Duration, category string) (*Outcome, error)
	PlaceBid(ctx context.Context, sess *session.Session, tokenID uint64, amount *big.Int) (*Outcome, error)
	EndAuction(ctx context.Context, sess *session.Session, tokenID uint64) (*Outcome, error)
	Buy(ctx context.Context, sess *session.Session, tokenID uint64) (*Outcome, error)
	CancelListing(ctx context.Context, sess *session.Session, tokenID uint64) (*Outcome, error)
}

type service struct {
	reader     market.Reader
	transactor ethereum.Transactor
	contract   common.Address
	clock      adapter.Clock
}

// NewService creates a trade service
func NewService(reader market.Reader, transactor ethereum.Transactor, contract common.Address, clock adapter.Clock) Service {
	return &service{
		reader:     reader,
		transactor: transactor,
		contract:   contract,
		clock:      clock,
	}
}

func (s *service) Mint(ctx context.Context, sess *session.Session, tokenURI string) (*Outcome, error) {
	key, err := sess.Key()
	if err != nil {
		return nil, err
	}
	tokenURI = strings.TrimSpace(tokenURI)
	if tokenURI == "" {
		return nil, errors.New("token uri is required")
	}

	return s.submit(ctx, sess, key, 0, ethereum.MethodMint, nil, tokenURI)
}

func (s *service) ListForSale(ctx context.Context, sess *session.Session, tokenID uint64, price *big.Int, category string) (*Outcome, error) {
	key, err := sess.Key()
	if err != nil {
		return nil, err
	}
	if err := requirePositive("price", price); err != nil {
		return nil, err
	}

	fee, err := s.reader.ListingFee(ctx)
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, sess, key, tokenID, ethereum.MethodListForSale, fee,
		new(big.Int).SetUint64(tokenID), price, category)
}

func (s *service) StartAuction(ctx context.Context, sess *session.Session, tokenID uint64, startPrice *big.Int, duration time.Duration, category string) (*Outcome, error) {
	key, err := sess.Key()
	if err != nil {
		return nil, err
	}
	if err := requirePositive("start price", startPrice); err != nil {
		return nil, err
	}
	if duration < time.Second {
		return nil, fmt.Errorf("%w: auction duration %s", domain.ErrInvalidAmount, duration)
	}

	fee, err := s.reader.ListingFee(ctx)
	if err != nil {
		return nil, err
	}

	seconds := new(big.Int).SetInt64(int64(duration / time.Second))
	return s.submit(ctx, sess, key, tokenID, ethereum.MethodStartAuction, fee,
		new(big.Int).SetUint64(tokenID), startPrice, seconds, category)
}

func (s *service) PlaceBid(ctx context.Context, sess *session.Session, tokenID uint64, amount *big.Int) (*Outcome, error) {
	key, err := sess.Key()
	if err != nil {
		return nil, err
	}
	if err := requirePositive("bid", amount); err != nil {
		return nil, err
	}

	err = s.precheck(ctx, sess, tokenID, func(item *domain.Item) bool {
		return auction.CanBid(item, sess.Caller, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, sess, key, tokenID, ethereum.MethodPlaceBid, amount, new(big.Int).SetUint64(tokenID))
}

func (s *service) EndAuction(ctx context.Context, sess *session.Session, tokenID uint64) (*Outcome, error) {
	key, err := sess.Key()
	if err != nil {
		return nil, err
	}

	err = s.precheck(ctx, sess, tokenID, func(item *domain.Item) bool {
		return auction.CanEnd(item, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, sess, key, tokenID, ethereum.MethodEndAuction, nil, new(big.Int).SetUint64(tokenID))
}

func (s *service) Buy(ctx context.Context, sess *session.Session, tokenID uint64) (*Outcome, error) {
	key, err := sess.Key()
	if err != nil {
		return nil, err
	}

	// The price must be known to attach it, so the item is required here
	item, err := s.reader.LookupItem(ctx, sess, tokenID)
	if err != nil {
		return nil, err
	}
	if !auction.CanBuy(item, sess.Caller) {
		return nil, fmt.Errorf("%w: buy token %d", domain.ErrNotEligible, tokenID)
	}

	price := new(big.Int).Set(item.Listing().Price)
	return s.submit(ctx, sess, key, tokenID, ethereum.MethodCreateMarketSale, price, new(big.Int).SetUint64(tokenID))
}

func (s *service) CancelListing(ctx context.Context, sess *session.Session, tokenID uint64) (*Outcome, error) {
	key, err := sess.Key()
	if err != nil {
		return nil, err
	}

	err = s.precheck(ctx, sess, tokenID, func(item *domain.Item) bool {
		return auction.CanCancel(item, sess.Caller, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return s.submit(ctx, sess, key, tokenID, ethereum.MethodCancelListing, nil, new(big.Int).SetUint64(tokenID))
}

// precheck applies allowed to the item when it can be found. Unknown items
// are left for the contract to judge.
func (s *service) precheck(ctx context.Context, sess *session.Session, tokenID uint64, allowed func(*domain.Item) bool) error {
	item, err := s.reader.LookupItem(ctx, sess, tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			logger.DebugCtx(ctx, "Item not found, skipping eligibility check", logger.TokenID(tokenID))
			return nil
		}
		return err
	}

	if !allowed(item) {
		return fmt.Errorf("%w: token %d", domain.ErrNotEligible, tokenID)
	}
	return nil
}

// submit sends the write, waits for it, then reloads the caller's collections.
// The reload runs whenever a receipt came back, reverted or not.
func (s *service) submit(
	ctx context.Context,
	sess *session.Session,
	key *ecdsa.PrivateKey,
	tokenID uint64,
	method string,
	value *big.Int,
	args ...interface{},
) (*Outcome, error) {
	receipt, txErr := s.transactor.Transact(ctx, key, method, value, args...)
	if receipt == nil {
		return nil, txErr
	}

	outcome := &Outcome{
		TxHash:      receipt.TxHash,
		BlockNumber: blockNumber(receipt),
		TokenID:     tokenID,
	}

	if txErr == nil && method == ethereum.MethodMint {
		minted, err := ethereum.MintedTokenID(receipt, s.contract)
		if err != nil {
			logger.WarnCtx(ctx, "Minted token id not found in receipt",
				logger.TxHash(receipt.TxHash),
				zap.Error(err))
		} else {
			outcome.TokenID = minted
		}
	}

	snapshot, reloadErr := s.reader.Snapshot(ctx, sess)
	if reloadErr != nil {
		logger.WarnCtx(ctx, "Reload after transaction failed",
			zap.String("method", method),
			logger.TxHash(receipt.TxHash),
			zap.Error(reloadErr))
	}
	outcome.Snapshot = snapshot

	if txErr != nil {
		return outcome, txErr
	}
	if reloadErr != nil {
		return outcome, fmt.Errorf("transaction %s confirmed but reload failed: %w", receipt.TxHash.Hex(), reloadErr)
	}

	logger.InfoCtx(ctx, "Transaction confirmed",
		zap.String("method", method),
		logger.TxHash(receipt.TxHash),
		logger.TokenID(outcome.TokenID))

	return outcome, nil
}

func blockNumber(receipt *types.Receipt) uint64 {
	if receipt.BlockNumber == nil {
		return 0
	}
	return receipt.BlockNumber.Uint64()
}

func requirePositive(name string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidAmount, name)
	}
	return nil
}
