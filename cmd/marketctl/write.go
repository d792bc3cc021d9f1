package main

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/duanblockchain/marketview/internal/api/shared/dto"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/providers/ethereum"
	"github.com/duanblockchain/marketview/internal/trade"
)

var saleCategory string

func init() {
	listCmd.Flags().StringVar(&saleCategory, "category", "", "category shown in the catalog")
	auctionCmd.Flags().StringVar(&saleCategory, "category", "", "category shown in the catalog")

	rootCmd.AddCommand(mintCmd, listCmd, auctionCmd, bidCmd, buyCmd, cancelCmd, endCmd)
}

// newTrader builds the write path on top of the shared engine
func newTrader() (trade.Service, error) {
	if !sess.CanSign() {
		return nil, fmt.Errorf("%w: set wallet.private_key", domain.ErrSignerRequired)
	}
	transactor, err := ethereum.NewTransactor(eng.Chain, eng.Contract, eng.EthClient, conf.Wallet.ConfirmationTimeout)
	if err != nil {
		return nil, err
	}
	return trade.NewService(eng.Reader, transactor, eng.Contract, eng.Clock), nil
}

// runTrade prints whatever was confirmed before returning the write's error
func runTrade(cmd *cobra.Command, write func(trade.Service) (*trade.Outcome, error)) error {
	trader, err := newTrader()
	if err != nil {
		return err
	}

	outcome, err := write(trader)
	if outcome != nil {
		resp := dto.MapTradeToDTO(outcome.TxHash, outcome.BlockNumber, outcome.TokenID, outcome.Snapshot, sess.Caller, eng.Clock.Now(), eng.Links, eng.Contract)
		if printErr := printJSON(cmd, resp); printErr != nil {
			return printErr
		}
	}
	return err
}

func parseAmountArg(name, raw string) (*big.Int, error) {
	amount, err := domain.ParseAmount(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return amount, nil
}

// parseHours reads an auction duration given in (possibly fractional) hours
func parseHours(raw string) (time.Duration, error) {
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || hours <= 0 || math.IsInf(hours, 0) || math.IsNaN(hours) {
		return 0, fmt.Errorf("invalid duration %q, expected a positive number of hours", raw)
	}
	return time.Duration(hours * float64(time.Hour)), nil
}

var mintCmd = &cobra.Command{
	Use:   "mint <token-uri>",
	Short: "Mint a token pointing at a metadata document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd, func(s trade.Service) (*trade.Outcome, error) {
			return s.Mint(ctx, sess, args[0])
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list <token-id> <price>",
	Short: "List a token at a fixed price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		price, err := parseAmountArg("price", args[1])
		if err != nil {
			return err
		}
		return runTrade(cmd, func(s trade.Service) (*trade.Outcome, error) {
			return s.ListForSale(ctx, sess, tokenID, price, saleCategory)
		})
	},
}

var auctionCmd = &cobra.Command{
	Use:   "auction <token-id> <start-price> <hours>",
	Short: "Start an auction",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		price, err := parseAmountArg("start price", args[1])
		if err != nil {
			return err
		}
		duration, err := parseHours(args[2])
		if err != nil {
			return err
		}
		return runTrade(cmd, func(s trade.Service) (*trade.Outcome, error) {
			return s.StartAuction(ctx, sess, tokenID, price, duration, saleCategory)
		})
	},
}

var bidCmd = &cobra.Command{
	Use:   "bid <token-id> <amount>",
	Short: "Bid on a running auction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmountArg("amount", args[1])
		if err != nil {
			return err
		}
		return runTrade(cmd, func(s trade.Service) (*trade.Outcome, error) {
			return s.PlaceBid(ctx, sess, tokenID, amount)
		})
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy <token-id>",
	Short: "Buy a fixed-price listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		return runTrade(cmd, func(s trade.Service) (*trade.Outcome, error) {
			return s.Buy(ctx, sess, tokenID)
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <token-id>",
	Short: "Withdraw a listing or an auction without bids",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		return runTrade(cmd, func(s trade.Service) (*trade.Outcome, error) {
			return s.CancelListing(ctx, sess, tokenID)
		})
	},
}

var endCmd = &cobra.Command{
	Use:   "end <token-id>",
	Short: "Settle an auction past its end time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		return runTrade(cmd, func(s trade.Service) (*trade.Outcome, error) {
			return s.EndAuction(ctx, sess, tokenID)
		})
	},
}
