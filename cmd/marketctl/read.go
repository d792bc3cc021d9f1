package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/market"
)

var (
	categoryFilter string
	searchFilter   string
	historyFilter  string
)

func init() {
	itemsCmd.Flags().StringVar(&categoryFilter, "category", market.CategoryAll, "only show items in this category")
	itemsCmd.Flags().StringVar(&searchFilter, "search", "", "case-insensitive match on name and description")
	historyCmd.Flags().StringVar(&historyFilter, "filter", string(domain.HistoryFilterAll), "history tab: all, mint, buy, sell or auction")

	rootCmd.AddCommand(itemsCmd, itemCmd, ownedCmd, listedCmd, feeCmd, historyCmd)
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List unsold market items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := exec.ListItems(ctx, sess.Caller, categoryFilter, searchFilter)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var itemCmd = &cobra.Command{
	Use:   "item <token-id>",
	Short: "Show one item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenID, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		resp, err := exec.GetItem(ctx, sess.Caller, tokenID)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var ownedCmd = &cobra.Command{
	Use:   "owned",
	Short: "List items held by the wallet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIdentity(); err != nil {
			return err
		}
		resp, err := exec.GetOwnedItems(ctx, sess.Caller)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var listedCmd = &cobra.Command{
	Use:   "listed",
	Short: "List items the wallet has put on sale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIdentity(); err != nil {
			return err
		}
		resp, err := exec.GetListedItems(ctx, sess.Caller)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Show the listing fee",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := exec.GetListingFee(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the wallet's recent transactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireIdentity(); err != nil {
			return err
		}
		filter := domain.HistoryFilter(historyFilter)
		if !domain.IsValidHistoryFilter(filter) {
			return fmt.Errorf("unknown filter %q, expected one of %v", historyFilter, domain.HistoryFilters)
		}
		resp, err := exec.GetHistory(ctx, sess.Caller, filter)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

func parseTokenID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token id %q", raw)
	}
	return id, nil
}

func requireIdentity() error {
	if sess.Caller == domain.ZeroAddress {
		return fmt.Errorf("%w: set wallet.private_key, wallet.address or --address", domain.ErrNotConnected)
	}
	return nil
}
