// Package auction holds the marketplace's sale rules as pure functions of an
// item, a caller and the current time. The contract enforces the real rules;
// these mirror them for display and pre-flight checks.
package auction

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/duanblockchain/marketview/internal/domain"
)

// IsEnded reports whether the auction is over at now
func IsEnded(a *domain.Auction, now time.Time) bool {
	return !now.Before(a.EndTime)
}

// TimeRemaining renders the two most significant units left, e.g. "2d 3h", "3h 5m" or "5m"
func TimeRemaining(a *domain.Auction, now time.Time) string {
	if IsEnded(a, now) {
		return domain.AUCTION_ENDED_LABEL
	}

	left := a.EndTime.Sub(now)
	days := int64(left / (24 * time.Hour))
	hours := int64(left % (24 * time.Hour) / time.Hour)
	minutes := int64(left % time.Hour / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// CurrentPrice is the highest bid once there is one, the start price before that
func CurrentPrice(a *domain.Auction) *big.Int {
	if a.HighestBid != nil && a.HighestBid.Sign() > 0 {
		return new(big.Int).Set(a.HighestBid)
	}
	if a.StartPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.StartPrice)
}

// MinimumNextBid is the current price plus the minimum increment
func MinimumNextBid(a *domain.Auction) *big.Int {
	return new(big.Int).Add(CurrentPrice(a), domain.MinBidIncrement)
}

// CanBid reports whether caller may bid on the item at now
func CanBid(item *domain.Item, caller common.Address, now time.Time) bool {
	a := item.Auction()
	return a != nil && !IsEnded(a, now) && caller != item.Seller
}

// CanBuy reports whether caller may buy the fixed-price item
func CanBuy(item *domain.Item, caller common.Address) bool {
	l := item.Listing()
	return l != nil && !l.Sold && caller != item.Seller
}

// CanCancel reports whether caller may withdraw the item from the market at now
func CanCancel(item *domain.Item, caller common.Address, now time.Time) bool {
	if caller != item.Seller {
		return false
	}
	a := item.Auction()
	return a == nil || !IsEnded(a, now)
}

// CanEnd reports whether the item is an auction that is over and can be settled
func CanEnd(item *domain.Item, now time.Time) bool {
	a := item.Auction()
	return a != nil && IsEnded(a, now)
}

// View is the caller-specific state of an item at a point in time
type View struct {
	Ended          bool
	TimeRemaining  string
	CurrentPrice   *big.Int
	MinimumNextBid *big.Int
	CanBid         bool
	CanBuy         bool
	CanCancel      bool
	CanEnd         bool
}

// Evaluate computes the caller's view of an item
func Evaluate(item *domain.Item, caller common.Address, now time.Time) View {
	v := View{
		CanBuy:    CanBuy(item, caller),
		CanCancel: CanCancel(item, caller, now),
	}

	switch sale := item.Sale.(type) {
	case *domain.Auction:
		v.Ended = IsEnded(sale, now)
		v.TimeRemaining = TimeRemaining(sale, now)
		v.CurrentPrice = CurrentPrice(sale)
		v.MinimumNextBid = MinimumNextBid(sale)
		v.CanBid = CanBid(item, caller, now)
		v.CanEnd = CanEnd(item, now)
	case *domain.FixedListing:
		v.CurrentPrice = new(big.Int)
		if sale.Price != nil {
			v.CurrentPrice.Set(sale.Price)
		}
	}

	return v
}
