package dto

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/duanblockchain/marketview/internal/auction"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/explorer"
	"github.com/duanblockchain/marketview/internal/metadata"
)

const (
	SaleTypeFixed   = "fixed"
	SaleTypeAuction = "auction"
)

// ItemResponse is one marketplace item as seen by a caller
type ItemResponse struct {
	TokenID      uint64            `json:"token_id"`
	Seller       string            `json:"seller"`
	SellerShort  string            `json:"seller_short"`
	Owner        string            `json:"owner"`
	OwnerShort   string            `json:"owner_short"`
	Creator      string            `json:"creator"`
	CreatorShort string            `json:"creator_short"`
	Category     string            `json:"category"`
	CreatedAt    time.Time         `json:"created_at"`
	SaleType     string            `json:"sale_type"`
	Price        string            `json:"price"`
	PriceDisplay string            `json:"price_display"`
	Sold         bool              `json:"sold"`
	Auction      *AuctionResponse  `json:"auction,omitempty"`
	Actions      ActionsResponse   `json:"actions"`
	Metadata     *MetadataResponse `json:"metadata"`
	ExplorerURL  string            `json:"explorer_url"`
}

// AuctionResponse is the live state of an auction
type AuctionResponse struct {
	EndTime               time.Time `json:"end_time"`
	Ended                 bool      `json:"ended"`
	TimeRemaining         string    `json:"time_remaining"`
	HighestBid            string    `json:"highest_bid"`
	HighestBidder         *string   `json:"highest_bidder"`
	HighestBidderShort    *string   `json:"highest_bidder_short"`
	CurrentPrice          string    `json:"current_price"`
	CurrentPriceDisplay   string    `json:"current_price_display"`
	MinimumNextBid        string    `json:"minimum_next_bid"`
	MinimumNextBidDisplay string    `json:"minimum_next_bid_display"`
}

// ActionsResponse lists what the caller may do with the item right now
type ActionsResponse struct {
	CanBid    bool `json:"can_bid"`
	CanBuy    bool `json:"can_buy"`
	CanCancel bool `json:"can_cancel"`
	CanEnd    bool `json:"can_end"`
}

// MetadataResponse is the off-chain description of an item
type MetadataResponse struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	ImageURL    string             `json:"image_url"`
	Attributes  []domain.Attribute `json:"attributes"`
	Placeholder bool               `json:"placeholder"`

	// Hash is the content hash of the resolved document, empty for placeholders
	Hash string `json:"hash,omitempty"`
}

// ItemListResponse is a collection of items
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// ListingFeeResponse is the fee charged to list an item
type ListingFeeResponse struct {
	Fee        string `json:"fee"`
	FeeDisplay string `json:"fee_display"`
}

// MapItemToDTO maps an item to its response for caller at now
func MapItemToDTO(item domain.MarketItem, caller common.Address, now time.Time, links *explorer.Explorer, contract common.Address) ItemResponse {
	view := auction.Evaluate(&item.Item, caller, now)

	resp := ItemResponse{
		TokenID:      item.Item.TokenID,
		Seller:       item.Item.Seller.Hex(),
		SellerShort:  domain.FormatAddress(item.Item.Seller.Hex()),
		Owner:        item.Item.Owner.Hex(),
		OwnerShort:   domain.FormatAddress(item.Item.Owner.Hex()),
		Creator:      item.Item.Creator.Hex(),
		CreatorShort: domain.FormatAddress(item.Item.Creator.Hex()),
		Category:     item.Item.Category,
		CreatedAt:    item.Item.CreatedAt.UTC(),
		Actions: ActionsResponse{
			CanBid:    view.CanBid,
			CanBuy:    view.CanBuy,
			CanCancel: view.CanCancel,
			CanEnd:    view.CanEnd,
		},
		Metadata:    MapMetadataToDTO(item.Metadata),
		ExplorerURL: links.TokenURL(contract, item.Item.TokenID),
	}

	switch sale := item.Item.Sale.(type) {
	case *domain.FixedListing:
		resp.SaleType = SaleTypeFixed
		resp.Price = weiString(sale.Price)
		resp.PriceDisplay = domain.FormatAmount(sale.Price)
		resp.Sold = sale.Sold
	case *domain.Auction:
		resp.SaleType = SaleTypeAuction
		resp.Price = weiString(sale.StartPrice)
		resp.PriceDisplay = domain.FormatAmount(sale.StartPrice)
		resp.Auction = &AuctionResponse{
			EndTime:               sale.EndTime.UTC(),
			Ended:                 view.Ended,
			TimeRemaining:         view.TimeRemaining,
			HighestBid:            weiString(sale.HighestBid),
			CurrentPrice:          weiString(view.CurrentPrice),
			CurrentPriceDisplay:   domain.FormatAmount(view.CurrentPrice),
			MinimumNextBid:        weiString(view.MinimumNextBid),
			MinimumNextBidDisplay: domain.FormatAmount(view.MinimumNextBid),
		}
		if sale.HighestBidder != domain.ZeroAddress {
			bidder := sale.HighestBidder.Hex()
			short := domain.FormatAddress(bidder)
			resp.Auction.HighestBidder = &bidder
			resp.Auction.HighestBidderShort = &short
		}
	}

	return resp
}

// ETag returns a strong entity tag over the whole response. Any change in
// sale state, actions or metadata yields a new tag.
func (r *ItemResponse) ETag() (string, error) {
	hash, err := domain.CanonicalHash(r)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%q", hash), nil
}

// MapItemsToDTO maps a collection of items
func MapItemsToDTO(items []domain.MarketItem, caller common.Address, now time.Time, links *explorer.Explorer, contract common.Address) *ItemListResponse {
	resp := &ItemListResponse{
		Items: make([]ItemResponse, 0, len(items)),
		Total: len(items),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, MapItemToDTO(item, caller, now, links, contract))
	}
	return resp
}

// MapMetadataToDTO maps metadata, rewriting content-addressed images to gateway URLs
func MapMetadataToDTO(md *domain.Metadata) *MetadataResponse {
	if md == nil {
		return nil
	}

	attributes := md.Attributes
	if attributes == nil {
		attributes = []domain.Attribute{}
	}

	resp := &MetadataResponse{
		Name:        md.Name,
		Description: md.Description,
		Image:       md.Image,
		ImageURL:    metadata.GatewayURL(md.Image),
		Attributes:  attributes,
		Placeholder: md.Placeholder,
	}
	if !md.Placeholder {
		if hash, err := md.Hash(); err == nil {
			resp.Hash = hash
		}
	}
	return resp
}
