package rest

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/duanblockchain/marketview/internal/domain"
)

const MAX_SEARCH_LENGTH = 200

// ListItemsQueryParams holds query parameters for GET /items
type ListItemsQueryParams struct {
	Category string `form:"category,default=all"`
	Search   string `form:"search"`
}

// HistoryQueryParams holds query parameters for GET /addresses/:address/history
type HistoryQueryParams struct {
	Filter domain.HistoryFilter `form:"filter,default=all"`
}

// ParseListItemsQuery parses query parameters for GET /items
func ParseListItemsQuery(c *gin.Context) (*ListItemsQueryParams, error) {
	var params ListItemsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	params.Category = strings.TrimSpace(params.Category)
	params.Search = strings.TrimSpace(params.Search)

	return &params, nil
}

// Validate checks the catalog query
func (p *ListItemsQueryParams) Validate() error {
	if len(p.Search) > MAX_SEARCH_LENGTH {
		return fmt.Errorf("search must be at most %d characters", MAX_SEARCH_LENGTH)
	}
	return nil
}

// ParseHistoryQuery parses query parameters for GET /addresses/:address/history
func ParseHistoryQuery(c *gin.Context) (*HistoryQueryParams, error) {
	var params HistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	params.Filter = domain.HistoryFilter(strings.ToLower(string(params.Filter)))

	return &params, nil
}

// Validate checks the history tab
func (p *HistoryQueryParams) Validate() error {
	if !domain.IsValidHistoryFilter(p.Filter) {
		return fmt.Errorf("unknown filter %q, expected one of %v", p.Filter, domain.HistoryFilters)
	}
	return nil
}
