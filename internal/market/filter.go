package market

import (
	"strings"

	"github.com/duanblockchain/marketview/internal/domain"
)

// CategoryAll matches every category
const CategoryAll = "all"

// Query narrows a collection down by category and free text
type Query struct {
	Category string
	Search   string
}

// Filter returns the items matching q, preserving their order.
// The search is a case-insensitive substring match against name and description;
// items without metadata only match an empty search.
func Filter(items []domain.MarketItem, q Query) []domain.MarketItem {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	result := make([]domain.MarketItem, 0, len(items))
	for _, item := range items {
		if !matchesCategory(item, q.Category) || !matchesSearch(item, search) {
			continue
		}
		result = append(result, item)
	}
	return result
}

func matchesCategory(item domain.MarketItem, category string) bool {
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return true
	}
	return item.Item.Category == category
}

func matchesSearch(item domain.MarketItem, search string) bool {
	if search == "" {
		return true
	}
	if item.Metadata == nil {
		return false
	}
	return strings.Contains(strings.ToLower(item.Metadata.Name), search) ||
		strings.Contains(strings.ToLower(item.Metadata.Description), search)
}
