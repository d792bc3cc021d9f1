package metadata

import (
	"github.com/patrickmn/go-cache"

	"github.com/duanblockchain/marketview/internal/domain"
)

// Cache maps token ids to resolved metadata for the lifetime of a session.
// Entries never expire; a token's document is assumed immutable once minted.
type Cache struct {
	entries *cache.Cache
}

// NewCache creates an empty metadata cache
func NewCache() *Cache {
	return &Cache{entries: cache.New(cache.NoExpiration, 0)}
}

// Get returns the cached metadata of a token
func (c *Cache) Get(tokenID uint64) (*domain.Metadata, bool) {
	v, ok := c.entries.Get(domain.TokenKey(tokenID))
	if !ok {
		return nil, false
	}
	return v.(*domain.Metadata), true
}

// Set stores the metadata of a token. Placeholders are never cached.
func (c *Cache) Set(tokenID uint64, metadata *domain.Metadata) {
	if metadata == nil || metadata.Placeholder {
		return
	}
	c.entries.Set(domain.TokenKey(tokenID), metadata, cache.NoExpiration)
}

// Len returns the number of cached documents
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}
