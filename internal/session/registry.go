package session

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/patrickmn/go-cache"

	"github.com/duanblockchain/marketview/internal/domain"
)

// Registry keeps one read-only session per caller and drops it after idleTTL without use
type Registry struct {
	chain    domain.Chain
	idleTTL  time.Duration
	sessions *cache.Cache
}

// NewRegistry creates a session registry
func NewRegistry(chain domain.Chain, idleTTL time.Duration) *Registry {
	cleanup := idleTTL
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &Registry{
		chain:    chain,
		idleTTL:  idleTTL,
		sessions: cache.New(idleTTL, cleanup),
	}
}

// Get returns the caller's session, creating it on first use.
// Each access pushes the expiry back by idleTTL.
func (r *Registry) Get(caller common.Address) *Session {
	key := caller.Hex()

	if v, ok := r.sessions.Get(key); ok {
		s := v.(*Session)
		r.sessions.Set(key, s, cache.DefaultExpiration)
		return s
	}

	s := NewReadOnly(r.chain, caller)
	if err := r.sessions.Add(key, s, cache.DefaultExpiration); err != nil {
		// a concurrent request created it first
		if v, ok := r.sessions.Get(key); ok {
			return v.(*Session)
		}
	}
	return s
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	return r.sessions.ItemCount()
}

// Put registers an existing session under its caller, replacing any previous one
func (r *Registry) Put(s *Session) {
	r.sessions.Set(s.Caller.Hex(), s, cache.DefaultExpiration)
}
