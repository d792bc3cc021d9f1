package session

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/metadata"
)

// Session is the caller context every read and write runs in
type Session struct {
	// Caller is the address contract views are evaluated for (msg.sender)
	Caller common.Address
	Chain  domain.Chain

	// Metadata caches resolved documents for the lifetime of the session
	Metadata *metadata.Cache

	key *ecdsa.PrivateKey
}

// NewReadOnly creates a session that can read but not sign
func NewReadOnly(chain domain.Chain, caller common.Address) *Session {
	return &Session{
		Caller:   caller,
		Chain:    chain,
		Metadata: metadata.NewCache(),
	}
}

// NewSigning creates a session from a hex encoded private key
func NewSigning(chain domain.Chain, hexKey string) (*Session, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &Session{
		Caller:   crypto.PubkeyToAddress(key.PublicKey),
		Chain:    chain,
		Metadata: metadata.NewCache(),
		key:      key,
	}, nil
}

// CanSign reports whether the session holds a signer
func (s *Session) CanSign() bool {
	return s.key != nil
}

// Key returns the signer, or domain.ErrSignerRequired for read-only sessions
func (s *Session) Key() (*ecdsa.PrivateKey, error) {
	if s.key == nil {
		return nil, domain.ErrSignerRequired
	}
	return s.key, nil
}

// Is reports whether addr is the session's caller
func (s *Session) Is(addr common.Address) bool {
	return s.Caller != domain.ZeroAddress && s.Caller == addr
}

// ChainReader reports which chain a provider serves
type ChainReader interface {
	ChainID(ctx context.Context) (domain.Chain, error)
}

// Connect checks that a provider is reachable and serves the expected chain
func Connect(ctx context.Context, provider ChainReader, expected domain.Chain) error {
	if provider == nil {
		return fmt.Errorf("%w: no provider configured", domain.ErrNotConnected)
	}

	chain, err := provider.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotConnected, err)
	}

	if chain != expected {
		return fmt.Errorf("%w: provider serves %s, expected %s", domain.ErrChainMismatch, chain, expected)
	}

	return nil
}
