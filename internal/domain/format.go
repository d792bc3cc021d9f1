package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gowebpki/jcs"
)

var (
	amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	weiPerUnit    = new(big.Int).Exp(big.NewInt(10), big.NewInt(NATIVE_DECIMALS), nil)
)

// FormatAddress shortens a hex address to 0x1234...abcd. Anything else,
// such as a contract label, is returned unchanged.
func FormatAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return fmt.Sprintf("%s...%s", address[:6], address[len(address)-4:])
}

// FormatAmount renders a wei amount in native units with 4 decimals
func FormatAmount(wei *big.Int) string {
	if wei == nil {
		return "0.0000"
	}
	return new(big.Rat).SetFrac(wei, weiPerUnit).FloatString(4)
}

// ParseAmount converts a decimal native-unit string (e.g. "1.5") to wei
func ParseAmount(amount string) (*big.Int, error) {
	if !amountPattern.MatchString(amount) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	r, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	r.Mul(r, new(big.Rat).SetInt(weiPerUnit))
	if !r.IsInt() {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, amount, NATIVE_DECIMALS)
	}

	return new(big.Int).Set(r.Num()), nil
}

// ParseAddress validates and parses a hex address
func ParseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, fmt.Errorf("invalid address: %q", address)
	}
	return common.HexToAddress(address), nil
}

// Hash returns the content hash of the metadata document
func (m *Metadata) Hash() (string, error) {
	return CanonicalHash(m)
}

// CanonicalHash returns the hex sha256 of the canonical (RFC 8785) JSON form of v
func CanonicalHash(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
