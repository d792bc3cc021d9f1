package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apierrors "github.com/duanblockchain/marketview/internal/api/shared/errors"
	"github.com/duanblockchain/marketview/internal/domain"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    apierrors.ErrorCode
		details string
	}{
		{
			name:    "missing item",
			err:     fmt.Errorf("%w: token 4", domain.ErrItemNotFound),
			status:  http.StatusNotFound,
			code:    apierrors.ErrCodeNotFound,
			details: "item not found: token 4",
		},
		{
			name:   "bad amount",
			err:    domain.ErrInvalidAmount,
			status: http.StatusBadRequest,
			code:   apierrors.ErrCodeValidationFailed,
		},
		{
			name:   "chain mismatch",
			err:    fmt.Errorf("%w: provider serves eip155:1", domain.ErrChainMismatch),
			status: http.StatusServiceUnavailable,
			code:   apierrors.ErrCodeServiceError,
		},
		{
			name:    "revert keeps the ledger reason",
			err:     fmt.Errorf("fetch: %w", &domain.RevertError{Method: "fetchMyNFTs", Reason: "paused"}),
			status:  http.StatusBadGateway,
			code:    apierrors.ErrCodeLedgerError,
			details: "paused",
		},
		{
			name:   "unknown errors hide details",
			err:    errors.New("dial tcp 10.0.0.1:8545: refused"),
			status: http.StatusInternalServerError,
			code:   apierrors.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apierrors.FromDomain(tt.err, "Failed")
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
			if tt.details != "" {
				assert.Equal(t, tt.details, got.Details)
			}
			if tt.code == apierrors.ErrCodeInternalError {
				assert.Empty(t, got.Details)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := apierrors.NewBadRequestError("Invalid address", "0xnope")
	assert.JSONEq(t, `{"code":"bad_request","message":"Invalid address","details":"0xnope"}`, err.Error())
}
