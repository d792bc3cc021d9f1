package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/duanblockchain/marketview/internal/domain"
)

// ErrorCode is the machine-readable kind of an API error
type ErrorCode string

const (
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"

	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeLedgerError   ErrorCode = "ledger_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError is the body of the {"error": ...} envelope
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`

	// Status is the HTTP status the error is served with
	Status int `json:"-"`
}

func (e *APIError) Error() string {
	raw, _ := json.Marshal(e)
	return string(raw)
}

func newError(status int, code ErrorCode, message string, details []string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
		Status:  status,
	}
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newError(http.StatusBadRequest, ErrCodeBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(http.StatusNotFound, ErrCodeNotFound, message, details)
}

func NewValidationError(details ...string) *APIError {
	return newError(http.StatusBadRequest, ErrCodeValidationFailed, "Validation failed", details)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(http.StatusInternalServerError, ErrCodeInternalError, message, details)
}

// NewLedgerError is used when the contract rejected a call
func NewLedgerError(message string, details ...string) *APIError {
	return newError(http.StatusBadGateway, ErrCodeLedgerError, message, details)
}

// NewServiceError is used when the RPC endpoint is unreachable or serves another chain
func NewServiceError(message string, details ...string) *APIError {
	return newError(http.StatusServiceUnavailable, ErrCodeServiceError, message, details)
}

// FromDomain classifies an engine error. Unknown errors become internal errors
// without details so RPC internals are not echoed to clients.
func FromDomain(err error, message string) *APIError {
	var revert *domain.RevertError
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return NewNotFoundError(message, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(err.Error())
	case errors.Is(err, domain.ErrNotConnected), errors.Is(err, domain.ErrChainMismatch):
		return NewServiceError(message, err.Error())
	case errors.As(err, &revert):
		return NewLedgerError(message, revert.Reason)
	default:
		return NewInternalError(message)
	}
}
