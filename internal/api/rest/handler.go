package rest

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/duanblockchain/marketview/internal/api/middleware"
	"github.com/duanblockchain/marketview/internal/api/shared/executor"
	"github.com/duanblockchain/marketview/internal/domain"
	"github.com/duanblockchain/marketview/internal/logger"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// ListItems returns the catalog as seen by the caller in X-Wallet-Address
	// GET /api/v1/items?category=<category>&search=<text>
	ListItems(c *gin.Context)

	// GetItem returns one item, tagged with an ETag over the full response
	// GET /api/v1/items/:token_id
	GetItem(c *gin.Context)

	// GetListingFee returns the fee charged to list an item
	// GET /api/v1/listing-fee
	GetListingFee(c *gin.Context)

	// GetOwnedItems returns the items held by an address
	// GET /api/v1/addresses/:address/owned
	GetOwnedItems(c *gin.Context)

	// GetListedItems returns the items an address has put on sale
	// GET /api/v1/addresses/:address/listed
	GetListedItems(c *gin.Context)

	// GetHistory returns one tab of an address's transaction history
	// GET /api/v1/addresses/:address/history?filter=<all|mint|buy|sell|auction>
	GetHistory(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

// callerAddress reads the optional wallet header; anonymous callers get the zero address
func callerAddress(c *gin.Context) (common.Address, error) {
	raw := c.GetHeader(middleware.HeaderWalletAddress)
	if raw == "" {
		return domain.ZeroAddress, nil
	}
	return domain.ParseAddress(raw)
}

// pathAddress reads the :address path parameter
func pathAddress(c *gin.Context) (common.Address, bool) {
	address, err := domain.ParseAddress(c.Param("address"))
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return common.Address{}, false
	}
	return address, true
}

// ListItems returns the filtered catalog
func (h *handler) ListItems(c *gin.Context) {
	caller, err := callerAddress(c)
	if err != nil {
		respondBadRequest(c, "Invalid wallet address", err.Error())
		return
	}

	queryParams, err := ParseListItemsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListItems(c.Request.Context(), caller, queryParams.Category, queryParams.Search)
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetItem returns a single item by token id
func (h *handler) GetItem(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("token_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token id", c.Param("token_id"))
		return
	}

	caller, err := callerAddress(c)
	if err != nil {
		respondBadRequest(c, "Invalid wallet address", err.Error())
		return
	}

	item, err := h.executor.GetItem(c.Request.Context(), caller, tokenID)
	if err != nil {
		respondError(c, err, "Failed to get item")
		return
	}

	// actions depend on the caller
	c.Writer.Header().Add("Vary", middleware.HeaderWalletAddress)

	// placeholders are retried on the next read, so they are never tagged
	if item.Metadata != nil && !item.Metadata.Placeholder {
		etag, err := item.ETag()
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Failed to compute item ETag",
				logger.TokenID(tokenID),
				zap.Error(err))
		} else {
			c.Header("ETag", etag)
			if c.GetHeader("If-None-Match") == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	c.JSON(http.StatusOK, item)
}

// GetListingFee returns the listing fee
func (h *handler) GetListingFee(c *gin.Context) {
	response, err := h.executor.GetListingFee(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get listing fee")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetOwnedItems returns the items held by the path address
func (h *handler) GetOwnedItems(c *gin.Context) {
	address, ok := pathAddress(c)
	if !ok {
		return
	}

	response, err := h.executor.GetOwnedItems(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get owned items")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetListedItems returns the items listed by the path address
func (h *handler) GetListedItems(c *gin.Context) {
	address, ok := pathAddress(c)
	if !ok {
		return
	}

	response, err := h.executor.GetListedItems(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get listed items")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetHistory returns the transaction history of the path address
func (h *handler) GetHistory(c *gin.Context) {
	address, ok := pathAddress(c)
	if !ok {
		return
	}

	queryParams, err := ParseHistoryQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetHistory(c.Request.Context(), address, queryParams.Filter)
	if err != nil {
		respondError(c, err, "Failed to get history")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "marketview-api",
	})
}
