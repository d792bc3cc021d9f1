package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/duanblockchain/marketview/internal/api/shared/errors"
	"github.com/duanblockchain/marketview/internal/logger"
)

// errorResponse is the envelope every failed request is answered with
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

func respond(c *gin.Context, err *apierrors.APIError) {
	c.AbortWithStatusJSON(err.Status, errorResponse{Error: err})
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respond(c, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	respond(c, apierrors.NewValidationError(message))
}

// respondError maps an executor error onto the envelope, logging the ones clients can't act on
func respondError(c *gin.Context, err error, message string) {
	apiErr := apierrors.FromDomain(err, message)
	if apiErr.Code == apierrors.ErrCodeInternalError || apiErr.Code == apierrors.ErrCodeServiceError {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("path", c.Request.URL.Path),
			zap.String("message", message),
		)
	}
	respond(c, apiErr)
}
