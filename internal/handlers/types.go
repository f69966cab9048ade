package handlers

import (
	"errors"
	"net/http"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/gin-gonic/gin"
)

// CallerHeader carries the authenticated caller address resolved by the
// relay layer in front of this service.
const CallerHeader = "X-Caller-Address"

func callerAddress(c *gin.Context) string {
	return c.GetHeader(CallerHeader)
}

// respondError maps core errors onto HTTP statuses: validation 400, funds
// 402, access 403, everything else 500.
func respondError(c *gin.Context, err error) {
	switch {
	case business.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrOverflow):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
