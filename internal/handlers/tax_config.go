package handlers

import (
	"net/http"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TaxBucketRequest represents the request body for setting a tax bucket
type TaxBucketRequest struct {
	Key              string `json:"key" binding:"required"`
	RateBps          uint   `json:"rate_bps"`
	RecipientAddress string `json:"recipient_address" binding:"required"`
}

// ListTaxBuckets returns all tax buckets
func ListTaxBuckets(c *gin.Context) {
	var buckets []models.TaxBucket
	if err := dbconfig.DB.Order("key").Find(&buckets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// SetTaxBucket creates or updates a named fee bucket (fee-manager capability)
func SetTaxBucket(c *gin.Context) {
	var request TaxBucketRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := business.SetTaxBucket(dbconfig.DB, callerAddress(c), request.Key, request.RateBps, request.RecipientAddress); err != nil {
		respondError(c, err)
		return
	}

	var bucket models.TaxBucket
	if err := dbconfig.DB.Where("key = ?", request.Key).First(&bucket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bucket)
}

// QuoteTax returns (fee, net) for an amount through the named bucket
func QuoteTax(c *gin.Context) {
	key := c.Param("key")
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	fee, net, err := business.QuoteTax(dbconfig.DB, key, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":    key,
		"amount": amount.String(),
		"fee":    fee.String(),
		"net":    net.String(),
	})
}
