package handlers

import (
	"net/http"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepositRequest represents the request body for crediting a confirmed
// off-chain deposit onto the ledger
type DepositRequest struct {
	Address string          `json:"address" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest represents the request body for a share-token transfer
type TransferRequest struct {
	To        string          `json:"to" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	BucketKey string          `json:"bucket_key"`
}

// CreditDeposit credits deposit-asset funds to an address. Relayer capability
// required; the payment bridge calls this once an off-chain payment clears.
func CreditDeposit(c *gin.Context) {
	var request DepositRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := business.RequireCapability(dbconfig.DB, callerAddress(c), models.CapRelayer); err != nil {
		respondError(c, err)
		return
	}
	if request.Amount.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	err := dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		return business.CreditBalance(tx, request.Address, models.AssetDeposit, request.Amount)
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": request.Address, "credited": request.Amount.String()})
}

// GetBalances returns all ledger balances for an address
func GetBalances(c *gin.Context) {
	address := c.Param("address")

	var balances []models.Balance
	if err := dbconfig.DB.Where("address = ?", address).Order("asset").Find(&balances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, balances)
}

// Transfer moves share tokens from the caller to another address through the
// named tax bucket. Transfers touching the treasury are exempt.
func Transfer(c *gin.Context) {
	var request TransferRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from := callerAddress(c)
	if from == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + CallerHeader + " header"})
		return
	}

	bucketKey := request.BucketKey
	if bucketKey == "" {
		bucketKey = business.TaxBucketTransferSell
	}

	gp, err := business.GetGlobalParams(dbconfig.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var fee decimal.Decimal
	err = dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		fee, err = business.TaxedTransfer(tx, gp.TreasuryAddress, from, request.To, bucketKey, request.Amount)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":   from,
		"to":     request.To,
		"amount": request.Amount.String(),
		"fee":    fee.String(),
	})
}
