package handlers

import (
	"net/http"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PurchaseRequest represents the request body for a package purchase
type PurchaseRequest struct {
	PackageID    uint   `json:"package_id" binding:"required"`
	Referrer     string `json:"referrer"`
	DeadlineUnix int64  `json:"deadline_unix"`
}

// PurchaseOnBehalfRequest is the fiat-bridge variant: the bridge supplies the
// buyer address and the deposit amount it has already escrowed.
type PurchaseOnBehalfRequest struct {
	BuyerAddress    string          `json:"buyer_address" binding:"required"`
	PackageID       uint            `json:"package_id" binding:"required"`
	Referrer        string          `json:"referrer"`
	EscrowedDeposit decimal.Decimal `json:"escrowed_deposit" binding:"required"`
	DeadlineUnix    int64           `json:"deadline_unix"`
}

func purchaseStatus(outcome *business.PurchaseOutcome) gin.H {
	status := "success"
	if outcome.Degraded {
		status = "degraded"
	}
	return gin.H{
		"status":  status,
		"outcome": outcome,
	}
}

// Purchase executes a package purchase for the calling buyer
func Purchase(c *gin.Context) {
	var request PurchaseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buyer := callerAddress(c)
	if buyer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + CallerHeader + " header"})
		return
	}

	in := business.PurchaseInput{
		Buyer:     buyer,
		PackageID: request.PackageID,
		Referrer:  request.Referrer,
	}
	if request.DeadlineUnix > 0 {
		in.Deadline = time.Unix(request.DeadlineUnix, 0)
	}

	outcome, err := business.ExecutePurchase(dbconfig.DB, in, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchaseStatus(outcome))
}

// PurchaseOnBehalf executes a purchase for a buyer distinct from the caller.
// Relayer capability required; used by the payment bridge after it confirms
// an off-chain deposit.
func PurchaseOnBehalf(c *gin.Context) {
	var request PurchaseOnBehalfRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := business.RequireCapability(dbconfig.DB, callerAddress(c), models.CapRelayer); err != nil {
		respondError(c, err)
		return
	}

	in := business.PurchaseInput{
		Buyer:     request.BuyerAddress,
		PackageID: request.PackageID,
		Referrer:  request.Referrer,
		Escrowed:  &request.EscrowedDeposit,
	}
	if request.DeadlineUnix > 0 {
		in.Deadline = time.Unix(request.DeadlineUnix, 0)
	}

	outcome, err := business.ExecutePurchase(dbconfig.DB, in, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchaseStatus(outcome))
}

// ListPurchasesByAccount returns an address's purchase records and stats
func ListPurchasesByAccount(c *gin.Context) {
	address := c.Param("address")

	var records []models.PurchaseRecord
	if err := dbconfig.DB.Preload("Package").
		Where("buyer_address = ?", address).Order("id DESC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var stats models.AccountStats
	if err := dbconfig.DB.Where("address = ?", address).First(&stats).Error; err != nil {
		stats = models.AccountStats{Address: address}
	}

	c.JSON(http.StatusOK, gin.H{
		"purchases": records,
		"stats":     stats,
	})
}
