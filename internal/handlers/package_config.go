package handlers

import (
	"net/http"
	"strconv"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PackageRequest represents the request body for creating/updating a package
type PackageRequest struct {
	Name                string          `json:"name" binding:"required"`
	EntryCost           decimal.Decimal `json:"entry_cost" binding:"required"`
	ExchangeRate        decimal.Decimal `json:"exchange_rate" binding:"required"`
	VestingFractionBps  uint            `json:"vesting_fraction_bps"`
	CliffSeconds        int64           `json:"cliff_seconds"`
	DurationSeconds     int64           `json:"duration_seconds"`
	ReferralFractionBps uint            `json:"referral_fraction_bps"`
	Active              *bool           `json:"active"`
}

func (r *PackageRequest) toModel() models.Package {
	pkg := models.Package{
		Name:                r.Name,
		EntryCost:           r.EntryCost,
		ExchangeRate:        r.ExchangeRate,
		VestingFractionBps:  r.VestingFractionBps,
		CliffSeconds:        r.CliffSeconds,
		DurationSeconds:     r.DurationSeconds,
		ReferralFractionBps: r.ReferralFractionBps,
		Active:              true,
	}
	if r.Active != nil {
		pkg.Active = *r.Active
	}
	return pkg
}

// ListPackages returns all packages
func ListPackages(c *gin.Context) {
	var packages []models.Package
	if err := dbconfig.DB.Order("id").Find(&packages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, packages)
}

// GetPackage returns a specific package by ID
func GetPackage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var pkg models.Package
	if err := dbconfig.DB.First(&pkg, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// CreatePackage creates a new package (admin capability required)
func CreatePackage(c *gin.Context) {
	var request PackageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg := request.toModel()
	if err := business.CreatePackage(dbconfig.DB, callerAddress(c), &pkg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

// UpdatePackage updates a package. Terms are frozen once referenced by a
// purchase; only name and active flag stay mutable after that.
func UpdatePackage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request PackageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := request.toModel()
	if err := business.UpdatePackage(dbconfig.DB, callerAddress(c), uint(id), &updated); err != nil {
		respondError(c, err)
		return
	}

	var pkg models.Package
	if err := dbconfig.DB.First(&pkg, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pkg)
}
