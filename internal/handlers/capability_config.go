package handlers

import (
	"net/http"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
)

// CapabilityRequest represents the request body for granting/revoking a
// capability
type CapabilityRequest struct {
	Address string `json:"address" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// ListCapabilities returns all capability grants
func ListCapabilities(c *gin.Context) {
	var caps []models.Capability
	if err := dbconfig.DB.Order("address").Find(&caps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, caps)
}

// GrantCapability grants a capability to an address (admin only)
func GrantCapability(c *gin.Context) {
	var request CapabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := business.GrantCapability(dbconfig.DB, callerAddress(c), request.Address, request.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"address": request.Address, "name": request.Name})
}

// RevokeCapability revokes a capability from an address (admin only)
func RevokeCapability(c *gin.Context) {
	var request CapabilityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := business.RevokeCapability(dbconfig.DB, callerAddress(c), request.Address, request.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": request.Address, "name": request.Name, "revoked": true})
}
