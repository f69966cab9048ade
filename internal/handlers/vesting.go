package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
)

// ClaimVesting releases whatever has vested on a schedule. Claims with
// nothing releasable return released = "0" instead of an error so retries
// stay idempotent.
func ClaimVesting(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("schedule_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID format"})
		return
	}

	released, err := business.ClaimVesting(dbconfig.DB, uint(id), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schedule_id": id,
		"released":    released.String(),
	})
}

// ListVestingByAccount returns an address's schedules with the currently
// vested amount computed per schedule
func ListVestingByAccount(c *gin.Context) {
	address := c.Param("address")

	schedules, err := business.VestingSchedulesFor(dbconfig.DB, address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(schedules))
	for i := range schedules {
		s := &schedules[i]
		vested := business.VestedAmount(s, now)
		out = append(out, gin.H{
			"schedule":   s,
			"vested_now": vested.String(),
			"claimable":  vested.Sub(s.Released).String(),
		})
	}
	c.JSON(http.StatusOK, out)
}
