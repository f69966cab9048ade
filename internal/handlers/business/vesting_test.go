package business

import (
	"testing"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testSchedule(total string, cliff, end time.Time) *models.VestingSchedule {
	return &models.VestingSchedule{
		TotalLocked:    dec(total),
		Released:       decimal.Zero,
		CliffTimestamp: cliff,
		EndTimestamp:   end,
	}
}

func TestVestedAmountBeforeCliff(t *testing.T) {
	now := time.Now()
	s := testSchedule("1000", now.Add(time.Hour), now.Add(2*time.Hour))

	assert.True(t, VestedAmount(s, now).IsZero())
	assert.True(t, VestedAmount(s, now.Add(59*time.Minute)).IsZero())
}

func TestVestedAmountLinearRamp(t *testing.T) {
	cliff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := cliff.Add(1000 * time.Second)
	s := testSchedule("1000", cliff, end)

	assert.Equal(t, dec("0"), VestedAmount(s, cliff))
	assert.Equal(t, dec("250"), VestedAmount(s, cliff.Add(250*time.Second)))
	assert.Equal(t, dec("500"), VestedAmount(s, cliff.Add(500*time.Second)))
	assert.Equal(t, dec("999"), VestedAmount(s, cliff.Add(999*time.Second)))
	assert.Equal(t, dec("1000"), VestedAmount(s, end))
	assert.Equal(t, dec("1000"), VestedAmount(s, end.Add(time.Hour)))
}

func TestVestedAmountNonDecreasing(t *testing.T) {
	cliff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := testSchedule("777", cliff, cliff.Add(3600*time.Second))

	prev := decimal.Zero
	for sec := -100; sec <= 3700; sec += 37 {
		v := VestedAmount(s, cliff.Add(time.Duration(sec)*time.Second))
		assert.True(t, v.GreaterThanOrEqual(prev), "vested amount decreased at %ds", sec)
		assert.True(t, v.LessThanOrEqual(s.TotalLocked))
		prev = v
	}
	assert.Equal(t, s.TotalLocked, prev)
}

func TestVestedAmountFloorRounding(t *testing.T) {
	cliff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := testSchedule("10", cliff, cliff.Add(3*time.Second))

	// 10 * 1/3 floors to 3, never 3.33 rounded up.
	assert.Equal(t, dec("3"), VestedAmount(s, cliff.Add(time.Second)))
	assert.Equal(t, dec("6"), VestedAmount(s, cliff.Add(2*time.Second)))
}

func TestVestedAmountZeroDuration(t *testing.T) {
	cliff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := testSchedule("500", cliff, cliff)

	assert.True(t, VestedAmount(s, cliff.Add(-time.Second)).IsZero())
	assert.Equal(t, dec("500"), VestedAmount(s, cliff))
}
