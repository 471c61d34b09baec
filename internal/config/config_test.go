package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsAreConsistent(t *testing.T) {
	cfg := Defaults()

	assert.Greater(t, cfg.TickInterval.Seconds(), 0.0)
	assert.Greater(t, cfg.SimHoursPerTick, 0.0)
	assert.Greater(t, cfg.WaterPerBottle, cfg.FilterPerBottle, "water dominates per-bottle draw")

	assert.Less(t, cfg.QualityDecay, 1.0)
	assert.Greater(t, cfg.QualityDecay, 0.9, "smoothing must be slow")
	assert.GreaterOrEqual(t, cfg.QualityFloor, 0.0)

	assert.Greater(t, cfg.MaintenanceIntervalHrs, cfg.MaintenanceWarningHours)
	assert.GreaterOrEqual(t, cfg.EfficiencyFloor, 0.0)
	assert.Greater(t, cfg.ReferenceSpeed, 0.0)

	assert.Greater(t, cfg.DemandCeiling, cfg.DemandFloor)
	assert.Greater(t, cfg.MinProductPrice, 0.0)
}
