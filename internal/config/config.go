// Package config holds the tunable simulation constants.
// The numbers here are one consistent set; nothing else in the
// module hard-codes a rate or threshold.
package config

import "time"

// Tunables collects every rate, threshold, and delay the simulation uses.
// A Tunables value is constructed once at startup and passed explicitly —
// no package-level state.
type Tunables struct {
	// Tick timing.
	TickInterval    time.Duration // wall-clock period between ticks
	SimHoursPerTick float64       // simulated hours advanced per tick
	SaveInterval    time.Duration // autosave period

	// Per-bottle resource consumption ratios.
	WaterPerBottle     float64 // liters of water per bottle
	PackagingPerBottle float64 // bottles, caps, labels are 1:1
	FilterPerBottle    float64 // filters wear out slowly

	// Production line maintenance.
	MaintenanceWarningHours float64 // status drops to warning below this
	MaintenanceIntervalHrs  float64 // full countdown after a repair
	BreakdownPenalty        float64 // efficiency lost on a breakdown
	EfficiencyFloor         float64 // efficiency never drops below this
	ReferenceSpeed          float64 // speed dial value producing rated output

	// Quality smoothing.
	QualityDecay float64 // blend factor, close to 1 (slow smoothing)
	QualityFloor float64 // overallScore never drops below this

	// Employee drift thresholds.
	CashComfortLevel     float64 // cash above this raises satisfaction
	QualityComfortScore  float64 // quality above this raises satisfaction
	SatisfactionUpDelta  float64
	SatisfactionDownBig  float64
	SatisfactionDownTiny float64
	DeptEfficiencyFloor  float64
	DeptEfficiencyDrift  float64
	MoraleComfortLevel   float64 // satisfaction above this lifts efficiency

	// Command economics.
	DeliveryDelayHours float64 // supply orders arrive after this
	WageHoursPerMonth  float64 // monthly wage cost = hourly wage × this
	RepairCostPerPoint float64 // repair cost per efficiency point restored
	MinProductPrice    float64

	// Demand drift.
	DemandNoiseScale float64 // noise coordinate step per sim-day
	DemandFloor      float64
	DemandCeiling    float64
}

// Defaults returns the reference tunable set.
func Defaults() Tunables {
	return Tunables{
		TickInterval:    30 * time.Second,
		SimHoursPerTick: 0.5,
		SaveInterval:    30 * time.Second,

		WaterPerBottle:     1.5,
		PackagingPerBottle: 1.0,
		FilterPerBottle:    0.0001,

		MaintenanceWarningHours: 8,
		MaintenanceIntervalHrs:  72,
		BreakdownPenalty:        20,
		EfficiencyFloor:         30,
		ReferenceSpeed:          5,

		QualityDecay: 0.999,
		QualityFloor: 60,

		CashComfortLevel:     50000,
		QualityComfortScore:  85,
		SatisfactionUpDelta:  0.1,
		SatisfactionDownBig:  0.1,
		SatisfactionDownTiny: 0.05,
		DeptEfficiencyFloor:  50,
		DeptEfficiencyDrift:  0.1,
		MoraleComfortLevel:   70,

		DeliveryDelayHours: 2,
		WageHoursPerMonth:  160,
		RepairCostPerPoint: 45,
		MinProductPrice:    0.1,

		DemandNoiseScale: 0.15,
		DemandFloor:      20,
		DemandCeiling:    95,
	}
}
