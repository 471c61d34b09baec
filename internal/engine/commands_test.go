package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearspring/bottleworks/internal/state"
)

func idleTestSim(t *testing.T) *Simulation {
	t.Helper()
	s := newTestSim(t)
	for _, line := range s.world.Production.Lines {
		line.Active = false
	}
	return s
}

func TestOrderSuppliesDebitsAndDelivers(t *testing.T) {
	s := idleTestSim(t) // no consumption while the order is in flight
	w := s.world
	bottles := w.Resources[state.ResourceBottles]

	require.NoError(t, s.OrderSupplies(state.ResourceBottles, 3750))

	assert.Equal(t, 44700.0, w.Finance.Cash, "3750 bottles at 0.08 each")
	assert.Equal(t, 3750.0, bottles.Ordered)
	assert.Equal(t, 5000.0, bottles.Current, "stock unchanged until delivery")
	assert.Equal(t, 1, w.Progress.DecisionsToday)
	require.Len(t, w.Effects, 1)

	// Delivery delay is 2 sim-hours; each tick advances 0.5. The order
	// must still be in flight after 1.5h and arrive at the 2.0h tick.
	runTicks(s, 3)
	assert.Equal(t, 5000.0, bottles.Current)
	assert.Equal(t, 3750.0, bottles.Ordered)

	s.Tick(4)
	assert.Equal(t, 8750.0, bottles.Current)
	assert.Equal(t, 0.0, bottles.Ordered)
	assert.InDelta(t, 8750.0/8000.0, bottles.DaysLeft, 1e-9)
	assert.Empty(t, w.Effects)
}

func TestOrderSuppliesRejectedLeavesWorldUntouched(t *testing.T) {
	s := idleTestSim(t)
	w := s.world
	w.Finance.Cash = 100

	err := s.OrderSupplies(state.ResourceBottles, 3750)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient funds")
	assert.Equal(t, 100.0, w.Finance.Cash)
	assert.Equal(t, 0.0, w.Resources[state.ResourceBottles].Ordered)
	assert.Equal(t, 0, w.Progress.DecisionsToday)
	assert.Equal(t, 0, w.Progress.TotalDecisions)
	assert.Empty(t, w.Effects)
}

func TestOrderSuppliesUnknownResource(t *testing.T) {
	s := idleTestSim(t)
	assert.Error(t, s.OrderSupplies("plutonium", 10))
	assert.Error(t, s.OrderSupplies(state.ResourceWater, -5))
}

func TestHire(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	require.NoError(t, s.Hire(0)) // Maria Rodriguez, production, 500 to hire

	dept := w.Employees.Departments["production"]
	assert.Equal(t, 44500.0, w.Finance.Cash)
	assert.Equal(t, 9, dept.Workers)
	assert.Equal(t, 13, w.Employees.Total)
	assert.Len(t, w.Employees.Hiring, 2)
	assert.InDelta(t, (18.0*8+17)/9, dept.AverageWage, 1e-9)
	assert.Equal(t, 28800.0+17*160, w.Employees.TotalWageCost)

	for _, pos := range dept.Positions {
		if pos.Name == "Line Operator" {
			assert.Equal(t, 7, pos.Count)
		}
	}
}

func TestHireNewPositionAppended(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	// Jennifer Chen's position does not exist in management yet.
	require.NoError(t, s.Hire(2))

	dept := w.Employees.Departments["management"]
	require.Len(t, dept.Positions, 3)
	assert.Equal(t, "Operations Manager", dept.Positions[2].Name)
	assert.Equal(t, 1, dept.Positions[2].Count)
}

func TestHireBadIndex(t *testing.T) {
	s := idleTestSim(t)
	assert.Error(t, s.Hire(-1))
	assert.Error(t, s.Hire(99))
}

func TestAdjustPriceClampsToMinimum(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	require.NoError(t, s.AdjustPrice("standard", -50))

	assert.Equal(t, 0.1, w.Market.Products[0].Price)
	assert.Equal(t, 0.1, w.Market.AveragePrice)
	assert.Error(t, s.AdjustPrice("sparkling", 0.1), "unknown product type")
}

func TestPurchaseUpgradeMovesOnce(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	require.NoError(t, s.PurchaseUpgrade("water-testing-kit"))

	assert.Equal(t, 45000.0-2800, w.Finance.Cash)
	assert.Len(t, w.Upgrades.Available, 3)
	require.Len(t, w.Upgrades.Purchased, 1)
	assert.Equal(t, 5.0, w.Upgrades.TotalBenefits.QualityBoost)

	// A purchased upgrade is gone from the catalog.
	err := s.PurchaseUpgrade("water-testing-kit")
	require.Error(t, err)
	assert.Equal(t, 45000.0-2800, w.Finance.Cash)
}

func TestPurchaseUpgradeBenefitsAccumulate(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	require.NoError(t, s.PurchaseUpgrade("basic-maintenance"))
	require.NoError(t, s.PurchaseUpgrade("inventory-system"))

	tb := w.Upgrades.TotalBenefits
	assert.Equal(t, 8.0, tb.EfficiencyBoost, "5 + 3")
	assert.Equal(t, 8.0, tb.CostReduction, "3 + 5")
}

func TestStartResearchRejectedWhenBroke(t *testing.T) {
	s := idleTestSim(t)
	w := s.world
	w.Finance.Cash = 1000

	err := s.StartResearch("water-filtration")

	require.Error(t, err)
	assert.Len(t, w.Research.Available, 4)
	assert.Empty(t, w.Research.Current)
}

func TestApplyLoanClampedToOfferMaximum(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	require.NoError(t, s.ApplyLoan("emergency", 999999))

	// Clamped to the 25000 maximum; 15% simple interest over 12 months.
	assert.Equal(t, 70000.0, w.Finance.Cash)
	require.Len(t, w.Loans.Active, 3)
	loan := w.Loans.Active[2]
	assert.InDelta(t, 28750.0, loan.RemainingBalance, 1e-9)
	assert.InDelta(t, 28750.0/12, loan.MonthlyPayment, 1e-9)
	assert.InDelta(t, 85000.0+28750, w.Loans.TotalDebt, 1e-9)
	assert.Equal(t, w.Loans.MonthlyPayments, w.Finance.MonthlyLoanPayment)
}

func TestApplyLoanUnknownOffer(t *testing.T) {
	s := idleTestSim(t)
	assert.Error(t, s.ApplyLoan("payday", 100))
	assert.Error(t, s.ApplyLoan("emergency", -1))
}

func TestToggleLineRejectsBrokenLine(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	err := s.ToggleLine(2) // line B starts critical

	require.Error(t, err)
	assert.False(t, w.Production.Lines[1].Active)
	assert.Equal(t, 0, w.Progress.TotalDecisions)
}

func TestToggleLineRejectsStartWhileExhausted(t *testing.T) {
	s := idleTestSim(t)
	s.world.Resources[state.ResourceWater].Current = 0

	err := s.ToggleLine(1)

	require.Error(t, err)
	assert.False(t, s.world.Production.Lines[0].Active)
}

func TestToggleLineFlips(t *testing.T) {
	s := idleTestSim(t)

	require.NoError(t, s.ToggleLine(1))
	assert.True(t, s.world.Production.Lines[0].Active)

	require.NoError(t, s.ToggleLine(1))
	assert.False(t, s.world.Production.Lines[0].Active)
}

func TestSetLineSpeedClamps(t *testing.T) {
	s := idleTestSim(t)
	line := s.world.Production.Lines[0]

	require.NoError(t, s.SetLineSpeed(1, 25))
	assert.Equal(t, 10.0, line.Speed)

	require.NoError(t, s.SetLineSpeed(1, 0.2))
	assert.Equal(t, 1.0, line.Speed)
}

func TestRepairLine(t *testing.T) {
	s := idleTestSim(t)
	w := s.world
	line := w.Production.Lines[1] // critical, efficiency 0

	require.NoError(t, s.RepairLine(2))

	// 20 points restored, cost (20+5)*45.
	assert.Equal(t, 45000.0-1125, w.Finance.Cash)
	assert.Equal(t, state.MaintenanceGood, line.Status)
	assert.Equal(t, 20.0, line.Efficiency)
	assert.Equal(t, 72.0, line.NextMaintenance)

	err := s.RepairLine(2)
	require.Error(t, err, "a good line needs no repair")
}

func TestStartTrainingDefersBenefits(t *testing.T) {
	s := idleTestSim(t)
	w := s.world
	w.Employees.Training[0].DurationDays = 0 // Safety Training, fires next tick

	require.NoError(t, s.StartTraining("Safety Training"))

	assert.Equal(t, 45000.0-1500, w.Finance.Cash)
	assert.Equal(t, 68.0, w.Employees.Satisfaction, "no benefit until completion")
	require.Len(t, w.Effects, 1)

	s.Tick(1)

	// Morale boost of 5, minus the same tick's small downward drift.
	assert.InDelta(t, 73.0-0.15, w.Employees.Satisfaction, 1e-9)
	assert.Empty(t, w.Effects)
}

func TestTrainingEffectDroppedWhenProgramGone(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	require.NoError(t, s.StartTraining("Safety Training"))
	w.Employees.Training = nil
	w.Effects[0].FireAtHour = 0

	s.Tick(1)

	assert.Empty(t, w.Effects, "orphaned effect dropped silently")
}

func TestImproveQuality(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	require.NoError(t, s.ImproveQuality("Equipment Calibration"))

	assert.Equal(t, 45000.0-1200, w.Finance.Cash)
	assert.Equal(t, 80.0, w.Quality.OverallScore)
	assert.InDelta(t, 0.6, w.Quality.Contamination, 1e-9)
}

func TestDispatchByName(t *testing.T) {
	s := idleTestSim(t)

	require.NoError(t, s.Apply(CmdAdjustPrice, map[string]any{
		"product": "standard",
		"delta":   0.25,
	}))
	assert.Equal(t, 2.5, s.world.Market.Products[0].Price)

	require.NoError(t, s.Apply(CmdOrderSupplies, map[string]any{
		"resource": "water",
		"quantity": float64(1000),
	}))
	assert.Equal(t, 1000.0, s.world.Resources[state.ResourceWater].Ordered)
}

func TestDispatchRejectsBadInput(t *testing.T) {
	s := idleTestSim(t)

	assert.Error(t, s.Apply("fire_everyone", nil))
	assert.Error(t, s.Apply(CmdAdjustPrice, map[string]any{"product": "standard"}))
	assert.Error(t, s.Apply(CmdOrderSupplies, map[string]any{"resource": "water", "quantity": "lots"}))
}
