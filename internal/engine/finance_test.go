package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearspring/bottleworks/internal/state"
)

func TestLoanAmortizationRetiresLoans(t *testing.T) {
	s := idleTestSim(t)
	w := s.world
	w.Loans.Active = []*state.Loan{
		{Name: "Stub Loan", RemainingBalance: 1, MonthlyPayment: 2000},
	}

	// One tick is 0.5h, so the payment slice is 2000 * 0.5/720 ≈ 1.39,
	// more than the remaining balance.
	s.Tick(1)

	assert.Empty(t, w.Loans.Active)
	assert.Equal(t, 0.0, w.Loans.TotalDebt)
	assert.Equal(t, 0.0, w.Loans.MonthlyPayments)
	assert.Equal(t, 0.0, w.Finance.MonthlyLoanPayment)
	assert.True(t, w.Progress.Milestones[state.MilestoneDebtFree])
}

func TestLoanBalanceDecreasesContinuously(t *testing.T) {
	s := idleTestSim(t)
	w := s.world
	start := w.Loans.Active[0].RemainingBalance

	s.Tick(1)

	expected := start - 2000*0.5/720
	assert.InDelta(t, expected, w.Loans.Active[0].RemainingBalance, 1e-9)
	assert.Less(t, w.Loans.TotalDebt, 85000.0)
}

func TestIdleFactoryStillPaysFixedCosts(t *testing.T) {
	s := idleTestSim(t)
	w := s.world
	before := w.Finance.Cash

	s.Tick(1)

	// No production means no revenue, but daily expenses, wages, research
	// budget, and loan payments still accrue.
	assert.Less(t, w.Finance.Cash, before)
}

func TestProfitLossAggregation(t *testing.T) {
	s := idleTestSim(t)
	w := s.world

	s.Tick(1)

	pl := w.ProfitLoss
	assert.Equal(t, 18000.0, pl.Revenue.Total)
	assert.InDelta(t, 28800.0/30, pl.Expenses.Labor, 1e-9)
	assert.InDelta(t, 2000.0/30, pl.Expenses.Research, 1e-9)
	assert.InDelta(t, pl.Revenue.Total-pl.Expenses.RawMaterials, pl.GrossProfit, 1e-9)
	assert.InDelta(t, pl.Revenue.Total-pl.Expenses.Total, pl.NetProfit, 1e-9)

	sum := pl.Expenses.RawMaterials + pl.Expenses.Labor + pl.Expenses.Utilities +
		pl.Expenses.Maintenance + pl.Expenses.LoanPayments + pl.Expenses.Research +
		pl.Expenses.Insurance + pl.Expenses.Rent
	assert.InDelta(t, sum, pl.Expenses.Total, 1e-9)
}

func TestResearchBurnChargedWhileActive(t *testing.T) {
	s := idleTestSim(t)
	w := s.world
	require.NoError(t, s.StartResearch("brand-development")) // 8000 up front, 300/day

	cashAfterStart := w.Finance.Cash
	s.Tick(1)

	// 0.5h slice: fixed daily expenses + wages + monthly research budget
	// + the project's daily burn + loan payments.
	fixed := 16200.0 * 0.5 / 24
	wages := 28800.0 * 0.5 / 720
	budget := 2000.0 * 0.5 / 720
	daily := 300.0 * 0.5 / 24
	loans := 3500.0 * 0.5 / 720
	expected := cashAfterStart - fixed - wages - budget - daily - loans
	assert.InDelta(t, expected, w.Finance.Cash, 1e-6)
}

func TestFormatCash(t *testing.T) {
	assert.Equal(t, "$45,000", FormatCash(45000))
	assert.Equal(t, "$-1,250", FormatCash(-1250))
}
