// Finance pass — cash flow, loan amortization, and the P&L aggregation.
package engine

import (
	"github.com/dustin/go-humanize"

	"github.com/clearspring/bottleworks/internal/state"
)

const (
	hoursPerDay   = 24.0
	hoursPerMonth = 30.0 * 24.0
)

// stepFinance accrues the tick's cash delta: revenue prorated by actual
// production against the rated daily figure, expenses prorated by elapsed
// time, plus operating cost, wages, research burn, and loan payments.
func (s *Simulation) stepFinance(w *state.World, produced, opCost, hours float64) {
	dayFrac := hours / hoursPerDay
	monthFrac := hours / hoursPerMonth

	revenue := 0.0
	if w.Production.DailyProduction > 0 {
		revenue = w.Finance.DailyRevenue * (produced / w.Production.DailyProduction)
	}

	researchBurn := w.Research.MonthlyBudget * monthFrac
	for _, proj := range w.Research.Current {
		researchBurn += proj.DailyCost * dayFrac
	}

	wages := w.Employees.TotalWageCost * monthFrac
	loanPay := w.Loans.MonthlyPayments * monthFrac
	expenses := w.Finance.DailyExpenses*dayFrac + opCost + wages + researchBurn + loanPay

	w.Finance.Cash += revenue - expenses
	w.Finance.NetProfit = w.Finance.DailyRevenue - w.Finance.DailyExpenses

	s.amortizeLoans(w, monthFrac)
	s.recomputeRatios(w)
	s.recomputeProfitLoss(w)
}

// amortizeLoans pays active loans down continuously. A loan whose balance
// reaches zero is retired and drops out of the monthly payment obligation.
func (s *Simulation) amortizeLoans(w *state.World, monthFrac float64) {
	kept := w.Loans.Active[:0]
	for _, loan := range w.Loans.Active {
		loan.RemainingBalance -= loan.MonthlyPayment * monthFrac
		if loan.RemainingBalance <= 0 {
			s.emit("finance", "Loan repaid in full: %s", loan.Name)
			continue
		}
		kept = append(kept, loan)
	}
	w.Loans.Active = kept

	total, payments := 0.0, 0.0
	for _, loan := range w.Loans.Active {
		total += loan.RemainingBalance
		payments += loan.MonthlyPayment
	}
	w.Loans.TotalDebt = total
	w.Loans.MonthlyPayments = payments
	w.Finance.MonthlyLoanPayment = payments
}

// recomputeRatios refreshes the display-only financial metrics.
func (s *Simulation) recomputeRatios(w *state.World) {
	r := &w.Finance.Ratios
	if w.Finance.DailyRevenue > 0 {
		r.NetMargin = w.Finance.NetProfit / w.Finance.DailyRevenue * 100
	} else {
		r.NetMargin = 0
	}
	if w.Market.AveragePrice > 0 && w.Production.DailyProduction > 0 {
		r.RevenuePerUnit = w.Market.AveragePrice
		r.CostPerUnit = w.Finance.DailyExpenses / w.Production.DailyProduction
		r.BreakEven = w.Finance.DailyExpenses / w.Market.AveragePrice
	}
}

// recomputeProfitLoss rebuilds the P&L statement as a pure aggregation of
// the other domains, expressed in daily figures.
func (s *Simulation) recomputeProfitLoss(w *state.World) {
	pl := &w.ProfitLoss

	pl.Revenue.Total = w.Finance.DailyRevenue
	pl.Revenue.ProductSales = pl.Revenue.Total - pl.Revenue.PremiumSales - pl.Revenue.ContractSales

	pl.Expenses.Labor = w.Employees.TotalWageCost / 30
	pl.Expenses.LoanPayments = w.Loans.MonthlyPayments / 30
	pl.Expenses.Research = w.Research.MonthlyBudget / 30
	for _, proj := range w.Research.Current {
		pl.Expenses.Research += proj.DailyCost
	}
	pl.Expenses.Total = pl.Expenses.RawMaterials + pl.Expenses.Labor +
		pl.Expenses.Utilities + pl.Expenses.Maintenance + pl.Expenses.LoanPayments +
		pl.Expenses.Research + pl.Expenses.Insurance + pl.Expenses.Rent

	pl.GrossProfit = pl.Revenue.Total - pl.Expenses.RawMaterials
	pl.NetProfit = pl.Revenue.Total - pl.Expenses.Total
	if pl.Revenue.Total > 0 {
		pl.Margins.Gross = pl.GrossProfit / pl.Revenue.Total * 100
		pl.Margins.Net = pl.NetProfit / pl.Revenue.Total * 100
	} else {
		pl.Margins.Gross = 0
		pl.Margins.Net = 0
	}
}

// FormatCash renders a cash amount for console output.
func FormatCash(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 0)
}
