package state

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// FromSnapshot builds a World from a serialized snapshot, deep-merging the
// snapshot over the default world: struct fields absent from the snapshot
// keep their defaults, nested objects merge field-wise, and present slices
// replace wholesale. The result is normalized, so callers never observe a
// missing required field.
func FromSnapshot(data []byte, now time.Time) (*World, error) {
	w := DefaultWorld(now)
	if len(data) > 0 {
		if err := json.Unmarshal(data, w); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
	}
	w.Normalize(now)
	return w, nil
}

// Snapshot serializes the world to its persistence form.
func (w *World) Snapshot() ([]byte, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Clone returns a deep copy of the world via its snapshot form.
func (w *World) Clone() *World {
	data, err := json.Marshal(w)
	if err != nil {
		return DefaultWorld(w.Progress.StartTime)
	}
	c := &World{}
	if err := json.Unmarshal(data, c); err != nil {
		return DefaultWorld(w.Progress.StartTime)
	}
	return c
}

// Normalize repairs a world after loading: fills structures a partial
// snapshot may lack, clamps ranges, recomputes derived fields, and
// sanitizes finance. Downstream logic assumes Normalize has run and does
// pure arithmetic without existence checks.
func (w *World) Normalize(now time.Time) {
	defaults := DefaultWorld(now)

	if w.Resources == nil {
		w.Resources = defaults.Resources
	}
	for _, rt := range AllResources {
		if w.Resources[rt] == nil {
			w.Resources[rt] = defaults.Resources[rt]
		}
	}
	if w.Production.Lines == nil {
		w.Production.Lines = defaults.Production.Lines
	}
	if w.Market.Products == nil {
		w.Market.Products = defaults.Market.Products
	}
	if w.Employees.Departments == nil {
		w.Employees.Departments = defaults.Employees.Departments
	}
	if w.Progress.Milestones == nil {
		w.Progress.Milestones = defaults.Progress.Milestones
	}
	for key, val := range defaults.Progress.Milestones {
		if _, ok := w.Progress.Milestones[key]; !ok {
			w.Progress.Milestones[key] = val
		}
	}
	if w.Progress.Challenges == nil {
		w.Progress.Challenges = defaults.Progress.Challenges
	}
	if w.Progress.StartTime.IsZero() {
		w.Progress.StartTime = now
	}

	for _, line := range w.Production.Lines {
		line.Efficiency = clamp(line.Efficiency, 0, 100)
		line.Speed = clamp(line.Speed, 1, 10)
		if line.NextMaintenance < 0 {
			line.NextMaintenance = 0
		}
		switch line.Status {
		case MaintenanceGood, MaintenanceWarning, MaintenanceCritical:
		default:
			line.Status = MaintenanceGood
		}
	}

	for _, res := range w.Resources {
		res.Current = clamp(res.Current, 0, res.Capacity)
		if res.Ordered < 0 {
			res.Ordered = 0
		}
		if res.DailyUsage > 0 {
			res.DaysLeft = res.Current / res.DailyUsage
		} else {
			res.DaysLeft = 0
		}
	}

	w.Quality.OverallScore = clamp(w.Quality.OverallScore, 60, 100)
	w.Employees.Satisfaction = clamp(w.Employees.Satisfaction, 0, 100)
	for _, dept := range w.Employees.Departments {
		dept.Efficiency = clamp(dept.Efficiency, 0, 100)
		dept.Morale = clamp(dept.Morale, 0, 100)
	}

	for _, p := range w.Market.Products {
		if p.Price < 0.1 {
			p.Price = 0.1
		}
	}

	if w.Effects == nil {
		w.Effects = []*Effect{}
	}

	w.SanitizeFinance()
}

// SanitizeFinance coerces any NaN or infinite financial value to zero.
// A malformed computation must never propagate past a tick boundary.
func (w *World) SanitizeFinance() {
	fields := []*float64{
		&w.Finance.Cash,
		&w.Finance.DailyRevenue,
		&w.Finance.DailyExpenses,
		&w.Finance.NetProfit,
		&w.Finance.MonthlyLoanPayment,
		&w.Finance.CreditLimit,
		&w.Finance.Ratios.GrossMargin,
		&w.Finance.Ratios.NetMargin,
		&w.Finance.Ratios.ROI,
		&w.Finance.Ratios.CostPerUnit,
		&w.Finance.Ratios.RevenuePerUnit,
		&w.Finance.Ratios.BreakEven,
		&w.ProfitLoss.Revenue.ProductSales,
		&w.ProfitLoss.Revenue.PremiumSales,
		&w.ProfitLoss.Revenue.ContractSales,
		&w.ProfitLoss.Revenue.Total,
		&w.ProfitLoss.Expenses.RawMaterials,
		&w.ProfitLoss.Expenses.Labor,
		&w.ProfitLoss.Expenses.Utilities,
		&w.ProfitLoss.Expenses.Maintenance,
		&w.ProfitLoss.Expenses.LoanPayments,
		&w.ProfitLoss.Expenses.Research,
		&w.ProfitLoss.Expenses.Insurance,
		&w.ProfitLoss.Expenses.Rent,
		&w.ProfitLoss.Expenses.Total,
		&w.ProfitLoss.GrossProfit,
		&w.ProfitLoss.NetProfit,
		&w.ProfitLoss.Margins.Gross,
		&w.ProfitLoss.Margins.Net,
	}
	for _, f := range fields {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			*f = 0
		}
	}
}

// Valid reports whether the world has the substructures a tick requires.
// A tick against an invalid world is a no-op.
func (w *World) Valid() bool {
	return len(w.Production.Lines) > 0 && w.Resources != nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
