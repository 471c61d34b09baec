// Demand drift — slow, continuous evolution of per-product demand.
package engine

import (
	"github.com/clearspring/bottleworks/internal/state"
)

// stepDemand samples a smooth noise curve at the sim-day coordinate for
// each product, so demand wanders without jumps. Marketing research lifts
// the whole curve. Prices are command-owned and untouched here.
func (s *Simulation) stepDemand(w *state.World) {
	day := w.Progress.SimHours / 24

	for i, p := range w.Market.Products {
		n := s.demand.Eval2(day*s.cfg.DemandNoiseScale, float64(i)*7.31)
		target := s.cfg.DemandFloor + n*(s.cfg.DemandCeiling-s.cfg.DemandFloor)
		target = clampf(target+w.Research.Benefits.MarketingBonus, 0, 100)

		p.DemandTrend = target - p.Demand
		p.Demand = target

		// Sales follow demand against rated output; margin follows price.
		p.DailySales = w.Production.DailyProduction * p.Demand / 100
		if p.Price > 0 {
			p.ProfitMargin = (p.Price - w.Finance.Ratios.CostPerUnit) / p.Price
		}
	}
}
