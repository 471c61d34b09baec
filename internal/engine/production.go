// Production pass — line output, operating cost, and maintenance aging.
package engine

import (
	"github.com/clearspring/bottleworks/internal/state"
)

// stepProduction computes bottles produced and operating cost for the tick,
// and ages maintenance timers on running lines. A line whose maintenance
// countdown crosses zero breaks down: status goes critical and efficiency
// takes a one-time penalty, floored.
func (s *Simulation) stepProduction(w *state.World, hours float64) (produced, opCost float64) {
	benefits := w.Upgrades.TotalBenefits
	tech := w.Research.Benefits

	for _, line := range w.Production.Lines {
		if !line.Active || line.Status == state.MaintenanceCritical {
			continue
		}

		output := line.CurrentOutput * (1 + benefits.ProductionBoost/100)
		eff := line.Efficiency + benefits.EfficiencyBoost + tech.EfficiencyBonus
		if eff > 100 {
			eff = 100
		}

		rate := output * (eff / 100) * (line.Speed / s.cfg.ReferenceSpeed)
		produced += rate * hours
		opCost += line.OperatingCost * hours * (1 - (benefits.CostReduction+tech.CostReduction)/100)

		// Maintenance countdown only runs while the line runs.
		if line.NextMaintenance > 0 {
			line.NextMaintenance -= hours
			if line.NextMaintenance <= 0 {
				line.NextMaintenance = 0
				line.Status = state.MaintenanceCritical
				line.Efficiency -= s.cfg.BreakdownPenalty
				if line.Efficiency < s.cfg.EfficiencyFloor {
					line.Efficiency = s.cfg.EfficiencyFloor
				}
				s.emit("production", "%s broke down: maintenance overdue, efficiency down to %.0f%%", line.Name, line.Efficiency)
			} else if line.NextMaintenance <= s.cfg.MaintenanceWarningHours && line.Status == state.MaintenanceGood {
				line.Status = state.MaintenanceWarning
			}
		}
	}

	// Aggregate figures derived from the pass.
	if hours > 0 {
		w.Production.ProductionRate = produced / hours
	}
	w.Production.TotalBottlesProduced += produced

	running, totalEff := 0, 0.0
	for _, line := range w.Production.Lines {
		totalEff += line.Efficiency
		if line.Active && line.Status != state.MaintenanceCritical {
			running++
		}
	}
	if n := len(w.Production.Lines); n > 0 {
		w.Production.AverageEfficiency = totalEff / float64(n)
		w.Production.Uptime = float64(running) / float64(n) * 100
	}

	return produced, opCost
}
