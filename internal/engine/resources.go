// Resource consumption pass — raw material draw-down and the hard stop.
package engine

import (
	"github.com/clearspring/bottleworks/internal/state"
)

// consumptionRatio returns units of a resource consumed per bottle produced.
func (s *Simulation) consumptionRatio(rt state.ResourceType) float64 {
	switch rt {
	case state.ResourceWater:
		return s.cfg.WaterPerBottle
	case state.ResourceFilters:
		return s.cfg.FilterPerBottle
	default:
		// Bottles, caps, labels consume 1:1 with production.
		return s.cfg.PackagingPerBottle
	}
}

// stepResources consumes raw materials in proportion to production, floors
// stock at zero, and recomputes runway. If any production-critical resource
// is exhausted, every line stops — production cannot run on debt.
func (s *Simulation) stepResources(w *state.World, produced float64) {
	for _, rt := range state.AllResources {
		res := w.Resources[rt]
		res.Current -= produced * s.consumptionRatio(rt)
		if res.Current < 0 {
			res.Current = 0
		}
		if res.DailyUsage > 0 {
			res.DaysLeft = res.Current / res.DailyUsage
		} else {
			res.DaysLeft = 0
		}
	}

	for _, rt := range state.CriticalResources {
		if w.Resources[rt].Current <= 0 {
			halted := false
			for _, line := range w.Production.Lines {
				if line.Active {
					line.Active = false
					halted = true
				}
			}
			if halted {
				s.emit("supply", "%s exhausted: all production lines halted", w.Resources[rt].Name)
			}
			break
		}
	}
}
