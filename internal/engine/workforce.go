// Workforce pass — satisfaction and department efficiency drift.
package engine

import (
	"github.com/clearspring/bottleworks/internal/state"
)

// stepWorkforce drifts employee satisfaction with cash health and quality,
// then drifts each department's efficiency with satisfaction. All values
// clamp to their bands.
func (s *Simulation) stepWorkforce(w *state.World) {
	delta := 0.0
	if w.Finance.Cash > s.cfg.CashComfortLevel {
		delta += s.cfg.SatisfactionUpDelta
	} else {
		delta -= s.cfg.SatisfactionDownBig
	}
	if w.Quality.OverallScore > s.cfg.QualityComfortScore {
		delta += s.cfg.SatisfactionUpDelta
	} else {
		delta -= s.cfg.SatisfactionDownTiny
	}

	w.Employees.Satisfaction = clampf(w.Employees.Satisfaction+delta, 0, 100)

	for _, dept := range w.Employees.Departments {
		drift := s.cfg.DeptEfficiencyDrift
		if w.Employees.Satisfaction <= s.cfg.MoraleComfortLevel {
			drift = -drift
		}
		dept.Efficiency = clampf(dept.Efficiency+drift, s.cfg.DeptEfficiencyFloor, 100)
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
