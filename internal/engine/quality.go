// Quality pass — slow blend of the overall score toward operating conditions.
package engine

import (
	"github.com/clearspring/bottleworks/internal/state"
)

// stepQuality blends the overall score toward a target derived from line
// maintenance condition and resource adequacy. Only runs while producing;
// an idle factory's quality neither decays nor improves.
func (s *Simulation) stepQuality(w *state.World, produced float64) {
	if produced <= 0 {
		return
	}

	condition := 0.0
	for _, line := range w.Production.Lines {
		switch line.Status {
		case state.MaintenanceGood:
			condition += 1.0
		case state.MaintenanceWarning:
			condition += 0.95
		default:
			condition += 0.85
		}
	}
	if n := len(w.Production.Lines); n > 0 {
		condition /= float64(n)
	} else {
		condition = 1
	}

	adequacy := 1.0
	if w.Resources[state.ResourceWater].DaysLeft <= 1 {
		adequacy = 0.9
	}
	if w.Resources[state.ResourceFilters].Current <= 1 && adequacy > 0.85 {
		adequacy = 0.85
	}

	target := condition * adequacy * 100
	target += w.Research.Benefits.QualityBonus + w.Upgrades.TotalBenefits.QualityBoost

	decay := s.cfg.QualityDecay
	score := w.Quality.OverallScore*decay + target*(1-decay)
	w.Quality.OverallScore = clampf(score, s.cfg.QualityFloor, 100)

	// Defect rate trends inversely with the score.
	w.Quality.DefectRate = clampf((100-w.Quality.OverallScore)/5, 0, 20)
}
