// Research pass — project progress and one-shot completion bonuses.
package engine

import (
	"github.com/clearspring/bottleworks/internal/state"
)

// stepResearch advances active projects proportionally to elapsed time.
// A project reaching 100 moves from current to completed exactly once and
// applies its category's permanent bonus; a completed project never
// re-progresses or re-applies.
func (s *Simulation) stepResearch(w *state.World, hours float64) {
	if len(w.Research.Current) == 0 {
		return
	}

	kept := w.Research.Current[:0]
	for _, proj := range w.Research.Current {
		if proj.DurationDays > 0 {
			proj.Progress += hours / (proj.DurationDays * 24) * 100
		} else {
			proj.Progress = 100
		}
		if proj.Progress < 100 {
			kept = append(kept, proj)
			continue
		}

		proj.Progress = 100
		w.Research.Completed = append(w.Research.Completed, proj)
		s.applyResearchBonus(w, proj.Category)
		s.emit("research", "Research complete: %s", proj.Name)
	}
	w.Research.Current = kept
}

// applyResearchBonus grants the permanent technology bonus for a category.
func (s *Simulation) applyResearchBonus(w *state.World, category string) {
	b := &w.Research.Benefits
	switch category {
	case "quality":
		b.QualityBonus += 5
	case "efficiency":
		b.EfficiencyBonus += 10
	case "sustainability":
		b.CostReduction += 5
	case "marketing":
		b.MarketingBonus += 5
	}
}
