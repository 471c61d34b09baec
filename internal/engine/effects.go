// Deferred effects — mutations committed by a command but applied later.
package engine

import (
	"github.com/google/uuid"

	"github.com/clearspring/bottleworks/internal/state"
)

// scheduleEffect queues a mutation to fire once SimHours reaches fireAt.
// The caller holds the simulation lock.
func (s *Simulation) scheduleEffect(w *state.World, e state.Effect) {
	e.ID = uuid.NewString()
	w.Effects = append(w.Effects, &e)
}

// applyDueEffects drains every effect whose fire time has passed, at the
// top of the tick transaction. Each entry fires once; an entry whose
// target no longer exists is dropped silently rather than erroring.
func (s *Simulation) applyDueEffects(w *state.World) {
	kept := w.Effects[:0]
	for _, e := range w.Effects {
		if e.FireAtHour > w.Progress.SimHours {
			kept = append(kept, e)
			continue
		}
		s.applyEffect(w, e)
	}
	w.Effects = kept
}

func (s *Simulation) applyEffect(w *state.World, e *state.Effect) {
	switch e.Kind {
	case state.EffectDelivery:
		res, ok := w.Resources[e.Resource]
		if !ok {
			return
		}
		delivered := e.Amount
		if space := res.Capacity - res.Current; delivered > space {
			delivered = space // never exceed capacity
		}
		if delivered > 0 {
			res.Current += delivered
		}
		res.Ordered -= e.Amount
		if res.Ordered < 0 {
			res.Ordered = 0
		}
		if res.DailyUsage > 0 {
			res.DaysLeft = res.Current / res.DailyUsage
		}
		s.emit("supply", "Delivery arrived: %.0f %s of %s", delivered, res.Unit, res.Name)

	case state.EffectTraining:
		var program *state.TrainingProgram
		for _, p := range w.Employees.Training {
			if p.Name == e.Program {
				program = p
				break
			}
		}
		if program == nil {
			return
		}
		w.Employees.Satisfaction = clampf(w.Employees.Satisfaction+program.MoraleBoost, 0, 100)
		for _, dept := range w.Employees.Departments {
			dept.Efficiency = clampf(dept.Efficiency+program.EfficiencyBoost, s.cfg.DeptEfficiencyFloor, 100)
			dept.Morale = clampf(dept.Morale+program.MoraleBoost, 0, 100)
		}
		if program.QualityBoost > 0 {
			w.Quality.OverallScore = clampf(w.Quality.OverallScore+program.QualityBoost, s.cfg.QualityFloor, 100)
		}
		s.emit("command", "Training completed: %s", program.Name)
	}
}
