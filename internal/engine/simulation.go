// Simulation owns the factory world state and advances it one tick at a time.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/clearspring/bottleworks/internal/config"
	"github.com/clearspring/bottleworks/internal/state"
)

// Event is a notable occurrence in the factory.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "production", "supply", "finance", "research", "milestone", "command"
}

// maxEvents bounds the in-memory event ring.
const maxEvents = 1000

// Simulation holds the complete world state and applies ticks and commands
// against it. All access is serialized through one mutex: a tick and a
// command are each one atomic transaction over the whole aggregate, and no
// reader ever observes a half-updated world.
type Simulation struct {
	mu      sync.Mutex
	world   *state.World
	cfg     config.Tunables
	events  []Event // bounded ring for readers
	unsaved []Event // appended since the last persistence drain

	tick     uint64
	demand   opensimplex.Noise
	bankrupt bool // latched while cash is below the credit limit

	// now is injectable for tests; daysPassed is the one field derived
	// from wall-clock time rather than accumulated deltas.
	now func() time.Time
}

// NewSimulation wraps a normalized world with the given tunables.
func NewSimulation(w *state.World, cfg config.Tunables) *Simulation {
	return &Simulation{
		world:  w,
		cfg:    cfg,
		demand: opensimplex.NewNormalized(w.Progress.StartTime.Unix()),
		now:    time.Now,
	}
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// SetTick restores the tick counter from a saved world.
func (s *Simulation) SetTick(t uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = t
}

// Snapshot returns a deep copy of the world, safe to serialize or render
// without holding the simulation lock.
func (s *Simulation) Snapshot() *state.World {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Clone()
}

// RecentEvents returns up to n of the most recent events, newest last.
func (s *Simulation) RecentEvents(n int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > len(s.events) {
		n = len(s.events)
	}
	out := make([]Event, n)
	copy(out, s.events[len(s.events)-n:])
	return out
}

// TakeUnsaved returns the events appended since the previous call and
// marks them persisted. Used by the host to journal events alongside
// snapshots; the read ring is unaffected.
func (s *Simulation) TakeUnsaved() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.unsaved
	s.unsaved = nil
	return out
}

// emit appends an event to the ring, trimming the oldest past the cap.
func (s *Simulation) emit(category, format string, args ...any) {
	e := Event{
		Tick:        s.tick,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	}
	s.events = append(s.events, e)
	s.unsaved = append(s.unsaved, e)
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
}

// Tick advances the world by one time slice. The passes run in dependency
// order; a world missing required substructures makes the tick a no-op.
func (s *Simulation) Tick(tick uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick = tick
	w := s.world
	if !w.Valid() {
		return
	}

	hours := s.cfg.SimHoursPerTick
	w.Progress.SimHours += hours

	s.applyDueEffects(w)

	produced, opCost := s.stepProduction(w, hours)
	s.stepResources(w, produced)
	s.stepFinance(w, produced, opCost, hours)
	s.stepResearch(w, hours)
	s.stepWorkforce(w)
	s.stepQuality(w, produced)
	s.stepDemand(w)
	s.stepProgress(w)

	w.SanitizeFinance()
}

// stepProgress recomputes wall-clock days, advances challenges, and latches
// milestones. Runs last so it sees the tick's final figures.
func (s *Simulation) stepProgress(w *state.World) {
	w.Progress.DaysPassed = s.now().Sub(w.Progress.StartTime).Hours() / 24

	// Milestones latch true exactly once.
	if !w.Progress.Milestones[state.MilestoneFirstProfit] && w.Finance.NetProfit > 0 {
		w.Progress.Milestones[state.MilestoneFirstProfit] = true
		s.emit("milestone", "First profitable day: net %s/day", humanize.CommafWithDigits(w.Finance.NetProfit, 0))
	}
	if !w.Progress.Milestones[state.MilestoneFirstUpgrade] && len(w.Upgrades.Purchased) > 0 {
		w.Progress.Milestones[state.MilestoneFirstUpgrade] = true
		s.emit("milestone", "First upgrade installed: %s", w.Upgrades.Purchased[0].Name)
	}
	if !w.Progress.Milestones[state.MilestoneQualityImprovement] && w.Quality.OverallScore >= s.cfg.QualityComfortScore {
		w.Progress.Milestones[state.MilestoneQualityImprovement] = true
		s.emit("milestone", "Quality score reached %.0f", w.Quality.OverallScore)
	}
	if !w.Progress.Milestones[state.MilestoneDebtFree] && w.Loans.TotalDebt <= 0 {
		w.Progress.Milestones[state.MilestoneDebtFree] = true
		s.emit("milestone", "All debt repaid")
	}

	// Bankruptcy guard: one event per crossing, no other effect.
	if w.Finance.Cash < -w.Finance.CreditLimit {
		if !s.bankrupt {
			s.bankrupt = true
			s.emit("finance", "Credit limit exceeded: cash %s against limit %s",
				humanize.CommafWithDigits(w.Finance.Cash, 0),
				humanize.CommafWithDigits(w.Finance.CreditLimit, 0))
		}
	} else {
		s.bankrupt = false
	}

	// Challenges.
	s.stepChallenges(w)

	// Daily report on sim-day boundaries.
	day := int(w.Progress.SimHours / 24)
	if day > w.Progress.LastDayProcessed {
		s.logDailyReport(w, day)
		w.Progress.DecisionsToday = 0
		w.Progress.LastDayProcessed = day
		w.Progress.CashAtDayMark = w.Finance.Cash
	}
}

// stepChallenges advances active challenge progress.
func (s *Simulation) stepChallenges(w *state.World) {
	day := int(w.Progress.SimHours / 24)
	dayCrossed := day > w.Progress.LastDayProcessed

	for _, ch := range w.Progress.Challenges {
		if !ch.Active {
			continue
		}
		switch ch.ID {
		case "cash_crisis":
			if dayCrossed {
				if w.Finance.Cash > w.Progress.CashAtDayMark {
					ch.Progress++
				} else {
					ch.Progress = 0
				}
			}
		case "quality_boost":
			ch.Progress = w.Quality.OverallScore
		}
		if ch.Progress >= ch.Target {
			ch.Active = false
			s.emit("milestone", "Challenge complete: %s", ch.Title)
		}
	}
}

func (s *Simulation) logDailyReport(w *state.World, day int) {
	slog.Info("daily report",
		"day", day,
		"tick", s.tick,
		"cash", humanize.CommafWithDigits(w.Finance.Cash, 0),
		"net_profit", humanize.CommafWithDigits(w.Finance.NetProfit, 0),
		"bottles_total", humanize.CommafWithDigits(w.Production.TotalBottlesProduced, 0),
		"quality", fmt.Sprintf("%.1f", w.Quality.OverallScore),
		"satisfaction", fmt.Sprintf("%.1f", w.Employees.Satisfaction),
		"decisions", w.Progress.DecisionsToday,
	)
}
