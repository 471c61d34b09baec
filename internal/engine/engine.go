// Package engine provides the tick-based simulation core: the fixed-period
// scheduler, the per-tick passes that advance the factory, the command
// processor for player actions, and the deferred-effect queue.
package engine

import (
	"log/slog"
	"time"
)

// Engine drives the simulation forward on a fixed wall-clock period.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval
	Running  bool

	// Callbacks — populated during setup.
	OnTick func(tick uint64) // Every tick
	OnSave func(tick uint64) // Every save interval

	SaveEvery uint64 // ticks between OnSave calls (0 = never)
}

// NewEngine creates a simulation engine with the given tick interval.
func NewEngine(interval time.Duration) *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: interval,
	}
}

// Run starts the simulation loop. Blocks until Stop() is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "tick", e.Tick, "interval", e.Interval, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.step()

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the simulation loop.
func (e *Engine) Stop() {
	e.Running = false
}

// step advances the simulation by one tick.
func (e *Engine) step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}

	if e.SaveEvery > 0 && e.Tick%e.SaveEvery == 0 && e.OnSave != nil {
		e.OnSave(e.Tick)
	}
}
