package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngineStepFiresCallbacks(t *testing.T) {
	e := NewEngine(time.Second)

	var ticks, saves []uint64
	e.OnTick = func(tick uint64) { ticks = append(ticks, tick) }
	e.OnSave = func(tick uint64) { saves = append(saves, tick) }
	e.SaveEvery = 2

	for i := 0; i < 5; i++ {
		e.step()
	}

	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, ticks)
	assert.Equal(t, []uint64{2, 4}, saves, "save fires every SaveEvery ticks")
	assert.Equal(t, uint64(5), e.Tick)
}

func TestEngineStepWithoutCallbacks(t *testing.T) {
	e := NewEngine(time.Second)
	e.step() // nil callbacks must not panic
	assert.Equal(t, uint64(1), e.Tick)
}

func TestEngineRunStops(t *testing.T) {
	e := NewEngine(time.Millisecond)
	e.OnTick = func(tick uint64) {
		if tick >= 3 {
			e.Stop()
		}
	}

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
	assert.False(t, e.Running)
	assert.GreaterOrEqual(t, e.Tick, uint64(3))
}

func TestSimulationEventRingBounded(t *testing.T) {
	s := newTestSim(t)
	for i := 0; i < maxEvents+50; i++ {
		s.emit("test", "event %d", i)
	}

	assert.Len(t, s.events, maxEvents)
	recent := s.RecentEvents(1)
	assert.Contains(t, recent[0].Description, "1049", "newest event survives trimming")
}

func TestRecentEventsOrder(t *testing.T) {
	s := newTestSim(t)
	s.emit("test", "a")
	s.emit("test", "b")
	s.emit("test", "c")

	recent := s.RecentEvents(2)
	assert.Equal(t, "b", recent[0].Description)
	assert.Equal(t, "c", recent[1].Description)
}

func TestTakeUnsavedDrainsOnlyOnce(t *testing.T) {
	s := newTestSim(t)
	s.emit("test", "a")
	s.emit("test", "b")

	first := s.TakeUnsaved()
	assert.Len(t, first, 2)
	assert.Empty(t, s.TakeUnsaved())

	// The read ring is unaffected by the drain.
	assert.Len(t, s.RecentEvents(10), 2)
}
