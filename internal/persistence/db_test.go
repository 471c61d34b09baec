package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearspring/bottleworks/internal/config"
	"github.com/clearspring/bottleworks/internal/engine"
	"github.com/clearspring/bottleworks/internal/state"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "factory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadWorldMissingKey(t *testing.T) {
	db := openTestDB(t)

	w, ok, err := db.LoadWorld("nope", time.Now())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, w)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	w := state.DefaultWorld(now)
	w.Normalize(now)
	w.Finance.Cash = 12345.5
	w.Production.Lines[0].Speed = 7

	require.NoError(t, db.SaveWorld(DefaultKey, w))

	loaded, ok, err := db.LoadWorld(DefaultKey, now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12345.5, loaded.Finance.Cash)
	assert.Equal(t, 7.0, loaded.Production.Lines[0].Speed)
	assert.Len(t, loaded.Resources, 5, "merge fills anything a snapshot lacks")
}

func TestSaveWorldReplacesPriorSnapshot(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	w := state.DefaultWorld(now)
	w.Normalize(now)
	require.NoError(t, db.SaveWorld(DefaultKey, w))

	w.Finance.Cash = 777
	require.NoError(t, db.SaveWorld(DefaultKey, w))

	loaded, ok, err := db.LoadWorld(DefaultKey, now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 777.0, loaded.Finance.Cash)
}

func TestEventJournal(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveEvents([]engine.Event{
		{Tick: 1, Description: "first", Category: "production"},
		{Tick: 2, Description: "second", Category: "supply"},
		{Tick: 3, Description: "third", Category: "finance"},
	}))
	require.NoError(t, db.SaveEvents(nil)) // empty batch is a no-op

	events, err := db.RecentEvents(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "third", events[0].Description, "newest first")
	assert.Equal(t, "second", events[1].Description)
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetMeta("last_tick")
	assert.Error(t, err, "unset key is an error")

	v0, err := db.GetMeta("schema_version")
	require.NoError(t, err)
	assert.Equal(t, "1", v0)

	require.NoError(t, db.SaveMeta("last_tick", "42"))
	require.NoError(t, db.SaveMeta("last_tick", "43")) // replace

	v, err := db.GetMeta("last_tick")
	require.NoError(t, err)
	assert.Equal(t, "43", v)
}

func TestSaveSimulation(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	w := state.DefaultWorld(now)
	w.Normalize(now)
	sim := engine.NewSimulation(w, config.Defaults())
	sim.SetTick(5)
	require.NoError(t, sim.AdjustPrice("standard", 0.1)) // emits one event

	require.NoError(t, db.SaveSimulation(DefaultKey, sim))

	loaded, ok, err := db.LoadWorld(DefaultKey, now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 2.35, loaded.Market.Products[0].Price, 1e-9)

	tick, err := db.GetMeta("last_tick")
	require.NoError(t, err)
	assert.Equal(t, "5", tick)

	events, err := db.RecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "command", events[0].Category)

	// A second save must not re-journal already-persisted events.
	require.NoError(t, db.SaveSimulation(DefaultKey, sim))
	events, err = db.RecentEvents(10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
