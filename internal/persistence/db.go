// Package persistence provides SQLite-based factory state storage: one
// JSON world snapshot per named key, an append-only event journal, and
// key-value metadata. Loading deep-merges the snapshot over the default
// world, so a partial or stale snapshot still yields a complete state.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/clearspring/bottleworks/internal/engine"
	"github.com/clearspring/bottleworks/internal/state"
)

// DefaultKey names the snapshot slot used by the host.
const DefaultKey = "world"

// DB wraps a SQLite connection for factory state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);

	INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', '1');
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveWorld writes the world snapshot under the given key (full replace).
func (db *DB) SaveWorld(key string, w *state.World) error {
	data, err := w.Snapshot()
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO snapshots (key, state, saved_at) VALUES (?, ?, ?)",
		key, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadWorld reads the snapshot under key and merges it over the default
// world. Returns ok=false when no snapshot exists.
func (db *DB) LoadWorld(key string, now time.Time) (w *state.World, ok bool, err error) {
	var blob string
	err = db.conn.Get(&blob, "SELECT state FROM snapshots WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}

	w, err = state.FromSnapshot([]byte(blob), now)
	if err != nil {
		return nil, false, err
	}
	return w, true, nil
}

// SaveEvents appends events to the journal.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (tick, description, category) VALUES (?, ?, ?)",
			e.Tick, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N journaled events, newest first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// SaveMeta stores a key-value pair in factory metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}

// SaveSimulation performs a full save: snapshot, new events, last tick.
func (db *DB) SaveSimulation(key string, sim *engine.Simulation) error {
	if err := db.SaveWorld(key, sim.Snapshot()); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	if err := db.SaveEvents(sim.TakeUnsaved()); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := db.SaveMeta("last_tick", fmt.Sprintf("%d", sim.CurrentTick())); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Debug("factory state saved", "key", key, "tick", sim.CurrentTick())
	return nil
}
