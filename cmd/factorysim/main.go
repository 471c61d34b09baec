// Command factorysim runs the Bottleworks factory simulation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/clearspring/bottleworks/internal/api"
	"github.com/clearspring/bottleworks/internal/config"
	"github.com/clearspring/bottleworks/internal/engine"
	"github.com/clearspring/bottleworks/internal/persistence"
	"github.com/clearspring/bottleworks/internal/state"
)

func main() {
	var (
		dbPath  = flag.String("db", "data/factory.db", "path to the SQLite database")
		apiPort = flag.Int("port", 8080, "HTTP API port")
		speed   = flag.Float64("speed", 1.0, "simulation speed multiplier (0 = paused)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Bottleworks — bottling factory simulation")

	cfg := config.Defaults()
	now := time.Now()

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── Load or Initialize World ──────────────────────────────────────
	world, found, err := db.LoadWorld(persistence.DefaultKey, now)
	if err != nil {
		slog.Error("failed to load world", "error", err)
		os.Exit(1)
	}

	var startTick uint64
	if found {
		if tickStr, err := db.GetMeta("last_tick"); err == nil {
			if t, err := strconv.ParseUint(tickStr, 10, 64); err == nil {
				startTick = t
			}
		}
		slog.Info("factory state restored",
			"tick", startTick,
			"sim_hours", fmt.Sprintf("%.1f", world.Progress.SimHours),
			"cash", humanize.CommafWithDigits(world.Finance.Cash, 0),
		)
	} else {
		slog.Info("no saved state found, starting a new factory")
		world = state.DefaultWorld(now)
	}

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.NewSimulation(world, cfg)
	sim.SetTick(startTick)

	// Save on fresh start only (restored worlds are already saved).
	if !found {
		if err := db.SaveSimulation(persistence.DefaultKey, sim); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	eng := engine.NewEngine(cfg.TickInterval)
	eng.Tick = startTick
	eng.Speed = *speed
	eng.OnTick = sim.Tick
	eng.SaveEvery = uint64(cfg.SaveInterval / cfg.TickInterval)
	if eng.SaveEvery == 0 {
		eng.SaveEvery = 1
	}
	eng.OnSave = func(tick uint64) {
		if err := db.SaveSimulation(persistence.DefaultKey, sim); err != nil {
			slog.Error("autosave failed", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("FACTORYSIM_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("FACTORYSIM_ADMIN_KEY not set — command endpoints will be disabled")
	}

	apiServer := &api.Server{
		Sim:      sim,
		Eng:      eng,
		DB:       db,
		Port:     *apiPort,
		AdminKey: adminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nBottleworks is running: %d lines, cash %s, quality %.0f.\n",
		len(world.Production.Lines),
		engine.FormatCash(world.Finance.Cash),
		world.Quality.OverallScore,
	)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *apiPort)
	if startTick > 0 {
		fmt.Printf("Resuming from tick %d\n", startTick)
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveSimulation(persistence.DefaultKey, sim); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Println("Simulation stopped. Factory state saved.")
}
