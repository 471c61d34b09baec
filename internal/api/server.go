// Package api provides the HTTP shell around the simulation core.
// GET endpoints are public (read-only observation of the factory).
// POST endpoints require a bearer token and dispatch player commands.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/clearspring/bottleworks/internal/engine"
	"github.com/clearspring/bottleworks/internal/persistence"
)

// Server serves the factory state over HTTP.
type Server struct {
	Sim      *engine.Simulation
	Eng      *engine.Engine
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/production", s.handleProduction)
	mux.HandleFunc("/api/v1/resources", s.handleResources)
	mux.HandleFunc("/api/v1/finance", s.handleFinance)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/command", s.adminOnly(s.handleCommand))
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	world := s.Sim.Snapshot()
	writeJSON(w, map[string]any{
		"name":          "Bottleworks",
		"tick":          s.Sim.CurrentTick(),
		"running":       s.Eng.Running,
		"speed":         s.Eng.Speed,
		"days_passed":   world.Progress.DaysPassed,
		"sim_hours":     world.Progress.SimHours,
		"cash":          world.Finance.Cash,
		"quality":       world.Quality.OverallScore,
		"bottles_total": world.Production.TotalBottlesProduced,
		"decisions":     world.Progress.TotalDecisions,
	})
}

// handleState returns the full world snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Snapshot())
}

func (s *Server) handleProduction(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Snapshot().Production)
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Snapshot().Resources)
}

func (s *Server) handleFinance(w http.ResponseWriter, r *http.Request) {
	world := s.Sim.Snapshot()
	writeJSON(w, map[string]any{
		"finance":     world.Finance,
		"profit_loss": world.ProfitLoss,
		"loans":       world.Loans,
	})
}

// handleEvents returns recent events, most recent last. ?limit= caps the
// count (default 50, max 500); ?journal=1 reads the persisted journal
// instead of the in-memory ring.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 500 {
		limit = 500
	}

	if r.URL.Query().Get("journal") == "1" && s.DB != nil {
		events, err := s.DB.RecentEvents(limit)
		if err != nil {
			http.Error(w, "journal read failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, events)
		return
	}

	writeJSON(w, s.Sim.RecentEvents(limit))
}

// commandRequest is the POST body for /api/v1/command.
type commandRequest struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

// handleCommand dispatches one player command. A rejection is a 200 with
// applied=false and the reason — the simulation is never in an error state.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := s.Sim.Apply(req.Name, req.Params); err != nil {
		slog.Info("command rejected", "command", req.Name, "reason", err)
		writeJSON(w, map[string]any{"applied": false, "reason": err.Error()})
		return
	}

	slog.Info("command applied", "command", req.Name)
	writeJSON(w, map[string]any{"applied": true})
}

// handleSpeed sets the engine speed multiplier (0 pauses).
func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Speed < 0 || req.Speed > 100 {
		http.Error(w, "speed out of range", http.StatusBadRequest)
		return
	}
	s.Eng.Speed = req.Speed
	writeJSON(w, map[string]any{"speed": s.Eng.Speed})
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no FACTORYSIM_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
