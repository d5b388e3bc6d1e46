// Package web serves the sporelyd dashboard and JSON API.
package web

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mycolab/sporely/internal/run"
	"github.com/mycolab/sporely/internal/settings"
	"github.com/mycolab/sporely/internal/status"
	"github.com/mycolab/sporely/internal/steril"
	"github.com/mycolab/sporely/internal/store"
)

// Controller is the daemon surface the HTTP handlers drive. The daemon loop
// serializes these calls, so handlers never touch shared state directly.
type Controller interface {
	// Compute recalculates parameters and makes them the active ones.
	Compute(presetID string, altitudeFeet, quantity, customMinutes int, useCustom bool) (steril.Result, error)

	// AddItem adds an item to the current run, returning it with its id and
	// advisory preset filled in.
	AddItem(item run.Item) (run.Item, error)

	// RemoveItem removes an item by id. Removing a missing id is not an error.
	RemoveItem(id string) error

	StartTimer(minutes int) error
	PauseTimer() error
	ResumeTimer() error
	ResetTimer() error

	ListPreparedSpawn(ctx context.Context) ([]store.PreparedSpawn, error)
	ListInventory(ctx context.Context) ([]store.InventoryItem, error)

	Settings() settings.Settings
	UpdateSettings(p settings.Partial) (settings.Settings, error)
}

// Server serves the dashboard and API over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
	ctl        Controller
}

// New creates a Server that reads state from the tracker and issues commands
// through the controller.
func New(addr string, tracker *status.Tracker, ctl Controller) *Server {
	s := &Server{tracker: tracker, ctl: ctl}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)
	mux.HandleFunc("/api/presets", s.handlePresets)
	mux.HandleFunc("/api/compute", s.handleCompute)
	mux.HandleFunc("/api/items", s.handleItems)
	mux.HandleFunc("/api/items/", s.handleItemByID)
	mux.HandleFunc("/api/timer/", s.handleTimer)
	mux.HandleFunc("/api/spawn", s.handleSpawn)
	mux.HandleFunc("/api/inventory", s.handleInventory)
	mux.HandleFunc("/api/settings", s.handleSettings)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, snap)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}

func (s *Server) handleTimer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	action := strings.TrimPrefix(r.URL.Path, "/api/timer/")
	switch action {
	case "start":
		var req startTimerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Minutes <= 0 {
			writeError(w, http.StatusBadRequest, "minutes must be positive")
			return
		}
		if err := s.ctl.StartTimer(req.Minutes); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	case "pause":
		if err := s.ctl.PauseTimer(); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	case "resume":
		if err := s.ctl.ResumeTimer(); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	case "reset":
		if err := s.ctl.ResetTimer(); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	default:
		http.NotFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, timerResponse(s.tracker.Snapshot()))
}
