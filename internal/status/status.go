// Package status provides a thread-safe status tracker for the sporelyd
// daemon. The daemon loop writes it on every tick; HTTP handlers and MQTT
// system events read point-in-time snapshots.
package status

import (
	"sync"
	"time"

	"github.com/mycolab/sporely/internal/run"
	"github.com/mycolab/sporely/internal/settings"
	"github.com/mycolab/sporely/internal/steril"
	"github.com/mycolab/sporely/internal/timer"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs    int64
	Broker    string
	HTTPAddr  string
	DBPath    string
	BuzzerPin int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released. The slices it
// carries are fresh copies installed by the setters and never mutated.
type Snapshot struct {
	Timer           timer.State
	PresetID        string
	Params          steril.Result
	Items           []run.Item
	LogEntries      []run.LogEntry
	CyclesCompleted int
	MQTTConnected   bool
	Settings        settings.Settings
	StartTime       time.Time
	Now             time.Time
	Config          Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetTimer records the countdown state. Called from the daemon loop on every
// tick.
func (t *Tracker) SetTimer(state timer.State) {
	t.mu.Lock()
	t.snap.Timer = state
	t.mu.Unlock()
}

// SetParams records the computed parameters and the preset they came from.
func (t *Tracker) SetParams(presetID string, params steril.Result) {
	t.mu.Lock()
	t.snap.PresetID = presetID
	t.snap.Params = params
	t.mu.Unlock()
}

// SetItems records the current run's tracked items.
func (t *Tracker) SetItems(items []run.Item) {
	t.mu.Lock()
	t.snap.Items = append([]run.Item(nil), items...)
	t.mu.Unlock()
}

// SetLog records the run log, newest first.
func (t *Tracker) SetLog(entries []run.LogEntry) {
	t.mu.Lock()
	t.snap.LogEntries = append([]run.LogEntry(nil), entries...)
	t.mu.Unlock()
}

// AddCompleted bumps the completed-cycle counter.
func (t *Tracker) AddCompleted() {
	t.mu.Lock()
	t.snap.CyclesCompleted++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetSettings records the active user preferences.
func (t *Tracker) SetSettings(s settings.Settings) {
	t.mu.Lock()
	t.snap.Settings = s
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
