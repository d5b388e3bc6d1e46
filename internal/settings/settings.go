// Package settings manages user preferences for sporelyd. Preferences are
// an explicit object passed to the components that need them, never ambient
// global state, and persist as a small YAML file next to the database.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable preferences.
type Settings struct {
	// TimerSound is the completion cue id ("none" disables it).
	TimerSound string `yaml:"timer_sound"`
	// TimerVolume is the cue volume in [0, 1].
	TimerVolume float64 `yaml:"timer_volume"`
	// AltitudeFeet is the lab's altitude, pre-filled into the calculator.
	AltitudeFeet int `yaml:"altitude_feet"`
}

// Default returns the out-of-the-box preferences.
func Default() Settings {
	return Settings{
		TimerSound:   "classic",
		TimerVolume:  0.7,
		AltitudeFeet: 0,
	}
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.TimerSound == "" {
		return fmt.Errorf("timer_sound is required (use \"none\" to disable)")
	}
	if s.TimerVolume < 0 || s.TimerVolume > 1 {
		return fmt.Errorf("timer_volume must be between 0 and 1")
	}
	if s.AltitudeFeet < 0 {
		return fmt.Errorf("altitude_feet must not be negative")
	}
	return nil
}

// Partial holds the fields of an update request; nil fields are left as-is.
type Partial struct {
	TimerSound   *string
	TimerVolume  *float64
	AltitudeFeet *int
}

// Manager loads, serves and persists settings. Safe for concurrent reads;
// updates are serialized internally.
type Manager struct {
	path string

	mu  sync.RWMutex
	cur Settings
}

// Load reads the settings file at path, falling back to defaults when the
// file does not exist yet. A malformed file is an error; silently resetting
// preferences would be worse than failing startup.
func Load(path string) (*Manager, error) {
	m := &Manager{path: path, cur: Default()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings file: %w", err)
	}

	m.cur = s
	return m, nil
}

// Current returns a copy of the active settings.
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Update applies the non-nil fields of p, clamps the volume into [0, 1],
// persists the result and returns it.
func (m *Manager) Update(p Partial) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.cur
	if p.TimerSound != nil {
		next.TimerSound = *p.TimerSound
	}
	if p.TimerVolume != nil {
		v := *p.TimerVolume
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		next.TimerVolume = v
	}
	if p.AltitudeFeet != nil {
		feet := *p.AltitudeFeet
		if feet < 0 {
			feet = 0
		}
		next.AltitudeFeet = feet
	}

	if err := next.Validate(); err != nil {
		return m.cur, err
	}
	if err := m.save(next); err != nil {
		return m.cur, err
	}

	m.cur = next
	return next, nil
}

func (m *Manager) save(s Settings) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// Path returns the settings file path.
func (m *Manager) Path() string {
	return m.path
}
