package status

import (
	"encoding/json"
	"time"

	"github.com/mycolab/sporely/internal/run"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event           string         `json:"event,omitempty"`
	Reason          string         `json:"reason,omitempty"`
	Timer           TimerJSON      `json:"timer"`
	Params          ParamsJSON     `json:"params"`
	Items           []ItemJSON     `json:"items"`
	Log             []LogEntryJSON `json:"log"`
	CyclesCompleted int            `json:"cycles_completed"`
	UptimeSeconds   int64          `json:"uptime_seconds"`
	StartTime       string         `json:"start_time"`
	Timestamp       string         `json:"timestamp"`
	MQTT            MQTTStatus     `json:"mqtt"`
	Settings        SettingsJSON   `json:"settings"`
	Config          ConfigJSON     `json:"config"`
}

// TimerJSON is the JSON representation of the countdown.
type TimerJSON struct {
	Running          bool   `json:"running"`
	Paused           bool   `json:"paused"`
	TotalSeconds     int    `json:"total_seconds"`
	RemainingSeconds int    `json:"remaining_seconds"`
	StartTime        string `json:"start_time,omitempty"`
}

// ParamsJSON is the JSON representation of the computed parameters.
type ParamsJSON struct {
	PresetID           string `json:"preset_id,omitempty"`
	PSI                int    `json:"psi"`
	Minutes            int    `json:"minutes"`
	AltitudeAdjustment int    `json:"altitude_adjustment"`
	Pasteurization     bool   `json:"pasteurization"`
	Advice             string `json:"advice"`
}

// ItemJSON is the JSON representation of a tracked item.
type ItemJSON struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	RefID           string `json:"ref_id,omitempty"`
	SuggestedPreset string `json:"suggested_preset,omitempty"`
}

// LogEntryJSON is the JSON representation of a completed cycle.
type LogEntryJSON struct {
	Date    string     `json:"date"`
	PSI     int        `json:"psi"`
	Minutes int        `json:"minutes"`
	Items   []ItemJSON `json:"items"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// SettingsJSON is the JSON representation of user preferences.
type SettingsJSON struct {
	TimerSound   string  `json:"timer_sound"`
	TimerVolume  float64 `json:"timer_volume"`
	AltitudeFeet int     `json:"altitude_feet"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs    int64  `json:"tick_ms"`
	Broker    string `json:"broker"`
	HTTPAddr  string `json:"http_addr"`
	DBPath    string `json:"db_path"`
	BuzzerPin int    `json:"buzzer_pin"`
}

func itemsJSON(items []run.Item) []ItemJSON {
	out := make([]ItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, ItemJSON{
			ID:              it.ID,
			Kind:            string(it.Kind),
			Name:            it.Name,
			Quantity:        it.Quantity,
			RefID:           it.RefID,
			SuggestedPreset: it.SuggestedPreset,
		})
	}
	return out
}

func buildInner(snap Snapshot) StatusInner {
	timerJSON := TimerJSON{
		Running:          snap.Timer.Running,
		Paused:           snap.Timer.Paused,
		TotalSeconds:     snap.Timer.TotalSeconds,
		RemainingSeconds: snap.Timer.RemainingSeconds,
	}
	if !snap.Timer.StartTime.IsZero() {
		timerJSON.StartTime = snap.Timer.StartTime.UTC().Format(time.RFC3339)
	}

	logJSON := make([]LogEntryJSON, 0, len(snap.LogEntries))
	for _, e := range snap.LogEntries {
		logJSON = append(logJSON, LogEntryJSON{
			Date:    e.Date.UTC().Format(time.RFC3339),
			PSI:     e.PSI,
			Minutes: e.Minutes,
			Items:   itemsJSON(e.Items),
		})
	}

	return StatusInner{
		Timer: timerJSON,
		Params: ParamsJSON{
			PresetID:           snap.PresetID,
			PSI:                snap.Params.PSI,
			Minutes:            snap.Params.Minutes,
			AltitudeAdjustment: snap.Params.AltitudeAdjustment,
			Pasteurization:     snap.Params.IsPasteurization,
			Advice:             snap.Params.Advice(),
		},
		Items:           itemsJSON(snap.Items),
		Log:             logJSON,
		CyclesCompleted: snap.CyclesCompleted,
		UptimeSeconds:   int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:       snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:       snap.Now.UTC().Format(time.RFC3339),
		MQTT:            MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Settings: SettingsJSON{
			TimerSound:   snap.Settings.TimerSound,
			TimerVolume:  snap.Settings.TimerVolume,
			AltitudeFeet: snap.Settings.AltitudeFeet,
		},
		Config: ConfigJSON{
			TickMs:    snap.Config.TickMs,
			Broker:    snap.Config.Broker,
			HTTPAddr:  snap.Config.HTTPAddr,
			DBPath:    snap.Config.DBPath,
			BuzzerPin: snap.Config.BuzzerPin,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
