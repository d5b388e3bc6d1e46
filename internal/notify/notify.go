// Package notify delivers timer notifications over MQTT with an abstraction
// for testing. A home-automation bridge subscribed to the topics turns them
// into phone/desktop notifications; delivery is best-effort throughout.
package notify

import (
	"encoding/json"
	"time"

	"github.com/mycolab/sporely/internal/run"
)

// Topic is the MQTT topic for timer completion events.
const Topic = "myco/sporely/timer/events"

// TopicSystem is the MQTT topic for daemon lifecycle events.
const TopicSystem = "myco/sporely/system"

// Notifier publishes notifications.
type Notifier interface {
	// NotifyComplete announces a finished sterilization cycle.
	// Returns error if publishing fails (must not crash the process).
	NotifyComplete(c run.Completion) error

	// PublishSystem sends a daemon lifecycle event.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a daemon lifecycle event.
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g. "STARTUP", "SHUTDOWN", "TIMER_STARTED"
	Reason     string // e.g. "SIGTERM" (shutdown only)
	RawPayload []byte // Pre-formatted JSON; if set it is published as-is
	Retained   bool
}

// Payload is the MQTT message envelope for completion events.
type Payload struct {
	Sporely CompletionPayload `json:"sporely"`
}

// CompletionPayload carries the finished cycle details.
type CompletionPayload struct {
	Timestamp string        `json:"timestamp"`
	Event     string        `json:"event"`
	PSI       int           `json:"psi"`
	Minutes   int           `json:"minutes"`
	Items     []ItemPayload `json:"items"`
}

// ItemPayload is one tracked item in a completion event.
type ItemPayload struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// FormatCompletion creates the JSON payload for a completion event.
func FormatCompletion(c run.Completion) ([]byte, error) {
	items := make([]ItemPayload, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, ItemPayload{
			Kind:     string(it.Kind),
			Name:     it.Name,
			Quantity: it.Quantity,
		})
	}
	payload := Payload{
		Sporely: CompletionPayload{
			Timestamp: c.Timestamp.UTC().Format(time.RFC3339),
			Event:     "STERILIZATION_COMPLETE",
			PSI:       c.PSI,
			Minutes:   c.Minutes,
			Items:     items,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the envelope for simple lifecycle events that don't carry
// a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status
// snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}
	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
