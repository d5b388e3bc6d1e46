package notify

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mycolab/sporely/internal/run"
)

func TestFormatCompletion(t *testing.T) {
	c := run.Completion{
		Timestamp: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		PSI:       17,
		Minutes:   90,
		Items: []run.Item{
			{Kind: run.KindPreparedSpawn, Name: "Rye Quart", Quantity: 2},
			{Kind: run.KindCustom, Name: "Foil pouches", Quantity: 1},
		},
	}

	payload, err := FormatCompletion(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Sporely.Timestamp != "2026-03-01T12:30:00Z" {
		t.Errorf("unexpected timestamp: %s", parsed.Sporely.Timestamp)
	}
	if parsed.Sporely.Event != "STERILIZATION_COMPLETE" {
		t.Errorf("unexpected event: %s", parsed.Sporely.Event)
	}
	if parsed.Sporely.PSI != 17 || parsed.Sporely.Minutes != 90 {
		t.Errorf("unexpected parameters: psi=%d minutes=%d",
			parsed.Sporely.PSI, parsed.Sporely.Minutes)
	}
	if len(parsed.Sporely.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(parsed.Sporely.Items))
	}
	if parsed.Sporely.Items[0].Kind != "prepared_spawn" {
		t.Errorf("unexpected item kind: %s", parsed.Sporely.Items[0].Kind)
	}
	if parsed.Sporely.Items[0].Quantity != 2 {
		t.Errorf("unexpected quantity: %d", parsed.Sporely.Items[0].Quantity)
	}
}

func TestFormatCompletionEmptyItems(t *testing.T) {
	payload, err := FormatCompletion(run.Completion{
		Timestamp: time.Now(),
		PSI:       15,
		Minutes:   30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Sporely.Items == nil {
		t.Error("items should marshal as an empty array, not null")
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed SystemPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.System.Event != "SHUTDOWN" || parsed.System.Reason != "SIGTERM" {
		t.Errorf("unexpected system payload: %+v", parsed.System)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"custom":true}}`)
	payload, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("expected raw payload passthrough, got %s", payload)
	}
}

func TestFakeNotifierRecordsAndFails(t *testing.T) {
	f := NewFakeNotifier()

	if err := f.NotifyComplete(run.Completion{PSI: 15}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Completions) != 1 || len(f.Payloads) != 1 {
		t.Errorf("expected 1 recorded completion, got %d/%d",
			len(f.Completions), len(f.Payloads))
	}

	f.NotifyError = errors.New("broker down")
	if err := f.NotifyComplete(run.Completion{}); err == nil {
		t.Error("expected scripted error")
	}
	if len(f.Completions) != 1 {
		t.Error("failed notify should not be recorded")
	}
}
