package internal

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mycolab/sporely/internal/buzzer"
	"github.com/mycolab/sporely/internal/notify"
	"github.com/mycolab/sporely/internal/run"
	"github.com/mycolab/sporely/internal/steril"
	"github.com/mycolab/sporely/internal/store"
	"github.com/mycolab/sporely/internal/timer"
)

// TestIntegrationFullCycle walks one sterilization cycle end to end on fakes:
// suggest a preset from the item name, compute the parameters, run the
// countdown down, and verify every completion side effect.
func TestIntegrationFullCycle(t *testing.T) {
	fs := store.NewFakeStore()
	fs.Spawn = []store.PreparedSpawn{
		{ID: "spawn-1", Name: "Rye grain quart", SpawnType: "rye", Quantity: 2, Status: store.StatusPrepared},
	}
	sounder := buzzer.NewFakeSounder()
	notifier := notify.NewFakeNotifier()
	log := run.NewLog(run.LogCapacity)
	completer := run.NewCompleter(fs, sounder, notifier, log, zap.NewNop().Sugar())

	spawn, err := fs.ListPreparedSpawn(context.Background())
	if err != nil {
		t.Fatalf("list spawn: %v", err)
	}

	// Suggestion from the record name feeds the calculator preset.
	presetID, ok := steril.SuggestPreset(spawn[0].Name, "")
	if !ok {
		t.Fatalf("no suggestion for %q", spawn[0].Name)
	}
	if presetID != steril.PresetGrainQuart {
		t.Fatalf("suggestion: got %q, want %q", presetID, steril.PresetGrainQuart)
	}

	preset, ok := steril.PresetByID(presetID)
	if !ok {
		t.Fatalf("preset %q not found", presetID)
	}
	// Denver bench: 5280 ft lands in the 3001-6000 bracket.
	params := steril.Compute(preset, 5280, spawn[0].Quantity, 0, false)
	if params.PSI != 17 {
		t.Errorf("psi at 5280 ft: got %d, want 17", params.PSI)
	}
	if params.Minutes != 90 {
		t.Errorf("minutes: got %d, want 90", params.Minutes)
	}
	if params.AltitudeAdjustment != 2 {
		t.Errorf("altitude adjustment: got %d, want 2", params.AltitudeAdjustment)
	}

	items := run.NewRun()
	items.Add(run.Item{
		Kind:            run.KindPreparedSpawn,
		Name:            spawn[0].Name,
		Quantity:        spawn[0].Quantity,
		RefID:           spawn[0].ID,
		SuggestedPreset: presetID,
	})
	items.Add(run.Item{Kind: run.KindCustom, Name: "Foil-wrapped scalpels", Quantity: 1})

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	countdown := timer.New()
	countdown.Start(time.Duration(params.Minutes)*time.Minute, start)

	completions := 0
	var completedAt time.Time
	total := params.Minutes * 60
	for i := 1; i <= total; i++ {
		now := start.Add(time.Duration(i) * time.Second)
		if countdown.Tick(now) == timer.TickCompleted {
			completions++
			completedAt = now
			completer.Complete(context.Background(), items, params, "classic", 0.7, now)
		}
	}
	if completions != 1 {
		t.Fatalf("expected exactly 1 completion, got %d", completions)
	}
	if countdown.Running() {
		t.Error("countdown still running after the final tick")
	}

	// Audio cue fired once.
	if len(sounder.Plays) != 1 {
		t.Fatalf("expected 1 play, got %d", len(sounder.Plays))
	}

	// Only the spawn-backed item reaches the store; the custom item has no
	// record to update.
	if len(fs.Updates) != 1 {
		t.Fatalf("expected 1 spawn update, got %d", len(fs.Updates))
	}
	u := fs.Updates[0]
	if u.ID != "spawn-1" || u.Update.Status != store.StatusAvailable {
		t.Errorf("update: got id=%q status=%q", u.ID, u.Update.Status)
	}
	if u.Update.SterilizationMethod != "PC 17psi 90min" {
		t.Errorf("method: got %q", u.Update.SterilizationMethod)
	}
	if !u.Update.SterilizationDate.Equal(completedAt) {
		t.Errorf("date: got %v, want %v", u.Update.SterilizationDate, completedAt)
	}

	// Notification carries both items and parses as the wire envelope.
	if len(notifier.Payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(notifier.Payloads))
	}
	var parsed notify.Payload
	if err := json.Unmarshal(notifier.Payloads[0], &parsed); err != nil {
		t.Fatalf("payload is invalid JSON: %v", err)
	}
	if parsed.Sporely.Event != "STERILIZATION_COMPLETE" {
		t.Errorf("event: got %q", parsed.Sporely.Event)
	}
	if parsed.Sporely.PSI != 17 || parsed.Sporely.Minutes != 90 {
		t.Errorf("payload params: got %dpsi %dmin", parsed.Sporely.PSI, parsed.Sporely.Minutes)
	}
	if len(parsed.Sporely.Items) != 2 {
		t.Errorf("payload items: got %d, want 2", len(parsed.Sporely.Items))
	}

	// Log recorded, list cleared.
	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if len(entries[0].Items) != 2 || entries[0].PSI != 17 {
		t.Errorf("log entry: items=%d psi=%d", len(entries[0].Items), entries[0].PSI)
	}
	if items.Len() != 0 {
		t.Errorf("run not cleared: %d items remain", items.Len())
	}
}

// TestIntegrationPasteurizationCycle verifies a pasteurization preset never
// produces a pressure recommendation but still drives the countdown and log.
func TestIntegrationPasteurizationCycle(t *testing.T) {
	fs := store.NewFakeStore()
	sounder := buzzer.NewFakeSounder()
	notifier := notify.NewFakeNotifier()
	log := run.NewLog(run.LogCapacity)
	completer := run.NewCompleter(fs, sounder, notifier, log, zap.NewNop().Sugar())

	preset, ok := steril.PresetByID(steril.PresetStrawPasteur)
	if !ok {
		t.Fatal("pasteurization preset missing")
	}
	params := steril.Compute(preset, 5280, 1, 0, false)
	if !params.IsPasteurization {
		t.Fatal("expected a pasteurization result")
	}
	// The rendered guidance never shows a pressure pair for pasteurization,
	// whatever the bracket added.
	if got := params.MethodLabel(); got != "Pasteurized 90min" {
		t.Errorf("method label: got %q", got)
	}
	if got := params.Advice(); !strings.Contains(got, "Do not pressurize") {
		t.Errorf("advice: got %q", got)
	}

	items := run.NewRun()
	items.Add(run.Item{Kind: run.KindCustom, Name: "Straw bag", Quantity: 1})

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	countdown := timer.New()
	countdown.Start(time.Duration(params.Minutes)*time.Minute, start)

	completions := 0
	for i := 1; i <= params.Minutes*60; i++ {
		now := start.Add(time.Duration(i) * time.Second)
		if countdown.Tick(now) == timer.TickCompleted {
			completions++
			completer.Complete(context.Background(), items, params, "none", 0.7, now)
		}
	}
	if completions != 1 {
		t.Fatalf("expected 1 completion, got %d", completions)
	}

	// Sound "none" suppresses the cue; no spawn rows were involved.
	if len(sounder.Plays) != 0 {
		t.Errorf("expected no plays with sound disabled, got %d", len(sounder.Plays))
	}
	if len(fs.Updates) != 0 {
		t.Errorf("expected no spawn updates, got %d", len(fs.Updates))
	}
	if len(notifier.Completions) != 1 {
		t.Errorf("expected 1 notification, got %d", len(notifier.Completions))
	}
	if got := log.Entries(); len(got) != 1 || got[0].Minutes != 90 {
		t.Errorf("log: %+v", got)
	}
}
