package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mycolab/sporely/internal/notify"
	"github.com/mycolab/sporely/internal/run"
	"github.com/mycolab/sporely/internal/settings"
	"github.com/mycolab/sporely/internal/status"
	"github.com/mycolab/sporely/internal/steril"
	"github.com/mycolab/sporely/internal/store"
	"github.com/mycolab/sporely/internal/timer"
)

// daemon owns all mutable state. Only the run loop goroutine touches it, so
// the calculator, countdown and item list need no locks of their own.
type daemon struct {
	countdown *timer.Countdown
	items     *run.Run
	log       *run.Log
	completer *run.Completer
	store     store.Store
	notifier  notify.Notifier
	settings  *settings.Manager
	tracker   *status.Tracker
	logger    *zap.SugaredLogger

	presetID string
	params   steril.Result
}

// command carries one mutation or query into the run loop. Serializing
// everything through the loop keeps the single-threaded semantics without
// mutexes around domain state.
type command struct {
	action string // "compute", "add_item", "remove_item", "start", "pause", "resume", "reset", "list_spawn", "list_inventory"

	compute computeArgs
	item    run.Item
	id      string
	minutes int

	reply chan commandResult
}

type computeArgs struct {
	presetID      string
	altitudeFeet  int
	quantity      int
	customMinutes int
	useCustom     bool
}

type commandResult struct {
	params    steril.Result
	item      run.Item
	spawn     []store.PreparedSpawn
	inventory []store.InventoryItem
	err       error
}

// runLoop is the daemon's event loop: one-second countdown ticks, commands
// from the HTTP layer, and shutdown signals. Time and channels are injected
// so tests can drive the loop deterministically.
func runLoop(d *daemon, now func() time.Time, tick <-chan time.Time, cmds <-chan command, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			d.logger.Infow("shutting down", "signal", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			snap := d.tracker.Snapshot()
			event := notify.SystemEvent{
				Timestamp:  now(),
				Event:      "SHUTDOWN",
				Reason:     signalName,
				Retained:   true,
				RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", signalName),
			}
			if err := d.notifier.PublishSystem(event); err != nil {
				d.logger.Warnw("failed to publish shutdown event", "error", err)
			}
			return nil

		case <-tick:
			d.handleTick(now())

		case cmd := <-cmds:
			cmd.reply <- d.handleCommand(cmd, now())
		}
	}
}

func (d *daemon) handleTick(now time.Time) {
	switch d.countdown.Tick(now) {
	case timer.TickCompleted:
		prefs := d.settings.Current()
		// No timeout on the store updates: a hung database call delays the
		// loop but the log entry and list clear still happen inside Complete.
		d.completer.Complete(context.Background(), d.items, d.params,
			prefs.TimerSound, prefs.TimerVolume, now)
		d.tracker.AddCompleted()
		d.tracker.SetItems(d.items.Items())
		d.tracker.SetLog(d.log.Entries())
	case timer.TickContinuing, timer.TickIdle:
	}

	d.tracker.SetTimer(d.countdown.Snapshot())
	if cs, ok := d.notifier.(notify.ConnectionStatus); ok {
		d.tracker.SetMQTTConnected(cs.IsConnected())
	}
}

func (d *daemon) handleCommand(cmd command, now time.Time) commandResult {
	switch cmd.action {
	case "compute":
		args := cmd.compute
		preset, ok := steril.PresetByID(args.presetID)
		if !ok {
			return commandResult{err: fmt.Errorf("unknown preset %q", args.presetID)}
		}
		d.presetID = args.presetID
		d.params = steril.Compute(preset, args.altitudeFeet, args.quantity,
			args.customMinutes, args.useCustom)
		d.tracker.SetParams(d.presetID, d.params)
		return commandResult{params: d.params}

	case "add_item":
		item := d.items.Add(cmd.item)
		d.tracker.SetItems(d.items.Items())
		return commandResult{item: item}

	case "remove_item":
		d.items.Remove(cmd.id)
		d.tracker.SetItems(d.items.Items())
		return commandResult{}

	case "start":
		d.countdown.Start(time.Duration(cmd.minutes)*time.Minute, now)
		d.tracker.SetTimer(d.countdown.Snapshot())
		// Fire-and-forget: a lost start event costs nothing but a missing
		// line in the broker history.
		if err := d.notifier.PublishSystem(notify.SystemEvent{
			Timestamp: now,
			Event:     "TIMER_STARTED",
		}); err != nil {
			d.logger.Debugw("timer start publish failed", "error", err)
		}
		d.logger.Infow("timer started", "minutes", cmd.minutes,
			"psi", d.params.PSI, "items", d.items.Len())
		return commandResult{}

	case "pause":
		d.countdown.Pause()
		d.tracker.SetTimer(d.countdown.Snapshot())
		return commandResult{}

	case "resume":
		d.countdown.Resume()
		d.tracker.SetTimer(d.countdown.Snapshot())
		return commandResult{}

	case "reset":
		d.countdown.Reset()
		d.tracker.SetTimer(d.countdown.Snapshot())
		d.logger.Infow("timer reset")
		return commandResult{}

	case "list_spawn":
		spawn, err := d.store.ListPreparedSpawn(context.Background())
		return commandResult{spawn: spawn, err: err}

	case "list_inventory":
		inventory, err := d.store.ListInventory(context.Background())
		return commandResult{inventory: inventory, err: err}

	default:
		return commandResult{err: fmt.Errorf("unknown command %q", cmd.action)}
	}
}

// loopController adapts the web.Controller interface onto the command
// channel. Settings are served directly: the Manager has its own lock and
// the loop only ever reads a point-in-time copy.
type loopController struct {
	cmds     chan<- command
	settings *settings.Manager
	tracker  *status.Tracker
}

const commandTimeout = 2 * time.Second

func (c *loopController) send(cmd command) (commandResult, error) {
	cmd.reply = make(chan commandResult, 1)

	select {
	case c.cmds <- cmd:
	case <-time.After(commandTimeout):
		return commandResult{}, errors.New("daemon loop is busy")
	}

	select {
	case res := <-cmd.reply:
		return res, res.err
	case <-time.After(commandTimeout):
		return commandResult{}, errors.New("daemon loop timed out")
	}
}

func (c *loopController) Compute(presetID string, altitudeFeet, quantity, customMinutes int, useCustom bool) (steril.Result, error) {
	res, err := c.send(command{action: "compute", compute: computeArgs{
		presetID:      presetID,
		altitudeFeet:  altitudeFeet,
		quantity:      quantity,
		customMinutes: customMinutes,
		useCustom:     useCustom,
	}})
	return res.params, err
}

func (c *loopController) AddItem(item run.Item) (run.Item, error) {
	res, err := c.send(command{action: "add_item", item: item})
	return res.item, err
}

func (c *loopController) RemoveItem(id string) error {
	_, err := c.send(command{action: "remove_item", id: id})
	return err
}

func (c *loopController) StartTimer(minutes int) error {
	_, err := c.send(command{action: "start", minutes: minutes})
	return err
}

func (c *loopController) PauseTimer() error {
	_, err := c.send(command{action: "pause"})
	return err
}

func (c *loopController) ResumeTimer() error {
	_, err := c.send(command{action: "resume"})
	return err
}

func (c *loopController) ResetTimer() error {
	_, err := c.send(command{action: "reset"})
	return err
}

func (c *loopController) ListPreparedSpawn(ctx context.Context) ([]store.PreparedSpawn, error) {
	res, err := c.send(command{action: "list_spawn"})
	return res.spawn, err
}

func (c *loopController) ListInventory(ctx context.Context) ([]store.InventoryItem, error) {
	res, err := c.send(command{action: "list_inventory"})
	return res.inventory, err
}

func (c *loopController) Settings() settings.Settings {
	return c.settings.Current()
}

func (c *loopController) UpdateSettings(p settings.Partial) (settings.Settings, error) {
	updated, err := c.settings.Update(p)
	if err != nil {
		return updated, err
	}
	c.tracker.SetSettings(updated)
	return updated, nil
}
