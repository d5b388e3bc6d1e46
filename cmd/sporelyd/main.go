// Command sporelyd runs the MycoLab sterilization controller: the parameter
// calculator, the countdown timer, and the run tracker, served over a local
// web dashboard with MQTT notifications and a GPIO buzzer cue.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mycolab/sporely/internal/buzzer"
	"github.com/mycolab/sporely/internal/notify"
	"github.com/mycolab/sporely/internal/run"
	"github.com/mycolab/sporely/internal/settings"
	"github.com/mycolab/sporely/internal/status"
	"github.com/mycolab/sporely/internal/store"
	"github.com/mycolab/sporely/internal/timer"
	"github.com/mycolab/sporely/internal/web"
)

func main() {
	httpAddr := flag.String("http", ":8080", "HTTP dashboard address (empty to disable)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable notifications)")
	dbPath := flag.String("db", "/var/lib/sporely/lab.db", "Path to the lab SQLite database")
	settingsPath := flag.String("settings", "/var/lib/sporely/settings.yaml", "Path to the user settings file")
	buzzerPin := flag.Int("buzzer-pin", buzzer.DefaultPin, "BCM pin number for the piezo buzzer (-1 to disable)")
	tick := flag.Duration("tick", time.Second, "Countdown tick interval")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	logCfg := zap.NewProductionConfig()
	if *debug {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := runDaemon(sugar, *httpAddr, *broker, *dbPath, *settingsPath, *buzzerPin, *tick); err != nil {
		sugar.Fatalw("fatal", "error", err)
	}
}

func runDaemon(sugar *zap.SugaredLogger, httpAddr, broker, dbPath, settingsPath string, buzzerPin int, tick time.Duration) error {
	prefs, err := settings.Load(settingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The buzzer and broker are conveniences: either failing to come up
	// degrades to fewer side effects, never a dead daemon.
	var sounder run.Sounder
	if buzzerPin >= 0 {
		real, err := buzzer.NewRealSounder(buzzerPin)
		if err != nil {
			sugar.Warnw("buzzer unavailable, completion cue disabled", "error", err)
			sounder = silentSounder{}
		} else {
			defer real.Close()
			sounder = real
		}
	} else {
		sounder = silentSounder{}
	}

	var notifier notify.Notifier = notify.Disabled{}
	if broker != "" {
		mq, err := notify.NewMQTTNotifier(broker)
		if err != nil {
			sugar.Warnw("mqtt unavailable, notifications disabled", "broker", broker, "error", err)
		} else {
			defer mq.Close()
			notifier = mq
		}
	}

	startTime := time.Now()
	tracker := status.NewTracker(startTime, status.Config{
		TickMs:    tick.Milliseconds(),
		Broker:    broker,
		HTTPAddr:  httpAddr,
		DBPath:    dbPath,
		BuzzerPin: buzzerPin,
	})
	tracker.SetSettings(prefs.Current())

	logbuf := run.NewLog(run.LogCapacity)
	d := &daemon{
		countdown: timer.New(),
		items:     run.NewRun(),
		log:       logbuf,
		completer: run.NewCompleter(st, sounder, notifier, logbuf, sugar),
		store:     st,
		notifier:  notifier,
		settings:  prefs,
		tracker:   tracker,
		logger:    sugar,
	}

	// Publish startup event with full status snapshot.
	snap := tracker.Snapshot()
	startupEvent := notify.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := notifier.PublishSystem(startupEvent); err != nil {
		sugar.Warnw("failed to publish startup event", "error", err)
	} else {
		sugar.Infow("published startup event")
	}

	cmds := make(chan command)

	if httpAddr != "" {
		srv := web.New(httpAddr, tracker, &loopController{
			cmds:     cmds,
			settings: prefs,
			tracker:  tracker,
		})
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				sugar.Errorw("http server error", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		sugar.Infow("http dashboard listening", "addr", httpAddr)
	}

	sugar.Infow("started",
		"tick", tick, "broker", broker, "db", dbPath, "buzzer_pin", buzzerPin)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(d, time.Now, ticker.C, cmds, sigCh)
}

// silentSounder swallows cues when no buzzer hardware is available.
type silentSounder struct{}

func (silentSounder) Play(sound string, volume float64) error { return nil }
