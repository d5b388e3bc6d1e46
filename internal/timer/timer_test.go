package timer

import (
	"testing"
	"time"
)

func TestNewIsIdle(t *testing.T) {
	c := New()
	s := c.Snapshot()
	if s.Running || s.Paused || s.TotalSeconds != 0 || s.RemainingSeconds != 0 {
		t.Errorf("new countdown not idle: %+v", s)
	}
	if got := c.Tick(time.Now()); got != TickIdle {
		t.Errorf("tick on idle countdown: got %v, want TickIdle", got)
	}
}

func TestStartArmsCountdown(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := New()
	c.Start(90*time.Minute, now)

	s := c.Snapshot()
	if !s.Running {
		t.Error("expected running after start")
	}
	if s.TotalSeconds != 5400 || s.RemainingSeconds != 5400 {
		t.Errorf("expected 5400s total and remaining, got total=%d remaining=%d",
			s.TotalSeconds, s.RemainingSeconds)
	}
	if !s.StartTime.Equal(now) {
		t.Errorf("expected startTime %v, got %v", now, s.StartTime)
	}
}

func TestStartZeroDurationStaysIdle(t *testing.T) {
	c := New()
	c.Start(0, time.Now())
	if c.Running() {
		t.Error("zero-duration start should leave countdown idle")
	}
}

func TestFullCountdownCompletesExactlyOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := New()
	c.Start(1*time.Minute, now)

	completions := 0
	for i := 1; i <= 60; i++ {
		tick := now.Add(time.Duration(i) * time.Second)
		res := c.Tick(tick)

		s := c.Snapshot()
		if s.RemainingSeconds < 0 || s.RemainingSeconds > s.TotalSeconds {
			t.Fatalf("tick %d: remaining %d outside [0, %d]",
				i, s.RemainingSeconds, s.TotalSeconds)
		}

		switch res {
		case TickCompleted:
			completions++
			if i != 60 {
				t.Errorf("completed on tick %d, want 60", i)
			}
		case TickContinuing:
			if s.RemainingSeconds != 60-i {
				t.Errorf("tick %d: remaining %d, want %d", i, s.RemainingSeconds, 60-i)
			}
		default:
			t.Errorf("tick %d: unexpected TickIdle", i)
		}
	}

	if completions != 1 {
		t.Fatalf("expected exactly 1 completion, got %d", completions)
	}
	if c.Running() {
		t.Error("expected not running after completion")
	}
	if c.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", c.Remaining())
	}

	// Further ticks must not fire again.
	for i := 0; i < 5; i++ {
		if res := c.Tick(now.Add(time.Hour)); res != TickIdle {
			t.Errorf("post-completion tick: got %v, want TickIdle", res)
		}
	}
}

func TestPauseFreezesRemaining(t *testing.T) {
	now := time.Now()
	c := New()
	c.Start(time.Minute, now)

	c.Tick(now.Add(time.Second))
	c.Tick(now.Add(2 * time.Second))
	before := c.Remaining()

	c.Pause()
	for i := 0; i < 10; i++ {
		if res := c.Tick(now.Add(time.Duration(3+i) * time.Second)); res != TickIdle {
			t.Errorf("paused tick: got %v, want TickIdle", res)
		}
	}
	if c.Remaining() != before {
		t.Errorf("pause: remaining changed %d -> %d", before, c.Remaining())
	}

	c.Resume()
	if res := c.Tick(now.Add(20 * time.Second)); res != TickContinuing {
		t.Errorf("resumed tick: got %v, want TickContinuing", res)
	}
	if c.Remaining() != before-1 {
		t.Errorf("resume: remaining %d, want %d", c.Remaining(), before-1)
	}
}

func TestPauseResumeNoOpWhenIdle(t *testing.T) {
	c := New()
	c.Pause()
	if c.Paused() {
		t.Error("pause on idle countdown should be a no-op")
	}
	c.Resume()
	if c.Running() {
		t.Error("resume on idle countdown should be a no-op")
	}
}

func TestResetReturnsToInitialShape(t *testing.T) {
	now := time.Now()
	c := New()
	c.Start(30*time.Minute, now)
	c.Tick(now.Add(time.Second))
	c.Pause()

	c.Reset()

	if c.Snapshot() != (New()).Snapshot() {
		t.Errorf("reset state %+v differs from fresh countdown", c.Snapshot())
	}
}

func TestRestartWhileRunning(t *testing.T) {
	now := time.Now()
	c := New()
	c.Start(time.Minute, now)
	c.Tick(now.Add(time.Second))

	c.Start(2*time.Minute, now.Add(5*time.Second))
	s := c.Snapshot()
	if s.TotalSeconds != 120 || s.RemainingSeconds != 120 {
		t.Errorf("restart: total=%d remaining=%d, want 120/120",
			s.TotalSeconds, s.RemainingSeconds)
	}
	if s.Paused {
		t.Error("restart should clear pause")
	}
}
