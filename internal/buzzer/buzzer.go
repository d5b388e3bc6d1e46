// Package buzzer drives the completion cue through a piezo buzzer on a GPIO
// line, with hardware abstraction for testing. The real implementation uses
// the Linux GPIO character device; the fake allows testing without hardware.
package buzzer

import "time"

// Sounder plays a named cue at a volume in [0, 1].
type Sounder interface {
	// Play blocks for the duration of the cue. "none" or volume 0 is a no-op.
	// Returns error if the hardware is unavailable (must not crash).
	Play(sound string, volume float64) error

	// Close releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin the buzzer is wired to.
const DefaultPin = 18

// Known sound ids. Anything unrecognized falls back to SoundClassic.
const (
	SoundNone    = "none"
	SoundClassic = "classic"
	SoundChime   = "chime"
	SoundAlarm   = "alarm"
)

// beat is one on/off step of a cue pattern.
type beat struct {
	on  time.Duration
	off time.Duration
}

// patterns maps sound ids to beep sequences. Volume scales the on-time, so a
// quiet cue is a short chirp and full volume is the full beat.
var patterns = map[string][]beat{
	SoundClassic: {
		{on: 400 * time.Millisecond, off: 200 * time.Millisecond},
		{on: 400 * time.Millisecond, off: 200 * time.Millisecond},
		{on: 400 * time.Millisecond},
	},
	SoundChime: {
		{on: 150 * time.Millisecond, off: 100 * time.Millisecond},
		{on: 150 * time.Millisecond},
	},
	SoundAlarm: {
		{on: 250 * time.Millisecond, off: 100 * time.Millisecond},
		{on: 250 * time.Millisecond, off: 100 * time.Millisecond},
		{on: 250 * time.Millisecond, off: 100 * time.Millisecond},
		{on: 250 * time.Millisecond, off: 100 * time.Millisecond},
		{on: 250 * time.Millisecond},
	},
}

// patternFor resolves a sound id to its beep sequence, scaled by volume.
// Returns nil when nothing should play.
func patternFor(sound string, volume float64) []beat {
	if sound == SoundNone || volume <= 0 {
		return nil
	}
	if volume > 1 {
		volume = 1
	}
	p, ok := patterns[sound]
	if !ok {
		p = patterns[SoundClassic]
	}
	scaled := make([]beat, len(p))
	for i, b := range p {
		scaled[i] = beat{
			on:  time.Duration(float64(b.on) * volume),
			off: b.off,
		}
	}
	return scaled
}
