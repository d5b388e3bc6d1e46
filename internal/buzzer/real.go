//go:build linux

package buzzer

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealSounder beeps a piezo buzzer wired to a GPIO output line.
type RealSounder struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealSounder claims the buzzer pin on actual hardware.
func NewRealSounder(pin int) (*RealSounder, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}

	return &RealSounder{chip: chip, line: line}, nil
}

// Play beeps the pattern for the given sound. Blocks for the cue duration
// (a couple of seconds at most).
func (s *RealSounder) Play(sound string, volume float64) error {
	pattern := patternFor(sound, volume)
	if pattern == nil {
		return nil
	}

	for _, b := range pattern {
		if err := s.line.SetValue(1); err != nil {
			return fmt.Errorf("buzzer on: %w", err)
		}
		time.Sleep(b.on)
		if err := s.line.SetValue(0); err != nil {
			return fmt.Errorf("buzzer off: %w", err)
		}
		time.Sleep(b.off)
	}
	return nil
}

// Close drives the line low and releases GPIO resources. The pin is
// reconfigured back to input so a crashed restart never leaves the buzzer
// screaming.
func (s *RealSounder) Close() error {
	var errs []error

	if s.line != nil {
		if err := s.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("silence buzzer: %w", err))
		}
		if err := s.line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure buzzer pin: %w", err))
		}
		if err := s.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close buzzer pin: %w", err))
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
