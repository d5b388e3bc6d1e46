//go:build !linux

package buzzer

import "errors"

// RealSounder is not available on non-Linux platforms.
type RealSounder struct{}

// NewRealSounder returns an error on non-Linux platforms.
func NewRealSounder(pin int) (*RealSounder, error) {
	return nil, errors.New("buzzer: not supported on this platform (requires Linux)")
}

// Play is not implemented on non-Linux platforms.
func (s *RealSounder) Play(sound string, volume float64) error {
	return errors.New("buzzer: not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *RealSounder) Close() error {
	return nil
}
