package notify

import "github.com/mycolab/sporely/internal/run"

// Disabled is a Notifier used when no broker is configured or the initial
// connection failed. Every publish quietly succeeds without side effects,
// matching the degrade-to-fewer-side-effects policy.
type Disabled struct{}

// NotifyComplete does nothing.
func (Disabled) NotifyComplete(run.Completion) error { return nil }

// PublishSystem does nothing.
func (Disabled) PublishSystem(SystemEvent) error { return nil }

// IsConnected always reports false.
func (Disabled) IsConnected() bool { return false }

// Close does nothing.
func (Disabled) Close() error { return nil }
