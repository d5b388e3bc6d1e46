package notify

import "github.com/mycolab/sporely/internal/run"

// FakeNotifier records published notifications for test assertions.
type FakeNotifier struct {
	// Completions contains all completion events that were published.
	Completions []run.Completion

	// Payloads contains the JSON payloads for completion events.
	Payloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// NotifyError, if set, will be returned by NotifyComplete.
	NotifyError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakeNotifier creates a FakeNotifier for testing.
func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

// NotifyComplete records the completion event.
func (f *FakeNotifier) NotifyComplete(c run.Completion) error {
	if f.NotifyError != nil {
		return f.NotifyError
	}
	f.Completions = append(f.Completions, c)

	payload, err := FormatCompletion(c)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// PublishSystem records the system event.
func (f *FakeNotifier) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	f.SystemEvents = append(f.SystemEvents, event)
	return nil
}

// IsConnected reports whether the fake notifier is "connected".
func (f *FakeNotifier) IsConnected() bool {
	return f.Connected
}

// Close marks the notifier as closed.
func (f *FakeNotifier) Close() error {
	f.Closed = true
	return nil
}
