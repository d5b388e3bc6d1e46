package buzzer

// PlayCall records one Play invocation.
type PlayCall struct {
	Sound  string
	Volume float64
}

// FakeSounder is a test double that records plays without hardware.
type FakeSounder struct {
	// Plays contains all Play calls in order, including suppressed ones.
	Plays []PlayCall

	// PlayError, if set, will be returned by Play.
	PlayError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSounder creates a FakeSounder for testing.
func NewFakeSounder() *FakeSounder {
	return &FakeSounder{}
}

// Play records the call.
func (f *FakeSounder) Play(sound string, volume float64) error {
	if f.PlayError != nil {
		return f.PlayError
	}
	f.Plays = append(f.Plays, PlayCall{Sound: sound, Volume: volume})
	return nil
}

// Close marks the sounder as closed.
func (f *FakeSounder) Close() error {
	f.Closed = true
	return nil
}
