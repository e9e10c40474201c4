package clock

import "time"

// Clock supplies the current instant. Injected so booking rules that depend
// on "now" stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns the wall clock in UTC.
func System() Clock { return systemClock{} }

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
