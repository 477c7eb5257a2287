// Package clock isolates the time source. Business timestamps use local
// wall-clock time, matching how receipts and validity windows are recorded
// at the terminal; tests substitute a fixed clock.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns a Clock backed by the machine's local time.
func System() Clock {
	return systemClock{}
}

// Fixed returns a Clock that always reports the given instant.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
