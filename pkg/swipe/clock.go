package swipe

import "time"

// Clock provides time for animations. Tests inject a fake clock to step
// animations deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock time source used when Options.Clock is nil.
var SystemClock Clock = systemClock{}
