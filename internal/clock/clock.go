// Package clock abstracts wall-clock time so services and tests share one
// source of truth for timestamps.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock yields the current time. All callers are expected to store UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() Clock {
	return systemClock{}
}

// Module wires the system clock for the application.
var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
