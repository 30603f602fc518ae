package services

import (
	"time"

	"fintrack/internal/core"
)

// Clock supplies today's date so schedule and budget math can be pinned in
// tests.
type Clock interface {
	Today() core.Date
}

type systemClock struct{}

func (systemClock) Today() core.Date {
	return core.DateOf(time.Now())
}

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock {
	return systemClock{}
}
