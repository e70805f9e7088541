package mustache

import (
	"math"
	"sync/atomic"
)

// fuelTracker enforces an optional per-render instruction budget. Each
// executed instruction consumes one unit; running out aborts the render.
// Useful when templates or documents come from untrusted sources.
type fuelTracker struct {
	initial   uint64
	remaining atomic.Int64
}

func newFuelTracker(fuel uint64) *fuelTracker {
	if fuel > math.MaxInt64 {
		fuel = math.MaxInt64
	}
	tracker := &fuelTracker{initial: fuel}
	tracker.remaining.Store(int64(fuel))
	return tracker
}

func (f *fuelTracker) consume(amount int64) error {
	if amount == 0 {
		return nil
	}
	remaining := f.remaining.Add(-amount)
	if remaining <= 0 {
		return NewError(ErrOutOfFuel, "render budget exhausted")
	}
	return nil
}

func (f *fuelTracker) remainingFuel() uint64 {
	remaining := f.remaining.Load()
	if remaining <= 0 {
		return 0
	}
	return uint64(remaining)
}
