package scenario

import (
	"time"

	"go.uber.org/atomic"
)

// Clock maps elapsed wall-clock time to a simulated tick.
type Clock interface {
	Tick() int
}

// WallClock counts seconds since Start, scaled by Multiplier.
type WallClock struct {
	Start      time.Time
	Multiplier float64
	now        func() time.Time
}

func NewWallClock(start time.Time, multiplier float64) *WallClock {
	if multiplier <= 0 {
		multiplier = 1
	}
	return &WallClock{Start: start, Multiplier: multiplier, now: time.Now}
}

func (c *WallClock) Tick() int {
	elapsed := c.now().Sub(c.Start).Seconds()
	if elapsed < 0 {
		return 0
	}
	return int(elapsed * c.Multiplier)
}

// FixedClock always reports the same tick.
type FixedClock int

func (c FixedClock) Tick() int { return int(c) }

// DelayPolicy returns the artificial latency applied before a call resolves.
// Implementations may be stateful across calls.
type DelayPolicy interface {
	Next() time.Duration
}

type ConstantDelay time.Duration

func (d ConstantDelay) Next() time.Duration { return time.Duration(d) }

// CyclicDelay walks through Delays in order, one entry per call, wrapping around.
type CyclicDelay struct {
	delays []time.Duration
	calls  *atomic.Int64
}

func NewCyclicDelay(delays ...time.Duration) *CyclicDelay {
	if len(delays) == 0 {
		delays = []time.Duration{0}
	}
	return &CyclicDelay{delays: delays, calls: atomic.NewInt64(0)}
}

func (d *CyclicDelay) Next() time.Duration {
	n := d.calls.Inc() - 1
	return d.delays[n%int64(len(d.delays))]
}

// FailurePolicy is a stateful scenario driver stepped exactly once per call.
// A true result means the call resolves with "no data".
type FailurePolicy interface {
	FailNext() bool
}

type NeverFail struct{}

func (NeverFail) FailNext() bool { return false }

// AlternatingFailure fails every other call, starting with the first one.
type AlternatingFailure struct {
	failed *atomic.Bool
}

func NewAlternatingFailure() *AlternatingFailure {
	return &AlternatingFailure{failed: atomic.NewBool(false)}
}

func (a *AlternatingFailure) FailNext() bool {
	return !a.failed.Toggle()
}
