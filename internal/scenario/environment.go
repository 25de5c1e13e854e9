// Package scenario holds the swappable knobs that drive the demo backend:
// simulated clock, artificial latency, failure injection and fixture names.
package scenario

import (
	"courier-tracking-service/internal/domain"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/atomic"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// Fixtures names the logs to load for each entity kind.
type Fixtures struct {
	Couriers string
	Trips    string
	Packages string
	Vehicles string
}

var (
	ProductionFixtures = Fixtures{Couriers: "couriers", Trips: "trips", Packages: "packages", Vehicles: "vehicles"}
	MockFixtures       = Fixtures{Couriers: "mockCouriers", Trips: "mockTrips", Packages: "mockPackages", Vehicles: "mockVehicles"}
)

// Environment is one complete scenario. It is replaced as a whole, never
// edited field by field while in use.
type Environment struct {
	Name     string
	Clock    Clock
	Delay    DelayPolicy
	Failure  FailurePolicy
	Fixtures Fixtures
	Central  domain.Location
}

func Production(start time.Time) Environment {
	return Environment{
		Name:     "production",
		Clock:    NewWallClock(start, 1),
		Delay:    ConstantDelay(500 * time.Millisecond),
		Failure:  NeverFail{},
		Fixtures: ProductionFixtures,
		Central:  domain.CentralLocation,
	}
}

func Mock() Environment {
	return Environment{
		Name:     "mock",
		Clock:    FixedClock(1),
		Delay:    ConstantDelay(0),
		Failure:  NeverFail{},
		Fixtures: MockFixtures,
		Central:  domain.CentralLocation,
	}
}

// Fast never fails, but time passes multiplier times faster than the wall clock.
func Fast(start time.Time, multiplier float64) Environment {
	env := Production(start)
	env.Name = "fast"
	env.Clock = NewWallClock(start, multiplier)
	env.Delay = ConstantDelay(100 * time.Millisecond)
	return env
}

// Intermittent fails every other call.
func Intermittent(start time.Time) Environment {
	env := Production(start)
	env.Name = "intermittent"
	env.Failure = NewAlternatingFailure()
	return env
}

// SlowFourth delays every 4th call by slow; the others take one second.
func SlowFourth(start time.Time, slow time.Duration) Environment {
	env := Production(start)
	env.Name = "slow4th"
	env.Delay = NewCyclicDelay(time.Second, time.Second, time.Second, slow)
	return env
}

// Options parameterize the presets selected by name.
type Options struct {
	Start           time.Time
	SpeedMultiplier float64
	SlowDelay       time.Duration
	// BaseDelay, when positive, replaces the constant delay of a preset.
	BaseDelay time.Duration
	Central   *domain.Location
}

// ByName builds the preset called name.
func ByName(name string, opts Options) (Environment, error) {
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}
	if opts.SlowDelay <= 0 {
		opts.SlowDelay = 10 * time.Second
	}

	var env Environment
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "production":
		env = Production(opts.Start)
	case "mock":
		env = Mock()
	case "fast":
		env = Fast(opts.Start, opts.SpeedMultiplier)
	case "intermittent":
		env = Intermittent(opts.Start)
	case "slow4th":
		env = SlowFourth(opts.Start, opts.SlowDelay)
	default:
		return Environment{}, fmt.Errorf("scenario %q: %w", name, ErrUnknownScenario)
	}

	if _, constant := env.Delay.(ConstantDelay); constant && opts.BaseDelay > 0 {
		env.Delay = ConstantDelay(opts.BaseDelay)
	}
	if opts.Central != nil {
		env.Central = *opts.Central
	}
	return env, nil
}

// Holder owns the active Environment. Readers take one snapshot per call;
// replacement is a single atomic pointer swap, so a call never observes
// fields from two different environments.
type Holder struct {
	current *atomic.Pointer[Environment]
}

func NewHolder(env Environment) *Holder {
	return &Holder{current: atomic.NewPointer(&env)}
}

// Current returns the active environment.
func (h *Holder) Current() *Environment {
	return h.current.Load()
}

// Replace installs env and returns the previous environment.
func (h *Holder) Replace(env Environment) *Environment {
	return h.current.Swap(&env)
}
