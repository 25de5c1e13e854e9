package domain

import (
	"slices"
	"time"
)

// GlobalState is a full snapshot of the world at one tick.
// It is produced fresh on every query and never mutated in place.
type GlobalState struct {
	Tick     int
	Central  Location
	Couriers []Courier
	Packages []Package
	Vehicles []Vehicle
}

// Equal reports structural equality of two snapshots.
func (s GlobalState) Equal(o GlobalState) bool {
	return s.Tick == o.Tick &&
		s.Central == o.Central &&
		slices.Equal(s.Couriers, o.Couriers) &&
		slices.Equal(s.Packages, o.Packages) &&
		slices.Equal(s.Vehicles, o.Vehicles)
}

// Polling delays handed to callers.
type Delays struct {
	// How often the configuration should be polled.
	Configuration time.Duration
	// How often the map (system state) should be polled.
	Map time.Duration
	// How often delivery paths should be polled.
	Path time.Duration
}

// Configuration for the current user, including polling delays and the
// currently designated hub.
type Configuration struct {
	Delays  Delays
	Central Location
}
