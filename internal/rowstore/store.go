// Package rowstore holds the immutable, tick-ordered entity-change logs the
// tracking engine replays.
package rowstore

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/ports"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnordered = errors.New("rows are not ordered by tick")
	ErrMissingID = errors.New("row has an empty id")
)

// LoadError reports a broken fixture. It is a startup error: the logs are a
// build-time asset, so callers are expected to abort rather than retry.
type LoadError struct {
	Fixture string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load rows: fixture %q: %v", e.Fixture, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store owns the four row logs. It is read-only after construction and safe
// for concurrent use without locking.
type Store struct {
	couriers []domain.CourierRow
	packages []domain.PackageRow
	vehicles []domain.VehicleRow
	trips    []domain.TripRow

	fingerprint string
}

// New validates and copies the logs into a Store.
func New(logs domain.RowLogs) (*Store, error) {
	if err := validate("couriers", logs.Couriers); err != nil {
		return nil, err
	}
	if err := validate("packages", logs.Packages); err != nil {
		return nil, err
	}
	if err := validate("vehicles", logs.Vehicles); err != nil {
		return nil, err
	}
	if err := validate("trips", logs.Trips); err != nil {
		return nil, err
	}

	return &Store{
		couriers: slices.Clone(logs.Couriers),
		packages: slices.Clone(logs.Packages),
		vehicles: slices.Clone(logs.Vehicles),
		trips:    slices.Clone(logs.Trips),

		fingerprint: fingerprint(logs),
	}, nil
}

func fingerprint(logs domain.RowLogs) string {
	h := sha256.New()
	fmt.Fprintf(h, "%#v", logs)
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// Load reads all logs from src and builds a Store.
// Any failure is returned as a *LoadError.
func Load(ctx context.Context, src ports.RowSource) (*Store, error) {
	logs, err := src.LoadRows(ctx)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{Fixture: "rows", Err: err}
	}

	return New(logs)
}

func validate[R domain.Row](kind string, rows []R) error {
	last := 0
	for i, r := range rows {
		if r.RowID() == "" {
			return &LoadError{Fixture: kind, Err: fmt.Errorf("index %d: %w", i, ErrMissingID)}
		}
		if i > 0 && r.RowTick() < last {
			return &LoadError{
				Fixture: kind,
				Err:     fmt.Errorf("index %d: tick %d after %d: %w", i, r.RowTick(), last, ErrUnordered),
			}
		}
		last = r.RowTick()
	}
	return nil
}

// The accessors below return the store's own backing slices; callers must not
// modify them.

func (s *Store) Couriers() []domain.CourierRow { return s.couriers }
func (s *Store) Packages() []domain.PackageRow { return s.packages }
func (s *Store) Vehicles() []domain.VehicleRow { return s.vehicles }
func (s *Store) Trips() []domain.TripRow       { return s.trips }

// Logs returns a copy of every log, e.g. for exporting to a database.
func (s *Store) Logs() domain.RowLogs {
	return domain.RowLogs{
		Couriers: slices.Clone(s.couriers),
		Packages: slices.Clone(s.packages),
		Vehicles: slices.Clone(s.vehicles),
		Trips:    slices.Clone(s.trips),
	}
}

// Fingerprint identifies the row contents. Stores built from equal logs share
// it; anything keyed on reconstructed state must include it.
func (s *Store) Fingerprint() string { return s.fingerprint }

// Len returns the total number of rows held.
func (s *Store) Len() int {
	return len(s.couriers) + len(s.packages) + len(s.vehicles) + len(s.trips)
}
