package services

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/platform/metrics"
	"courier-tracking-service/internal/platform/obs"
	"courier-tracking-service/internal/ports"
	"courier-tracking-service/internal/rowstore"
	"courier-tracking-service/internal/scenario"
	"errors"
	"log"
	"strings"
	"time"
)

// ErrNoData is the error form of a "no data this round" outcome, for
// transports that need one. The facade itself reports it as ok=false.
var ErrNoData = errors.New("no data available")

// Login markers recognised by the demo backend.
var loginMarkers = []struct {
	marker  string
	session domain.Session
}{
	{"admin", domain.Session{Token: "0000", Role: domain.RoleAdmin}},
	{"support", domain.Session{Token: "1111", Role: domain.RoleSupport}},
}

// TrackingService is the boundary consumed by UI collaborators.
//
// Every call takes a single snapshot of the active scenario when it starts and
// uses only that snapshot, so replacing the scenario mid-flight never mixes
// settings. Calls resolve after the scenario's artificial delay. No ordering
// is promised between overlapping calls; callers discard stale results.
type TrackingService struct {
	store     *rowstore.Store
	env       *scenario.Holder
	delays    domain.Delays
	cache     ports.StateCache
	distances ports.DistanceProvider
	metrics   *metrics.Collectors
}

type Option func(*TrackingService)

func WithStateCache(c ports.StateCache) Option {
	return func(s *TrackingService) { s.cache = c }
}

func WithDistanceProvider(p ports.DistanceProvider) Option {
	return func(s *TrackingService) { s.distances = p }
}

func WithMetrics(m *metrics.Collectors) Option {
	return func(s *TrackingService) { s.metrics = m }
}

func NewTrackingService(
	store *rowstore.Store,
	env *scenario.Holder,
	delays domain.Delays,
	opts ...Option,
) *TrackingService {
	s := &TrackingService{store: store, env: env, delays: delays}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login returns a session when email carries a recognised marker, and
// domain.ErrWrongCredentials otherwise.
func (s *TrackingService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	env := s.env.Current()

	session, err := domain.Session{}, domain.ErrWrongCredentials
	for _, m := range loginMarkers {
		if strings.Contains(email, m.marker) {
			session, err = m.session, nil
			break
		}
	}

	if werr := wait(ctx, env.Delay.Next()); werr != nil {
		s.metrics.ObserveCall("login", metrics.OutcomeError)
		return domain.Session{}, werr
	}

	if err != nil {
		s.metrics.ObserveCall("login", metrics.OutcomeRejected)
		return domain.Session{}, err
	}
	s.metrics.ObserveCall("login", metrics.OutcomeOK)
	return session, nil
}

// SystemState reconstructs the world at the scenario's current tick.
// ok is false when the scenario injects a failure for this call.
func (s *TrackingService) SystemState(ctx context.Context) (domain.GlobalState, bool, error) {
	env := s.env.Current()

	if env.Failure.FailNext() {
		return domain.GlobalState{}, false, s.resolveNoData(ctx, "state", env)
	}

	state := s.stateAt(ctx, env.Clock.Tick(), env.Central)

	if err := wait(ctx, env.Delay.Next()); err != nil {
		s.metrics.ObserveCall("state", metrics.OutcomeError)
		return domain.GlobalState{}, false, err
	}
	s.metrics.ObserveCall("state", metrics.OutcomeOK)
	return state, true, nil
}

// StateAt reconstructs the world at an explicit tick, bypassing the clock,
// the artificial delay and failure injection.
func (s *TrackingService) StateAt(ctx context.Context, tick int) domain.GlobalState {
	env := s.env.Current()
	return s.stateAt(ctx, tick, env.Central)
}

// Configuration returns the polling delays and the current hub.
// ok is false when the scenario injects a failure for this call.
func (s *TrackingService) Configuration(ctx context.Context) (domain.Configuration, bool, error) {
	env := s.env.Current()

	if env.Failure.FailNext() {
		return domain.Configuration{}, false, s.resolveNoData(ctx, "configuration", env)
	}

	cfg := domain.Configuration{Delays: s.delays, Central: env.Central}

	if err := wait(ctx, env.Delay.Next()); err != nil {
		s.metrics.ObserveCall("configuration", metrics.OutcomeError)
		return domain.Configuration{}, false, err
	}
	s.metrics.ObserveCall("configuration", metrics.OutcomeOK)
	return cfg, true, nil
}

// Paths returns the remaining leg of every busy courier at the current tick.
// ok is false when the scenario injects a failure for this call.
func (s *TrackingService) Paths(ctx context.Context) ([]domain.DeliveryPath, bool, error) {
	env := s.env.Current()

	if env.Failure.FailNext() {
		return nil, false, s.resolveNoData(ctx, "paths", env)
	}

	state := s.stateAt(ctx, env.Clock.Tick(), env.Central)
	paths, err := DeliveryPaths(ctx, state, s.distances)
	if err != nil {
		s.metrics.ObserveCall("paths", metrics.OutcomeError)
		return nil, false, err
	}

	if err := wait(ctx, env.Delay.Next()); err != nil {
		s.metrics.ObserveCall("paths", metrics.OutcomeError)
		return nil, false, err
	}
	s.metrics.ObserveCall("paths", metrics.OutcomeOK)
	return paths, true, nil
}

// GetSystemState resolves asynchronously; onResult receives nil when no data
// is available or ctx ends first.
func (s *TrackingService) GetSystemState(ctx context.Context, onResult func(*domain.GlobalState)) {
	go func() {
		state, ok, err := s.SystemState(ctx)
		if err != nil || !ok {
			onResult(nil)
			return
		}
		onResult(&state)
	}()
}

// GetConfiguration resolves asynchronously; onResult receives nil when no
// data is available or ctx ends first.
func (s *TrackingService) GetConfiguration(ctx context.Context, onResult func(*domain.Configuration)) {
	go func() {
		cfg, ok, err := s.Configuration(ctx)
		if err != nil || !ok {
			onResult(nil)
			return
		}
		onResult(&cfg)
	}()
}

// LoginAsync resolves Login on its own goroutine.
func (s *TrackingService) LoginAsync(
	ctx context.Context,
	email string,
	password string,
	onResult func(domain.Session, error),
) {
	go func() {
		onResult(s.Login(ctx, email, password))
	}()
}

func (s *TrackingService) resolveNoData(ctx context.Context, op string, env *scenario.Environment) error {
	if err := wait(ctx, env.Delay.Next()); err != nil {
		s.metrics.ObserveCall(op, metrics.OutcomeError)
		return err
	}
	s.metrics.ObserveCall(op, metrics.OutcomeNoData)
	return nil
}

func (s *TrackingService) stateAt(ctx context.Context, tick int, central domain.Location) domain.GlobalState {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, s.store.Fingerprint(), central, tick)
		if err != nil {
			log.Printf("state cache read failed: tick=%d err=%v", tick, err)
		}
		s.metrics.ObserveCache(ok)
		if ok {
			return cached
		}
	}

	done := obs.Time(ctx, "state.reconstruct")
	start := time.Now()
	state := Reconstruct(s.store, tick, central)
	s.metrics.ObserveReconstruct(time.Since(start))
	done(nil)

	if s.cache != nil {
		if err := s.cache.Put(ctx, s.store.Fingerprint(), state); err != nil {
			log.Printf("state cache write failed: tick=%d err=%v", tick, err)
		}
	}

	return state
}

// wait blocks for d while respecting context cancellation.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
