// Package poller drives the caller side of the tracking facade: one loop per
// data kind, each rescheduled with the delays from the latest configuration.
package poller

import (
	"context"
	"courier-tracking-service/internal/domain"
	"errors"
	"log"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

const minDelay = 10 * time.Millisecond

// Source is the facade being polled.
type Source interface {
	SystemState(ctx context.Context) (domain.GlobalState, bool, error)
	Configuration(ctx context.Context) (domain.Configuration, bool, error)
	Paths(ctx context.Context) ([]domain.DeliveryPath, bool, error)
}

type Kind int

const (
	KindConfiguration Kind = iota
	KindState
	KindPaths
	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindState:
		return "state"
	case KindPaths:
		return "paths"
	}
	return "unknown"
}

// Update is one accepted result. Seq orders calls by issue time across all kinds.
type Update struct {
	Kind          Kind
	Seq           uint64
	Configuration *domain.Configuration
	State         *domain.GlobalState
	Paths         []domain.DeliveryPath
}

// Poller issues calls without waiting for earlier ones to finish, so a slow
// response can arrive after a newer one. Only results issued after the last
// accepted result of the same kind are published.
type Poller struct {
	src    Source
	delays *atomic.Pointer[domain.Delays]
	seq    *atomic.Uint64

	mu       sync.Mutex
	accepted [numKinds]uint64
	subs     map[chan Update]struct{}
	// closed and replaced whenever the delays change
	rescheduled chan struct{}
}

// New returns a poller that uses initial until the first configuration arrives.
func New(src Source, initial domain.Delays) *Poller {
	return &Poller{
		src:    src,
		delays: atomic.NewPointer(&initial),
		seq:    atomic.NewUint64(0),
		subs:   make(map[chan Update]struct{}),

		rescheduled: make(chan struct{}),
	}
}

// Delays returns the schedule currently in effect.
func (p *Poller) Delays() domain.Delays {
	return *p.delays.Load()
}

// Subscribe returns a channel of accepted updates and a func to cancel it.
// A subscriber that falls behind misses updates rather than blocking the poller.
func (p *Poller) Subscribe(buffer int) (<-chan Update, func()) {
	ch := make(chan Update, buffer)

	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, ch)
			p.mu.Unlock()
			close(ch)
		})
	}
}

// Run polls until ctx ends. It returns nil on cancellation.
func (p *Poller) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.loop(gctx, g, KindConfiguration, func(d domain.Delays) time.Duration { return d.Configuration })
	})
	g.Go(func() error {
		return p.loop(gctx, g, KindState, func(d domain.Delays) time.Duration { return d.Map })
	})
	g.Go(func() error {
		return p.loop(gctx, g, KindPaths, func(d domain.Delays) time.Duration { return d.Path })
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (p *Poller) loop(
	ctx context.Context,
	g *errgroup.Group,
	kind Kind,
	delayOf func(domain.Delays) time.Duration,
) error {
	for {
		seq := p.seq.Inc()
		g.Go(func() error {
			p.call(ctx, kind, seq)
			return nil
		})

		if err := p.sleep(ctx, delayOf); err != nil {
			return err
		}
	}
}

// sleep waits for the kind's delay. When a new configuration changes the
// delays mid-wait, the wait restarts with the new value.
func (p *Poller) sleep(ctx context.Context, delayOf func(domain.Delays) time.Duration) error {
	for {
		p.mu.Lock()
		rescheduled := p.rescheduled
		p.mu.Unlock()

		d := delayOf(p.Delays())
		if d < minDelay {
			d = minDelay
		}

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			return nil
		case <-rescheduled:
			timer.Stop()
		}
	}
}

func (p *Poller) call(ctx context.Context, kind Kind, seq uint64) {
	u := Update{Kind: kind, Seq: seq}

	var ok bool
	var err error
	switch kind {
	case KindConfiguration:
		var cfg domain.Configuration
		cfg, ok, err = p.src.Configuration(ctx)
		u.Configuration = &cfg
	case KindState:
		var state domain.GlobalState
		state, ok, err = p.src.SystemState(ctx)
		u.State = &state
	case KindPaths:
		u.Paths, ok, err = p.src.Paths(ctx)
	}

	if err != nil {
		if ctx.Err() == nil {
			log.Printf("poll failed: kind=%s seq=%d err=%v", kind, seq, err)
		}
		return
	}
	if !ok {
		// No data this round; the loop tries again on its normal schedule.
		return
	}

	p.offer(u)
}

// setDelaysLocked installs d and wakes sleeping loops. p.mu must be held.
func (p *Poller) setDelaysLocked(d domain.Delays) {
	if *p.delays.Load() == d {
		return
	}
	p.delays.Store(&d)

	close(p.rescheduled)
	p.rescheduled = make(chan struct{})
}

// offer publishes u unless a result issued later has already been accepted.
// An accepted configuration also replaces the delays, under the same lock, so
// delays always come from the latest accepted configuration.
func (p *Poller) offer(u Update) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if u.Seq <= p.accepted[u.Kind] {
		log.Printf("poll result dropped as stale: kind=%s seq=%d latest=%d", u.Kind, u.Seq, p.accepted[u.Kind])
		return false
	}
	p.accepted[u.Kind] = u.Seq

	if u.Kind == KindConfiguration && u.Configuration != nil {
		p.setDelaysLocked(u.Configuration.Delays)
	}

	for ch := range p.subs {
		select {
		case ch <- u:
		default:
		}
	}
	return true
}
