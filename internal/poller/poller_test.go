package poller

import (
	"context"
	"courier-tracking-service/internal/domain"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu         sync.Mutex
	stateCalls int
	delays     domain.Delays
}

func (f *fakeSource) SystemState(ctx context.Context) (domain.GlobalState, bool, error) {
	f.mu.Lock()
	f.stateCalls++
	n := f.stateCalls
	f.mu.Unlock()

	// The first call reports no data.
	if n == 1 {
		return domain.GlobalState{}, false, nil
	}
	return domain.GlobalState{Tick: n}, true, nil
}

func (f *fakeSource) Configuration(ctx context.Context) (domain.Configuration, bool, error) {
	return domain.Configuration{Delays: f.delays, Central: domain.CentralLocation}, true, nil
}

func (f *fakeSource) Paths(ctx context.Context) ([]domain.DeliveryPath, bool, error) {
	return []domain.DeliveryPath{}, true, nil
}

func TestOfferDropsStaleResults(t *testing.T) {
	p := New(&fakeSource{}, domain.Delays{})
	updates, cancel := p.Subscribe(4)
	defer cancel()

	if !p.offer(Update{Kind: KindState, Seq: 5, State: &domain.GlobalState{Tick: 5}}) {
		t.Fatalf("first result should be accepted")
	}
	if p.offer(Update{Kind: KindState, Seq: 3, State: &domain.GlobalState{Tick: 3}}) {
		t.Fatalf("result issued earlier than the accepted one must be dropped")
	}
	if !p.offer(Update{Kind: KindPaths, Seq: 4}) {
		t.Fatalf("kinds are ordered independently")
	}

	if u := <-updates; u.Seq != 5 {
		t.Fatalf("first update seq = %d, want 5", u.Seq)
	}
	if u := <-updates; u.Kind != KindPaths {
		t.Fatalf("second update = %+v, want paths", u)
	}
	select {
	case u := <-updates:
		t.Fatalf("unexpected update %+v", u)
	default:
	}
}

func TestRunAppliesConfigurationDelaysAndRetriesNoData(t *testing.T) {
	src := &fakeSource{delays: domain.Delays{Configuration: time.Hour, Map: 20 * time.Millisecond, Path: time.Hour}}
	p := New(src, domain.Delays{Configuration: time.Hour, Map: time.Hour, Path: time.Hour})

	updates, cancel := p.Subscribe(16)
	defer cancel()

	ctx, stop := context.WithTimeout(context.Background(), 2*time.Second)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	var gotState *domain.GlobalState
	for gotState == nil {
		select {
		case u := <-updates:
			if u.Kind == KindState {
				gotState = u.State
			}
		case <-ctx.Done():
			t.Fatalf("no state update before timeout; delays=%+v", p.Delays())
		}
	}

	if gotState.Tick < 2 {
		t.Fatalf("first state call reported no data, so the first update must come from a retry, got tick %d", gotState.Tick)
	}
	if p.Delays().Map != 20*time.Millisecond {
		t.Fatalf("delays should follow the configuration, got %+v", p.Delays())
	}

	stop()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v on cancellation", err)
	}
}

func TestAcceptedConfigurationsInstallLatestDelays(t *testing.T) {
	initial := domain.Delays{Configuration: time.Hour, Map: time.Hour, Path: time.Hour}
	p := New(&fakeSource{}, initial)

	configAt := func(seq int) Update {
		d := time.Duration(seq) * time.Millisecond
		return Update{
			Kind:          KindConfiguration,
			Seq:           uint64(seq),
			Configuration: &domain.Configuration{Delays: domain.Delays{Configuration: d, Map: d, Path: d}},
		}
	}

	var wg sync.WaitGroup
	for seq := 1; seq <= 50; seq++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.offer(configAt(seq))
		}()
	}
	wg.Wait()

	// Whatever order the results arrived in, seq 50 was accepted at some point
	// and nothing older can be accepted after it.
	if got := p.Delays().Map; got != 50*time.Millisecond {
		t.Fatalf("delays map = %s, want 50ms from the latest configuration", got)
	}

	if p.offer(configAt(7)) {
		t.Fatalf("stale configuration accepted")
	}
	if got := p.Delays().Map; got != 50*time.Millisecond {
		t.Fatalf("stale configuration changed delays to %s", got)
	}
}
