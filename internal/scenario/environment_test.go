package scenario

import (
	"courier-tracking-service/internal/domain"
	"errors"
	"testing"
	"time"
)

func TestWallClockAppliesMultiplier(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	c := NewWallClock(start, 4)
	c.now = func() time.Time { return start.Add(2500 * time.Millisecond) }

	if got := c.Tick(); got != 10 {
		t.Fatalf("tick = %d, want 10", got)
	}

	c.now = func() time.Time { return start.Add(-time.Second) }
	if got := c.Tick(); got != 0 {
		t.Fatalf("tick before start = %d, want 0", got)
	}
}

func TestCyclicDelayEveryFourthIsSlow(t *testing.T) {
	d := NewCyclicDelay(time.Second, time.Second, time.Second, 10*time.Second)

	want := []time.Duration{time.Second, time.Second, time.Second, 10 * time.Second, time.Second}
	for i, w := range want {
		if got := d.Next(); got != w {
			t.Fatalf("call %d delay = %v, want %v", i+1, got, w)
		}
	}
}

func TestAlternatingFailureStartsWithFailure(t *testing.T) {
	f := NewAlternatingFailure()

	want := []bool{true, false, true, false}
	for i, w := range want {
		if got := f.FailNext(); got != w {
			t.Fatalf("call %d failNext = %v, want %v", i+1, got, w)
		}
	}
}

func TestByName(t *testing.T) {
	hub := domain.Location{Lat: 1, Lng: 2}
	env, err := ByName("mock", Options{Central: &hub})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Fixtures != MockFixtures {
		t.Fatalf("fixtures = %+v, want mock fixtures", env.Fixtures)
	}
	if env.Central != hub {
		t.Fatalf("central = %+v, want %+v", env.Central, hub)
	}
	if env.Clock.Tick() != 1 {
		t.Fatalf("mock clock tick = %d, want 1", env.Clock.Tick())
	}

	if _, err := ByName("chaos", Options{}); !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("err = %v, want ErrUnknownScenario", err)
	}
}

func TestByNameBaseDelayOverridesConstantOnly(t *testing.T) {
	env, err := ByName("production", Options{BaseDelay: 2 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := env.Delay.Next(); d != 2*time.Second {
		t.Fatalf("production delay = %v, want 2s", d)
	}

	env, err = ByName("slow4th", Options{BaseDelay: 2 * time.Second, SlowDelay: 7 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Duration{time.Second, time.Second, time.Second, 7 * time.Second}
	for i, w := range want {
		if d := env.Delay.Next(); d != w {
			t.Fatalf("slow4th call %d delay = %v, want %v", i+1, d, w)
		}
	}
}

func TestHolderReplaceIsWholeObject(t *testing.T) {
	h := NewHolder(Mock())
	before := h.Current()

	prod := Production(time.Now())
	prev := h.Replace(prod)

	if prev != before {
		t.Fatalf("Replace should return the previously installed environment")
	}
	if before.Name != "mock" || before.Fixtures != MockFixtures {
		t.Fatalf("snapshot taken before Replace must be unchanged, got %+v", before)
	}
	if got := h.Current(); got.Name != "production" || got.Fixtures != ProductionFixtures {
		t.Fatalf("current = %+v, want production", got)
	}
}
