package game

import (
	"testing"
	"time"
)

type fakeClock struct {
	now   time.Duration
	slept []time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now += d
}

func TestSleepFor(t *testing.T) {
	specs := []struct {
		period, cost, exp time.Duration
	}{
		{16 * time.Millisecond, 5 * time.Millisecond, 11 * time.Millisecond},
		{16 * time.Millisecond, 20 * time.Millisecond, 0},
		{16 * time.Millisecond, 16 * time.Millisecond, 0},
		{time.Second / 60, 5 * time.Millisecond, 11 * time.Millisecond},
		{time.Second / 60, 0, 16 * time.Millisecond},
	}

	for index, s := range specs {
		if got := SleepFor(s.period, s.cost); got != s.exp {
			t.Fatalf("[spec %d] expected sleep %s; got %s", index, s.exp, got)
		}
	}
}

func TestPacer(t *testing.T) {
	clock := &fakeClock{}
	p := NewPacer(60)
	p.Now, p.Sleep = clock.Now, clock.Sleep
	p.state.Period = 16 * time.Millisecond

	p.Start()
	if p.State().DeltaTime != p.State().Period {
		t.Fatalf("expected initial delta time to equal the period; got %s", p.State().DeltaTime)
	}

	// Cheap frame: sleeps the remainder.
	clock.now += 5 * time.Millisecond
	if slept := p.Pace(); slept != 11*time.Millisecond {
		t.Fatalf("expected to sleep 11ms; got %s", slept)
	}
	if dt := p.State().DeltaTime; dt != 16*time.Millisecond {
		t.Fatalf("expected delta time 16ms; got %s", dt)
	}

	// Late frame: no sleep, no catch-up, delta time is the actual cost.
	clock.now += 20 * time.Millisecond
	if slept := p.Pace(); slept != 0 {
		t.Fatalf("expected no sleep for a late frame; got %s", slept)
	}
	if dt := p.State().DeltaTime; dt != 20*time.Millisecond {
		t.Fatalf("expected delta time 20ms; got %s", dt)
	}
	if len(clock.slept) != 1 {
		t.Fatalf("expected exactly one sleep call; got %v", clock.slept)
	}

	stats := p.Stats()
	if stats.Frames != 2 || stats.Overruns != 1 || stats.Slept != 11*time.Millisecond || stats.Busy != 25*time.Millisecond {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Wall != 36*time.Millisecond || stats.AvgCost() != 12500*time.Microsecond || stats.MaxCost != 20*time.Millisecond {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestNewPacerDefaultsRate(t *testing.T) {
	if got := NewPacer(0).State().Period; got != time.Second/DefaultFPS {
		t.Fatalf("expected default period; got %s", got)
	}
}

func TestFPSCounter(t *testing.T) {
	var f fpsCounter
	for i := 1; i < 10; i++ {
		if _, ok := f.tick(time.Duration(i) * 100 * time.Millisecond); ok {
			t.Fatalf("expected no report before a second passed (tick %d)", i)
		}
	}
	fps, ok := f.tick(time.Second)
	if !ok || fps != 10 {
		t.Fatalf("expected a 10 fps report; got %f, %t", fps, ok)
	}
}
