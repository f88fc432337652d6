package game

import (
	"time"

	"github.com/loov/hrtime"
)

// FrameState is the timing information the loop hands to movement code.
type FrameState struct {
	// Actual duration of the previous iteration, sleep included.
	DeltaTime time.Duration
	Period    time.Duration
}

// Seconds returns DeltaTime in seconds.
func (s FrameState) Seconds() float32 {
	return float32(s.DeltaTime.Seconds())
}

// Pacer holds the frame loop to a target period by sleeping off whatever is
// left of it. Late frames are not compensated.
type Pacer struct {
	// Now and Sleep default to hrtime.Now and time.Sleep.
	Now   func() time.Duration
	Sleep func(time.Duration)

	state      FrameState
	frameStart time.Duration
	started    time.Duration
	stats      FrameStats
}

// DefaultFPS is used when the requested rate is not positive.
const DefaultFPS = 60

// NewPacer creates a pacer targeting fps iterations per second.
func NewPacer(fps int) *Pacer {
	if fps <= 0 {
		fps = DefaultFPS
	}
	period := time.Second / time.Duration(fps)
	return &Pacer{
		Now:   hrtime.Now,
		Sleep: time.Sleep,
		state: FrameState{DeltaTime: period, Period: period},
	}
}

// SleepFor returns how long to sleep after a frame that took cost. The
// result is truncated to whole milliseconds and is zero once the frame ran
// over its period.
func SleepFor(period, cost time.Duration) time.Duration {
	if cost >= period {
		return 0
	}
	return (period - cost).Truncate(time.Millisecond)
}

// Start marks the beginning of the first frame.
func (p *Pacer) Start() {
	p.frameStart = p.Now()
	p.started = p.frameStart
	p.state.DeltaTime = p.state.Period
	p.stats = FrameStats{}
}

// Pace ends the current frame: it sleeps the rest of the period, then
// measures the frame and starts the next one. It returns the time slept.
func (p *Pacer) Pace() time.Duration {
	cost := p.Now() - p.frameStart
	sleep := SleepFor(p.state.Period, cost)
	if sleep > 0 {
		p.Sleep(sleep)
	}

	now := p.Now()
	p.state.DeltaTime = now - p.frameStart
	p.frameStart = now

	p.stats.record(cost, sleep, cost >= p.state.Period)
	p.stats.Wall = now - p.started
	return sleep
}

// State returns the current frame timing.
func (p *Pacer) State() FrameState {
	return p.state
}

// Stats returns the statistics of every paced frame since Start.
func (p *Pacer) Stats() FrameStats {
	return p.stats
}
