package game

import (
	"fmt"
	"time"
)

// FrameStats summarizes a run of the frame loop.
type FrameStats struct {
	Frames int

	// Wall clock time from the first frame to the last.
	Wall time.Duration

	// Time spent working, excluding the pacing sleep.
	Busy time.Duration

	Slept time.Duration

	// Frames whose cost reached the target period.
	Overruns int

	MaxCost time.Duration
}

func (s *FrameStats) record(cost, slept time.Duration, overrun bool) {
	s.Frames++
	s.Busy += cost
	s.Slept += slept
	if overrun {
		s.Overruns++
	}
	if cost > s.MaxCost {
		s.MaxCost = cost
	}
}

// AvgCost returns the mean frame cost.
func (s FrameStats) AvgCost() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Busy / time.Duration(s.Frames)
}

// FPS returns the achieved frame rate.
func (s FrameStats) FPS() float64 {
	if s.Wall <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Wall.Seconds()
}

func (s FrameStats) String() string {
	return fmt.Sprintf("%d frames in %s (%.2f fps, avg cost %s, slept %s, %d overruns)",
		s.Frames, s.Wall, s.FPS(), s.AvgCost(), s.Slept, s.Overruns)
}

// fpsCounter refreshes the window title once per second.
type fpsCounter struct {
	frames int
	last   time.Duration
}

// tick counts a frame and returns the frame rate when a full second has
// passed since the last report.
func (f *fpsCounter) tick(now time.Duration) (float64, bool) {
	f.frames++
	elapsed := now - f.last
	if elapsed < time.Second {
		return 0, false
	}
	fps := float64(f.frames) / elapsed.Seconds()
	f.frames = 0
	f.last = now
	return fps, true
}
