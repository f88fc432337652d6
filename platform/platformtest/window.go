// Package platformtest provides a scripted platform.Window for driving the
// frame loop in tests.
package platformtest

import (
	"github.com/toxichemicals/GO/holy-render/platform"
)

// Frame is the input state the window reports after the n-th PollEvents call.
type Frame struct {
	Keys    []platform.Key
	Buttons []platform.MouseButton
	CursorX float64
	CursorY float64
	Close   bool
}

// Window replays a list of frames. Once the script is exhausted the last
// frame's state is kept and ShouldClose reports true.
type Window struct {
	Res    platform.Resolution
	Script []Frame

	Polls      int
	Swaps      int
	Titles     []string
	CursorMode platform.CursorMode
	ModeLog    []platform.CursorMode
	Sticky     bool
	Destroyed  bool

	// Clock is returned by Time.
	Clock float64

	current  Frame
	onResize func(platform.Resolution)
}

var _ platform.Window = (*Window)(nil)

// New creates a window of the given size replaying script.
func New(width, height int, script ...Frame) *Window {
	return &Window{
		Res:    platform.Resolution{Width: width, Height: height},
		Script: script,
	}
}

func (w *Window) Resolution() platform.Resolution { return w.Res }
func (w *Window) SetTitle(title string) { w.Titles = append(w.Titles, title) }
func (w *Window) SwapBuffers() { w.Swaps++ }
func (w *Window) SetStickyKeys(enabled bool) { w.Sticky = enabled }
func (w *Window) Time() float64 { return w.Clock }
func (w *Window) Destroy() { w.Destroyed = true }

func (w *Window) PollEvents() {
	if w.Polls < len(w.Script) {
		w.current = w.Script[w.Polls]
	} else {
		w.current.Close = true
	}
	w.Polls++
}

func (w *Window) ShouldClose() bool {
	return w.current.Close
}

func (w *Window) KeyPressed(key platform.Key) bool {
	for _, k := range w.current.Keys {
		if k == key {
			return true
		}
	}
	return false
}

func (w *Window) MouseButtonPressed(button platform.MouseButton) bool {
	for _, b := range w.current.Buttons {
		if b == button {
			return true
		}
	}
	return false
}

func (w *Window) CursorPos() (float64, float64) {
	return w.current.CursorX, w.current.CursorY
}

func (w *Window) SetCursorMode(mode platform.CursorMode) {
	w.CursorMode = mode
	w.ModeLog = append(w.ModeLog, mode)
}

func (w *Window) OnResize(fn func(platform.Resolution)) { w.onResize = fn }

// Resize simulates a framebuffer resize.
func (w *Window) Resize(width, height int) {
	w.Res = platform.Resolution{Width: width, Height: height}
	if w.onResize != nil {
		w.onResize(w.Res)
	}
}
