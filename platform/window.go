// Package platform abstracts the window, the GL context and the input
// devices the frame loop polls.
package platform

// Key identifies a keyboard key polled by the frame loop.
type Key uint8

const (
	KeyA Key = iota
	KeyD
	KeyW
	KeyS
	KeyQ
	KeyE
	KeyEscape
	keyCount
)

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// CursorMode controls pointer visibility.
type CursorMode uint8

const (
	// CursorNormal shows the pointer and lets it leave the window.
	CursorNormal CursorMode = iota
	// CursorDisabled hides and locks the pointer for unbounded look input.
	CursorDisabled
)

// Resolution is a framebuffer size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// Aspect returns width/height, or 1 for a degenerate size.
func (r Resolution) Aspect() float32 {
	if r.Width <= 0 || r.Height <= 0 {
		return 1
	}
	return float32(r.Width) / float32(r.Height)
}

// Window is the platform window owning the GL context. Input state is polled,
// never queued by the caller.
type Window interface {
	Resolution() Resolution
	SetTitle(title string)

	PollEvents()
	SwapBuffers()
	ShouldClose() bool

	KeyPressed(key Key) bool
	MouseButtonPressed(button MouseButton) bool
	CursorPos() (x, y float64)
	SetCursorMode(mode CursorMode)
	SetStickyKeys(enabled bool)

	// OnResize registers a callback invoked with the new framebuffer size.
	OnResize(fn func(Resolution))

	// Time returns seconds since the window was created.
	Time() float64

	Destroy()
}
