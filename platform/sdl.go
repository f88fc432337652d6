//go:build sdl

package platform

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

var sdlScancodes = [keyCount]sdl.Scancode{
	KeyA:      sdl.SCANCODE_A,
	KeyD:      sdl.SCANCODE_D,
	KeyW:      sdl.SCANCODE_W,
	KeyS:      sdl.SCANCODE_S,
	KeyQ:      sdl.SCANCODE_Q,
	KeyE:      sdl.SCANCODE_E,
	KeyEscape: sdl.SCANCODE_ESCAPE,
}

var sdlButtons = map[MouseButton]uint32{
	MouseLeft:   sdl.BUTTON_LEFT,
	MouseRight:  sdl.BUTTON_RIGHT,
	MouseMiddle: sdl.BUTTON_MIDDLE,
}

type sdlWindow struct {
	window    *sdl.Window
	glContext sdl.GLContext
	start     time.Time
	closed    bool
	onResize  func(Resolution)
}

// Open initializes SDL, creates a window with a core-profile GL context and
// makes the context current.
func Open(opts Options) (Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, opts.ContextMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, opts.ContextMinor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	window, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(opts.Width), int32(opts.Height), sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create SDL window: %w", err)
	}

	glContext, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create OpenGL context: %w", err)
	}
	sdl.GLMakeCurrent(window, glContext)
	sdl.GLSetSwapInterval(opts.SwapInterval)

	return &sdlWindow{window: window, glContext: glContext, start: time.Now()}, nil
}

func (w *sdlWindow) Resolution() Resolution {
	width, height := w.window.GetSize()
	return Resolution{Width: int(width), Height: int(height)}
}

func (w *sdlWindow) SetTitle(title string) { w.window.SetTitle(title) }
func (w *sdlWindow) SwapBuffers() { w.window.GLSwap() }
func (w *sdlWindow) ShouldClose() bool { return w.closed }

func (w *sdlWindow) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event := event.(type) {
		case *sdl.QuitEvent:
			w.closed = true
		case *sdl.WindowEvent:
			if event.Event == sdl.WINDOWEVENT_RESIZED && w.onResize != nil {
				w.onResize(w.Resolution())
			}
		}
	}
}

func (w *sdlWindow) KeyPressed(key Key) bool {
	if key >= keyCount {
		return false
	}
	state := sdl.GetKeyboardState()
	return state[sdlScancodes[key]] != 0
}

func (w *sdlWindow) MouseButtonPressed(button MouseButton) bool {
	b, ok := sdlButtons[button]
	if !ok {
		return false
	}
	_, _, state := sdl.GetMouseState()
	return uint32(state)&(uint32(1)<<(b-1)) != 0
}

func (w *sdlWindow) CursorPos() (float64, float64) {
	x, y, _ := sdl.GetMouseState()
	return float64(x), float64(y)
}

func (w *sdlWindow) SetCursorMode(mode CursorMode) {
	sdl.SetRelativeMouseMode(mode == CursorDisabled)
}

// SDL keeps keyboard state between polls, which is what sticky keys buy on
// GLFW, so there is nothing to toggle.
func (w *sdlWindow) SetStickyKeys(bool) {}

func (w *sdlWindow) OnResize(fn func(Resolution)) { w.onResize = fn }

func (w *sdlWindow) Time() float64 {
	return time.Since(w.start).Seconds()
}

func (w *sdlWindow) Destroy() {
	sdl.GLDeleteContext(w.glContext)
	w.window.Destroy()
	sdl.Quit()
}
