//go:build !sdl

package platform

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwKeys = [keyCount]glfw.Key{
	KeyA:      glfw.KeyA,
	KeyD:      glfw.KeyD,
	KeyW:      glfw.KeyW,
	KeyS:      glfw.KeyS,
	KeyQ:      glfw.KeyQ,
	KeyE:      glfw.KeyE,
	KeyEscape: glfw.KeyEscape,
}

var glfwButtons = map[MouseButton]glfw.MouseButton{
	MouseLeft:   glfw.MouseButtonLeft,
	MouseRight:  glfw.MouseButtonRight,
	MouseMiddle: glfw.MouseButtonMiddle,
}

type glfwWindow struct {
	window   *glfw.Window
	onResize func(Resolution)
}

// Open initializes GLFW, creates a window with a core-profile GL context and
// makes the context current. The caller must have locked the OS thread.
func Open(opts Options) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, opts.ContextMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.ContextMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(opts.SwapInterval)

	w := &glfwWindow{window: window}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(Resolution{Width: width, Height: height})
		}
	})
	return w, nil
}

func (w *glfwWindow) Resolution() Resolution {
	width, height := w.window.GetFramebufferSize()
	return Resolution{Width: width, Height: height}
}

func (w *glfwWindow) SetTitle(title string) { w.window.SetTitle(title) }
func (w *glfwWindow) PollEvents() { glfw.PollEvents() }
func (w *glfwWindow) SwapBuffers() { w.window.SwapBuffers() }
func (w *glfwWindow) ShouldClose() bool { return w.window.ShouldClose() }

func (w *glfwWindow) KeyPressed(key Key) bool {
	if key >= keyCount {
		return false
	}
	return w.window.GetKey(glfwKeys[key]) != glfw.Release
}

func (w *glfwWindow) MouseButtonPressed(button MouseButton) bool {
	b, ok := glfwButtons[button]
	if !ok {
		return false
	}
	return w.window.GetMouseButton(b) != glfw.Release
}

func (w *glfwWindow) CursorPos() (float64, float64) {
	return w.window.GetCursorPos()
}

func (w *glfwWindow) SetCursorMode(mode CursorMode) {
	if mode == CursorDisabled {
		w.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		return
	}
	w.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

func (w *glfwWindow) SetStickyKeys(enabled bool) {
	value := glfw.False
	if enabled {
		value = glfw.True
	}
	w.window.SetInputMode(glfw.StickyKeysMode, value)
}

func (w *glfwWindow) OnResize(fn func(Resolution)) { w.onResize = fn }
func (w *glfwWindow) Time() float64 { return glfw.GetTime() }

func (w *glfwWindow) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
}
