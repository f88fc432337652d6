package platform

// Options configures window creation.
type Options struct {
	Width  int
	Height int
	Title  string

	// GL context version.
	ContextMajor int
	ContextMinor int

	// Swap interval; 0 disables vsync so frame pacing is done by the loop.
	SwapInterval int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Width:        1280,
		Height:       720,
		Title:        "holy-render",
		ContextMajor: 4,
		ContextMinor: 1,
		SwapInterval: 0,
	}
}
