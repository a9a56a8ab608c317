package controls

// FPSControlsBuilderOption is a functional option for configuring FPSControls.
type FPSControlsBuilderOption func(*fpsControlsImpl)

// WithBindings replaces the whole key binding table.
//
// Parameters:
//   - b: the bindings to use
//
// Returns:
//   - FPSControlsBuilderOption: functional option to set the bindings
func WithBindings(b Bindings) FPSControlsBuilderOption {
	return func(c *fpsControlsImpl) {
		c.bindings = b
	}
}

// WithInitialCursor seeds the last cursor position so the first cursor event
// already produces an offset, e.g. the window center when the cursor is captured.
//
// Parameters:
//   - x, y: cursor position in window coordinates
//
// Returns:
//   - FPSControlsBuilderOption: functional option to set the initial cursor
func WithInitialCursor(x, y float64) FPSControlsBuilderOption {
	return func(c *fpsControlsImpl) {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}
}
