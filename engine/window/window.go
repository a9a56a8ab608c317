package window

import (
	"errors"
)

// ErrInit is returned when GLFW, the window or its OpenGL context cannot be created.
var ErrInit = errors.New("window initialization failed")

// Window provides a platform window owning an OpenGL context, plus polled and
// callback-driven input.
//
// All methods must be called from the thread that created the window.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving horizontal and vertical scroll offsets
	SetScrollCallback(callback func(xoff, yoff float64))

	// SetCursorPosCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetCursorPosCallback(callback func(x, y float64))

	// IsKeyDown reports whether a key is currently held.
	//
	// Parameters:
	//   - key: a key code from the common package
	//
	// Returns:
	//   - bool: true while the key is pressed
	IsKeyDown(key int) bool

	// ShouldClose reports whether the window has been asked to close.
	//
	// Returns:
	//   - bool: true once a close was requested
	ShouldClose() bool

	// SetShouldClose requests or cancels closing the window.
	//
	// Parameters:
	//   - close: true to request close
	SetShouldClose(close bool)

	// PollEvents processes pending events, invoking the registered callbacks.
	PollEvents()

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// FramebufferSize returns the current framebuffer size in pixels.
	//
	// Returns:
	//   - width, height: framebuffer dimensions
	FramebufferSize() (width, height int)

	// AspectRatio returns framebuffer width over height. A minimised window with a
	// zero-sized framebuffer counts as one pixel in each dimension.
	//
	// Returns:
	//   - float32: the aspect ratio, always > 0
	AspectRatio() float32

	// Time returns seconds elapsed since the window system was initialised.
	//
	// Returns:
	//   - float64: elapsed time in seconds
	Time() float64

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never initialised
	Close() error
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight are the smallest size the window may be resized to.
	minWidth  int
	minHeight int

	// maxWidth and maxHeight are the largest size the window may be resized to.
	maxWidth  int
	maxHeight int

	// width and height hold the current framebuffer size in pixels.
	width  int
	height int

	// vsync enables a swap interval of one.
	vsync bool

	// captureCursor hides and locks the cursor for mouse-look.
	captureCursor bool

	// glMajor and glMinor select the requested core profile version.
	glMajor int
	glMinor int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow *glfwWindow

	onResize    func(width, height int)
	onScroll    func(xoff, yoff float64)
	onCursorPos func(x, y float64)
}

var _ Window = &engineWindow{}

func defaultWindow() *engineWindow {
	return &engineWindow{
		title:         "oxy-gl",
		minWidth:      200,
		minHeight:     150,
		width:         800,
		height:        600,
		vsync:         true,
		captureCursor: true,
		glMajor:       4,
		glMinor:       1,
	}
}

// NewWindow creates a window with a current OpenGL core profile context.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: an error wrapping ErrInit if GLFW or the context could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := defaultWindow()
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(xoff, yoff float64)) {
	w.onScroll = callback
}

func (w *engineWindow) SetCursorPosCallback(callback func(x, y float64)) {
	w.onCursorPos = callback
}

func (w *engineWindow) IsKeyDown(key int) bool {
	return platformIsKeyDown(w, key)
}

func (w *engineWindow) ShouldClose() bool {
	return platformShouldClose(w)
}

func (w *engineWindow) SetShouldClose(close bool) {
	platformSetShouldClose(w, close)
}

func (w *engineWindow) PollEvents() {
	platformPollEvents()
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) FramebufferSize() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) AspectRatio() float32 {
	return aspectRatio(w.width, w.height)
}

func (w *engineWindow) Time() float64 {
	return platformTime()
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

// handleResize records the new framebuffer size and forwards it to the callback.
func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// aspectRatio divides width by height with both clamped to at least one pixel.
func aspectRatio(width, height int) float32 {
	return float32(max(width, 1)) / float32(max(height, 1))
}
