package controls

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
)

// Input is the window-side state FPSControls polls each frame.
// window.Window satisfies it.
type Input interface {
	IsKeyDown(key int) bool
	SetShouldClose(close bool)
}

// Bindings maps each pair of opposing camera movements to keys. Within a pair the
// first key wins when both are held.
type Bindings struct {
	Forward  int
	Backward int
	Left     int
	Right    int
	Up       int
	Down     int
	Close    int
}

// DefaultBindings is W/S, A/D, Space/Left Control and Escape to close.
var DefaultBindings = Bindings{
	Forward:  common.KeyW,
	Backward: common.KeyS,
	Left:     common.KeyA,
	Right:    common.KeyD,
	Up:       common.KeySpace,
	Down:     common.KeyLeftControl,
	Close:    common.KeyEsc,
}

// FPSControls is the input context of a first-person camera. It owns the
// first-mouse flag and the last cursor position, and translates cursor, scroll
// and keyboard input into camera operations.
type FPSControls interface {
	// Camera returns the camera the controls drive.
	//
	// Returns:
	//   - camera.Camera: the driven camera
	Camera() camera.Camera

	// HandleCursor consumes an absolute cursor position. The first event only
	// records the position; later events apply the offset since the previous one,
	// with the y offset reversed since window y grows downward.
	//
	// Parameters:
	//   - x, y: cursor position in window coordinates
	HandleCursor(x, y float64)

	// HandleScroll consumes a scroll event; only the vertical offset zooms.
	//
	// Parameters:
	//   - xoff, yoff: scroll offsets
	HandleScroll(xoff, yoff float64)

	// Tick polls the movement keys and moves the camera for the elapsed frame time.
	// The close key asks the window to close.
	//
	// Parameters:
	//   - in: the key state source
	//   - dt: elapsed frame time in seconds
	Tick(in Input, dt float32)

	// Reset makes the next cursor event behave as the first one again, e.g. after
	// the cursor was released and recaptured.
	Reset()

	// Bindings returns the key bindings in use.
	//
	// Returns:
	//   - Bindings: the bindings
	Bindings() Bindings
}

// fpsControlsImpl is the implementation of the FPSControls interface.
type fpsControlsImpl struct {
	camera     camera.Camera
	bindings   Bindings
	firstMouse bool
	lastX      float64
	lastY      float64
}

var _ FPSControls = &fpsControlsImpl{}

// NewFPSControls creates controls driving cam.
//
// Parameters:
//   - cam: the camera to drive, must not be nil
//   - options: variadic list of FPSControlsBuilderOption functions
//
// Returns:
//   - FPSControls: the new controls
func NewFPSControls(cam camera.Camera, options ...FPSControlsBuilderOption) FPSControls {
	if cam == nil {
		panic("controls: camera must not be nil")
	}
	c := &fpsControlsImpl{
		camera:     cam,
		bindings:   DefaultBindings,
		firstMouse: true,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *fpsControlsImpl) Camera() camera.Camera {
	return c.camera
}

func (c *fpsControlsImpl) HandleCursor(x, y float64) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
		return
	}
	dx := x - c.lastX
	dy := c.lastY - y
	c.lastX, c.lastY = x, y
	c.camera.ProcessMouseMovement(float32(dx), float32(dy))
}

func (c *fpsControlsImpl) HandleScroll(_, yoff float64) {
	c.camera.ProcessMouseScroll(float32(yoff))
}

func (c *fpsControlsImpl) Tick(in Input, dt float32) {
	b := c.bindings
	if in.IsKeyDown(b.Close) {
		in.SetShouldClose(true)
	}

	if in.IsKeyDown(b.Forward) {
		c.camera.ProcessMovement(camera.Forward, dt)
	} else if in.IsKeyDown(b.Backward) {
		c.camera.ProcessMovement(camera.Backward, dt)
	}

	if in.IsKeyDown(b.Left) {
		c.camera.ProcessMovement(camera.Left, dt)
	} else if in.IsKeyDown(b.Right) {
		c.camera.ProcessMovement(camera.Right, dt)
	}

	if in.IsKeyDown(b.Up) {
		c.camera.ProcessMovement(camera.Up, dt)
	} else if in.IsKeyDown(b.Down) {
		c.camera.ProcessMovement(camera.Down, dt)
	}
}

func (c *fpsControlsImpl) Reset() {
	c.firstMouse = true
}

func (c *fpsControlsImpl) Bindings() Bindings {
	return c.bindings
}
