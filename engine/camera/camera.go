package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a discrete movement command applied by ProcessMovement.
type Movement int

const (
	// Forward moves along the front vector.
	Forward Movement = iota

	// Backward moves against the front vector.
	Backward

	// Left moves against the right vector.
	Left

	// Right moves along the right vector.
	Right

	// Up moves along the world up vector, independent of pitch.
	Up

	// Down moves against the world up vector, independent of pitch.
	Down
)

const (
	// DefaultYaw points the camera toward -Z.
	DefaultYaw float32 = -90.0

	// DefaultPitch is level with the horizon.
	DefaultPitch float32 = 0.0

	// DefaultSpeed is the movement speed in world units per second.
	DefaultSpeed float32 = 2.5

	// DefaultSensitivity scales mouse offsets into degrees.
	DefaultSensitivity float32 = 0.1

	// DefaultZoom is the default vertical field of view in degrees.
	DefaultZoom float32 = 45.0

	// MinZoom and MaxZoom bound the field of view in degrees.
	MinZoom float32 = 1.0
	MaxZoom float32 = 45.0

	// MaxPitch keeps pitch strictly inside (-90, 90) so front never becomes
	// parallel to world up.
	MaxPitch float32 = 89.0

	// DefaultNear and DefaultFar are the projection clip planes.
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 100.0
)

// cameraImpl is the implementation of the Camera interface.
// All mutation happens on the render thread between frames, so no locking is done.
type cameraImpl struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32 // degrees
	pitch float32 // degrees

	speed       float32
	sensitivity float32

	zoom    float32 // vertical field of view in degrees
	minZoom float32
	maxZoom float32

	near float32
	far  float32
}

// Camera is a first-person fly camera driven by discrete movement commands, mouse
// offsets and scroll deltas. Orientation is stored as yaw/pitch in degrees and the
// front/right/up basis is always re-derived from them, so the basis is orthonormal
// after every update.
type Camera interface {
	// ProcessMovement moves the camera by speed * dt along the axis selected by dir.
	// Forward/Backward follow the front vector, Left/Right the right vector and
	// Up/Down the world up vector. No bounds are applied.
	//
	// Parameters:
	//   - dir: the movement command
	//   - dt: elapsed seconds since the previous frame
	ProcessMovement(dir Movement, dt float32)

	// ProcessMouseMovement turns the camera by the given cursor offsets scaled by the
	// mouse sensitivity. Pitch is clamped to [-MaxPitch, MaxPitch].
	//
	// Parameters:
	//   - dx: horizontal offset, positive turns right
	//   - dy: vertical offset, positive looks up
	ProcessMouseMovement(dx, dy float32)

	// ProcessMouseScroll narrows the field of view by dy degrees, clamped to the zoom bounds.
	//
	// Parameters:
	//   - dy: vertical scroll delta, positive zooms in
	ProcessMouseScroll(dy float32)

	// ViewMatrix returns the look-at transform for the current state. It has no side effects.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns a perspective projection using the current zoom as the
	// vertical field of view. The aspect ratio must be positive.
	//
	// Parameters:
	//   - aspect: viewport width divided by height
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix(aspect float32) mgl32.Mat4

	// Position returns the world-space camera position.
	Position() mgl32.Vec3

	// Front returns the unit view direction.
	Front() mgl32.Vec3

	// Right returns the unit right vector.
	Right() mgl32.Vec3

	// Up returns the unit camera up vector.
	Up() mgl32.Vec3

	// Yaw returns the yaw angle in degrees.
	Yaw() float32

	// Pitch returns the pitch angle in degrees.
	Pitch() float32

	// Zoom returns the vertical field of view in degrees.
	Zoom() float32

	// ZoomBounds returns the minimum and maximum field of view in degrees.
	ZoomBounds() (min, max float32)

	// Speed returns the movement speed in world units per second.
	Speed() float32

	// Sensitivity returns the mouse sensitivity.
	Sensitivity() float32

	// ClipPlanes returns the near and far projection planes.
	ClipPlanes() (near, far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the origin looking down -Z with default speed,
// sensitivity and zoom, then applies the options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position:    mgl32.Vec3{0, 0, 0},
		worldUp:     mgl32.Vec3{0, 1, 0},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		speed:       DefaultSpeed,
		sensitivity: DefaultSensitivity,
		zoom:        DefaultZoom,
		minZoom:     MinZoom,
		maxZoom:     MaxZoom,
		near:        DefaultNear,
		far:         DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	c.pitch = mgl32.Clamp(c.pitch, -MaxPitch, MaxPitch)
	c.zoom = mgl32.Clamp(c.zoom, c.minZoom, c.maxZoom)
	c.updateVectors()
	return c
}

func (c *cameraImpl) ProcessMovement(dir Movement, dt float32) {
	velocity := c.speed * dt
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	case Up:
		c.position = c.position.Add(c.worldUp.Mul(velocity))
	case Down:
		c.position = c.position.Sub(c.worldUp.Mul(velocity))
	}
}

func (c *cameraImpl) ProcessMouseMovement(dx, dy float32) {
	c.yaw += dx * c.sensitivity
	c.pitch += dy * c.sensitivity
	c.pitch = mgl32.Clamp(c.pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

func (c *cameraImpl) ProcessMouseScroll(dy float32) {
	c.zoom = mgl32.Clamp(c.zoom-dy, c.minZoom, c.maxZoom)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

func (c *cameraImpl) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, c.near, c.far)
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	return c.front
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	return c.right
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Yaw() float32 {
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	return c.pitch
}

func (c *cameraImpl) Zoom() float32 {
	return c.zoom
}

func (c *cameraImpl) ZoomBounds() (min, max float32) {
	return c.minZoom, c.maxZoom
}

func (c *cameraImpl) Speed() float32 {
	return c.speed
}

func (c *cameraImpl) Sensitivity() float32 {
	return c.sensitivity
}

func (c *cameraImpl) ClipPlanes() (near, far float32) {
	return c.near, c.far
}

// updateVectors re-derives front, right and up from yaw and pitch.
func (c *cameraImpl) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
