package game_object

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type gameObject struct {
	id       uuid.UUID
	enabled  bool
	mdl      model.Model
	color    mgl32.Vec3
	hasColor bool

	// lamp is the point light this object marks; when set it drives the position.
	lamp *light.PointLight

	position      mgl32.Vec3
	scale         mgl32.Vec3
	rotation      mgl32.Vec3
	rotationSpeed mgl32.Vec3
}

// GameObject defines the interface for a drawable scene entity: a Model placed by
// a transform and tinted by a flat color. An object can mark a point light, in
// which case it sits at the light's position and defaults to the light's color.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the object ID
	ID() uuid.UUID

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the geometry drawn for this object.
	//
	// Returns:
	//   - model.Model: the model, or nil
	Model() model.Model

	// Position returns the world-space position. For a lamp this is the position
	// of its point light.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns Euler angles in degrees around X, Y and Z.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// RotationSpeed returns the rotation rate in degrees per second around X, Y and Z.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation speed
	RotationSpeed() mgl32.Vec3

	// Scale returns the per-axis scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// Color returns the flat color uploaded when drawing. A lamp without an explicit
	// color uses its light's color.
	//
	// Returns:
	//   - mgl32.Vec3: the color
	Color() mgl32.Vec3

	// Light returns the point light this object marks, or nil.
	//
	// Returns:
	//   - *light.PointLight: the shared light
	Light() *light.PointLight

	// ModelMatrix composes translation * rotation (Z, Y, X) * scale.
	//
	// Returns:
	//   - mgl32.Mat4: the model-to-world transform
	ModelMatrix() mgl32.Mat4

	// Update advances the rotation by RotationSpeed over dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// SetEnabled enables or disables rendering of this object.
	//
	// Parameters:
	//   - enabled: true to render the object
	SetEnabled(enabled bool)

	// SetModel sets the Model for this object.
	//
	// Parameters:
	//   - m: the model to draw
	SetModel(m model.Model)

	// SetPosition sets the world-space position. Ignored while the object marks a light.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in degrees.
	//
	// Parameters:
	//   - rx, ry, rz: rotation around each axis
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the rotation rate in degrees per second.
	//
	// Parameters:
	//   - rx, ry, rz: rate around each axis
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// SetColor sets an explicit flat color.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetLight makes the object mark l. Passing nil detaches the light.
	//
	// Parameters:
	//   - l: the shared point light
	SetLight(l *light.PointLight)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject with a fresh random ID, unit
// scale and white color, configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:      uuid.New(),
		enabled: true,
		color:   mgl32.Vec3{1, 1, 1},
		scale:   mgl32.Vec3{1, 1, 1},
	}
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uuid.UUID {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Position() mgl32.Vec3 {
	if g.lamp != nil {
		return g.lamp.Position()
	}
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	return g.rotation
}

func (g *gameObject) RotationSpeed() mgl32.Vec3 {
	return g.rotationSpeed
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) Color() mgl32.Vec3 {
	if g.lamp != nil && !g.hasColor {
		return g.lamp.Color()
	}
	return g.color
}

func (g *gameObject) Light() *light.PointLight {
	return g.lamp
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	p := g.Position()
	m := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	if g.rotation != (mgl32.Vec3{}) {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(g.rotation.Z())))
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(g.rotation.Y())))
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(g.rotation.X())))
	}
	return m.Mul4(mgl32.Scale3D(g.scale.X(), g.scale.Y(), g.scale.Z()))
}

func (g *gameObject) Update(dt float32) {
	if g.rotationSpeed == (mgl32.Vec3{}) {
		return
	}
	g.rotation = g.rotation.Add(g.rotationSpeed.Mul(dt))
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled = enabled
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.rotationSpeed = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = mgl32.Vec3{sx, sy, sz}
}

func (g *gameObject) SetColor(r, gr, b float32) {
	g.color = mgl32.Vec3{r, gr, b}
	g.hasColor = true
}

func (g *gameObject) SetLight(l *light.PointLight) {
	g.lamp = l
}
