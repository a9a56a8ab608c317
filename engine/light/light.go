package light

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies one of the closed set of light shapes.
type Kind int

const (
	// KindDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. No distance attenuation.
	KindDirectional Kind = iota

	// KindPoint represents a light that emits in all directions from a position and
	// attenuates with distance.
	KindPoint

	// KindSpot represents a light that emits in a cone from a position along a
	// direction, attenuating with distance and with angle from the cone axis.
	KindSpot

	// numKinds is the number of light kinds.
	numKinds
)

// String returns the lower-case kind name used in errors and logs.
func (k Kind) String() string {
	switch k {
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	case KindSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// UniformSetter is the subset of a shader program a light needs to upload itself.
// shader.Program satisfies it.
type UniformSetter interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
}

// Light is the closed set {*DirectionalLight, *PointLight, *SpotLight}.
//
// Stored parameters are always world space. ContributeToShader derives the
// transformed values on the fly and never writes them back, so repeated frames do
// not accumulate transform error.
type Light interface {
	// Kind returns which of the three shapes this light is.
	//
	// Returns:
	//   - Kind: the light kind
	Kind() Kind

	// Color returns the RGB color/intensity of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// ContributeToShader transforms the light into the space described by transform
	// (usually the camera view) and uploads every field under the slot's names.
	// Directions use only the rotation part of transform; positions use the full
	// homogeneous transform.
	//
	// Parameters:
	//   - u: the program receiving the uniforms
	//   - slot: the pre-built uniform names for this light's array index
	//   - transform: the world-to-target-space transform
	ContributeToShader(u UniformSetter, slot *Slot, transform mgl32.Mat4)

	sealed()
}

var (
	_ Light = &DirectionalLight{}
	_ Light = &PointLight{}
	_ Light = &SpotLight{}
)

// Attenuation holds the constant, linear and quadratic distance falloff terms:
// intensity / (Constant + Linear*d + Quadratic*d*d).
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DefaultAttenuation covers a range of roughly 50 world units.
var DefaultAttenuation = Attenuation{Constant: 1.0, Linear: 0.09, Quadratic: 0.032}

// DirectionalLight is a light infinitely far away shining along a direction.
type DirectionalLight struct {
	direction mgl32.Vec3
	color     mgl32.Vec3
}

// NewDirectionalLight creates a DirectionalLight. The direction is stored as given;
// callers pass a normalized vector.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions (WithDirection, WithColor)
//
// Returns:
//   - *DirectionalLight: the new light
func NewDirectionalLight(opts ...LightBuilderOption) *DirectionalLight {
	p := applyParams(opts)
	return &DirectionalLight{direction: p.direction, color: p.color}
}

func (l *DirectionalLight) Kind() Kind {
	return KindDirectional
}

func (l *DirectionalLight) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *DirectionalLight) Color() mgl32.Vec3 {
	return l.color
}

func (l *DirectionalLight) ContributeToShader(u UniformSetter, slot *Slot, transform mgl32.Mat4) {
	u.SetVec3(slot.Direction, common.TransformDirection(transform, l.direction))
	u.SetVec3(slot.Color, l.color)
}

func (l *DirectionalLight) sealed() {}

// PointLight is an omnidirectional light at a position.
// A *PointLight may be shared by a LightsSet and a lamp marker drawn in the scene.
type PointLight struct {
	position    mgl32.Vec3
	color       mgl32.Vec3
	attenuation Attenuation
}

// NewPointLight creates a PointLight.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions (WithPosition, WithColor, WithAttenuation)
//
// Returns:
//   - *PointLight: the new light
func NewPointLight(opts ...LightBuilderOption) *PointLight {
	p := applyParams(opts)
	return &PointLight{position: p.position, color: p.color, attenuation: p.attenuation}
}

func (l *PointLight) Kind() Kind {
	return KindPoint
}

func (l *PointLight) Position() mgl32.Vec3 {
	return l.position
}

func (l *PointLight) Color() mgl32.Vec3 {
	return l.color
}

func (l *PointLight) Attenuation() Attenuation {
	return l.attenuation
}

func (l *PointLight) ContributeToShader(u UniformSetter, slot *Slot, transform mgl32.Mat4) {
	u.SetVec3(slot.Position, common.TransformPoint(transform, l.position))
	u.SetVec3(slot.Color, l.color)
	u.SetFloat(slot.Constant, l.attenuation.Constant)
	u.SetFloat(slot.Linear, l.attenuation.Linear)
	u.SetFloat(slot.Quadratic, l.attenuation.Quadratic)
}

func (l *PointLight) sealed() {}

// SpotLight is a cone of light from a position along a direction.
// Cutoffs are stored as cosines of the half-angles, the form the shader compares against.
type SpotLight struct {
	position    mgl32.Vec3
	direction   mgl32.Vec3
	color       mgl32.Vec3
	attenuation Attenuation
	cutOff      float32
	outerCutOff float32
}

// NewSpotLight creates a SpotLight. The direction is stored as given.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions
//
// Returns:
//   - *SpotLight: the new light
func NewSpotLight(opts ...LightBuilderOption) *SpotLight {
	p := applyParams(opts)
	return &SpotLight{
		position:    p.position,
		direction:   p.direction,
		color:       p.color,
		attenuation: p.attenuation,
		cutOff:      p.cutOff,
		outerCutOff: p.outerCutOff,
	}
}

func (l *SpotLight) Kind() Kind {
	return KindSpot
}

func (l *SpotLight) Position() mgl32.Vec3 {
	return l.position
}

func (l *SpotLight) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *SpotLight) Color() mgl32.Vec3 {
	return l.color
}

func (l *SpotLight) Attenuation() Attenuation {
	return l.attenuation
}

// CutOff returns the cosine of the inner cone half-angle.
func (l *SpotLight) CutOff() float32 {
	return l.cutOff
}

// OuterCutOff returns the cosine of the outer cone half-angle.
func (l *SpotLight) OuterCutOff() float32 {
	return l.outerCutOff
}

func (l *SpotLight) ContributeToShader(u UniformSetter, slot *Slot, transform mgl32.Mat4) {
	u.SetVec3(slot.Position, common.TransformPoint(transform, l.position))
	u.SetVec3(slot.Direction, common.TransformDirection(transform, l.direction))
	u.SetVec3(slot.Color, l.color)
	u.SetFloat(slot.Constant, l.attenuation.Constant)
	u.SetFloat(slot.Linear, l.attenuation.Linear)
	u.SetFloat(slot.Quadratic, l.attenuation.Quadratic)
	u.SetFloat(slot.CutOff, l.cutOff)
	u.SetFloat(slot.OuterCutOff, l.outerCutOff)
}

func (l *SpotLight) sealed() {}
