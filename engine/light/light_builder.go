package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// params collects option values before a light of a specific kind copies the
// fields it uses.
type params struct {
	position    mgl32.Vec3
	direction   mgl32.Vec3
	color       mgl32.Vec3
	attenuation Attenuation
	cutOff      float32
	outerCutOff float32
}

// LightBuilderOption is a function that configures a light during construction.
// Options for fields a kind does not have are ignored by that kind.
type LightBuilderOption func(*params)

func applyParams(opts []LightBuilderOption) params {
	p := params{
		position:    mgl32.Vec3{0, 0, 0},
		direction:   mgl32.Vec3{0, -1, 0},
		color:       mgl32.Vec3{1, 1, 1},
		attenuation: DefaultAttenuation,
		cutOff:      cosDeg(12.5),
		outerCutOff: cosDeg(17.5),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithPosition sets the world-space position of a point or spot light.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - LightBuilderOption: a function that applies the position option
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(p *params) {
		p.position = mgl32.Vec3{x, y, z}
	}
}

// WithDirection sets the world-space direction of a directional or spot light.
// The vector is stored as given; pass a normalized direction.
//
// Parameters:
//   - x, y, z: direction components
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(p *params) {
		p.direction = mgl32.Vec3{x, y, z}
	}
}

// WithColor sets the RGB color/intensity of the light.
//
// Parameters:
//   - r, g, b: color components
//
// Returns:
//   - LightBuilderOption: a function that applies the color option
func WithColor(r, g, b float32) LightBuilderOption {
	return func(p *params) {
		p.color = mgl32.Vec3{r, g, b}
	}
}

// WithAttenuation sets the distance falloff terms of a point or spot light.
//
// Parameters:
//   - constant, linear, quadratic: the attenuation coefficients
//
// Returns:
//   - LightBuilderOption: a function that applies the attenuation option
func WithAttenuation(constant, linear, quadratic float32) LightBuilderOption {
	return func(p *params) {
		p.attenuation = Attenuation{Constant: constant, Linear: linear, Quadratic: quadratic}
	}
}

// WithCutOff sets the inner and outer cone half-angles of a spot light in degrees.
// They are stored as cosines.
//
// Parameters:
//   - innerDeg: inner cone half-angle in degrees
//   - outerDeg: outer cone half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the cutoff option
func WithCutOff(innerDeg, outerDeg float32) LightBuilderOption {
	return func(p *params) {
		p.cutOff = cosDeg(innerDeg)
		p.outerCutOff = cosDeg(outerDeg)
	}
}

// WithCutOffCos sets the spot cone cutoffs directly as cosines.
//
// Parameters:
//   - inner: cos(inner half-angle)
//   - outer: cos(outer half-angle)
//
// Returns:
//   - LightBuilderOption: a function that applies the cutoff option
func WithCutOffCos(inner, outer float32) LightBuilderOption {
	return func(p *params) {
		p.cutOff = inner
		p.outerCutOff = outer
	}
}

// cosDeg converts an angle in degrees to its cosine.
func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(deg) * math.Pi / 180.0))
}
