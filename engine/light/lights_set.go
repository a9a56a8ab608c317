package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Default per-kind capacities. They size the GLSL uniform arrays through the
// MAX_* defines and must match the shader the set uploads into.
const (
	DefaultMaxDirectional = 4
	DefaultMaxPoint       = 16
	DefaultMaxSpot        = 4
)

// LightsSet aggregates every light of a scene, grouped by kind in insertion order,
// and uploads them into a shader program's light uniform arrays each frame.
type LightsSet interface {
	// AddDirectionalLight appends a directional light. No deduplication or capacity check.
	//
	// Parameters:
	//   - l: the light to append
	AddDirectionalLight(l *DirectionalLight)

	// AddPointLight appends a point light. The pointer is retained, so the same light
	// can be shared with a lamp marker.
	//
	// Parameters:
	//   - l: the light to append
	AddPointLight(l *PointLight)

	// AddSpotLight appends a spot light.
	//
	// Parameters:
	//   - l: the light to append
	AddSpotLight(l *SpotLight)

	// Add appends a light of any kind to the sequence for its Kind.
	//
	// Parameters:
	//   - l: the light to append
	Add(l Light)

	// DirectionalLights returns the directional lights in insertion order.
	// The returned slice is a copy.
	//
	// Returns:
	//   - []*DirectionalLight: the directional lights
	DirectionalLights() []*DirectionalLight

	// PointLights returns the point lights in insertion order.
	// The returned slice is a copy.
	//
	// Returns:
	//   - []*PointLight: the point lights
	PointLights() []*PointLight

	// SpotLights returns the spot lights in insertion order.
	// The returned slice is a copy.
	//
	// Returns:
	//   - []*SpotLight: the spot lights
	SpotLights() []*SpotLight

	// Len returns how many lights of the given kind the set holds.
	//
	// Parameters:
	//   - kind: the light kind
	//
	// Returns:
	//   - int: the number of lights of that kind
	Len(kind Kind) int

	// Capacity returns the maximum number of lights of the given kind the target
	// shader can receive.
	//
	// Parameters:
	//   - kind: the light kind
	//
	// Returns:
	//   - int: the capacity
	Capacity(kind Kind) int

	// Validate checks every kind against its capacity.
	//
	// Returns:
	//   - error: a *CapacityError wrapping ErrCapacityExceeded for the first kind over
	//     capacity, or nil
	Validate() error

	// Update uploads every light into u in view space, along with the per-kind counts.
	// The capacity check runs before any upload; on failure nothing is uploaded.
	//
	// Parameters:
	//   - u: the bound shader program receiving the uniforms
	//   - view: the camera view matrix for this frame
	//
	// Returns:
	//   - error: a *CapacityError if any kind exceeds its capacity
	Update(u UniformSetter, view mgl32.Mat4) error

	// UpdateAll uploads every light into u transformed by an arbitrary matrix
	// (model or view), along with the per-kind counts.
	//
	// Parameters:
	//   - u: the bound shader program receiving the uniforms
	//   - transform: the transform applied to positions and directions
	//
	// Returns:
	//   - error: a *CapacityError if any kind exceeds its capacity
	UpdateAll(u UniformSetter, transform mgl32.Mat4) error
}

// lightsSetImpl is the implementation of the LightsSet interface.
type lightsSetImpl struct {
	lights   [numKinds][]Light
	slots    [numKinds][]Slot
	capacity [numKinds]int
}

var _ LightsSet = &lightsSetImpl{}

// NewLightsSet creates an empty LightsSet with the default capacities unless
// overridden by options.
//
// Parameters:
//   - opts: variadic list of LightsSetBuilderOption functions
//
// Returns:
//   - LightsSet: the new set
func NewLightsSet(opts ...LightsSetBuilderOption) LightsSet {
	s := &lightsSetImpl{
		capacity: [numKinds]int{
			KindDirectional: DefaultMaxDirectional,
			KindPoint:       DefaultMaxPoint,
			KindSpot:        DefaultMaxSpot,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *lightsSetImpl) AddDirectionalLight(l *DirectionalLight) {
	s.Add(l)
}

func (s *lightsSetImpl) AddPointLight(l *PointLight) {
	s.Add(l)
}

func (s *lightsSetImpl) AddSpotLight(l *SpotLight) {
	s.Add(l)
}

func (s *lightsSetImpl) Add(l Light) {
	if l == nil {
		panic("light: cannot add a nil light")
	}
	k := l.Kind()
	s.lights[k] = append(s.lights[k], l)
	if n := len(s.lights[k]); n > len(s.slots[k]) {
		s.slots[k] = append(s.slots[k], NewSlot(k, n-1))
	}
}

func (s *lightsSetImpl) DirectionalLights() []*DirectionalLight {
	out := make([]*DirectionalLight, 0, len(s.lights[KindDirectional]))
	for _, l := range s.lights[KindDirectional] {
		out = append(out, l.(*DirectionalLight))
	}
	return out
}

func (s *lightsSetImpl) PointLights() []*PointLight {
	out := make([]*PointLight, 0, len(s.lights[KindPoint]))
	for _, l := range s.lights[KindPoint] {
		out = append(out, l.(*PointLight))
	}
	return out
}

func (s *lightsSetImpl) SpotLights() []*SpotLight {
	out := make([]*SpotLight, 0, len(s.lights[KindSpot]))
	for _, l := range s.lights[KindSpot] {
		out = append(out, l.(*SpotLight))
	}
	return out
}

func (s *lightsSetImpl) Len(kind Kind) int {
	if kind < 0 || kind >= numKinds {
		return 0
	}
	return len(s.lights[kind])
}

func (s *lightsSetImpl) Capacity(kind Kind) int {
	if kind < 0 || kind >= numKinds {
		return 0
	}
	return s.capacity[kind]
}

func (s *lightsSetImpl) Validate() error {
	for k := Kind(0); k < numKinds; k++ {
		if n := len(s.lights[k]); n > s.capacity[k] {
			return &CapacityError{Kind: k, Count: n, Capacity: s.capacity[k]}
		}
	}
	return nil
}

func (s *lightsSetImpl) Update(u UniformSetter, view mgl32.Mat4) error {
	return s.UpdateAll(u, view)
}

func (s *lightsSetImpl) UpdateAll(u UniformSetter, transform mgl32.Mat4) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for k := Kind(0); k < numKinds; k++ {
		u.SetInt(countName(k), int32(len(s.lights[k])))
		for i, l := range s.lights[k] {
			l.ContributeToShader(u, &s.slots[k][i], transform)
		}
	}
	return nil
}
