package model

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// Drawable is anything that can issue its draw calls with an already bound and
// configured shader program.
type Drawable interface {
	// Draw issues the draw calls. The caller has bound p and uploaded the
	// per-object uniforms.
	//
	// Parameters:
	//   - p: the bound program
	Draw(p shader.Program)
}

// model is the implementation of the Model interface.
type model struct {
	name           string
	drawable       Drawable
	boundingRadius float32
}

// Model is a named piece of drawable geometry with a bounding sphere in model space.
// Several scene objects may share one Model.
type Model interface {
	Drawable

	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// BoundingRadius returns the radius of a sphere around the model-space origin
	// that contains the whole mesh. Zero disables culling for the model.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model with the given options.
// A model without a drawable draws nothing.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Draw(p shader.Program) {
	if m.drawable == nil {
		return
	}
	m.drawable.Draw(p)
}
