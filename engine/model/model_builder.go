package model

// ModelBuilderOption is a functional option applied to a model during construction via NewModel.
type ModelBuilderOption func(*model)

// WithName sets the model identifier.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithDrawable sets the geometry the model draws, typically an uploaded mesh.
//
// Parameters:
//   - d: the drawable geometry
//
// Returns:
//   - ModelBuilderOption: a function that applies the drawable option to a model
func WithDrawable(d Drawable) ModelBuilderOption {
	return func(m *model) {
		m.drawable = d
	}
}

// WithBoundingRadius sets the model-space bounding sphere radius used for culling.
//
// Parameters:
//   - radius: the bounding radius
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}
