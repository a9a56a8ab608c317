package scene

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene in order.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.Add(obj)
		}
	}
}

// WithLights replaces the scene's LightsSet, e.g. one built with custom capacities.
// Options that add lamps must come after this one.
//
// Parameters:
//   - lights: the light collection
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights light.LightsSet) SceneBuilderOption {
	return func(s *scene) {
		if lights != nil {
			s.lights = lights
		}
	}
}

// WithLampProgram sets the program lamp markers are drawn with, typically a flat
// color program.
//
// Parameters:
//   - p: the lamp program
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLampProgram(p shader.Program) SceneBuilderOption {
	return func(s *scene) {
		s.lampProgram = p
	}
}

// WithAmbientColor sets the ambient term uploaded to the object program.
//
// Parameters:
//   - r, g, b: the ambient color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbientColor(r, g, b float32) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = mgl32.Vec3{r, g, b}
	}
}

// WithShininess sets the specular exponent uploaded to the object program.
//
// Parameters:
//   - shininess: the Phong exponent
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShininess(shininess float32) SceneBuilderOption {
	return func(s *scene) {
		s.shininess = shininess
	}
}

// WithCullingDisabled disables frustum culling so every enabled object is drawn.
//
// Parameters:
//   - disabled: true to disable culling
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}

// WithComputeWorkers sets the number of worker goroutines Update uses for large
// scenes. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.computeWorkers = max(n, 1)
	}
}

// WithLogger sets the scene's logger. A nil logger is ignored.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
