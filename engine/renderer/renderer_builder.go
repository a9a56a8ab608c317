package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the color the framebuffer is cleared to at the start of each frame.
//
// Parameters:
//   - red, green, blue, alpha: the clear color components
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(red, green, blue, alpha float32) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = mgl32.Vec4{red, green, blue, alpha}
	}
}

// WithDepthTest enables or disables depth testing. Enabled by default.
//
// Parameters:
//   - enabled: true to enable depth testing
//
// Returns:
//   - RendererBuilderOption: a function that applies the depth test option to a renderer
func WithDepthTest(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.depthTest = enabled
	}
}

// WithProgram pre-registers an already built Program in the renderer's program cache.
//
// Parameters:
//   - key: the unique identifier for the program
//   - p: the Program to cache
//
// Returns:
//   - RendererBuilderOption: a function that applies the program option to a renderer
func WithProgram(key string, p shader.Program) RendererBuilderOption {
	return func(r *renderer) {
		r.programCache[key] = p
	}
}

// WithLogger sets the logger used by the renderer and handed to programs it builds.
// A nil logger is ignored.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
