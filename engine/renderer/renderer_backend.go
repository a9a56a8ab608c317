package renderer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeGL selects the OpenGL 4.1 core profile backend.
	BackendTypeGL RendererBackendType = iota
)

// meshHandle identifies the GPU objects backing one uploaded mesh.
type meshHandle struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	glRendererBackend
}

// glRendererBackend is the set of GPU primitives the renderer drives. Besides the
// frame state it is the shader.Device every Program compiles and uploads through.
type glRendererBackend interface {
	shader.Device

	// Init loads the GL function pointers for the current context.
	Init() error

	// Version returns the driver's GL version string.
	Version() string

	// ConfigureViewport maps normalized device coordinates to the framebuffer.
	ConfigureViewport(width, height int)

	// SetClearColor sets the color used by Clear.
	SetClearColor(c mgl32.Vec4)

	// SetDepthTest enables or disables depth testing.
	SetDepthTest(enabled bool)

	// Clear clears the color and depth buffers.
	Clear()

	// CreateMesh uploads interleaved vertices and indices.
	CreateMesh(data MeshData) meshHandle

	// DrawMesh issues an indexed triangle draw of an uploaded mesh.
	DrawMesh(h meshHandle)

	// DeleteMesh releases the GPU objects of a mesh.
	DeleteMesh(h meshHandle)

	// Errors drains and returns every pending GL error code.
	Errors() []uint32
}
