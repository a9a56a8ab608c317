package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// Vertex layout shared by every mesh: position (vec3) then normal (vec3).
const (
	VertexStride   = 6
	AttribPosition = 0
	AttribNormal   = 1
)

// ErrInvalidMesh is returned when mesh data does not match the vertex layout.
var ErrInvalidMesh = errors.New("invalid mesh data")

// MeshData is CPU-side geometry: interleaved position/normal floats and triangle indices.
type MeshData struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of whole vertices in Vertices.
func (d MeshData) VertexCount() int {
	return len(d.Vertices) / VertexStride
}

// Validate checks the layout and that every index addresses an existing vertex.
//
// Returns:
//   - error: an error wrapping ErrInvalidMesh, or nil
func (d MeshData) Validate() error {
	if len(d.Vertices) == 0 || len(d.Vertices)%VertexStride != 0 {
		return fmt.Errorf("%w: %d floats is not a multiple of %d", ErrInvalidMesh, len(d.Vertices), VertexStride)
	}
	if len(d.Indices) == 0 || len(d.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices do not form triangles", ErrInvalidMesh, len(d.Indices))
	}
	n := uint32(d.VertexCount())
	for i, idx := range d.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// Mesh is geometry uploaded to the GPU. It satisfies model.Drawable.
type Mesh interface {
	model.Drawable

	// IndexCount returns the number of indices drawn per Draw call.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Delete releases the GPU buffers. The mesh must not be drawn afterwards.
	Delete()
}

// mesh is the implementation of the Mesh interface.
type mesh struct {
	backend RendererBackend
	handle  meshHandle
}

var _ Mesh = &mesh{}

// Draw issues the draw call; the caller has already bound p and set its uniforms.
func (m *mesh) Draw(_ shader.Program) {
	m.backend.DrawMesh(m.handle)
}

func (m *mesh) IndexCount() int {
	return int(m.handle.indexCount)
}

func (m *mesh) Delete() {
	m.backend.DeleteMesh(m.handle)
}
