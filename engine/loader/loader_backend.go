package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
)

// loaderBackend imports geometry from one file format.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load imports the geometry of the file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - renderer.MeshData: the combined geometry
	//   - error: error if loading fails
	Load(path string) (renderer.MeshData, error)

	// LoadReader imports geometry from a stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - isBinary: true if the reader provides the binary container (GLB)
	//
	// Returns:
	//   - renderer.MeshData: the combined geometry
	//   - error: error if loading fails
	LoadReader(r io.Reader, isBinary bool) (renderer.MeshData, error)
}
