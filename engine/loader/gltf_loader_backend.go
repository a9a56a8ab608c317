package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
)

// gltfLoaderBackendImpl is the loaderBackend for glTF/GLB files. Each call gets a
// fresh parser so the backend holds no per-file state.
type gltfLoaderBackendImpl struct{}

var _ loaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) (renderer.MeshData, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return renderer.MeshData{}, err
	}
	return newGLTFMeshExtractor(parser).Extract()
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader, isBinary bool) (renderer.MeshData, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isBinary); err != nil {
		return renderer.MeshData{}, err
	}
	return newGLTFMeshExtractor(parser).Extract()
}
