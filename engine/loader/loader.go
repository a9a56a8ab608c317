package loader

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// MeshUploader turns CPU geometry into a drawable GPU mesh. renderer.Renderer
// satisfies it.
type MeshUploader interface {
	NewMesh(data renderer.MeshData) (renderer.Mesh, error)
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	uploader MeshUploader
	logger   *slog.Logger

	modelCache map[string]model.Model

	backend loaderBackend
}

// Loader imports model files as position/normal meshes, uploads them and caches
// the resulting models by path or name. Load and LoadReader upload through the
// MeshUploader, so they must run on the thread that owns the GL context. Get and
// Models may be called from any goroutine.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// The backend is selected from the file extension (.gltf/.glb).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if the format is unsupported or loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader uploading through uploader.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - uploader: the mesh uploader, usually the renderer (must not be nil)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, uploader MeshUploader, options ...LoaderBuilderOption) Loader {
	if uploader == nil {
		panic("loader: NewLoader requires a non-nil MeshUploader")
	}
	l := &loader{
		uploader:   uploader,
		logger:     slog.New(slog.DiscardHandler),
		modelCache: make(map[string]model.Model),
	}

	switch backendType {
	case BackendTypeGLTF:
		fallthrough
	default:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}
	data, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return l.store(path, modelName(path), data)
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	data, err := l.backend.LoadReader(r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.store(name, name, data)
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.modelCache)
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %q", ext)
	}
}

// store uploads data and caches the resulting model under key. If another load
// cached key first, the new mesh is deleted and the cached model returned.
func (l *loader) store(key, name string, data renderer.MeshData) (model.Model, error) {
	mesh, err := l.uploader.NewMesh(data)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", name, err)
	}

	l.mu.Lock()
	if cached, ok := l.modelCache[key]; ok {
		l.mu.Unlock()
		mesh.Delete()
		return cached, nil
	}
	m := model.NewModel(
		model.WithName(name),
		model.WithDrawable(mesh),
		model.WithBoundingRadius(boundingRadius(data)),
	)
	l.modelCache[key] = m
	l.mu.Unlock()

	l.logger.Info("model loaded", "model", name, "vertices", data.VertexCount(), "indices", len(data.Indices))
	return m, nil
}

// modelName derives a model name from its file name without extension.
func modelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
