package renderer

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the framebuffer the renderer draws into. window.Window satisfies it.
type Surface interface {
	FramebufferSize() (width, height int)
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	programCache map[string]shader.Program
	meshes       []Mesh

	backendType RendererBackendType
	backend     RendererBackend
	logger      *slog.Logger

	clearColor mgl32.Vec4
	depthTest  bool
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU backend, a cache of shader programs keyed by name and
// the meshes uploaded through it. All calls must come from the thread that owns the
// graphics context.
type Renderer interface {
	// Device returns the shader.Device programs compile and upload through.
	//
	// Returns:
	//   - shader.Device: the backend's device
	Device() shader.Device

	// Program retrieves the cached Program associated with the given key.
	// If the Program does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Program to retrieve
	//
	// Returns:
	//   - shader.Program: the Program associated with the key, or nil if not found
	Program(key string) shader.Program

	// Programs retrieves a copy of the program cache.
	//
	// Returns:
	//   - map[string]shader.Program: program keys mapped to their programs
	Programs() map[string]shader.Program

	// RegisterProgram compiles and links a program and caches it under key.
	// A key that is already registered returns the cached program without compiling.
	//
	// Parameters:
	//   - key: the unique identifier for the program
	//   - sources: the stage sources to compile
	//   - options: options forwarded to shader.NewProgram
	//
	// Returns:
	//   - shader.Program: the cached or newly built program
	//   - error: a compile or link error from shader.NewProgram
	RegisterProgram(key string, sources []shader.Source, options ...shader.ProgramBuilderOption) (shader.Program, error)

	// SetProgram adds or replaces a Program in the cache.
	//
	// Parameters:
	//   - key: the unique identifier for the program
	//   - p: the program to cache
	SetProgram(key string, p shader.Program)

	// NewMesh validates and uploads geometry.
	//
	// Parameters:
	//   - data: interleaved vertices and triangle indices
	//
	// Returns:
	//   - Mesh: the uploaded mesh
	//   - error: an error wrapping ErrInvalidMesh if the data is malformed
	NewMesh(data MeshData) (Mesh, error)

	// Resize updates the viewport for a new framebuffer size.
	// This should be called from the window's resize callback.
	//
	// Parameters:
	//   - width: the new width of the framebuffer in pixels
	//   - height: the new height of the framebuffer in pixels
	Resize(width, height int)

	// BeginFrame clears the color and depth buffers.
	BeginFrame()

	// CheckErrors drains the context's error flags.
	//
	// Returns:
	//   - error: a *GLError wrapping ErrGL, or nil when no flag was set
	CheckErrors() error

	// Release deletes every cached program and uploaded mesh.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the context current on the calling thread,
// configures clear color, depth test and viewport, and checks for GL errors.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - surface: the framebuffer being rendered to, typically the window
//   - options: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the new renderer
//   - error: an error if the backend fails to initialise or leaves GL errors behind
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	var backend RendererBackend
	switch backendType {
	case BackendTypeGL:
		fallthrough
	default:
		backend = newGLRendererBackend()
	}
	if err := backend.Init(); err != nil {
		return nil, err
	}
	return newRenderer(backendType, backend, surface, options...)
}

// newRenderer configures an initialised backend.
func newRenderer(backendType RendererBackendType, backend RendererBackend, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		programCache: make(map[string]shader.Program),
		backendType:  backendType,
		backend:      backend,
		logger:       slog.New(slog.DiscardHandler),
		clearColor:   mgl32.Vec4{0, 0, 0, 1},
		depthTest:    true,
	}
	for _, opt := range options {
		opt(r)
	}

	r.logger.Info("renderer initialized", "gl_version", backend.Version())
	backend.SetClearColor(r.clearColor)
	backend.SetDepthTest(r.depthTest)
	r.Resize(surface.FramebufferSize())

	if err := r.CheckErrors(); err != nil {
		return nil, fmt.Errorf("renderer setup: %w", err)
	}
	return r, nil
}

func (r *renderer) Device() shader.Device {
	return r.backend
}

func (r *renderer) Program(key string) shader.Program {
	return r.programCache[key]
}

func (r *renderer) Programs() map[string]shader.Program {
	return maps.Clone(r.programCache)
}

func (r *renderer) RegisterProgram(key string, sources []shader.Source, options ...shader.ProgramBuilderOption) (shader.Program, error) {
	if p, exists := r.programCache[key]; exists {
		return p, nil
	}
	opts := append([]shader.ProgramBuilderOption{shader.WithLabel(key), shader.WithLogger(r.logger)}, options...)
	p, err := shader.NewProgram(r.backend, sources, opts...)
	if err != nil {
		return nil, err
	}
	r.programCache[key] = p
	r.logger.Debug("program registered", "key", key, "handle", p.Handle())
	return p, nil
}

func (r *renderer) SetProgram(key string, p shader.Program) {
	r.programCache[key] = p
}

func (r *renderer) NewMesh(data MeshData) (Mesh, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	m := &mesh{backend: r.backend, handle: r.backend.CreateMesh(data)}
	r.meshes = append(r.meshes, m)
	return m, nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureViewport(max(width, 0), max(height, 0))
}

func (r *renderer) BeginFrame() {
	r.backend.Clear()
}

func (r *renderer) CheckErrors() error {
	codes := r.backend.Errors()
	if len(codes) == 0 {
		return nil
	}
	return &GLError{Codes: codes}
}

func (r *renderer) Release() {
	for _, m := range r.meshes {
		m.Delete()
	}
	r.meshes = nil
	for key, p := range r.programCache {
		p.Delete()
		delete(r.programCache, key)
	}
}
