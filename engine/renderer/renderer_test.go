package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader/shadertest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records frame state calls and delegates shader work to shadertest.
type fakeBackend struct {
	*shadertest.Device

	viewports  [][2]int
	clearColor mgl32.Vec4
	depthTest  bool
	clears     int
	created    []MeshData
	drawn      []meshHandle
	deleted    []meshHandle
	errors     []uint32
	nextVAO    uint32
}

var _ RendererBackend = &fakeBackend{}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{Device: shadertest.NewDevice("MVP", "color")}
}

func (f *fakeBackend) Init() error     { return nil }
func (f *fakeBackend) Version() string { return "4.1 fake" }
func (f *fakeBackend) ConfigureViewport(width, height int) {
	f.viewports = append(f.viewports, [2]int{width, height})
}
func (f *fakeBackend) SetClearColor(c mgl32.Vec4) { f.clearColor = c }
func (f *fakeBackend) SetDepthTest(enabled bool)  { f.depthTest = enabled }
func (f *fakeBackend) Clear()                     { f.clears++ }
func (f *fakeBackend) CreateMesh(data MeshData) meshHandle {
	f.nextVAO++
	f.created = append(f.created, data)
	return meshHandle{vao: f.nextVAO, indexCount: int32(len(data.Indices))}
}
func (f *fakeBackend) DrawMesh(h meshHandle)   { f.drawn = append(f.drawn, h) }
func (f *fakeBackend) DeleteMesh(h meshHandle) { f.deleted = append(f.deleted, h) }
func (f *fakeBackend) Errors() []uint32 {
	codes := f.errors
	f.errors = nil
	return codes
}

type fixedSurface struct{ w, h int }

func (s fixedSurface) FramebufferSize() (int, int) { return s.w, s.h }

var testSources = []shader.Source{
	{Stage: shader.StageVertex, Code: "void main() {}"},
	{Stage: shader.StageFragment, Code: "void main() {}"},
}

func TestNewRenderer_ConfiguresState(t *testing.T) {
	b := newFakeBackend()
	_, err := newRenderer(BackendTypeGL, b, fixedSurface{800, 600})
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, b.clearColor)
	assert.True(t, b.depthTest)
	assert.Equal(t, [][2]int{{800, 600}}, b.viewports)
}

func TestNewRenderer_Options(t *testing.T) {
	b := newFakeBackend()
	_, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1},
		WithClearColor(0.1, 0.2, 0.3, 1),
		WithDepthTest(false),
		WithLogger(nil),
	)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, b.clearColor)
	assert.False(t, b.depthTest)
}

func TestNewRenderer_SetupErrors(t *testing.T) {
	b := newFakeBackend()
	b.errors = []uint32{0x0500}

	_, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGL))
	assert.Contains(t, err.Error(), "GL_INVALID_ENUM")
}

func TestCheckErrors(t *testing.T) {
	b := newFakeBackend()
	r, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})
	require.NoError(t, err)
	require.NoError(t, r.CheckErrors())

	b.errors = []uint32{0x0502, 0x9999}
	err = r.CheckErrors()

	var glErr *GLError
	require.True(t, errors.As(err, &glErr))
	assert.Equal(t, []uint32{0x0502, 0x9999}, glErr.Codes)
	assert.Contains(t, err.Error(), "GL_INVALID_OPERATION, 0x9999")
	assert.NoError(t, r.CheckErrors(), "errors are drained")
}

func TestResize_ClampsNegative(t *testing.T) {
	b := newFakeBackend()
	r, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})
	require.NoError(t, err)

	r.Resize(1024, 768)
	r.Resize(-1, 0)

	assert.Equal(t, [][2]int{{1, 1}, {1024, 768}, {0, 0}}, b.viewports)
}

func TestBeginFrame_Clears(t *testing.T) {
	b := newFakeBackend()
	r, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})
	require.NoError(t, err)

	r.BeginFrame()
	r.BeginFrame()

	assert.Equal(t, 2, b.clears)
}

func TestRegisterProgram_Caches(t *testing.T) {
	b := newFakeBackend()
	r, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})
	require.NoError(t, err)

	p1, err := r.RegisterProgram("flat", testSources)
	require.NoError(t, err)
	p2, err := r.RegisterProgram("flat", testSources)
	require.NoError(t, err)

	assert.Same(t, p1, p2)
	assert.Len(t, b.Sources, 2, "second registration must not compile again")
	assert.Equal(t, "flat", p1.Label())
	assert.Same(t, p1, r.Program("flat"))
	assert.Nil(t, r.Program("lit"))

	progs := r.Programs()
	delete(progs, "flat")
	assert.NotNil(t, r.Program("flat"))
}

func TestRegisterProgram_CompileError(t *testing.T) {
	b := newFakeBackend()
	b.CompileFailures[shader.StageFragment] = "0:1: syntax error"
	r, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})
	require.NoError(t, err)

	_, err = r.RegisterProgram("broken", testSources)

	assert.True(t, errors.Is(err, shader.ErrCompile))
	assert.Nil(t, r.Program("broken"))
}

func TestNewMesh(t *testing.T) {
	b := newFakeBackend()
	r, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})
	require.NoError(t, err)

	m, err := r.NewMesh(CubeMesh())
	require.NoError(t, err)
	assert.Equal(t, 36, m.IndexCount())

	m.Draw(nil)
	require.Len(t, b.drawn, 1)
	assert.Equal(t, uint32(1), b.drawn[0].vao)

	_, err = r.NewMesh(MeshData{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0, 0}})
	assert.True(t, errors.Is(err, ErrInvalidMesh))
	assert.Len(t, b.created, 1)
}

func TestRelease(t *testing.T) {
	b := newFakeBackend()
	r, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})
	require.NoError(t, err)
	_, err = r.NewMesh(CubeMesh())
	require.NoError(t, err)
	p, err := r.RegisterProgram("flat", testSources)
	require.NoError(t, err)
	handle := p.Handle()

	r.Release()

	assert.Len(t, b.deleted, 1)
	assert.Contains(t, b.DeletedPrograms, handle)
	assert.Empty(t, r.Programs())
}

func TestDevice(t *testing.T) {
	b := newFakeBackend()
	r, err := newRenderer(BackendTypeGL, b, fixedSurface{1, 1})
	require.NoError(t, err)

	assert.Same(t, b, r.Device())
}
