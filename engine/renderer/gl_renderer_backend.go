package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// glBackend implements RendererBackend on go-gl. Every method must run on the
// thread owning the current context.
type glBackend struct{}

var _ RendererBackend = &glBackend{}

func newGLRendererBackend() *glBackend {
	return &glBackend{}
}

func (b *glBackend) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return nil
}

func (b *glBackend) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (b *glBackend) ConfigureViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *glBackend) SetClearColor(c mgl32.Vec4) {
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
}

func (b *glBackend) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (b *glBackend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *glBackend) CreateMesh(data MeshData) meshHandle {
	var h meshHandle
	gl.GenVertexArrays(1, &h.vao)
	gl.BindVertexArray(h.vao)

	gl.GenBuffers(1, &h.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*4, gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &h.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)

	stride := int32(VertexStride * 4)
	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointer(AttribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(AttribNormal)
	gl.VertexAttribPointer(AttribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.BindVertexArray(0)
	h.indexCount = int32(len(data.Indices))
	return h
}

func (b *glBackend) DrawMesh(h meshHandle) {
	gl.BindVertexArray(h.vao)
	gl.DrawElements(gl.TRIANGLES, h.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (b *glBackend) DeleteMesh(h meshHandle) {
	gl.DeleteBuffers(1, &h.ebo)
	gl.DeleteBuffers(1, &h.vbo)
	gl.DeleteVertexArrays(1, &h.vao)
}

func (b *glBackend) Errors() []uint32 {
	var codes []uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, code)
	}
	return codes
}

// --- shader.Device ---

func glStage(stage shader.Stage) uint32 {
	switch stage {
	case shader.StageFragment:
		return gl.FRAGMENT_SHADER
	case shader.StageGeometry:
		return gl.GEOMETRY_SHADER
	default:
		return gl.VERTEX_SHADER
	}
}

func (b *glBackend) CompileStage(stage shader.Stage, source string) (uint32, string, bool) {
	handle := gl.CreateShader(glStage(stage))
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csource, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	var logLen int32
	gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLen)
	return handle, infoLog(logLen, func(buf *uint8) {
		gl.GetShaderInfoLog(handle, logLen, nil, buf)
	}), status != gl.FALSE
}

func (b *glBackend) LinkProgram(stages []uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range stages {
		gl.DetachShader(program, s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	return program, infoLog(logLen, func(buf *uint8) {
		gl.GetProgramInfoLog(program, logLen, nil, buf)
	}), status != gl.FALSE
}

// infoLog reads a driver log of logLen bytes including the terminating NUL.
func infoLog(logLen int32, read func(buf *uint8)) string {
	if logLen <= 1 {
		return ""
	}
	buf := make([]byte, logLen)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (b *glBackend) DeleteStage(handle uint32) {
	gl.DeleteShader(handle)
}

func (b *glBackend) DeleteProgram(handle uint32) {
	gl.DeleteProgram(handle)
}

func (b *glBackend) UseProgram(handle uint32) {
	gl.UseProgram(handle)
}

func (b *glBackend) UniformLocation(program uint32, name string) int32 {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	return gl.GetUniformLocation(program, *cname)
}

func (b *glBackend) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *glBackend) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *glBackend) Uniform3f(location int32, v mgl32.Vec3) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (b *glBackend) UniformMatrix3f(location int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (b *glBackend) UniformMatrix4f(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}
