package shader

import "github.com/go-gl/mathgl/mgl32"

// Stage identifies the pipeline stage a shader source is compiled for.
type Stage int

const (
	// StageVertex is the vertex processing stage.
	StageVertex Stage = iota

	// StageFragment is the fragment processing stage, paired with a vertex stage.
	StageFragment

	// StageGeometry is the optional geometry stage between vertex and fragment.
	StageGeometry
)

// String returns the lower-case stage name used in diagnostics.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// NotFound is the location a Device reports for a uniform that does not exist
// (or was optimised out) in a linked program.
const NotFound int32 = -1

// Device is the contract between a Program and the graphics API that compiles,
// links and feeds it. The renderer's GL backend is the production implementation.
//
// All methods are called from the thread that owns the graphics context.
type Device interface {
	// CompileStage compiles a single stage from source.
	//
	// Parameters:
	//   - stage: the pipeline stage of the source
	//   - source: the shader source text
	//
	// Returns:
	//   - uint32: the compiled stage handle
	//   - string: the compiler info log (may be non-empty on success)
	//   - bool: true if compilation succeeded
	CompileStage(stage Stage, source string) (uint32, string, bool)

	// LinkProgram links compiled stages into a program.
	//
	// Parameters:
	//   - stages: the compiled stage handles to attach
	//
	// Returns:
	//   - uint32: the program handle
	//   - string: the linker info log
	//   - bool: true if linking succeeded
	LinkProgram(stages []uint32) (uint32, string, bool)

	// DeleteStage releases a compiled stage handle.
	DeleteStage(handle uint32)

	// DeleteProgram releases a program handle.
	DeleteProgram(handle uint32)

	// UseProgram binds a program for subsequent uniform and draw calls.
	UseProgram(handle uint32)

	// UniformLocation resolves a uniform name in a linked program.
	//
	// Returns:
	//   - int32: the uniform location, or NotFound
	UniformLocation(program uint32, name string) int32

	// Uniform1f uploads a float to the bound program.
	Uniform1f(location int32, v float32)

	// Uniform1i uploads an int to the bound program.
	Uniform1i(location int32, v int32)

	// Uniform3f uploads a vec3 to the bound program.
	Uniform3f(location int32, v mgl32.Vec3)

	// UniformMatrix3f uploads a column-major mat3 to the bound program.
	UniformMatrix3f(location int32, m mgl32.Mat3)

	// UniformMatrix4f uploads a column-major mat4 to the bound program.
	UniformMatrix4f(location int32, m mgl32.Mat4)
}
