package shader

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Source pairs shader source text with the stage it is compiled for.
type Source struct {
	Stage Stage
	Code  string
}

// File pairs a shader source file path with the stage it is compiled for.
type File struct {
	Stage Stage
	Path  string
}

// program is the implementation of the Program interface.
// The location cache is only ever invalidated by a relink, which never happens
// after construction.
type program struct {
	label     string
	handle    uint32
	device    Device
	logger    *slog.Logger
	locations map[string]int32

	pp PreProcessor
}

// Program defines a linked GPU shader program with a cached
// name-to-location uniform table.
//
// Setting a uniform that does not exist in the linked program is a silent no-op,
// so shader variants may omit uniforms that host code still sets.
type Program interface {
	// Label returns the human readable name of the program used in logs and errors.
	//
	// Returns:
	//   - string: the program label
	Label() string

	// Handle returns the device handle of the linked program.
	//
	// Returns:
	//   - uint32: the program handle
	Handle() uint32

	// Use binds this program as the active program for subsequent uniform and draw calls.
	Use()

	// Location resolves a uniform name to its location. The first lookup of a name
	// queries the device and caches the result, including the NotFound sentinel.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - int32: the uniform location, or NotFound
	Location(name string) int32

	// SetFloat sets a float uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetFloat(name string, v float32)

	// SetInt sets an int uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetInt(name string, v int32)

	// SetVec3 sets a vec3 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetVec3(name string, v mgl32.Vec3)

	// SetMat3 sets a mat3 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - m: the column-major matrix
	SetMat3(name string, m mgl32.Mat3)

	// SetMat4 sets a mat4 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - m: the column-major matrix
	SetMat4(name string, m mgl32.Mat4)

	// Delete releases the device program. The Program must not be used afterwards.
	Delete()
}

var _ Program = &program{}

// NewProgram compiles every source, links the stages and returns the linked Program.
// Stage handles are released once linking is done. On failure no device objects
// are left behind and the returned error carries the compiler or linker log.
//
// Parameters:
//   - device: the graphics device that compiles and links the program
//   - sources: the (stage, source) pairs making up the program
//   - options: functional options to configure the program
//
// Returns:
//   - Program: the linked program
//   - error: a *CompileError or *LinkError on failure
func NewProgram(device Device, sources []Source, options ...ProgramBuilderOption) (Program, error) {
	if device == nil {
		panic("shader: NewProgram requires a non-nil Device")
	}
	p := &program{
		label:     "program",
		device:    device,
		logger:    slog.New(slog.DiscardHandler),
		locations: make(map[string]int32),
	}
	for _, opt := range options {
		opt(p)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("shader %q: no stages provided: %w", p.label, ErrLink)
	}

	stages := make([]uint32, 0, len(sources))
	release := func() {
		for _, h := range stages {
			device.DeleteStage(h)
		}
	}

	for _, src := range sources {
		code := src.Code
		if p.pp != nil {
			processed, err := p.pp.Process(code)
			if err != nil {
				release()
				return nil, fmt.Errorf("shader %q: failed to pre-process %s stage: %w", p.label, src.Stage, err)
			}
			code = processed
		}
		h, log, ok := device.CompileStage(src.Stage, code)
		if !ok {
			device.DeleteStage(h)
			release()
			return nil, &CompileError{Label: p.label, Stage: src.Stage, Log: log}
		}
		if log != "" {
			p.logger.Warn("shader compiler output", "program", p.label, "stage", src.Stage.String(), "log", log)
		}
		stages = append(stages, h)
	}

	h, log, ok := device.LinkProgram(stages)
	release()
	if !ok {
		device.DeleteProgram(h)
		return nil, &LinkError{Label: p.label, Log: log}
	}
	p.handle = h
	p.logger.Debug("shader program linked", "program", p.label, "handle", h, "stages", len(stages))
	return p, nil
}

// NewProgramFromFiles reads each file and builds the program with NewProgram.
// When no label option is given the label defaults to the first file path.
//
// Parameters:
//   - device: the graphics device that compiles and links the program
//   - files: the (stage, path) pairs making up the program
//   - options: functional options to configure the program
//
// Returns:
//   - Program: the linked program
//   - error: a read error, *CompileError or *LinkError on failure
func NewProgramFromFiles(device Device, files []File, options ...ProgramBuilderOption) (Program, error) {
	sources := make([]Source, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("shader: failed to read %s source %q: %w", f.Stage, f.Path, err)
		}
		sources = append(sources, Source{Stage: f.Stage, Code: string(data)})
	}
	if len(files) > 0 {
		options = append([]ProgramBuilderOption{WithLabel(files[0].Path)}, options...)
	}
	return NewProgram(device, sources, options...)
}

func (p *program) Label() string {
	return p.label
}

func (p *program) Handle() uint32 {
	return p.handle
}

func (p *program) Use() {
	p.device.UseProgram(p.handle)
}

func (p *program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.device.UniformLocation(p.handle, name)
	if loc < 0 {
		loc = NotFound
		p.logger.Debug("uniform not found", "program", p.label, "uniform", name)
	}
	p.locations[name] = loc
	return loc
}

func (p *program) SetFloat(name string, v float32) {
	if loc := p.Location(name); loc != NotFound {
		p.device.Uniform1f(loc, v)
	}
}

func (p *program) SetInt(name string, v int32) {
	if loc := p.Location(name); loc != NotFound {
		p.device.Uniform1i(loc, v)
	}
}

func (p *program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.Location(name); loc != NotFound {
		p.device.Uniform3f(loc, v)
	}
}

func (p *program) SetMat3(name string, m mgl32.Mat3) {
	if loc := p.Location(name); loc != NotFound {
		p.device.UniformMatrix3f(loc, m)
	}
}

func (p *program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Location(name); loc != NotFound {
		p.device.UniformMatrix4f(loc, m)
	}
}

func (p *program) Delete() {
	p.device.DeleteProgram(p.handle)
	p.handle = 0
	clear(p.locations)
}
