// Package shadertest provides a recording shader.Device for tests that exercise
// programs, lights and scenes without a graphics context.
package shadertest

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Device is an in-memory shader.Device. Every linked program exposes the uniform
// names given to NewDevice; uploads are recorded per program and per name.
type Device struct {
	// CompileFailures makes CompileStage fail for a stage with the given log.
	CompileFailures map[shader.Stage]string

	// LinkFailure makes LinkProgram fail with the given log when non-empty.
	LinkFailure string

	// Sources records every source passed to CompileStage, in order.
	Sources []string

	// LocationQueries counts UniformLocation calls per name.
	LocationQueries map[string]int

	// Bound is the currently bound program handle.
	Bound uint32

	// DeletedStages and DeletedPrograms record released handles.
	DeletedStages   []uint32
	DeletedPrograms []uint32

	// Uploads counts every uniform upload across all programs.
	Uploads int

	uniforms []string
	values   map[uint32]map[string]any
	next     uint32
}

var _ shader.Device = &Device{}

// NewDevice creates a Device whose programs expose the given uniform names.
func NewDevice(uniforms ...string) *Device {
	return &Device{
		CompileFailures: make(map[shader.Stage]string),
		LocationQueries: make(map[string]int),
		uniforms:        uniforms,
		values:          make(map[uint32]map[string]any),
	}
}

// Value returns the last value uploaded to name while program was bound.
func (d *Device) Value(program uint32, name string) (any, bool) {
	v, ok := d.values[program][name]
	return v, ok
}

// Values returns a copy of every value uploaded to program, keyed by uniform name.
func (d *Device) Values(program uint32) map[string]any {
	out := make(map[string]any, len(d.values[program]))
	for k, v := range d.values[program] {
		out[k] = v
	}
	return out
}

func (d *Device) CompileStage(stage shader.Stage, source string) (uint32, string, bool) {
	d.next++
	d.Sources = append(d.Sources, source)
	if log, ok := d.CompileFailures[stage]; ok {
		return d.next, log, false
	}
	return d.next, "", true
}

func (d *Device) LinkProgram(stages []uint32) (uint32, string, bool) {
	d.next++
	if d.LinkFailure != "" {
		return d.next, d.LinkFailure, false
	}
	d.values[d.next] = make(map[string]any)
	return d.next, "", true
}

func (d *Device) DeleteStage(handle uint32) {
	d.DeletedStages = append(d.DeletedStages, handle)
}

func (d *Device) DeleteProgram(handle uint32) {
	d.DeletedPrograms = append(d.DeletedPrograms, handle)
	delete(d.values, handle)
}

func (d *Device) UseProgram(handle uint32) {
	d.Bound = handle
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.LocationQueries[name]++
	if _, ok := d.values[program]; !ok {
		return shader.NotFound
	}
	return int32(slices.Index(d.uniforms, name))
}

func (d *Device) Uniform1f(location int32, v float32) {
	d.record(location, v)
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.record(location, v)
}

func (d *Device) Uniform3f(location int32, v mgl32.Vec3) {
	d.record(location, v)
}

func (d *Device) UniformMatrix3f(location int32, m mgl32.Mat3) {
	d.record(location, m)
}

func (d *Device) UniformMatrix4f(location int32, m mgl32.Mat4) {
	d.record(location, m)
}

func (d *Device) record(location int32, v any) {
	if location < 0 || int(location) >= len(d.uniforms) {
		panic("shadertest: upload to invalid uniform location")
	}
	vals, ok := d.values[d.Bound]
	if !ok {
		panic("shadertest: upload with no program bound")
	}
	vals[d.uniforms[location]] = v
	d.Uploads++
}
