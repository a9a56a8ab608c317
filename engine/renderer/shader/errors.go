package shader

import (
	"errors"
	"fmt"
)

var (
	// ErrCompile is wrapped by every CompileError.
	ErrCompile = errors.New("shader: compile failed")

	// ErrLink is wrapped by every LinkError.
	ErrLink = errors.New("shader: link failed")
)

// CompileError reports a stage that failed to compile together with the
// compiler diagnostic.
type CompileError struct {
	Label string
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %q: %s stage failed to compile: %s", e.Label, e.Stage, e.Log)
}

func (e *CompileError) Unwrap() error {
	return ErrCompile
}

// LinkError reports a program that failed to link together with the linker
// diagnostic.
type LinkError struct {
	Label string
	Log   string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader %q: program failed to link: %s", e.Label, e.Log)
}

func (e *LinkError) Unwrap() error {
	return ErrLink
}
