// pre_processor.go implements the GLSL shader pre-processor. It scans shader source
// for @oxy: annotations and replaces them with registered include blocks or #define
// lines. Programs run every stage source through the pre-processor configured with
// WithPreProcessor before compiling.
package shader

import (
	"fmt"
	"strconv"
	"strings"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes maps include keys to GLSL source blocks.
	includes map[string]string

	// defines maps constant names to their integer values.
	defines map[string]int

	// annotations accumulates the annotations seen during the last Process call.
	annotations []Annotation
}

// PreProcessor processes GLSL source containing @oxy: annotations.
type PreProcessor interface {
	// Process replaces every annotation in source with its registered output.
	//
	// Parameters:
	//   - source: the raw GLSL source
	//
	// Returns:
	//   - string: the processed source
	//   - error: an error if an annotation is malformed or references an unregistered key
	Process(source string) (string, error)

	// Annotations returns the annotations collected during the most recent Process call,
	// in source order.
	//
	// Returns:
	//   - []Annotation: the collected annotations
	Annotations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// PreProcessorOption is a functional option for configuring a PreProcessor.
type PreProcessorOption func(*preProcessor)

// WithInclude registers a GLSL source block for //@oxy:include <key>.
//
// Parameters:
//   - key: the include key
//   - source: the GLSL source injected at the annotation site
//
// Returns:
//   - PreProcessorOption: option function to apply
func WithInclude(key, source string) PreProcessorOption {
	return func(p *preProcessor) {
		p.includes[key] = source
	}
}

// WithDefine registers an integer constant for //@oxy:define <NAME>.
//
// Parameters:
//   - name: the constant name
//   - value: the constant value
//
// Returns:
//   - PreProcessorOption: option function to apply
func WithDefine(name string, value int) PreProcessorOption {
	return func(p *preProcessor) {
		p.defines[name] = value
	}
}

// NewPreProcessor creates a PreProcessor with the given registrations.
//
// Parameters:
//   - options: functional options registering includes and defines
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor(options ...PreProcessorOption) PreProcessor {
	p := &preProcessor{
		includes: make(map[string]string),
		defines:  make(map[string]int),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.annotations = p.annotations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			src, ok := p.includes[a.Arg]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", a.Line, a.Arg)
			}
			out = append(out, src)
		case AnnotationTypeDefine:
			v, ok := p.defines[a.Arg]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:define constant %q", a.Line, a.Arg)
			}
			out = append(out, "#define "+a.Arg+" "+strconv.Itoa(v))
		}
		p.annotations = append(p.annotations, *a)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Annotations() []Annotation {
	return p.annotations
}
