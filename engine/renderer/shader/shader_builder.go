package shader

import "log/slog"

// ProgramBuilderOption is a functional option for configuring a Program during construction.
type ProgramBuilderOption func(*program)

// WithLabel sets the label used in logs and errors.
//
// Parameters:
//   - label: the program label
//
// Returns:
//   - ProgramBuilderOption: option function to apply
func WithLabel(label string) ProgramBuilderOption {
	return func(p *program) {
		p.label = label
	}
}

// WithLogger sets the logger that receives compiler warnings and missing uniform
// notices. Missing uniforms are reported once per name at debug level.
//
// Parameters:
//   - logger: the logger to use (nil keeps the discarding default)
//
// Returns:
//   - ProgramBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ProgramBuilderOption {
	return func(p *program) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPreProcessor runs every stage source through pp before compiling.
//
// Parameters:
//   - pp: the pre-processor resolving @oxy: annotations
//
// Returns:
//   - ProgramBuilderOption: option function to apply
func WithPreProcessor(pp PreProcessor) ProgramBuilderOption {
	return func(p *program) {
		p.pp = pp
	}
}
