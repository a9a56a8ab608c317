package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGL is wrapped by every error reporting pending OpenGL error flags.
var ErrGL = errors.New("opengl error")

// GLError carries the error codes drained from the context, oldest first.
type GLError struct {
	Codes []uint32
}

func (e *GLError) Error() string {
	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		names[i] = glErrorName(c)
	}
	return fmt.Sprintf("%s: %s", ErrGL, strings.Join(names, ", "))
}

func (e *GLError) Unwrap() error {
	return ErrGL
}

// glErrorName maps glGetError codes to their enum names.
func glErrorName(code uint32) string {
	switch code {
	case 0x0500:
		return "GL_INVALID_ENUM"
	case 0x0501:
		return "GL_INVALID_VALUE"
	case 0x0502:
		return "GL_INVALID_OPERATION"
	case 0x0503:
		return "GL_STACK_OVERFLOW"
	case 0x0504:
		return "GL_STACK_UNDERFLOW"
	case 0x0505:
		return "GL_OUT_OF_MEMORY"
	case 0x0506:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}
