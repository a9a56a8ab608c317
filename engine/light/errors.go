package light

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is returned when a LightsSet holds more lights of a kind
// than the shader's uniform array for that kind can receive.
var ErrCapacityExceeded = errors.New("light capacity exceeded")

// CapacityError reports which kind overflowed and by how much.
type CapacityError struct {
	Kind     Kind
	Count    int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s lights: %d exceeds capacity %d", e.Kind, e.Count, e.Capacity)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
