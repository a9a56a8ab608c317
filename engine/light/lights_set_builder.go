package light

// LightsSetBuilderOption is a function that configures a LightsSet during construction.
type LightsSetBuilderOption func(*lightsSetImpl)

// WithCapacity sets how many lights of kind the target shader's uniform array holds.
// Negative values are treated as zero.
//
// Parameters:
//   - kind: the light kind
//   - n: the array size declared by the shader
//
// Returns:
//   - LightsSetBuilderOption: a function that applies the capacity option
func WithCapacity(kind Kind, n int) LightsSetBuilderOption {
	return func(s *lightsSetImpl) {
		if kind < 0 || kind >= numKinds {
			return
		}
		s.capacity[kind] = max(n, 0)
	}
}
