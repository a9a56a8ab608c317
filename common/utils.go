package common

// Coalesce returns the first value that is not the zero value of T, or the zero value
// when every value is zero. Config conversion uses it to fall back to defaults.
//
// Parameters:
//   - values: candidates in order of preference
//
// Returns:
//   - T: the first non-zero candidate
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// AllZero reports whether every value is the zero value of T. An empty list is all zero.
//
// Parameters:
//   - values: the values to check
//
// Returns:
//   - bool: true if no value is set
func AllZero[T comparable](values ...T) bool {
	return Coalesce(values...) == *new(T)
}
