package light

import (
	_ "embed"
	"strconv"
)

// Names of the uniform arrays and counters the lit shader declares.
const (
	DirectionalArray = "dir_lights"
	PointArray       = "point_lights"
	SpotArray        = "spot_lights"

	DirectionalCount = "nb_dir_lights"
	PointCount       = "nb_point_lights"
	SpotCount        = "nb_spot_lights"
)

// Preprocessor keys for the GLSL light declarations and their array sizes.
const (
	IncludeKey        = "lights"
	MaxDirectionalDef = "MAX_DIR_LIGHTS"
	MaxPointDef       = "MAX_POINT_LIGHTS"
	MaxSpotDef        = "MAX_SPOT_LIGHTS"
)

// GLSLSource declares the light structs and uniform arrays matching the names
// produced by Slot. It expects the MAX_* capacity macros to be defined first.
//
//go:embed lights.glsl
var GLSLSource string

// Slot holds the fully qualified uniform names of one light array element,
// e.g. "point_lights[3].position". Fields a kind does not use are empty.
type Slot struct {
	Position    string
	Direction   string
	Color       string
	Constant    string
	Linear      string
	Quadratic   string
	CutOff      string
	OuterCutOff string
}

// NewSlot builds the uniform names for element index of the array of the given kind.
//
// Parameters:
//   - kind: the light kind selecting the uniform array
//   - index: the array element index
//
// Returns:
//   - Slot: the pre-built names
func NewSlot(kind Kind, index int) Slot {
	prefix := arrayName(kind) + "[" + strconv.Itoa(index) + "]."
	s := Slot{Color: prefix + "color"}
	switch kind {
	case KindDirectional:
		s.Direction = prefix + "direction"
	case KindPoint:
		s.Position = prefix + "position"
		s.Constant = prefix + "constant"
		s.Linear = prefix + "linear"
		s.Quadratic = prefix + "quadratic"
	case KindSpot:
		s.Position = prefix + "position"
		s.Direction = prefix + "direction"
		s.Constant = prefix + "constant"
		s.Linear = prefix + "linear"
		s.Quadratic = prefix + "quadratic"
		s.CutOff = prefix + "cut_off"
		s.OuterCutOff = prefix + "outer_cut_off"
	}
	return s
}

// CapacityDefine returns the GLSL macro name sizing the array of kind.
func CapacityDefine(kind Kind) string {
	switch kind {
	case KindDirectional:
		return MaxDirectionalDef
	case KindPoint:
		return MaxPointDef
	default:
		return MaxSpotDef
	}
}

func arrayName(kind Kind) string {
	switch kind {
	case KindDirectional:
		return DirectionalArray
	case KindPoint:
		return PointArray
	default:
		return SpotArray
	}
}

func countName(kind Kind) string {
	switch kind {
	case KindDirectional:
		return DirectionalCount
	case KindPoint:
		return PointCount
	default:
		return SpotCount
	}
}
