package common

import "github.com/go-gl/mathgl/mgl32"

// TransformPoint applies a 4x4 transform to a point (w = 1) and returns the
// resulting 3D point. A homogeneous divide is performed when the transform is not
// affine; affine transforms leave w at 1 and the divide is skipped.
//
// Parameters:
//   - m: the column-major transform
//   - p: the point to transform
//
// Returns:
//   - mgl32.Vec3: the transformed point
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if w := v.W(); w != 1 && w != 0 {
		return mgl32.Vec3{v.X() / w, v.Y() / w, v.Z() / w}
	}
	return v.Vec3()
}

// TransformDirection applies only the upper-left 3x3 (rotation and scale) part of
// a 4x4 transform to a direction, so translation never affects the result.
//
// Parameters:
//   - m: the column-major transform
//   - d: the direction to transform
//
// Returns:
//   - mgl32.Vec3: the transformed direction
func TransformDirection(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mat3().Mul3x1(d)
}

// NormalMatrix returns the inverse-transpose of the upper-left 3x3 block of m,
// the transform that keeps surface normals perpendicular under non-uniform scale.
// A singular block yields the zero matrix, as mgl32 does for Inv.
//
// Parameters:
//   - m: typically the model-view matrix of a drawn object
//
// Returns:
//   - mgl32.Mat3: the normal matrix
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}
