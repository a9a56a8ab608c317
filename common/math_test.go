package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransformDirection_IgnoresTranslation(t *testing.T) {
	view := mgl32.Translate3D(10, -4, 7)
	dir := mgl32.Vec3{-0.2, -1, -0.3}

	assert.Equal(t, dir, TransformDirection(view, dir))
}

func TestTransformDirection_Rotates(t *testing.T) {
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(90))
	got := TransformDirection(rot, mgl32.Vec3{1, 0, 0})

	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-6), "got %v", got)
}

func TestTransformPoint(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	assert.Equal(t, mgl32.Vec3{1.5, 2, 3}, TransformPoint(m, mgl32.Vec3{0.5, 0, 0}))

	// non-affine: uniform scale stored in w
	proj := mgl32.Ident4()
	proj[15] = 2
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, TransformPoint(proj, mgl32.Vec3{2, 4, 6}))
}

func TestNormalMatrix(t *testing.T) {
	// rotation + translation: the normal matrix is the rotation itself
	m := mgl32.Translate3D(5, 0, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(30)))
	assert.True(t, NormalMatrix(m).ApproxEqualThreshold(m.Mat3(), 1e-6))

	// non-uniform scale: normals scale by the reciprocal
	s := mgl32.Scale3D(2, 1, 1)
	n := NormalMatrix(s).Mul3x1(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0.5, n.X(), 1e-6)
}
