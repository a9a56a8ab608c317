package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 1, 0})
	return NewFrustum(proj.Mul4(view))
}

func TestNewFrustum_PlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Len(), 1e-5, "plane %d", i)
	}
}

func TestFrustum_IntersectsSphere(t *testing.T) {
	f := testFrustum()
	cases := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"in front", mgl32.Vec3{0, 0, 0}, 0.5, true},
		{"behind camera", mgl32.Vec3{0, 0, 10}, 0.5, false},
		{"beyond far plane", mgl32.Vec3{0, 0, -200}, 1, false},
		{"far left", mgl32.Vec3{-50, 0, 0}, 1, false},
		{"straddling near plane", mgl32.Vec3{0, 0, 3.5}, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.IntersectsSphere(tc.center, tc.radius))
		})
	}
}
