package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func TestNewGameObject_Defaults(t *testing.T) {
	a, b := NewGameObject(), NewGameObject()

	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Enabled())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Scale())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Color())
	assert.Equal(t, mgl32.Ident4(), a.ModelMatrix())
}

func TestWithID(t *testing.T) {
	id := uuid.MustParse("6f1c1d3e-2a4b-4c5d-8e9f-0a1b2c3d4e5f")
	assert.Equal(t, id, NewGameObject(WithID(id)).ID())
}

func TestModelMatrix_TranslateScale(t *testing.T) {
	obj := NewGameObject(WithPosition(5, 0, 0), WithScale(0.5, 0.5, 0.5))

	m := obj.ModelMatrix()

	got := common.TransformPoint(m, mgl32.Vec3{1, 1, 1})
	assert.True(t, mgl32.Vec3{5.5, 0.5, 0.5}.ApproxEqualThreshold(got, tol), "got %v", got)
}

func TestModelMatrix_RotationThenTranslation(t *testing.T) {
	obj := NewGameObject(WithPosition(0, 1, 0), WithRotation(0, 90, 0))

	got := common.TransformPoint(obj.ModelMatrix(), mgl32.Vec3{1, 0, 0})

	assert.True(t, mgl32.Vec3{0, 1, -1}.ApproxEqualThreshold(got, tol), "got %v", got)
}

func TestUpdate_AdvancesRotation(t *testing.T) {
	obj := NewGameObject(WithRotationSpeed(0, 45, 10))

	obj.Update(2)

	assert.InDelta(t, 90, obj.Rotation().Y(), tol)
	assert.InDelta(t, 20, obj.Rotation().Z(), tol)
}

func TestLamp_FollowsLight(t *testing.T) {
	pl := light.NewPointLight(light.WithPosition(1.2, 1, 2), light.WithColor(1, 0.5, 0.25))
	obj := NewGameObject(WithLight(pl), WithPosition(9, 9, 9), WithScale(0.2, 0.2, 0.2))

	assert.Same(t, pl, obj.Light())
	assert.Equal(t, pl.Position(), obj.Position())
	assert.Equal(t, pl.Color(), obj.Color())

	obj.SetColor(1, 1, 1)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, obj.Color())

	obj.SetLight(nil)
	assert.Equal(t, mgl32.Vec3{9, 9, 9}, obj.Position())
}

func TestSetters(t *testing.T) {
	obj := NewGameObject(WithEnabled(false))
	assert.False(t, obj.Enabled())

	obj.SetEnabled(true)
	obj.SetPosition(1, 2, 3)
	obj.SetRotation(10, 20, 30)
	obj.SetRotationSpeed(1, 2, 3)
	obj.SetScale(2, 2, 2)
	obj.SetModel(nil)

	assert.True(t, obj.Enabled())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, obj.Position())
	assert.Equal(t, mgl32.Vec3{10, 20, 30}, obj.Rotation())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, obj.RotationSpeed())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, obj.Scale())
	assert.Nil(t, obj.Model())
}
