package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[window]
title = "lit"
width = 1280
height = 720

[camera]
position = [1.0, 2.0, 5.0]
speed = 4.0

[engine]
log_level = "debug"
profiling = true

[lights.capacity]
point = 2

[[lights.directional]]
direction = [-0.2, -1.0, -0.3]
color = [0.4, 0.4, 0.4]

[[lights.point]]
position = [0.7, 0.2, 2.0]
lamp = true

[[lights.point]]
position = [2.3, -3.3, -4.0]
color = [1.0, 0.0, 0.0]
constant = 1.0
linear = 0.22
quadratic = 0.2
lamp = true
lamp_scale = 0.5

[[lights.spot]]
position = [0.0, 0.0, 3.0]
direction = [0.0, 0.0, -1.0]
cut_off = 10.0
outer_cut_off = 15.0
`

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, [3]float32{0, 0, 3}, cfg.Camera.Position)
	assert.Equal(t, float32(-90), cfg.Camera.Yaw)
	assert.Equal(t, 16, cfg.Lights.Capacity.Point)
	assert.NoError(t, cfg.Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "lit", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.True(t, cfg.Window.VSync, "omitted keys keep their defaults")
	assert.Equal(t, [3]float32{1, 2, 5}, cfg.Camera.Position)
	assert.Equal(t, float32(4), cfg.Camera.Speed)
	assert.Equal(t, float32(0.1), cfg.Camera.Sensitivity)
	assert.Equal(t, 2, cfg.Lights.Capacity.Point)
	assert.Equal(t, 4, cfg.Lights.Capacity.Directional)
	assert.Len(t, cfg.Lights.Directional, 1)
	assert.Len(t, cfg.Lights.Point, 2)
	assert.Len(t, cfg.Lights.Spot, 1)
	assert.True(t, cfg.Engine.Profiling)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[window]\nwidht = 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	_, err := Parse([]byte("[window\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"near at zero", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"negative capacity", func(c *Config) { c.Lights.Capacity.Spot = -1 }},
		{"unknown level", func(c *Config) { c.Engine.LogLevel = "verbose" }},
		{"outer inside inner", func(c *Config) {
			c.Lights.Spot = []SpotConfig{{CutOff: 20, OuterCutOff: 10}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lit", cfg.Window.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Engine.LogLevel = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=1")
}

func TestCameraOptions(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	cam := camera.NewCamera(cfg.CameraOptions()...)
	assert.Equal(t, mgl32.Vec3{1, 2, 5}, cam.Position())
	assert.Equal(t, float32(4), cam.Speed())
	assert.Equal(t, camera.DefaultZoom, cam.Zoom())

	near, far := cam.ClipPlanes()
	assert.Equal(t, float32(0.1), near)
	assert.Equal(t, float32(100), far)
}

func TestCameraOptionsZeroFallsBackToDefaults(t *testing.T) {
	cfg := Default()
	cfg.Camera.Speed = 0
	cfg.Camera.Zoom = 0

	cam := camera.NewCamera(cfg.CameraOptions()...)
	assert.Equal(t, camera.DefaultSpeed, cam.Speed())
	assert.Equal(t, camera.DefaultZoom, cam.Zoom())
}

func TestLights(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	set, lamps, err := cfg.Lights()
	require.NoError(t, err)

	assert.Equal(t, 1, set.Len(light.KindDirectional))
	assert.Equal(t, 2, set.Len(light.KindPoint))
	assert.Equal(t, 1, set.Len(light.KindSpot))
	assert.Equal(t, 2, set.Capacity(light.KindPoint))

	dir := set.DirectionalLights()[0]
	assert.Equal(t, mgl32.Vec3{-0.2, -1, -0.3}, dir.Direction())
	assert.Equal(t, mgl32.Vec3{0.4, 0.4, 0.4}, dir.Color())

	points := set.PointLights()
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, points[0].Color(), "missing color defaults to white")
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, points[1].Color())
	assert.Equal(t, light.DefaultAttenuation, points[0].Attenuation())
	assert.Equal(t, light.Attenuation{Constant: 1, Linear: 0.22, Quadratic: 0.2}, points[1].Attenuation())

	require.Len(t, lamps, 2)
	assert.Same(t, points[0], lamps[0].Light)
	assert.Equal(t, float32(defaultLampScale), lamps[0].Scale)
	assert.Same(t, points[1], lamps[1].Light)
	assert.Equal(t, float32(0.5), lamps[1].Scale)

	spot := set.SpotLights()[0]
	assert.InDelta(t, math.Cos(float64(mgl32.DegToRad(10))), spot.CutOff(), 1e-6)
	assert.InDelta(t, math.Cos(float64(mgl32.DegToRad(15))), spot.OuterCutOff(), 1e-6)
}

func TestLightsExplicitBlackColor(t *testing.T) {
	cfg, err := Parse([]byte(`
[[lights.point]]
position = [0.0, 1.0, 0.0]
color = [0.0, 0.0, 0.0]

[[lights.point]]
position = [0.0, 2.0, 0.0]
`))
	require.NoError(t, err)

	set, _, err := cfg.Lights()
	require.NoError(t, err)

	points := set.PointLights()
	require.Len(t, points, 2)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, points[0].Color())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, points[1].Color())
}

func TestLightsOverCapacity(t *testing.T) {
	cfg := Default()
	cfg.Lights.Capacity.Directional = 1
	cfg.Lights.Directional = []DirectionalConfig{{}, {}}

	set, lamps, err := cfg.Lights()
	assert.ErrorIs(t, err, light.ErrCapacityExceeded)
	assert.Nil(t, set)
	assert.Nil(t, lamps)
}

func TestShaderSource(t *testing.T) {
	src, err := ShaderSource("", "embedded")
	require.NoError(t, err)
	assert.Equal(t, "embedded", src)

	path := filepath.Join(t.TempDir(), "frag.glsl")
	require.NoError(t, os.WriteFile(path, []byte("#version 410 core\n"), 0o644))
	src, err = ShaderSource(path, "embedded")
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\n", src)

	_, err = ShaderSource(filepath.Join(t.TempDir(), "nope.glsl"), "embedded")
	assert.Error(t, err)
}
