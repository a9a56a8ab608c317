package config

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// defaultLampScale is the marker cube scale used when a lamp sets none.
const defaultLampScale = 0.2

var white = [3]float32{1, 1, 1}

// Lamp is a configured point light that is also drawn as a marker.
type Lamp struct {
	Light *light.PointLight
	Scale float32
}

// WindowOptions converts the [window] section into window builder options.
//
// Returns:
//   - []window.WindowBuilderOption: options for window.NewWindow
func (c *Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithWidth(c.Window.Width),
		window.WithHeight(c.Window.Height),
		window.WithVSync(c.Window.VSync),
		window.WithCaptureCursor(c.Window.CaptureCursor),
	}
}

// CameraOptions converts the [camera] section into camera builder options.
// Zero speed, sensitivity or zoom keep the camera defaults.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c *Config) CameraOptions() []camera.CameraBuilderOption {
	cc := c.Camera
	return []camera.CameraBuilderOption{
		camera.WithPosition(cc.Position[0], cc.Position[1], cc.Position[2]),
		camera.WithYawPitch(cc.Yaw, cc.Pitch),
		camera.WithSpeed(common.Coalesce(cc.Speed, camera.DefaultSpeed)),
		camera.WithSensitivity(common.Coalesce(cc.Sensitivity, camera.DefaultSensitivity)),
		camera.WithZoom(common.Coalesce(cc.Zoom, camera.DefaultZoom)),
		camera.WithClipPlanes(cc.Near, cc.Far),
	}
}

// Capacities returns the LightsSet options matching the [lights.capacity] table.
//
// Returns:
//   - []light.LightsSetBuilderOption: one WithCapacity option per kind
func (c *Config) Capacities() []light.LightsSetBuilderOption {
	capacity := c.Lights.Capacity
	return []light.LightsSetBuilderOption{
		light.WithCapacity(light.KindDirectional, capacity.Directional),
		light.WithCapacity(light.KindPoint, capacity.Point),
		light.WithCapacity(light.KindSpot, capacity.Spot),
	}
}

// Lights builds the configured LightsSet in file order. Point lights flagged as
// lamps are returned a second time so the caller can add markers for them.
//
// Returns:
//   - light.LightsSet: the populated set
//   - []Lamp: the lamp-flagged point lights with their marker scales
//   - error: light.ErrCapacityExceeded if the file lists more lights than the capacity allows
func (c *Config) Lights() (light.LightsSet, []Lamp, error) {
	set := light.NewLightsSet(c.Capacities()...)
	var lamps []Lamp

	for _, d := range c.Lights.Directional {
		set.AddDirectionalLight(light.NewDirectionalLight(
			light.WithDirection(d.Direction[0], d.Direction[1], d.Direction[2]),
			colorOption(d.Color),
		))
	}

	for _, p := range c.Lights.Point {
		l := light.NewPointLight(
			light.WithPosition(p.Position[0], p.Position[1], p.Position[2]),
			colorOption(p.Color),
			attenuationOption(p.Constant, p.Linear, p.Quadratic),
		)
		set.AddPointLight(l)
		if p.Lamp {
			lamps = append(lamps, Lamp{Light: l, Scale: common.Coalesce(p.LampScale, defaultLampScale)})
		}
	}

	for _, s := range c.Lights.Spot {
		opts := []light.LightBuilderOption{
			light.WithPosition(s.Position[0], s.Position[1], s.Position[2]),
			light.WithDirection(s.Direction[0], s.Direction[1], s.Direction[2]),
			colorOption(s.Color),
			attenuationOption(s.Constant, s.Linear, s.Quadratic),
		}
		if !common.AllZero(s.CutOff, s.OuterCutOff) {
			opts = append(opts, light.WithCutOff(
				common.Coalesce(s.CutOff, s.OuterCutOff),
				common.Coalesce(s.OuterCutOff, s.CutOff),
			))
		}
		set.AddSpotLight(light.NewSpotLight(opts...))
	}

	if err := set.Validate(); err != nil {
		return nil, nil, err
	}
	return set, lamps, nil
}

// colorOption applies the configured color, or white when the key is absent.
func colorOption(rgb *[3]float32) light.LightBuilderOption {
	c := white
	if rgb != nil {
		c = *rgb
	}
	return light.WithColor(c[0], c[1], c[2])
}

func attenuationOption(constant, linear, quadratic float32) light.LightBuilderOption {
	if common.AllZero(constant, linear, quadratic) {
		a := light.DefaultAttenuation
		return light.WithAttenuation(a.Constant, a.Linear, a.Quadratic)
	}
	return light.WithAttenuation(constant, linear, quadratic)
}
