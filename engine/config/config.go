package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure returned from Parse and Load.
var ErrInvalid = errors.New("config: invalid value")

// Config is the on-disk description of a demo run: the window, the starting camera,
// the lights of the scene and the engine's ambient settings.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Camera  CameraConfig  `toml:"camera"`
	Lights  LightsConfig  `toml:"lights"`
	Shaders ShadersConfig `toml:"shaders"`
	Engine  EngineConfig  `toml:"engine"`
}

// WindowConfig configures the GLFW window.
type WindowConfig struct {
	Title         string `toml:"title"`
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	VSync         bool   `toml:"vsync"`
	CaptureCursor bool   `toml:"capture_cursor"`
}

// CameraConfig configures the starting FPS camera. Angles are in degrees.
type CameraConfig struct {
	Position    [3]float32 `toml:"position"`
	Yaw         float32    `toml:"yaw"`
	Pitch       float32    `toml:"pitch"`
	Speed       float32    `toml:"speed"`
	Sensitivity float32    `toml:"sensitivity"`
	Zoom        float32    `toml:"zoom"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
}

// LightsConfig lists the scene's lights per kind and the shader array capacities.
type LightsConfig struct {
	Capacity    CapacityConfig      `toml:"capacity"`
	Directional []DirectionalConfig `toml:"directional"`
	Point       []PointConfig       `toml:"point"`
	Spot        []SpotConfig        `toml:"spot"`
}

// CapacityConfig holds the per-kind uniform array sizes compiled into the lit shader.
type CapacityConfig struct {
	Directional int `toml:"directional"`
	Point       int `toml:"point"`
	Spot        int `toml:"spot"`
}

// DirectionalConfig describes one directional light. A missing color means white.
type DirectionalConfig struct {
	Direction [3]float32  `toml:"direction"`
	Color     *[3]float32 `toml:"color"`
}

// PointConfig describes one point light. Zero attenuation terms fall back to the
// default falloff. When Lamp is set the light is also drawn as a small cube.
type PointConfig struct {
	Position  [3]float32  `toml:"position"`
	Color     *[3]float32 `toml:"color"`
	Constant  float32     `toml:"constant"`
	Linear    float32     `toml:"linear"`
	Quadratic float32     `toml:"quadratic"`
	Lamp      bool        `toml:"lamp"`
	LampScale float32     `toml:"lamp_scale"`
}

// SpotConfig describes one spot light. Cutoff angles are in degrees.
type SpotConfig struct {
	Position    [3]float32  `toml:"position"`
	Direction   [3]float32  `toml:"direction"`
	Color       *[3]float32 `toml:"color"`
	Constant    float32     `toml:"constant"`
	Linear      float32     `toml:"linear"`
	Quadratic   float32     `toml:"quadratic"`
	CutOff      float32     `toml:"cut_off"`
	OuterCutOff float32     `toml:"outer_cut_off"`
}

// ShadersConfig optionally points at GLSL files replacing the embedded sources.
type ShadersConfig struct {
	Vertex       string `toml:"vertex"`
	Fragment     string `toml:"fragment"`
	LampVertex   string `toml:"lamp_vertex"`
	LampFragment string `toml:"lamp_fragment"`
}

// EngineConfig holds the frame loop settings.
type EngineConfig struct {
	Profiling  bool       `toml:"profiling"`
	LogLevel   string     `toml:"log_level"`
	ClearColor [3]float32 `toml:"clear_color"`
	Ambient    [3]float32 `toml:"ambient"`
	Shininess  float32    `toml:"shininess"`
}

// Default returns the configuration used when no file is given: an 800x600 window
// and a camera three units back from the origin looking down -Z.
//
// Returns:
//   - *Config: a freshly allocated default configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "oxy-gl",
			Width:         800,
			Height:        600,
			VSync:         true,
			CaptureCursor: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
			Near:        0.1,
			Far:         100,
		},
		Lights: LightsConfig{
			Capacity: CapacityConfig{Directional: 4, Point: 16, Spot: 4},
		},
		Engine: EngineConfig{
			LogLevel:   "info",
			ClearColor: [3]float32{0.1, 0.1, 0.1},
			Ambient:    [3]float32{0.05, 0.05, 0.05},
			Shininess:  32,
		},
	}
}

// Load reads and parses the TOML file at path.
//
// Parameters:
//   - path: the configuration file to read
//
// Returns:
//   - *Config: the defaults overlaid with the file's values
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over Default, so omitted keys keep their default values.
// Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - *Config: the decoded configuration
//   - error: error if decoding or validation fails
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a running engine cannot recover from.
//
// Returns:
//   - error: an error wrapping ErrInvalid describing the first bad value, or nil
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	capacity := c.Lights.Capacity
	if capacity.Directional < 0 || capacity.Point < 0 || capacity.Spot < 0 {
		return fmt.Errorf("%w: negative light capacity", ErrInvalid)
	}
	for i, s := range c.Lights.Spot {
		inner := s.CutOff
		outer := s.OuterCutOff
		if inner != 0 && outer != 0 && outer < inner {
			return fmt.Errorf("%w: spot light %d outer cutoff %g below inner cutoff %g", ErrInvalid, i, outer, inner)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by Engine.LogLevel. An empty name means info.
//
// Returns:
//   - slog.Level: the parsed level
//   - error: an error wrapping ErrInvalid if the name is unknown
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	name := strings.TrimSpace(c.Engine.LogLevel)
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalid, name)
	}
	return level, nil
}

// NewLogger builds a text logger writing to w at the configured level.
//
// Parameters:
//   - w: the log destination, usually os.Stderr
//
// Returns:
//   - *slog.Logger: the configured logger
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ShaderSource returns the contents of path, or fallback when path is empty.
//
// Parameters:
//   - path: an optional GLSL file from the [shaders] section
//   - fallback: the embedded source
//
// Returns:
//   - string: the shader source
//   - error: error if path is set but cannot be read
func ShaderSource(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader %s: %w", path, err)
	}
	return string(data), nil
}
