package engine

import (
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/controls"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// engine implements the Engine interface.
// Runs input, update and draw on the thread owning the GL context.
type engine struct {
	running bool
	quit    bool

	window   window.Window
	renderer renderer.Renderer
	controls controls.FPSControls
	logger   *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	sleep            func(time.Duration)
}

// Engine is the main entry point for the engine.
// It drives the frame loop over a window, a renderer and a set of scenes.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Controls returns the FPS controls fed by the window's input, or nil.
	//
	// Returns:
	//   - controls.FPSControls: the controls instance
	Controls() controls.FPSControls

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called each frame before the scenes update.
	// Use this for game logic and input beyond the FPS controls.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each frame after the scenes draw
	// and before the buffers are swapped.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run executes frames until the window is asked to close or Quit is called.
	// It must be called from the thread that made the GL context current.
	//
	// Returns:
	//   - error: the first error a scene returns from Draw
	Run() error

	// Quit asks the running loop to stop after the current frame.
	// Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine drawing into w with r.
// Window resizes are forwarded to the renderer, and cursor and scroll input to the
// controls when WithControls is given.
//
// Parameters:
//   - w: the window whose context is current on the calling thread
//   - r: the renderer created for that context
//   - options: functional options for engine configuration (profiling, scenes, controls, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w window.Window, r renderer.Renderer, options ...EngineBuilderOption) Engine {
	if w == nil {
		panic("engine: window is required")
	}
	if r == nil {
		panic("engine: renderer is required")
	}
	e := &engine{
		window:           w,
		renderer:         r,
		scenes:           make(map[int]scene.Scene),
		logger:           slog.Default(),
		profilingEnabled: false,
		sleep:            time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.logger)
	}

	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.Resize(width, height)
	})
	if e.controls != nil {
		e.window.SetCursorPosCallback(e.controls.HandleCursor)
		e.window.SetScrollCallback(e.controls.HandleScroll)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Controls() controls.FPSControls {
	return e.controls
}

func (e *engine) Run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	e.running = true
	e.quit = false
	defer func() { e.running = false }()

	e.logger.Info("engine started", "scenes", len(e.scenes))
	last := e.window.Time()
	for !e.quit && !e.window.ShouldClose() {
		frameStart := time.Now()
		now := e.window.Time()
		dt := float32(now - last)
		last = now

		if err := e.frame(dt); err != nil {
			e.logger.Error("frame failed", "error", err)
			return err
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
				e.sleep(remaining)
			}
		}
	}
	e.logger.Info("engine stopped")
	return nil
}

// frame runs one iteration: input, update, draw, present.
func (e *engine) frame(dt float32) error {
	e.window.PollEvents()
	if e.controls != nil {
		e.controls.Tick(e.window, dt)
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	active := e.activeScenes()
	for _, s := range active {
		s.Update(dt)
	}

	e.renderer.BeginFrame()
	aspect := e.window.AspectRatio()
	for _, s := range active {
		if err := s.Draw(aspect); err != nil {
			return fmt.Errorf("scene %q: %w", s.Name(), err)
		}
	}
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if err := e.renderer.CheckErrors(); err != nil {
		e.logger.Warn("gl errors after frame", "error", err)
	}

	e.window.SwapBuffers()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return nil
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	keys := slices.Sorted(maps.Keys(e.scenes))
	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) Quit() {
	e.quit = true
	e.window.SetShouldClose(true)
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
	e.profiler.Reset()
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	return maps.Clone(e.scenes)
}

// frameDuration converts a frame rate cap into a minimum frame time; 0 when uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
