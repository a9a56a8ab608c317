package scene

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Uniform names written by Draw. Programs declare the subset they use; the rest
// are skipped by the program's location cache.
const (
	UniformMVP          = "MVP"
	UniformModel        = "model"
	UniformView         = "view"
	UniformProjection   = "projection"
	UniformNormalMatrix = "normal_matrix"
	UniformColor        = "color"
	UniformShininess    = "shininess"
	UniformAmbient      = "ambient"
)

// parallelUpdateThreshold is the object count from which Update fans out to the worker pool.
const parallelUpdateThreshold = 256

// Scene owns a camera, a LightsSet and an ordered registry of GameObjects, and
// runs the per-frame draw protocol: build the camera matrices, upload every light
// in view space, then set the per-object uniforms and draw each enabled object.
// Objects marking a point light are drawn with the lamp program.
//
// A Scene is driven from the thread owning the graphics context.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Lights returns the scene's light collection.
	Lights() light.LightsSet

	// AddLight appends a light to the scene's LightsSet.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// AddLamp adds a marker object drawn at a point light's position in its color.
	// The light is shared by the LightsSet and the marker: it is appended to the set
	// unless the set already holds it, so each light is uploaded once.
	//
	// Parameters:
	//   - l: the point light
	//   - m: the marker geometry
	//   - scale: uniform marker scale
	//
	// Returns:
	//   - uuid.UUID: the ID of the marker object
	//   - error: a *light.CapacityError if appending the light would overflow the
	//     point light capacity; nothing is added in that case
	AddLamp(l *light.PointLight, m model.Model, scale float32) (uuid.UUID, error)

	// AmbientColor returns the ambient term uploaded to the object program.
	AmbientColor() mgl32.Vec3

	// SetAmbientColor sets the ambient term uploaded to the object program.
	//
	// Parameters:
	//   - color: the ambient RGB color
	SetAmbientColor(color mgl32.Vec3)

	// CullingDisabled reports whether frustum culling is off.
	CullingDisabled() bool

	// SetCullingDisabled turns frustum culling of objects off or on.
	//
	// Parameters:
	//   - disabled: true to draw every enabled object
	SetCullingDisabled(disabled bool)

	// Count returns the number of GameObjects in the scene, lamps included.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Add registers a GameObject and returns its ID. Adding the same ID again
	// replaces the earlier object in place.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uuid.UUID: the object ID
	Add(obj game_object.GameObject) uuid.UUID

	// Get looks up an object by ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil if absent
	Get(id uuid.UUID) game_object.GameObject

	// Remove deletes an object by ID. A removed lamp keeps its light in the LightsSet.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uuid.UUID)

	// Objects returns the objects in insertion order. The slice is a copy.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Clear removes every object. Lights are kept.
	Clear()

	// Validate checks the LightsSet against the object program's light capacities.
	//
	// Returns:
	//   - error: a light.CapacityError, or nil
	Validate() error

	// Update advances every object's animation by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed frame time in seconds
	Update(dt float32)

	// Draw renders one frame of the scene with the given framebuffer aspect ratio.
	//
	// Parameters:
	//   - aspect: framebuffer width / height, must be > 0
	//
	// Returns:
	//   - error: a light capacity error; nothing is drawn in that case
	Draw(aspect float32) error
}

// scene is the implementation of the Scene interface.
type scene struct {
	name   string
	active bool
	cam    camera.Camera
	lights light.LightsSet
	logger *slog.Logger

	program     shader.Program
	lampProgram shader.Program

	order    []uuid.UUID
	registry map[uuid.UUID]game_object.GameObject

	ambient         mgl32.Vec3
	shininess       float32
	cullingDisabled bool

	// computePool runs object updates in parallel for large scenes. The pool
	// never touches the graphics context.
	computeWorkers int
	computePool    worker.DynamicWorkerPool
}

var _ Scene = &scene{}

// NewScene creates a Scene drawing its objects with program. The camera and
// program are required and NewScene panics if either is nil. The lamp program
// defaults to program.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - program: the program objects are drawn with (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: a light.CapacityError if the configured lights do not fit the program
func NewScene(name string, cam camera.Camera, program shader.Program, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if program == nil {
		panic("scene: NewScene requires a non-nil object program")
	}

	s := &scene{
		name:           name,
		active:         true,
		cam:            cam,
		lights:         light.NewLightsSet(),
		logger:         slog.New(slog.DiscardHandler),
		program:        program,
		registry:       make(map[uuid.UUID]game_object.GameObject),
		ambient:        mgl32.Vec3{0.1, 0.1, 0.1},
		shininess:      32,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}
	if s.lampProgram == nil {
		s.lampProgram = program
	}
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	s.logger.Info("scene created",
		"scene", name,
		"objects", len(s.order),
		"directional_lights", s.lights.Len(light.KindDirectional),
		"point_lights", s.lights.Len(light.KindPoint),
		"spot_lights", s.lights.Len(light.KindSpot),
	)
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.cam = cam
}

func (s *scene) Lights() light.LightsSet {
	return s.lights
}

func (s *scene) AddLight(l light.Light) {
	s.lights.Add(l)
}

func (s *scene) AddLamp(l *light.PointLight, m model.Model, scale float32) (uuid.UUID, error) {
	if !slices.Contains(s.lights.PointLights(), l) {
		count, capacity := s.lights.Len(light.KindPoint)+1, s.lights.Capacity(light.KindPoint)
		if count > capacity {
			return uuid.Nil, &light.CapacityError{Kind: light.KindPoint, Count: count, Capacity: capacity}
		}
		s.lights.AddPointLight(l)
	}
	return s.Add(game_object.NewGameObject(
		game_object.WithLight(l),
		game_object.WithModel(m),
		game_object.WithScale(scale, scale, scale),
	)), nil
}

func (s *scene) AmbientColor() mgl32.Vec3 {
	return s.ambient
}

func (s *scene) SetAmbientColor(color mgl32.Vec3) {
	s.ambient = color
}

func (s *scene) CullingDisabled() bool {
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.cullingDisabled = disabled
}

func (s *scene) Count() int {
	return len(s.order)
}

func (s *scene) Add(obj game_object.GameObject) uuid.UUID {
	id := obj.ID()
	if _, exists := s.registry[id]; !exists {
		s.order = append(s.order, id)
	}
	s.registry[id] = obj
	return id
}

func (s *scene) Get(id uuid.UUID) game_object.GameObject {
	return s.registry[id]
}

func (s *scene) Remove(id uuid.UUID) {
	if _, exists := s.registry[id]; !exists {
		return
	}
	delete(s.registry, id)
	s.order = slices.DeleteFunc(s.order, func(o uuid.UUID) bool { return o == id })
}

func (s *scene) Objects() []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) Clear() {
	s.order = s.order[:0]
	clear(s.registry)
}

func (s *scene) Validate() error {
	return s.lights.Validate()
}

func (s *scene) Update(dt float32) {
	if len(s.order) < parallelUpdateThreshold || s.computeWorkers < 2 {
		for _, id := range s.order {
			s.registry[id].Update(dt)
		}
		return
	}

	// Each task owns a disjoint chunk of objects. A WaitGroup is the per-frame
	// barrier since pool.Wait() blocks until workers idle-exit.
	objects := s.Objects()
	chunk := (len(objects) + s.computeWorkers - 1) / s.computeWorkers
	var wg sync.WaitGroup
	for id, start := 0, 0; start < len(objects); id, start = id+1, start+chunk {
		part := objects[start:min(start+chunk, len(objects))]
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for _, obj := range part {
					obj.Update(dt)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) Draw(aspect float32) error {
	view := s.cam.ViewMatrix()
	proj := s.cam.ProjectionMatrix(aspect)
	viewProj := proj.Mul4(view)

	var frustum *common.Frustum
	if !s.cullingDisabled {
		f := common.NewFrustum(viewProj)
		frustum = &f
	}

	s.program.Use()
	s.program.SetMat4(UniformView, view)
	s.program.SetMat4(UniformProjection, proj)
	s.program.SetVec3(UniformAmbient, s.ambient)
	s.program.SetFloat(UniformShininess, s.shininess)
	if err := s.lights.Update(s.program, view); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	bound := s.program
	var lamps []game_object.GameObject
	for _, id := range s.order {
		obj := s.registry[id]
		if !s.visible(obj, frustum) {
			continue
		}
		if obj.Light() != nil && s.lampProgram != s.program {
			lamps = append(lamps, obj)
			continue
		}
		drawObject(bound, obj, view, viewProj)
	}

	if len(lamps) > 0 {
		bound = s.lampProgram
		bound.Use()
		bound.SetMat4(UniformView, view)
		bound.SetMat4(UniformProjection, proj)
		for _, obj := range lamps {
			drawObject(bound, obj, view, viewProj)
		}
	}
	return nil
}

// visible reports whether obj is enabled, has geometry and intersects the frustum.
func (s *scene) visible(obj game_object.GameObject, frustum *common.Frustum) bool {
	if !obj.Enabled() || obj.Model() == nil {
		return false
	}
	if frustum == nil {
		return true
	}
	radius := obj.Model().BoundingRadius()
	if radius <= 0 {
		return true
	}
	sc := obj.Scale()
	radius *= max(sc.X(), sc.Y(), sc.Z())
	return frustum.IntersectsSphere(obj.Position(), radius)
}

// drawObject uploads the per-object uniforms into the bound program p and draws.
func drawObject(p shader.Program, obj game_object.GameObject, view, viewProj mgl32.Mat4) {
	m := obj.ModelMatrix()
	p.SetMat4(UniformModel, m)
	p.SetMat4(UniformMVP, viewProj.Mul4(m))
	p.SetMat3(UniformNormalMatrix, common.NormalMatrix(view.Mul4(m)))
	p.SetVec3(UniformColor, obj.Color())
	obj.Model().Draw(p)
}
