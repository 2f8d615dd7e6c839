package gpurays

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/monitoring"
	"github.com/arcline-robotics/raysim/internal/render"
	"github.com/arcline-robotics/raysim/internal/scene"
)

// Channels is the number of values per ray sample: range, retro-reflectivity
// and one auxiliary channel reserved for extension.
const Channels = 3

// FormatTag identifies the scan buffer layout passed to frame callbacks.
const FormatTag = "FLOAT32_RRA"

// Sensor is the capability contract a GPU-ray sensor implements, one
// concrete type per rendering backend. The variant is selected at
// construction and never downcast.
type Sensor interface {
	// Name returns the sensor name.
	Name() string

	// Configuration accessors. Setters validate synchronously and leave
	// the prior configuration in effect on rejection; accepted values
	// take effect on the next Update.
	AngleMin() float64
	SetAngleMin(a float64) error
	AngleMax() float64
	SetAngleMax(a float64) error
	VerticalAngleMin() float64
	SetVerticalAngleMin(a float64) error
	VerticalAngleMax() float64
	SetVerticalAngleMax(a float64) error
	NearClipPlane() float64
	SetNearClipPlane(near float64) error
	FarClipPlane() float64
	SetFarClipPlane(far float64) error
	RayCount() int
	SetRayCount(n int) error
	VerticalRayCount() int
	SetVerticalRayCount(n int) error
	HorizontalResolution() float64
	SetHorizontalResolution(r float64) error
	VerticalResolution() float64
	SetVerticalResolution(r float64) error
	Clamp() bool
	SetClamp(c bool)
	IsHorizontal() bool
	SetIsHorizontal(h bool)

	// Pose accessors.
	WorldPosition() geom.Vec
	SetWorldPosition(p geom.Vec)
	WorldRotation() geom.Rotation
	SetWorldRotation(r geom.Rotation)

	// Channels returns the number of values per ray sample.
	Channels() int

	// Update renders a complete scan of the scene as it stands at the
	// moment of the call and notifies every registered consumer before
	// returning. Exactly one update may be in flight per sensor.
	Update() error

	// Copy writes the latest completed scan into dst, byte for byte the
	// content of the most recent notification payload.
	Copy(dst []float32) error

	// Connect registers a consumer for completed scans.
	Connect(cb FrameCallback) *Connection
}

// Options configures sensor construction.
type Options struct {
	// Name identifies the sensor in diagnostics.
	Name string
	// Rand drives the particle occlusion resolver. Defaults to a
	// time-seeded source; tests supply a fixed seed.
	Rand *rand.Rand
}

type raySensor struct {
	name   string
	engine render.Engine
	scene  *scene.Scene

	mu     sync.Mutex // guards cfg, pose, plan, buffer
	cfg    config
	pose   geom.Pose
	plan   *scanPlan // nil when configuration changed since the last plan
	buffer []float32 // latest completed scan

	updating atomic.Bool

	obsMu     sync.Mutex
	observers []observer

	rnd            *rand.Rand // touched only by the single in-flight Update
	particleNotice sync.Once
}

// New constructs a sensor bound to a render engine and a scene.
func New(engine render.Engine, sc *scene.Scene, opts Options) (Sensor, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil render engine", ErrInvalidConfig)
	}
	if sc == nil {
		return nil, fmt.Errorf("%w: nil scene", ErrInvalidConfig)
	}
	name := opts.Name
	if name == "" {
		name = "gpu_rays"
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &raySensor{
		name:   name,
		engine: engine,
		scene:  sc,
		cfg:    defaultConfig(),
		pose:   geom.IdentityPose(),
		rnd:    rnd,
	}, nil
}

// Name implements Sensor.
func (s *raySensor) Name() string { return s.name }

// Channels implements Sensor.
func (s *raySensor) Channels() int { return Channels }

// WorldPosition implements Sensor.
func (s *raySensor) WorldPosition() geom.Vec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose.Pos
}

// SetWorldPosition implements Sensor.
func (s *raySensor) SetWorldPosition(p geom.Vec) {
	s.mu.Lock()
	s.pose.Pos = p
	s.mu.Unlock()
}

// WorldRotation implements Sensor.
func (s *raySensor) WorldRotation() geom.Rotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose.Rot
}

// SetWorldRotation implements Sensor.
func (s *raySensor) SetWorldRotation(r geom.Rotation) {
	s.mu.Lock()
	s.pose.Rot = r
	s.mu.Unlock()
}

// Update implements Sensor. The call is synchronous: all sub-view rendering,
// depth reconstruction, clamping, particle resolution and consumer
// notification complete before it returns. On error the previous scan buffer
// is left intact.
func (s *raySensor) Update() error {
	if !s.updating.CompareAndSwap(false, true) {
		return ErrUpdateInFlight
	}
	defer s.updating.Store(false)
	start := time.Now()

	s.mu.Lock()
	if s.plan == nil {
		s.plan = newScanPlan(s.cfg)
		s.buffer = nil // prior scan no longer matches the layout
	}
	cfg := s.cfg
	pose := s.pose
	plan := s.plan
	s.mu.Unlock()

	scratch := make([]float32, plan.width*plan.height*Channels)
	for _, task := range plan.views {
		tgt, err := s.engine.CreateTarget(task.width, task.height, 4)
		if err != nil {
			return fmt.Errorf("allocating %dx%d render target: %w", task.width, task.height, err)
		}
		viewPose := geom.Pose{
			Pos: pose.Pos,
			Rot: geom.Compose(pose.Rot, geom.Compose(geom.RotZ(task.yaw), geom.RotY(-task.pitch))),
		}
		prog := buildProgram(cfg, task.proj)
		if err := s.engine.Render(s.scene, viewPose, task.proj, prog, tgt); err != nil {
			return fmt.Errorf("rendering sub-view at yaw %.3f: %w", task.yaw, err)
		}
		s.stitch(cfg, task, tgt, scratch)
	}

	s.resolveParticles(cfg, pose, scratch)

	s.mu.Lock()
	s.buffer = scratch
	s.mu.Unlock()

	monitoring.Debugf("%s: %d sub-views stitched into %dx%d scan in %v",
		s.name, len(plan.views), plan.width, plan.height, time.Since(start))

	s.notify(scratch, plan.width, plan.height)
	return nil
}

// stitch copies one rendered sub-view into its slot of the scan buffer,
// converting each covered ray's pixel into (range, retro, aux). Tasks with
// a sample table map rays to pixels one to one; yaw-only tasks locate each
// ray by its angles within the band's uniform layout.
func (s *raySensor) stitch(cfg config, task viewTask, tgt *render.Target, scan []float32) {
	retroOK := s.engine.Capabilities()&render.CapRetroReflection != 0
	perRay := len(task.proj.Samples) > 0
	for rv := 0; rv < task.v.count; rv++ {
		row := task.v.start + rv
		py := rv
		if !perRay {
			elev := rayAngle(cfg.vAngleMin, cfg.vAngleMax, row, cfg.vRayCount)
			py = pixelIndex(elev, task.v.min, task.v.max, tgt.H)
		}
		for rc := 0; rc < task.h.count; rc++ {
			col := task.h.start + rc
			px := rc
			if !perRay {
				az := rayAngle(cfg.angleMin, cfg.angleMax, col, cfg.hRayCount)
				px = pixelIndex(az, task.h.min, task.h.max, tgt.W)
			}

			rng, retro := decodeSample(tgt.At(px, py), retroOK)
			i := (row*cfg.hRayCount + col) * Channels
			scan[i] = rng
			scan[i+1] = retro
			scan[i+2] = 0
		}
	}
}

// Copy implements Sensor.
func (s *raySensor) Copy(dst []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer == nil {
		return ErrNoScan
	}
	if len(dst) < len(s.buffer) {
		return fmt.Errorf("destination length %d below scan length %d", len(dst), len(s.buffer))
	}
	copy(dst, s.buffer)
	return nil
}
