package scene

import (
	"sync"

	"github.com/arcline-robotics/raysim/internal/geom"
)

// DefaultScatterRatio is the particle density applied to new emitters: a
// near-opaque volume that occludes most rays passing through it.
const DefaultScatterRatio = 0.65

// ParticleEmitter describes a semi-transparent particle volume such as smoke
// or dust. Sensors reference emitters at scan time but never own them; only
// the scatter ratio, particle size, pose and emitting flag affect sensing.
type ParticleEmitter struct {
	mu           sync.Mutex
	name         string
	pose         geom.Pose
	particleSize geom.Vec
	rate         float64
	lifetime     float64
	velocityMin  float64
	velocityMax  float64
	scaleRate    float64
	colorStart   geom.Color
	colorEnd     geom.Color
	scatterRatio float64
	emitting     bool
}

// Name returns the emitter's name.
func (e *ParticleEmitter) Name() string { return e.name }

// SetLocalPose places the emitter volume in the world frame.
func (e *ParticleEmitter) SetLocalPose(p geom.Pose) {
	e.mu.Lock()
	e.pose = p
	e.mu.Unlock()
}

// LocalPose returns the emitter volume's pose.
func (e *ParticleEmitter) LocalPose() geom.Pose {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pose
}

// SetParticleSize sets the extent of emitted particles in metres. The size
// also bounds the range noise applied to particle hits.
func (e *ParticleEmitter) SetParticleSize(s geom.Vec) {
	e.mu.Lock()
	e.particleSize = s
	e.mu.Unlock()
}

// ParticleSize returns the particle extents.
func (e *ParticleEmitter) ParticleSize() geom.Vec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.particleSize
}

// SetRate sets the particle emission rate in particles per second.
func (e *ParticleEmitter) SetRate(r float64) {
	e.mu.Lock()
	e.rate = r
	e.mu.Unlock()
}

// Rate returns the emission rate.
func (e *ParticleEmitter) Rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

// SetLifetime sets the particle lifetime in seconds.
func (e *ParticleEmitter) SetLifetime(l float64) {
	e.mu.Lock()
	e.lifetime = l
	e.mu.Unlock()
}

// Lifetime returns the particle lifetime.
func (e *ParticleEmitter) Lifetime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lifetime
}

// SetVelocityRange sets the minimum and maximum particle velocity.
func (e *ParticleEmitter) SetVelocityRange(min, max float64) {
	e.mu.Lock()
	e.velocityMin, e.velocityMax = min, max
	e.mu.Unlock()
}

// VelocityRange returns the particle velocity bounds.
func (e *ParticleEmitter) VelocityRange() (min, max float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.velocityMin, e.velocityMax
}

// SetScaleRate sets how quickly particles grow after emission.
func (e *ParticleEmitter) SetScaleRate(r float64) {
	e.mu.Lock()
	e.scaleRate = r
	e.mu.Unlock()
}

// ScaleRate returns the particle growth rate.
func (e *ParticleEmitter) ScaleRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scaleRate
}

// SetColorRange sets the colors particles interpolate between over their
// lifetime.
func (e *ParticleEmitter) SetColorRange(start, end geom.Color) {
	e.mu.Lock()
	e.colorStart, e.colorEnd = start, end
	e.mu.Unlock()
}

// ColorRange returns the particle color endpoints.
func (e *ParticleEmitter) ColorRange() (start, end geom.Color) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.colorStart, e.colorEnd
}

// SetParticleScatterRatio sets the volume density in [0, 1]. Higher values
// occlude more rays. Values outside [0, 1] are clamped.
func (e *ParticleEmitter) SetParticleScatterRatio(r float64) {
	if r < 0 {
		r = 0
	} else if r > 1 {
		r = 1
	}
	e.mu.Lock()
	e.scatterRatio = r
	e.mu.Unlock()
}

// ParticleScatterRatio returns the volume density.
func (e *ParticleEmitter) ParticleScatterRatio() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scatterRatio
}

// SetEmitting starts or stops the emitter.
func (e *ParticleEmitter) SetEmitting(on bool) {
	e.mu.Lock()
	e.emitting = on
	e.mu.Unlock()
}

// Emitting reports whether the emitter is active.
func (e *ParticleEmitter) Emitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.emitting
}

// Volume returns the world-frame box the emitter's particles occupy.
func (e *ParticleEmitter) Volume() geom.Box {
	e.mu.Lock()
	defer e.mu.Unlock()
	return geom.Box{Pose: e.pose, Size: e.particleSize}
}
