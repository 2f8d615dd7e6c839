// Package scene holds the minimal scene graph the sensing pipeline needs:
// box visuals with retro-reflectivity values and particle emitters. The full
// scene/asset management of a rendering engine is out of scope; sensors and
// render engines only ever read from these types.
package scene

import (
	"sync"

	"github.com/arcline-robotics/raysim/internal/geom"
)

// Scene is a flat collection of visuals and particle emitters. All methods
// are safe for concurrent use; enumeration returns snapshots so a scan can
// proceed while the scene mutates.
type Scene struct {
	mu       sync.Mutex
	name     string
	visuals  []*Visual
	emitters []*ParticleEmitter
}

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{name: name}
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// CreateBox adds a unit-box visual (scaled by SetSize) to the scene and
// returns it for configuration.
func (s *Scene) CreateBox(name string) *Visual {
	v := &Visual{
		name: name,
		pose: geom.IdentityPose(),
		size: geom.Vec{X: 1, Y: 1, Z: 1},
	}
	s.mu.Lock()
	s.visuals = append(s.visuals, v)
	s.mu.Unlock()
	return v
}

// CreateParticleEmitter adds a particle emitter to the scene and returns it.
// Emitters start disabled with the default scatter ratio.
func (s *Scene) CreateParticleEmitter(name string) *ParticleEmitter {
	e := &ParticleEmitter{
		name:         name,
		pose:         geom.IdentityPose(),
		particleSize: geom.Vec{X: 1, Y: 1, Z: 1},
		scatterRatio: DefaultScatterRatio,
	}
	s.mu.Lock()
	s.emitters = append(s.emitters, e)
	s.mu.Unlock()
	return e
}

// Visuals returns a snapshot of the scene's visuals.
func (s *Scene) Visuals() []*Visual {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Visual, len(s.visuals))
	copy(out, s.visuals)
	return out
}

// Emitters returns a snapshot of the scene's particle emitters.
func (s *Scene) Emitters() []*ParticleEmitter {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*ParticleEmitter, len(s.emitters))
	copy(out, s.emitters)
	return out
}
