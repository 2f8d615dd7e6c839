package gpurays

import (
	"math"
	"sort"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/monitoring"
	"github.com/arcline-robotics/raysim/internal/render"
)

// emitterVolume is the snapshot of one active particle emitter taken at
// resolve time. Only geometry, density and particle size matter to sensing.
type emitterVolume struct {
	box     geom.Box
	scatter float64
	noise   float64 // particle extent, bounds the range noise of a hit
}

// particleHit is one candidate occlusion along a ray.
type particleHit struct {
	dist    float64
	scatter float64
	noise   float64
}

// resolveParticles applies stochastic particle occlusion to a stitched scan.
// For each ray crossing an active emitter volume before its geometry hit,
// the volume occludes the ray with probability equal to its scatter ratio;
// occluded rays report the volume entry distance plus size-bounded noise and
// zero retro. Volumes are resolved nearest first. Outcomes are randomized
// per update; only the steady-state hit/miss ratio tracks the scatter ratio.
func (s *raySensor) resolveParticles(cfg config, pose geom.Pose, scan []float32) {
	volumes := s.activeVolumes()
	if len(volumes) == 0 {
		return
	}
	if s.engine.Capabilities()&render.CapParticles == 0 {
		s.particleNotice.Do(func() {
			monitoring.Logf("render engine %q does not support particle occlusion; particle effects skipped", s.engine.Name())
		})
		return
	}

	hits := make([]particleHit, 0, len(volumes))
	for row := 0; row < cfg.vRayCount; row++ {
		elev := rayAngle(cfg.vAngleMin, cfg.vAngleMax, row, cfg.vRayCount)
		for col := 0; col < cfg.hRayCount; col++ {
			az := rayAngle(cfg.angleMin, cfg.angleMax, col, cfg.hRayCount)
			dir := pose.TransformDir(geom.SphericalDir(az, elev))

			i := (row*cfg.hRayCount + col) * Channels
			geoRange := float64(scan[i])
			if math.IsInf(geoRange, -1) {
				// Blocked before the near plane; nothing behind is seen.
				continue
			}

			hits = hits[:0]
			for _, vol := range volumes {
				d, ok := vol.box.IntersectRay(pose.Pos, dir)
				if !ok || d < cfg.near || d > cfg.far || d >= geoRange {
					continue
				}
				hits = append(hits, particleHit{dist: d, scatter: vol.scatter, noise: vol.noise})
			}
			if len(hits) == 0 {
				continue
			}
			sort.Slice(hits, func(a, b int) bool { return hits[a].dist < hits[b].dist })

			for _, h := range hits {
				if s.rnd.Float64() >= h.scatter {
					continue // ray passes through this volume
				}
				scan[i] = float32(h.dist + s.rnd.Float64()*h.noise)
				scan[i+1] = 0 // particles have no solid-surface retro
				break
			}
		}
	}
}

// activeVolumes snapshots the emitting particle volumes of the scene.
func (s *raySensor) activeVolumes() []emitterVolume {
	var out []emitterVolume
	for _, e := range s.scene.Emitters() {
		if !e.Emitting() {
			continue
		}
		ratio := e.ParticleScatterRatio()
		if ratio <= 0 {
			continue
		}
		size := e.ParticleSize()
		out = append(out, emitterVolume{
			box:     e.Volume(),
			scatter: ratio,
			noise:   math.Max(size.X, math.Max(size.Y, size.Z)),
		})
	}
	return out
}
