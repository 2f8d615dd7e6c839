package render

import (
	"fmt"
	"math"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/scene"
)

// SoftwareEngineName is the registry name of the built-in backend.
const SoftwareEngineName = "software"

// SoftwareEngine is a CPU raycasting backend. It reproduces the depth
// semantics of a GPU depth pass: per-pixel nearest surface within the view
// depth clip planes, encoded as non-linear projected depth, with a sentinel
// where nothing was hit. Pixels are placed uniformly in view angle across
// the projection's angle bounds.
type SoftwareEngine struct {
	maxTargetValues int
}

// NewSoftwareEngine creates the software backend.
func NewSoftwareEngine() *SoftwareEngine {
	return &SoftwareEngine{maxTargetValues: 1 << 26}
}

// Name implements Engine.
func (e *SoftwareEngine) Name() string { return SoftwareEngineName }

// Capabilities implements Engine. The software backend supports both retro
// encoding and particle occlusion.
func (e *SoftwareEngine) Capabilities() Capability {
	return CapRetroReflection | CapParticles
}

// CreateTarget implements Engine.
func (e *SoftwareEngine) CreateTarget(w, h, channels int) (*Target, error) {
	if err := validateTarget(w, h, channels); err != nil {
		return nil, err
	}
	n := w * h * channels
	if n > e.maxTargetValues {
		return nil, fmt.Errorf("render target %dx%dx%d exceeds backend limit", w, h, channels)
	}
	return &Target{W: w, H: h, Channels: channels, Data: make([]float32, n)}, nil
}

// Render implements Engine.
func (e *SoftwareEngine) Render(sc *scene.Scene, pose geom.Pose, proj Projection, prog Program, tgt *Target) error {
	if tgt == nil || tgt.Channels != 4 {
		return fmt.Errorf("render requires a 4-channel target")
	}
	if prog == nil {
		return fmt.Errorf("render requires a post-process program")
	}
	if proj.Near <= 0 || proj.Near >= proj.Far {
		return fmt.Errorf("projection clip planes [%v, %v] out of order", proj.Near, proj.Far)
	}
	if len(proj.Samples) > 0 && len(proj.Samples) != tgt.W*tgt.H {
		return fmt.Errorf("projection carries %d samples for a %dx%d target", len(proj.Samples), tgt.W, tgt.H)
	}

	offset, product := proj.DepthParams()

	type surface struct {
		box   geom.Box
		retro float64
	}
	visuals := sc.Visuals()
	surfaces := make([]surface, 0, len(visuals))
	for _, v := range visuals {
		surfaces = append(surfaces, surface{box: v.Box(), retro: v.Retro()})
	}

	for y := 0; y < tgt.H; y++ {
		elev := angleAt(proj.VAngleMin, proj.VAngleMax, y, tgt.H)
		for x := 0; x < tgt.W; x++ {
			// Tangent-space pixel coordinates: the local ray direction is
			// (1, u, v), so the parametric distance along it equals view
			// depth.
			var u, v float64
			if len(proj.Samples) > 0 {
				s := proj.Samples[y*tgt.W+x]
				u, v = s[0], s[1]
			} else {
				az := angleAt(proj.HAngleMin, proj.HAngleMax, x, tgt.W)
				u = math.Tan(az)
				v = math.Tan(elev) / math.Cos(az)
			}
			dir := pose.TransformDir(geom.Vec{X: 1, Y: u, Z: v})

			best := math.Inf(1)
			bestRetro := 0.0
			for _, s := range surfaces {
				enter, exit, ok := s.box.IntersectRaySpan(pose.Pos, dir)
				if !ok {
					continue
				}
				t := enter
				if t < proj.Near {
					// Front face clipped by the near plane; the interior
					// back face is what the depth pass sees, if anything.
					if exit < proj.Near {
						continue
					}
					t = exit
				}
				if t > proj.Far {
					continue
				}
				if t < best {
					best = t
					bestRetro = s.retro
				}
			}

			depth := SentinelDepth
			var color geom.Color
			if !math.IsInf(best, 1) {
				depth = float32(offset + product/best)
				color = geom.Color{R: bestRetro / MaxRetro, A: 1}
			}

			out := prog(u, v, depth, color)
			copy(tgt.At(x, y), out[:])
		}
	}
	return nil
}

// Destroy implements Engine. The software backend holds no resources.
func (e *SoftwareEngine) Destroy() {}

// angleAt places n samples uniformly in angle across [min, max], inclusive
// at both ends. A single sample sits at the midpoint.
func angleAt(min, max float64, i, n int) float64 {
	if n <= 1 {
		return (min + max) / 2
	}
	return min + float64(i)*(max-min)/float64(n-1)
}
