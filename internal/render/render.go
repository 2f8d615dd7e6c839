// Package render defines the boundary to the rendering collaborator: an
// engine that can rasterize a scene from an arbitrary pose into an
// off-screen multi-channel float target while running a caller-supplied
// per-pixel post-process stage. A self-contained software raycasting engine
// is included as the reference backend.
package render

import (
	"fmt"
	"math"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/scene"
)

// Capability describes optional engine features. Sensors degrade to a
// best-effort no-op with a diagnostic notice when a capability is missing.
type Capability uint32

const (
	// CapRetroReflection: the engine encodes surface retro-reflectivity
	// into the color channel of its output.
	CapRetroReflection Capability = 1 << iota
	// CapParticles: scans through particle emitter volumes may register
	// stochastic particle hits.
	CapParticles
)

// MaxRetro is the retro-reflectivity value that maps to a full color
// channel. Engines normalize by it before the 8-bit metadata packing and
// sensors multiply it back after unpacking.
const MaxRetro = 2000.0

// Target is an off-screen float render target.
type Target struct {
	W, H     int
	Channels int
	Data     []float32 // len = W * H * Channels, row-major
}

// At returns a slice aliasing the channel values of pixel (x, y).
func (t *Target) At(x, y int) []float32 {
	i := (y*t.W + x) * t.Channels
	return t.Data[i : i+t.Channels]
}

// Projection describes one view frustum in the camera's local frame.
// Angle bounds are inclusive; pixels are laid out uniformly in angle across
// them, with column 0 at HAngleMin and row 0 at VAngleMin. A non-empty
// Samples table replaces the uniform layout with explicit per-pixel
// directions.
type Projection struct {
	Near, Far            float64 // view-depth clip planes; Far may be +Inf
	HAngleMin, HAngleMax float64 // local azimuth bounds, radians
	VAngleMin, VAngleMax float64 // local elevation bounds, radians

	// Samples optionally pins each pixel to an explicit tangent-space
	// direction (u, v), row-major, one entry per target pixel. The pixel's
	// view ray is (1, u, v) in the camera's local frame. Callers use this
	// when the directions they need do not form a separable angle grid,
	// as with a pitched view of a spherical scan pattern.
	Samples [][2]float64
}

// DepthParams returns the two-component conversion factors between the
// engine's non-linear projected depth d and linear view depth z:
//
//	d = offset + product/z,  z = product/(d - offset)
//
// so z = near maps to d = 0 and z = far to d = 1. An infinite far plane
// degenerates to offset = 1, product = -near.
func (p Projection) DepthParams() (offset, product float64) {
	if math.IsInf(p.Far, 1) {
		return 1, -p.Near
	}
	offset = p.Far / (p.Far - p.Near)
	product = -p.Far * p.Near / (p.Far - p.Near)
	return offset, product
}

// SentinelDepth is the projected depth written where no geometry was hit
// within the clip planes. It linearizes to the far plane, which the
// post-process clamp band then maps to the configured out-of-range value.
const SentinelDepth = float32(1.0)

// Program is the per-pixel post-process stage. It receives the pixel's
// tangent-space coordinates (u = tan azimuth, v = tan elevation / cos
// azimuth), the raw non-linear depth sample and the sampled scene color, and
// emits the four channels written to the target.
type Program func(u, v float64, depth float32, color geom.Color) [4]float32

// Engine renders a scene into off-screen targets.
type Engine interface {
	// Name identifies the backend.
	Name() string
	// Capabilities reports the optional features this backend supports.
	Capabilities() Capability
	// CreateTarget allocates an off-screen target. Failures are resource
	// errors: fatal to the update that requested them, with prior sensor
	// output left intact.
	CreateTarget(w, h, channels int) (*Target, error)
	// Render draws sc from pose with proj into tgt, invoking prog once
	// per pixel. tgt must have 4 channels.
	Render(sc *scene.Scene, pose geom.Pose, proj Projection, prog Program, tgt *Target) error
	// Destroy releases backend resources.
	Destroy()
}

func validateTarget(w, h, channels int) error {
	if w < 1 || h < 1 || channels < 1 {
		return fmt.Errorf("render target dimensions %dx%dx%d out of range", w, h, channels)
	}
	return nil
}
