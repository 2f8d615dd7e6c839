package gpurays

import (
	"math"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/render"
)

// clampTolerance is the band around each clip plane inside which a
// reconstructed range is treated as out of bounds. The same band applies at
// both ends.
const clampTolerance = 1e-3

// backgroundColor marks pixels carrying a fabricated out-of-range point
// rather than a genuine surface hit. Surface colors always carry full alpha,
// so the all-zero marker cannot collide with one.
var backgroundColor = geom.Color{}

var backgroundBits = geom.PackedBits(geom.PackColor(backgroundColor))

var (
	posInf32 = float32(math.Inf(1))
	negInf32 = float32(math.Inf(-1))
)

// buildProgram returns the per-pixel post-process stage for one sub-view:
// depth linearization, 3D point reconstruction in the sensor-native basis
// (forward X, left Y, up Z), near/far clamp policy and metadata packing.
func buildProgram(cfg config, proj render.Projection) render.Program {
	offset, product := proj.DepthParams()
	near, far := cfg.near, cfg.far

	// With clamping off, out-of-range rays report the formal no-return
	// values; with it on, points are rescaled radially onto the bound.
	maxVal := math.Inf(1)
	minVal := math.Inf(-1)
	if cfg.clamp {
		maxVal, minVal = far, near
	}
	bg := geom.PackColor(backgroundColor)

	return func(u, v float64, depth float32, color geom.Color) [4]float32 {
		if depth >= render.SentinelDepth {
			// No geometry within the clip planes. Never report the far
			// distance here: downstream must be able to tell "saw far
			// background" from "saw nothing".
			return boundPoint(maxVal, u, v, bg)
		}

		z := product / (float64(depth) - offset)
		x, y := z, u*z
		zz := v * z
		l := math.Sqrt(x*x + y*y + zz*zz)

		switch {
		case l > far-clampTolerance:
			return boundPoint(maxVal, u, v, bg)
		case l < near+clampTolerance:
			return boundPoint(minVal, u, v, bg)
		}
		return [4]float32{float32(x), float32(y), float32(zz), geom.PackColor(color)}
	}
}

// boundPoint emits the out-of-range point for a clamp policy value: the
// infinities pass through as sentinels, finite bounds produce a point of
// exactly that length along the pixel's ray direction (1, u, v). The color
// is always the background marker.
func boundPoint(val, u, v float64, bg float32) [4]float32 {
	switch {
	case math.IsInf(val, 1):
		return [4]float32{posInf32, posInf32, posInf32, bg}
	case math.IsInf(val, -1):
		return [4]float32{negInf32, negInf32, negInf32, bg}
	}
	s := val / math.Sqrt(1+u*u+v*v)
	return [4]float32{float32(s), float32(u * s), float32(v * s), bg}
}

// decodeSample converts one post-processed pixel into a (range, retro) pair.
// Infinite points pass their sign through as the range sentinel; background
// marked pixels and engines without retro support report zero retro.
func decodeSample(px []float32, retroSupported bool) (rng, retro float32) {
	x := float64(px[0])
	switch {
	case math.IsInf(x, 1):
		rng = posInf32
	case math.IsInf(x, -1):
		rng = negInf32
	default:
		y, z := float64(px[1]), float64(px[2])
		rng = float32(math.Sqrt(x*x + y*y + z*z))
	}
	if !retroSupported || geom.PackedBits(px[3]) == backgroundBits {
		return rng, 0
	}
	c := geom.UnpackColor(px[3])
	return rng, float32(c.R * render.MaxRetro)
}
