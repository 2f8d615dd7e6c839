package geom

import "math"

// Inf is the float32 no-return range sentinel: a reading with no surface
// return within the clip planes.
var Inf = float32(math.Inf(1))

// IsNoReturn reports whether a range reading carries no surface return,
// either past the far clip plane (+Inf) or blocked before the near clip
// plane (-Inf).
func IsNoReturn(r float32) bool {
	return math.IsInf(float64(r), 0)
}
