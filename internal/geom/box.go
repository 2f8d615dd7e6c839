package geom

import "math"

// Box is an oriented box: a unit cube scaled by Size and placed at Pose.
type Box struct {
	Pose Pose
	Size Vec // full extents along the box's local axes
}

// IntersectRay computes the parametric entry distance of a ray into the box.
// The ray is origin + t*dir for t >= 0; t is in units of the length of dir.
// An origin inside the box reports entry at t = 0. The second return is false
// when the ray misses.
func (b Box) IntersectRay(origin, dir Vec) (float64, bool) {
	enter, _, ok := b.IntersectRaySpan(origin, dir)
	if !ok {
		return 0, false
	}
	return math.Max(enter, 0), true
}

// IntersectRaySpan computes the parametric entry and exit distances of a ray
// through the box via a slab test in the box's local frame. enter may be
// negative when the origin is inside the box. ok is false when the ray
// misses or the box lies entirely behind the origin.
func (b Box) IntersectRaySpan(origin, dir Vec) (enter, exit float64, ok bool) {
	inv := b.Pose.Inverse()
	o := inv.TransformPoint(origin)
	d := inv.TransformDir(dir)

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for _, axis := range [3][3]float64{
		{o.X, d.X, b.Size.X / 2},
		{o.Y, d.Y, b.Size.Y / 2},
		{o.Z, d.Z, b.Size.Z / 2},
	} {
		ao, ad, half := axis[0], axis[1], axis[2]
		if ad == 0 {
			// Ray parallel to this slab: either always inside it or never.
			if ao < -half || ao > half {
				return 0, 0, false
			}
			continue
		}
		t0 := (-half - ao) / ad
		t1 := (half - ao) / ad
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return 0, 0, false
		}
	}
	if tMax < 0 {
		return 0, 0, false
	}
	return tMin, tMax, true
}
