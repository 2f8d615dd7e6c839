package gpurays

import (
	"math"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/render"
)

// MaxViewSpan is the widest angular span one projection may cover. Fields of
// view beyond it are partitioned into sub-views and stitched.
const MaxViewSpan = math.Pi / 2

// axisBand is one angular partition along a single axis: a contiguous,
// disjoint run of ray indices and the angle range those rays cover.
type axisBand struct {
	start, count int
	min, max     float64 // angles of the first and last ray in the band
	center       float64
}

// viewTask is one render pass of the scan: the cross product of a horizontal
// and a vertical band, with the target size derived from the resolution
// multipliers.
type viewTask struct {
	proj          render.Projection
	yaw, pitch    float64 // view center offsets from the sensor pose
	width, height int
	h, v          axisBand
}

// scanPlan is the partition of the configured field of view into sub-views.
// It is recomputed whenever angle bounds, ray counts or resolution change.
type scanPlan struct {
	width, height int
	views         []viewTask
}

// rayAngle returns the angle of ray i of n spaced uniformly across
// [min, max] inclusive. A single ray sits at the midpoint.
func rayAngle(min, max float64, i, n int) float64 {
	if n <= 1 {
		return (min + max) / 2
	}
	return min + float64(i)*(max-min)/float64(n-1)
}

// planAxis partitions n rays over [min, max] into the minimum number of
// equal-angle bands whose span fits within limit. Every ray lands in exactly
// one band, so stitched sub-views can neither drop nor double-count a
// boundary ray.
func planAxis(min, max float64, n int, limit float64) []axisBand {
	span := max - min
	parts := 1
	if span > limit {
		parts = int(math.Ceil(span/limit - 1e-9))
	}
	width := span / float64(parts)

	var bands []axisBand
	lastPart := -1
	for i := 0; i < n; i++ {
		a := rayAngle(min, max, i, n)
		k := parts - 1
		if width > 0 {
			if kk := int((a - min) / width); kk < k {
				k = kk
			}
		}
		if len(bands) == 0 || k != lastPart {
			bands = append(bands, axisBand{start: i, count: 1, min: a, max: a})
			lastPart = k
		} else {
			b := &bands[len(bands)-1]
			b.count++
			b.max = a
		}
	}
	for i := range bands {
		bands[i].center = (bands[i].min + bands[i].max) / 2
	}
	return bands
}

// newScanPlan partitions the configured field of view into render tasks.
//
// Yaw-only views sample the spherical ray grid exactly on a uniform angle
// layout (a rotation about the scan axis preserves per-ray azimuth and
// elevation), so those tasks use the angle-bound layout and honor the
// resolution multipliers. A pitched view does not: rays of equal elevation
// land at column-dependent local angles, so pitched tasks carry an explicit
// per-ray sample table instead, one pixel per covered ray.
func newScanPlan(cfg config) *scanPlan {
	hBands := planAxis(cfg.angleMin, cfg.angleMax, cfg.hRayCount, MaxViewSpan)
	vBands := planAxis(cfg.vAngleMin, cfg.vAngleMax, cfg.vRayCount, MaxViewSpan)

	p := &scanPlan{width: cfg.hRayCount, height: cfg.vRayCount}
	for _, vb := range vBands {
		for _, hb := range hBands {
			task := viewTask{
				proj: render.Projection{
					Near:      cfg.near,
					Far:       cfg.far,
					HAngleMin: hb.min - hb.center,
					HAngleMax: hb.max - hb.center,
					VAngleMin: vb.min - vb.center,
					VAngleMax: vb.max - vb.center,
				},
				yaw:    hb.center,
				pitch:  vb.center,
				width:  targetExtent(hb.count, cfg.hResolution),
				height: targetExtent(vb.count, cfg.vResolution),
				h:      hb,
				v:      vb,
			}
			if vb.center != 0 {
				fillViewSamples(cfg, &task)
			}
			p.views = append(p.views, task)
		}
	}
	return p
}

// fillViewSamples pins each of the task's pixels to the exact local
// direction of one covered ray and widens the projection bounds to the true
// local angle extents. Band spans are capped at MaxViewSpan per axis, which
// keeps every covered ray within 90 degrees of the view axis, so the
// tangent coordinates stay finite.
func fillViewSamples(cfg config, task *viewTask) {
	task.width = task.h.count
	task.height = task.v.count

	toLocal := geom.Compose(geom.RotY(task.pitch), geom.RotZ(-task.yaw))
	samples := make([][2]float64, task.width*task.height)
	hMin, hMax := math.Inf(1), math.Inf(-1)
	vMin, vMax := math.Inf(1), math.Inf(-1)
	for rv := 0; rv < task.v.count; rv++ {
		elev := rayAngle(cfg.vAngleMin, cfg.vAngleMax, task.v.start+rv, cfg.vRayCount)
		for rc := 0; rc < task.h.count; rc++ {
			az := rayAngle(cfg.angleMin, cfg.angleMax, task.h.start+rc, cfg.hRayCount)
			l := toLocal.Rotate(geom.SphericalDir(az, elev))
			samples[rv*task.width+rc] = [2]float64{l.Y / l.X, l.Z / l.X}

			hMin = math.Min(hMin, math.Atan2(l.Y, l.X))
			hMax = math.Max(hMax, math.Atan2(l.Y, l.X))
			lv := math.Atan2(l.Z, math.Hypot(l.X, l.Y))
			vMin = math.Min(vMin, lv)
			vMax = math.Max(vMax, lv)
		}
	}
	task.proj.Samples = samples
	task.proj.HAngleMin, task.proj.HAngleMax = hMin, hMax
	task.proj.VAngleMin, task.proj.VAngleMax = vMin, vMax
}

func targetExtent(rays int, resolution float64) int {
	n := int(math.Round(float64(rays) * resolution))
	if n < 1 {
		n = 1
	}
	return n
}

// pixelIndex maps an angle to the nearest sample column/row of a band
// rendered with n samples across [min, max].
func pixelIndex(angle, min, max float64, n int) int {
	if n <= 1 || max <= min {
		return 0
	}
	i := int(math.Round((angle - min) / (max - min) * float64(n-1)))
	if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	return i
}
