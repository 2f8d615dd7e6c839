package geom

import (
	"math"
	"testing"
)

const eps = 1e-12

func vecNear(a, b Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestAxisRotations(t *testing.T) {
	cases := []struct {
		name string
		rot  Rotation
		in   Vec
		want Vec
	}{
		{"yaw quarter turn", RotZ(math.Pi / 2), Vec{X: 1}, Vec{Y: 1}},
		{"yaw half turn", RotZ(math.Pi), Vec{X: 1}, Vec{X: -1}},
		{"pitch down", RotY(math.Pi / 2), Vec{X: 1}, Vec{Z: -1}},
		{"roll", RotX(math.Pi / 2), Vec{Y: 1}, Vec{Z: 1}},
		{"identity", IdentityRotation(), Vec{X: 1, Y: 2, Z: 3}, Vec{X: 1, Y: 2, Z: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rot.Rotate(tc.in); !vecNear(got, tc.want, eps) {
				t.Errorf("rotate(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestComposeOrder(t *testing.T) {
	// Compose(a, b) applies b first. Yaw then pitch of the forward axis.
	r := Compose(RotZ(math.Pi/2), RotY(-math.Pi/2))
	got := r.Rotate(Vec{X: 1})
	// RotY(-pi/2) lifts forward to +Z; the yaw then leaves +Z alone.
	if !vecNear(got, Vec{Z: 1}, eps) {
		t.Errorf("composed rotation of forward = %v, want +Z", got)
	}
}

func TestPoseRoundTrip(t *testing.T) {
	p := Pose{Pos: Vec{X: 1, Y: -2, Z: 0.5}, Rot: Compose(RotZ(0.3), RotY(-0.7))}
	pt := Vec{X: 4, Y: 1, Z: -3}
	back := p.Inverse().TransformPoint(p.TransformPoint(pt))
	if !vecNear(back, pt, 1e-12) {
		t.Errorf("inverse round trip: got %v, want %v", back, pt)
	}
}

func TestPoseMul(t *testing.T) {
	a := Pose{Pos: Vec{X: 1}, Rot: RotZ(math.Pi / 2)}
	b := Pose{Pos: Vec{X: 1}, Rot: IdentityRotation()}
	// b's origin sits 1m forward of a, which faces +Y.
	got := a.Mul(b)
	if !vecNear(got.Pos, Vec{X: 1, Y: 1}, eps) {
		t.Errorf("composed position %v, want (1,1,0)", got.Pos)
	}
}

func TestSphericalDir(t *testing.T) {
	cases := []struct {
		name     string
		az, elev float64
		want     Vec
	}{
		{"forward", 0, 0, Vec{X: 1}},
		{"left", math.Pi / 2, 0, Vec{Y: 1}},
		{"up", 0, math.Pi / 2, Vec{Z: 1}},
		{"diagonal", math.Pi / 4, 0, Vec{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SphericalDir(tc.az, tc.elev); !vecNear(got, tc.want, eps) {
				t.Errorf("SphericalDir(%v, %v) = %v, want %v", tc.az, tc.elev, got, tc.want)
			}
		})
	}
}
