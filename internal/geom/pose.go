package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a 3D vector in metres.
type Vec = r3.Vec

// Rotation is a unit quaternion rotation.
type Rotation = r3.Rotation

// Pose is a rigid transform (local frame -> parent frame).
type Pose struct {
	Pos Vec
	Rot Rotation
}

// IdentityRotation returns the no-op rotation. The zero value of Rotation is
// not usable, so every pose must be built from this or from the axis helpers.
func IdentityRotation() Rotation {
	return Rotation(quat.Number{Real: 1})
}

// IdentityPose returns the identity transform.
func IdentityPose() Pose {
	return Pose{Rot: IdentityRotation()}
}

// RotX returns a rotation of angle radians about the +X axis (roll).
func RotX(angle float64) Rotation {
	return r3.NewRotation(angle, Vec{X: 1})
}

// RotY returns a rotation of angle radians about the +Y axis.
func RotY(angle float64) Rotation {
	return r3.NewRotation(angle, Vec{Y: 1})
}

// RotZ returns a rotation of angle radians about the +Z axis (yaw).
func RotZ(angle float64) Rotation {
	return r3.NewRotation(angle, Vec{Z: 1})
}

// Compose returns the rotation equivalent to applying b first, then a.
func Compose(a, b Rotation) Rotation {
	return Rotation(quat.Mul(quat.Number(a), quat.Number(b)))
}

// TransformPoint maps a point from the local frame to the parent frame.
func (p Pose) TransformPoint(v Vec) Vec {
	return r3.Add(p.Rot.Rotate(v), p.Pos)
}

// TransformDir maps a direction from the local frame to the parent frame.
// Directions are not translated.
func (p Pose) TransformDir(v Vec) Vec {
	return p.Rot.Rotate(v)
}

// Inverse returns the parent -> local transform.
func (p Pose) Inverse() Pose {
	inv := Rotation(quat.Conj(quat.Number(p.Rot)))
	return Pose{
		Pos: inv.Rotate(r3.Scale(-1, p.Pos)),
		Rot: inv,
	}
}

// Mul composes two poses: the result maps q's local frame through p.
func (p Pose) Mul(q Pose) Pose {
	return Pose{
		Pos: p.TransformPoint(q.Pos),
		Rot: Compose(p.Rot, q.Rot),
	}
}

// SphericalDir returns the unit direction at the given azimuth and elevation
// in the sensor-native basis.
func SphericalDir(azimuth, elevation float64) Vec {
	ce := math.Cos(elevation)
	return Vec{
		X: ce * math.Cos(azimuth),
		Y: ce * math.Sin(azimuth),
		Z: math.Sin(elevation),
	}
}
