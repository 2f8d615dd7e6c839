// Package geom provides the vector, pose and intersection math shared by the
// render engines and the ray sensor pipeline.
//
// Conventions: right-handed sensor-native basis with forward = +X,
// left = +Y, up = +Z. Azimuth is measured counter-clockwise from +X toward
// +Y, elevation from the XY plane toward +Z. All angles are radians.
package geom
