// Package gpurays synthesizes range-sensor scans by rendering depth and
// metadata images from a virtual sensor's viewpoint and converting them into
// per-ray range, retro-reflectivity and auxiliary readings.
//
// The pipeline per Update: partition the configured field of view into
// sub-views within the backend's per-view angular limit, render each
// sub-view through a depth-linearizing and clamping post-process stage,
// stitch the per-ray results into one scan buffer ordered by vertical then
// horizontal angle, resolve stochastic particle occlusion, and fan the
// completed scan out to registered consumers synchronously.
package gpurays
