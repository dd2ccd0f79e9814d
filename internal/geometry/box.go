package geometry

import "math"

// Box is an axis-aligned bounding box described by its two extreme corners.
type Box struct {
	Min Vec3
	Max Vec3
}

// BoxFromCenterExtent builds a box from a centroid and a half-size extent,
// the form the editor reports actor bounds in.
func BoxFromCenterExtent(center, extent Vec3) Box {
	return Box{
		Min: center.Sub(extent),
		Max: center.Add(extent),
	}
}

// Center returns the geometric center of the box.
func (b Box) Center() Vec3 {
	return b.Min.Midpoint(b.Max)
}

// Size returns the full edge length per axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Gap returns the positive separation between b and o on the given axis, or
// zero when the boxes overlap or touch on that axis.
func (b Box) Gap(o Box, a Axis) float64 {
	sep := math.Max(
		b.Min.Component(a)-o.Max.Component(a),
		o.Min.Component(a)-b.Max.Component(a),
	)
	return math.Max(0, sep)
}

// Overlap returns the positive penetration depth between b and o on the
// given axis, or zero when the boxes are apart or merely touch on that axis.
func (b Box) Overlap(o Box, a Axis) float64 {
	pen := math.Min(b.Max.Component(a), o.Max.Component(a)) -
		math.Max(b.Min.Component(a), o.Min.Component(a))
	return math.Max(0, pen)
}

// OverlapRegion returns the box shared by b and o. Meaningful only when the
// boxes overlap on every axis.
func (b Box) OverlapRegion(o Box) Box {
	return Box{
		Min: Vec3{
			X: math.Max(b.Min.X, o.Min.X),
			Y: math.Max(b.Min.Y, o.Min.Y),
			Z: math.Max(b.Min.Z, o.Min.Z),
		},
		Max: Vec3{
			X: math.Min(b.Max.X, o.Max.X),
			Y: math.Min(b.Max.Y, o.Max.Y),
			Z: math.Min(b.Max.Z, o.Max.Z),
		},
	}
}
