// Package geometry provides the vector and axis-aligned box primitives used
// by the placement validator. All values are in the engine's native world
// units; no unit conversion happens here.
package geometry

import "math"

// Axis identifies one of the three world axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the engine-facing axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "None"
}

// Vec3 is a point or extent in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Component returns the coordinate on the given axis.
func (v Vec3) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns a copy of v with the coordinate on the given axis
// replaced.
func (v Vec3) WithComponent(a Axis, c float64) Vec3 {
	switch a {
	case AxisX:
		v.X = c
	case AxisY:
		v.Y = c
	default:
		v.Z = c
	}
	return v
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s on every axis.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Midpoint returns the point halfway between v and o.
func (v Vec3) Midpoint(o Vec3) Vec3 {
	return v.Add(o).Scale(0.5)
}

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Array returns the [X, Y, Z] slice form used by the wire protocol.
func (v Vec3) Array() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Vec3FromArray builds a Vec3 from a protocol-style [X, Y, Z] slice. Shorter
// slices leave the remaining components at zero.
func Vec3FromArray(a []float64) Vec3 {
	var v Vec3
	if len(a) > 0 {
		v.X = a[0]
	}
	if len(a) > 1 {
		v.Y = a[1]
	}
	if len(a) > 2 {
		v.Z = a[2]
	}
	return v
}
