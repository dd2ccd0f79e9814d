// Package engine defines the capability boundary between the bridge and the
// host editor. Everything behind these interfaces is opaque, synchronous,
// and assumed reliable; the bridge core never reaches past them. A real
// editor supplies its own implementation, tests and the demo mode use the
// in-memory one from internal/enginemem.
package engine

import "github.com/vk/uebridge/internal/geometry"

// Transform is an actor's world-space placement. Rotation is
// [Roll, Pitch, Yaw] in degrees, matching the editor's convention.
type Transform struct {
	Location geometry.Vec3
	Rotation geometry.Vec3
	Scale    geometry.Vec3
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: geometry.Vec3{X: 1, Y: 1, Z: 1}}
}

// ActorRef is a snapshot of a placed actor. Name is the display label,
// unique within the level.
type ActorRef struct {
	Name      string
	AssetPath string
	Folder    string
	Transform Transform
}

// BoundsInfo is an actor's collision-inclusive world bounds: origin is the
// centroid, extent the half-size per axis.
type BoundsInfo struct {
	Origin geometry.Vec3
	Extent geometry.Vec3
}

// Box returns the axis-aligned box form of the bounds.
func (b BoundsInfo) Box() geometry.Box {
	return geometry.BoxFromCenterExtent(b.Origin, b.Extent)
}

// Socket is a named attachment point on a mesh asset, in asset-local space.
type Socket struct {
	Name     string
	Location geometry.Vec3
	Rotation geometry.Vec3
}

// AssetInfo describes one content-browser asset.
type AssetInfo struct {
	Path    string
	Type    string
	Extent  *geometry.Vec3
	Sockets []Socket
}

// MaterialInfo describes a material or material instance asset.
type MaterialInfo struct {
	Path       string
	Parent     string
	Domain     string
	Parameters map[string]any
}

// ProjectInfo identifies the host project.
type ProjectInfo struct {
	Name          string
	Directory     string
	EngineVersion string
	CurrentLevel  string
}

// CameraState is the editor viewport camera placement.
type CameraState struct {
	Location geometry.Vec3
	Rotation geometry.Vec3
}
