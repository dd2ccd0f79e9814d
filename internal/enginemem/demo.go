package enginemem

import (
	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
)

// SeedDemoContent loads a small modular building set sized to a 300-unit
// grid, plus a couple of materials. Used by the daemon's memory-engine demo
// mode and by tests that want a ready-made catalog.
func (e *Engine) SeedDemoContent() {
	vec := func(x, y, z float64) *geometry.Vec3 {
		return &geometry.Vec3{X: x, Y: y, Z: z}
	}

	meshes := []engine.AssetInfo{
		{
			Path:   "/Game/ModularOldTown/Meshes/SM_Wall_300",
			Type:   "StaticMesh",
			Extent: vec(150, 15, 150),
			Sockets: []engine.Socket{
				{Name: "WallRight", Location: geometry.Vec3{X: 300}},
				{Name: "WallLeft", Location: geometry.Vec3{X: -300}},
				{Name: "WallTop", Location: geometry.Vec3{Z: 300}},
			},
		},
		{
			Path:   "/Game/ModularOldTown/Meshes/SM_Floor_300",
			Type:   "StaticMesh",
			Extent: vec(150, 150, 10),
			Sockets: []engine.Socket{
				{Name: "FloorNorth", Location: geometry.Vec3{Y: 300}},
				{Name: "FloorEast", Location: geometry.Vec3{X: 300}},
			},
		},
		{
			Path:   "/Game/ModularOldTown/Meshes/SM_Corner_300",
			Type:   "StaticMesh",
			Extent: vec(15, 15, 150),
		},
		{
			Path:   "/Game/ModularOldTown/Meshes/SM_Cube_100",
			Type:   "StaticMesh",
			Extent: vec(50, 50, 50),
		},
		{
			Path: "/Game/Blueprints/BP_Door",
			Type: "Blueprint",
		},
	}
	for _, m := range meshes {
		e.SeedAsset(m)
	}

	materials := []engine.MaterialInfo{
		{Path: "/Game/Materials/M_Brick", Domain: "Surface"},
		{Path: "/Game/Materials/M_Plaster", Domain: "Surface"},
	}
	for _, m := range materials {
		e.SeedMaterial(m)
	}
}
