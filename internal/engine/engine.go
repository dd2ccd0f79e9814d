package engine

import "github.com/vk/uebridge/internal/geometry"

// ActorDirectory resolves actor names to live state.
type ActorDirectory interface {
	// FindActor resolves a display name. Returns ErrActorNotFound when no
	// actor carries that label.
	FindActor(name string) (ActorRef, error)

	// ListActors returns actors whose labels contain filter (all when
	// empty), up to limit (unbounded when <= 0).
	ListActors(filter string, limit int) ([]ActorRef, error)

	// ActorBounds returns the collision-inclusive world bounds.
	ActorBounds(name string) (BoundsInfo, error)

	// SocketTransform returns the world-space transform of a named socket
	// on the actor's mesh.
	SocketTransform(actorName, socketName string) (Transform, error)
}

// ActorMutator changes level state. Mutations apply immediately; a
// multi-step mutation that fails partway leaves the intermediate state.
type ActorMutator interface {
	SpawnActor(assetPath, name, folder string, t Transform) (ActorRef, error)
	DestroyActor(name string) error

	// SetActorTransform applies the non-nil components.
	SetActorTransform(name string, location, rotation, scale *geometry.Vec3) (ActorRef, error)

	SetActorFolder(name, folder string) error
	SetActorMesh(name, meshPath string) error
	SetActorMaterial(name string, slotIndex int, materialPath string) error
}

// AssetCatalog answers content-browser queries.
type AssetCatalog interface {
	// ListAssets returns assets under path, optionally restricted to a
	// type, up to limit (unbounded when <= 0).
	ListAssets(path, assetType string, limit int) ([]AssetInfo, error)

	AssetInfo(path string) (AssetInfo, error)
	AssetExists(path string) bool
}

// MaterialAuthor creates and inspects materials.
type MaterialAuthor interface {
	ListMaterials(path, pattern string, limit int) ([]MaterialInfo, error)
	MaterialInfo(path string) (MaterialInfo, error)
	CreateMaterialInstance(parentPath, destPath string, parameters map[string]any) (MaterialInfo, error)
	CreateSimpleMaterial(destPath string, color geometry.Vec3, metallic, roughness float64) (MaterialInfo, error)
}

// Viewport drives the editor camera and capture.
type Viewport interface {
	// SetCamera applies the non-nil components and returns the resulting
	// state.
	SetCamera(location, rotation *geometry.Vec3) (CameraState, error)

	FocusOnActor(name string, preserveRotation bool) (CameraState, error)
	FitActors(names []string, padding float64) (CameraState, error)
	LookAt(target geometry.Vec3, distance, pitch, height float64) (CameraState, error)
	SetRenderMode(mode string) error
	SetViewMode(mode string) error
	Camera() CameraState
	VisibleBounds() (BoundsInfo, error)
	Screenshot(width, height int) (string, error)
}

// LevelOps covers whole-level operations.
type LevelOps interface {
	SaveLevel() error
	ProjectInfo() (ProjectInfo, error)

	// OutlinerFolders maps each World Outliner folder path to the actor
	// labels it contains. Root-level actors appear under "".
	OutlinerFolders() (map[string][]string, error)
}

// SystemInfo exposes host diagnostics.
type SystemInfo interface {
	EngineVersion() string
	LogTail(lines int) ([]string, error)
}

// Engine is the full capability set a host editor provides.
type Engine interface {
	ActorDirectory
	ActorMutator
	AssetCatalog
	MaterialAuthor
	Viewport
	LevelOps
	SystemInfo
}
