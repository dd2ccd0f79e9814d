// Package enginemem is a complete in-memory implementation of the engine
// capability boundary. It backs every module test, the integration harness,
// and the daemon's demo mode, so the bridge core can be exercised without a
// running editor.
package enginemem

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
)

type actorState struct {
	ref engine.ActorRef
}

// Engine is a mutex-guarded in-memory level, asset catalog, and viewport.
type Engine struct {
	mu sync.RWMutex

	actors    map[string]*actorState
	assets    map[string]engine.AssetInfo
	materials map[string]engine.MaterialInfo

	camera     engine.CameraState
	renderMode string
	viewMode   string

	project engine.ProjectInfo
	logs    []string
	saved   bool

	screenshotSeq int
	screenshotDir string
}

// New creates an empty in-memory engine.
func New() *Engine {
	return &Engine{
		actors:        make(map[string]*actorState),
		assets:        make(map[string]engine.AssetInfo),
		materials:     make(map[string]engine.MaterialInfo),
		renderMode:    "lit",
		viewMode:      "perspective",
		screenshotDir: "/tmp",
		project: engine.ProjectInfo{
			Name:          "UEBridgeDemo",
			Directory:     "/Game",
			EngineVersion: "5.4.0-memory",
			CurrentLevel:  "/Game/Maps/Demo",
		},
	}
}

// SeedAsset adds an asset to the catalog, overwriting any previous entry at
// the same path.
func (e *Engine) SeedAsset(info engine.AssetInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.assets[info.Path] = info
}

// SeedMaterial adds a material to the catalog.
func (e *Engine) SeedMaterial(info engine.MaterialInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.materials[info.Path] = info
}

// SeedActor places an actor directly, bypassing spawn checks. Test setup
// only.
func (e *Engine) SeedActor(ref engine.ActorRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actors[ref.Name] = &actorState{ref: ref}
}

// AppendLog records a host log line for LogTail.
func (e *Engine) AppendLog(line string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logs = append(e.logs, line)
}

// Saved reports whether SaveLevel has been called since the last mutation.
func (e *Engine) Saved() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.saved
}

// --- ActorDirectory ---

// FindActor resolves a display label.
func (e *Engine) FindActor(name string) (engine.ActorRef, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	st, ok := e.actors[name]
	if !ok {
		return engine.ActorRef{}, fmt.Errorf("%w: %s", engine.ErrActorNotFound, name)
	}
	return st.ref, nil
}

// ListActors returns actors whose labels contain filter, sorted by label.
func (e *Engine) ListActors(filter string, limit int) ([]engine.ActorRef, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.actors))
	for name := range e.actors {
		if filter == "" || strings.Contains(name, filter) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	refs := make([]engine.ActorRef, len(names))
	for i, name := range names {
		refs[i] = e.actors[name].ref
	}
	return refs, nil
}

// ActorBounds derives collision-inclusive bounds from the actor's asset
// extent scaled by its transform.
func (e *Engine) ActorBounds(name string) (engine.BoundsInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st, ok := e.actors[name]
	if !ok {
		return engine.BoundsInfo{}, fmt.Errorf("%w: %s", engine.ErrActorNotFound, name)
	}

	extent := geometry.Vec3{X: 50, Y: 50, Z: 50}
	if asset, ok := e.assets[st.ref.AssetPath]; ok && asset.Extent != nil {
		extent = *asset.Extent
	}
	extent = extent.Mul(st.ref.Transform.Scale)

	return engine.BoundsInfo{
		Origin: st.ref.Transform.Location,
		Extent: extent,
	}, nil
}

// SocketTransform composes a socket's asset-local placement with the actor's
// world transform. Socket rotation combines additively, which is sufficient
// for the axis-aligned modular pieces this engine models.
func (e *Engine) SocketTransform(actorName, socketName string) (engine.Transform, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st, ok := e.actors[actorName]
	if !ok {
		return engine.Transform{}, fmt.Errorf("%w: %s", engine.ErrActorNotFound, actorName)
	}
	asset, ok := e.assets[st.ref.AssetPath]
	if !ok {
		return engine.Transform{}, fmt.Errorf("%w: %s", engine.ErrAssetNotFound, st.ref.AssetPath)
	}
	for _, socket := range asset.Sockets {
		if socket.Name == socketName {
			t := st.ref.Transform
			return engine.Transform{
				Location: t.Location.Add(socket.Location.Mul(t.Scale)),
				Rotation: t.Rotation.Add(socket.Rotation),
				Scale:    t.Scale,
			}, nil
		}
	}
	return engine.Transform{}, fmt.Errorf("%w: %s on %s", engine.ErrSocketNotFound, socketName, actorName)
}

// --- ActorMutator ---

// SpawnActor places a new actor. The label must be unique.
func (e *Engine) SpawnActor(assetPath, name, folder string, t engine.Transform) (engine.ActorRef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.assets[assetPath]; !ok {
		return engine.ActorRef{}, fmt.Errorf("%w: %s", engine.ErrAssetNotFound, assetPath)
	}
	if _, ok := e.actors[name]; ok {
		return engine.ActorRef{}, fmt.Errorf("actor label already in use: %s", name)
	}

	ref := engine.ActorRef{
		Name:      name,
		AssetPath: assetPath,
		Folder:    folder,
		Transform: t,
	}
	e.actors[name] = &actorState{ref: ref}
	e.saved = false
	return ref, nil
}

// DestroyActor removes an actor from the level.
func (e *Engine) DestroyActor(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.actors[name]; !ok {
		return fmt.Errorf("%w: %s", engine.ErrActorNotFound, name)
	}
	delete(e.actors, name)
	e.saved = false
	return nil
}

// SetActorTransform applies the non-nil transform components.
func (e *Engine) SetActorTransform(name string, location, rotation, scale *geometry.Vec3) (engine.ActorRef, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.actors[name]
	if !ok {
		return engine.ActorRef{}, fmt.Errorf("%w: %s", engine.ErrActorNotFound, name)
	}
	if location != nil {
		st.ref.Transform.Location = *location
	}
	if rotation != nil {
		st.ref.Transform.Rotation = *rotation
	}
	if scale != nil {
		st.ref.Transform.Scale = *scale
	}
	e.saved = false
	return st.ref, nil
}

// SetActorFolder moves an actor to a World Outliner folder.
func (e *Engine) SetActorFolder(name, folder string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.actors[name]
	if !ok {
		return fmt.Errorf("%w: %s", engine.ErrActorNotFound, name)
	}
	st.ref.Folder = folder
	e.saved = false
	return nil
}

// SetActorMesh swaps the actor's mesh asset.
func (e *Engine) SetActorMesh(name, meshPath string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.actors[name]
	if !ok {
		return fmt.Errorf("%w: %s", engine.ErrActorNotFound, name)
	}
	if _, ok := e.assets[meshPath]; !ok {
		return fmt.Errorf("%w: %s", engine.ErrAssetNotFound, meshPath)
	}
	st.ref.AssetPath = meshPath
	e.saved = false
	return nil
}

// SetActorMaterial assigns a material to a mesh slot.
func (e *Engine) SetActorMaterial(name string, slotIndex int, materialPath string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.actors[name]; !ok {
		return fmt.Errorf("%w: %s", engine.ErrActorNotFound, name)
	}
	if _, ok := e.materials[materialPath]; !ok {
		return fmt.Errorf("%w: %s", engine.ErrMaterialNotFound, materialPath)
	}
	if slotIndex < 0 {
		return fmt.Errorf("invalid material slot index: %d", slotIndex)
	}
	e.saved = false
	return nil
}
