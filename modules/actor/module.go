// Package actor implements the actor_* commands: spawn, delete, modify,
// duplicate, organize, batch spawn, socket snapping, and modular placement
// validation.
package actor

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
	"github.com/vk/uebridge/internal/registry"
)

// Module implements the registry.Module interface for actor commands.
type Module struct {
	directory engine.ActorDirectory
	mutator   engine.ActorMutator
	assets    engine.AssetCatalog
}

// New creates the actor module over the host engine capabilities it needs.
func New(directory engine.ActorDirectory, mutator engine.ActorMutator, assets engine.AssetCatalog) *Module {
	return &Module{directory: directory, mutator: mutator, assets: assets}
}

// Register registers every actor handler with the bridge registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("ActorSpawn", &registry.RegisteredCommand{
		NewInput:  func() any { return new(SpawnInput) },
		InputType: reflect.TypeOf(SpawnInput{}),
		Fn:        m.Spawn,
	})
	r.RegisterCommand("ActorDelete", &registry.RegisteredCommand{
		NewInput:  func() any { return new(DeleteInput) },
		InputType: reflect.TypeOf(DeleteInput{}),
		Fn:        m.Delete,
	})
	r.RegisterCommand("ActorModify", &registry.RegisteredCommand{
		NewInput:  func() any { return new(ModifyInput) },
		InputType: reflect.TypeOf(ModifyInput{}),
		Fn:        m.Modify,
	})
	r.RegisterCommand("ActorDuplicate", &registry.RegisteredCommand{
		NewInput:  func() any { return new(DuplicateInput) },
		InputType: reflect.TypeOf(DuplicateInput{}),
		Fn:        m.Duplicate,
	})
	r.RegisterCommand("ActorOrganize", &registry.RegisteredCommand{
		NewInput:  func() any { return new(OrganizeInput) },
		InputType: reflect.TypeOf(OrganizeInput{}),
		Fn:        m.Organize,
	})
	r.RegisterCommand("ActorBatchSpawn", &registry.RegisteredCommand{
		NewInput:  func() any { return new(BatchSpawnInput) },
		InputType: reflect.TypeOf(BatchSpawnInput{}),
		Fn:        m.BatchSpawn,
	})
	r.RegisterCommand("ActorSnapToSocket", &registry.RegisteredCommand{
		NewInput:  func() any { return new(SnapInput) },
		InputType: reflect.TypeOf(SnapInput{}),
		Fn:        m.SnapToSocket,
	})
	r.RegisterCommand("ActorPlacementValidate", &registry.RegisteredCommand{
		NewInput:  func() any { return new(PlacementInput) },
		InputType: reflect.TypeOf(PlacementInput{}),
		Fn:        m.PlacementValidate,
	})
}

// SpawnInput defines the parameters of actor_spawn.
type SpawnInput struct {
	AssetPath string    `ue:"assetPath"`
	Location  []float64 `ue:"location"`
	Rotation  []float64 `ue:"rotation"`
	Scale     []float64 `ue:"scale"`
	Name      string    `ue:"name"`
	Folder    string    `ue:"folder"`
	Validate  bool      `ue:"validate"`
}

// Spawn places a new actor in the level.
func (m *Module) Spawn(ctx context.Context, input *SpawnInput) (any, error) {
	logger := ctxlog.FromContext(ctx)

	name := input.Name
	if name == "" {
		name = fmt.Sprintf("UEBridge_Actor_%d", time.Now().Unix())
	}

	asset, err := m.assets.AssetInfo(input.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("Could not load asset: %s", input.AssetPath)
	}
	if asset.Type != "StaticMesh" && asset.Type != "Blueprint" {
		return nil, fmt.Errorf("Unsupported asset type: %s", asset.Type)
	}

	t := engine.Transform{
		Location: geometry.Vec3FromArray(input.Location),
		Rotation: geometry.Vec3FromArray(input.Rotation),
		Scale:    geometry.Vec3FromArray(input.Scale),
	}
	ref, err := m.mutator.SpawnActor(input.AssetPath, name, input.Folder, t)
	if err != nil {
		return nil, err
	}
	logger.Debug("Spawned actor.", "name", name, "asset", input.AssetPath)

	result := map[string]any{
		"actorName": ref.Name,
		"location":  ref.Transform.Location.Array(),
		"rotation":  ref.Transform.Rotation.Array(),
		"scale":     ref.Transform.Scale.Array(),
		"assetPath": ref.AssetPath,
		"message":   fmt.Sprintf("Created %s at %v", ref.Name, ref.Transform.Location.Array()),
	}
	if input.Validate {
		addValidation(result, m.verifySpawn(name, t, input.Folder))
	}
	return result, nil
}

// DeleteInput defines the parameters of actor_delete.
type DeleteInput struct {
	ActorName string `ue:"actorName"`
	Validate  bool   `ue:"validate"`
}

// Delete removes an actor from the level.
func (m *Module) Delete(ctx context.Context, input *DeleteInput) (any, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := m.directory.FindActor(input.ActorName); err != nil {
		return nil, fmt.Errorf("Actor not found: %s", input.ActorName)
	}
	if err := m.mutator.DestroyActor(input.ActorName); err != nil {
		return nil, err
	}
	logger.Debug("Deleted actor.", "name", input.ActorName)

	result := map[string]any{
		"message": fmt.Sprintf("Deleted actor: %s", input.ActorName),
	}
	if input.Validate {
		addValidation(result, m.verifyDeleted(input.ActorName))
	}
	return result, nil
}

// ModifyInput defines the parameters of actor_modify. Nil slices and empty
// strings mean "leave unchanged".
type ModifyInput struct {
	ActorName string    `ue:"actorName"`
	Location  []float64 `ue:"location"`
	Rotation  []float64 `ue:"rotation"`
	Scale     []float64 `ue:"scale"`
	Folder    string    `ue:"folder"`
	Mesh      string    `ue:"mesh"`
	Validate  bool      `ue:"validate"`
}

// Modify updates the supplied properties of an existing actor. A failure
// partway leaves the earlier modifications applied.
func (m *Module) Modify(ctx context.Context, input *ModifyInput) (any, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := m.directory.FindActor(input.ActorName); err != nil {
		return nil, fmt.Errorf("Actor not found: %s", input.ActorName)
	}

	location := vecPtr(input.Location)
	rotation := vecPtr(input.Rotation)
	scale := vecPtr(input.Scale)

	ref, err := m.mutator.SetActorTransform(input.ActorName, location, rotation, scale)
	if err != nil {
		return nil, err
	}
	if input.Folder != "" {
		if err := m.mutator.SetActorFolder(input.ActorName, input.Folder); err != nil {
			return nil, err
		}
		ref.Folder = input.Folder
	}
	if input.Mesh != "" {
		if err := m.mutator.SetActorMesh(input.ActorName, input.Mesh); err != nil {
			return nil, err
		}
		ref.AssetPath = input.Mesh
	}
	logger.Debug("Modified actor.", "name", input.ActorName)

	result := map[string]any{
		"actorName": ref.Name,
		"location":  ref.Transform.Location.Array(),
		"rotation":  ref.Transform.Rotation.Array(),
		"scale":     ref.Transform.Scale.Array(),
		"folder":    ref.Folder,
		"message":   fmt.Sprintf("Modified actor: %s", ref.Name),
	}
	if input.Validate {
		addValidation(result, m.verifyModify(input, ref))
	}
	return result, nil
}

// DuplicateInput defines the parameters of actor_duplicate.
type DuplicateInput struct {
	SourceName string    `ue:"sourceName"`
	Name       string    `ue:"name"`
	Offset     []float64 `ue:"offset"`
	Validate   bool      `ue:"validate"`
}

// Duplicate spawns a copy of an existing actor at a positional offset,
// inheriting its rotation, scale, and folder.
func (m *Module) Duplicate(ctx context.Context, input *DuplicateInput) (any, error) {
	logger := ctxlog.FromContext(ctx)

	source, err := m.directory.FindActor(input.SourceName)
	if err != nil {
		return nil, fmt.Errorf("Source actor %q not found", input.SourceName)
	}

	name := input.Name
	if name == "" {
		name = input.SourceName + "_Copy"
	}

	t := source.Transform
	t.Location = t.Location.Add(geometry.Vec3FromArray(input.Offset))

	ref, err := m.mutator.SpawnActor(source.AssetPath, name, source.Folder, t)
	if err != nil {
		return nil, fmt.Errorf("Failed to duplicate actor: %w", err)
	}
	logger.Debug("Duplicated actor.", "source", input.SourceName, "copy", name)

	result := map[string]any{
		"actorName": ref.Name,
		"location":  ref.Transform.Location.Array(),
	}
	if input.Validate {
		addValidation(result, m.verifySpawn(name, t, source.Folder))
	}
	return result, nil
}

// OrganizeInput defines the parameters of actor_organize.
type OrganizeInput struct {
	Actors  []string `ue:"actors"`
	Pattern string   `ue:"pattern"`
	Folder  string   `ue:"folder"`
}

// Organize moves the matching actors into a World Outliner folder. Actors
// may be selected explicitly by name or by a label substring pattern.
func (m *Module) Organize(ctx context.Context, input *OrganizeInput) (any, error) {
	logger := ctxlog.FromContext(ctx)

	var selected []string
	if len(input.Actors) > 0 {
		for _, name := range input.Actors {
			if _, err := m.directory.FindActor(name); err == nil {
				selected = append(selected, name)
			}
		}
	} else if input.Pattern != "" {
		refs, err := m.directory.ListActors(input.Pattern, 0)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			selected = append(selected, ref.Name)
		}
	} else {
		return nil, fmt.Errorf("either actors or pattern must be provided")
	}

	organized := make([]string, 0, len(selected))
	for _, name := range selected {
		if err := m.mutator.SetActorFolder(name, input.Folder); err != nil {
			logger.Warn("Failed to organize actor.", "name", name, "error", err)
			continue
		}
		organized = append(organized, name)
	}

	return map[string]any{
		"organizedActors": organized,
		"count":           len(organized),
		"folder":          input.Folder,
	}, nil
}

// vecPtr converts a protocol array to an optional vector; nil slices carry
// through as nil.
func vecPtr(a []float64) *geometry.Vec3 {
	if a == nil {
		return nil
	}
	v := geometry.Vec3FromArray(a)
	return &v
}
