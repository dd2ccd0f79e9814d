// Package level implements the level_* commands covering level persistence,
// project metadata, and World Outliner inspection.
package level

import (
	"context"
	"reflect"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/registry"
)

// Module implements the registry.Module interface for level commands.
type Module struct {
	level     engine.LevelOps
	directory engine.ActorDirectory
}

func New(level engine.LevelOps, directory engine.ActorDirectory) *Module {
	return &Module{level: level, directory: directory}
}

func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("LevelSave", &registry.RegisteredCommand{
		NewInput:  func() any { return new(SaveInput) },
		InputType: reflect.TypeOf(SaveInput{}),
		Fn:        m.Save,
	})
	r.RegisterCommand("LevelProjectInfo", &registry.RegisteredCommand{
		NewInput:  func() any { return new(ProjectInfoInput) },
		InputType: reflect.TypeOf(ProjectInfoInput{}),
		Fn:        m.ProjectInfo,
	})
	r.RegisterCommand("LevelActors", &registry.RegisteredCommand{
		NewInput:  func() any { return new(ActorsInput) },
		InputType: reflect.TypeOf(ActorsInput{}),
		Fn:        m.Actors,
	})
	r.RegisterCommand("LevelOutliner", &registry.RegisteredCommand{
		NewInput:  func() any { return new(OutlinerInput) },
		InputType: reflect.TypeOf(OutlinerInput{}),
		Fn:        m.Outliner,
	})
}

// SaveInput defines the parameters of level_save_level.
type SaveInput struct{}

// Save persists the current level.
func (m *Module) Save(ctx context.Context, input *SaveInput) (any, error) {
	if err := m.level.SaveLevel(); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Level saved.")
	return map[string]any{"message": "Level saved"}, nil
}

// ProjectInfoInput defines the parameters of level_get_project_info.
type ProjectInfoInput struct{}

// ProjectInfo returns project name, engine version, and level paths.
func (m *Module) ProjectInfo(ctx context.Context, input *ProjectInfoInput) (any, error) {
	info, err := m.level.ProjectInfo()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"projectName":      info.Name,
		"projectDirectory": info.Directory,
		"engineVersion":    info.EngineVersion,
		"currentLevel":     info.CurrentLevel,
	}, nil
}

// ActorsInput defines the parameters of level_get_level_actors.
type ActorsInput struct {
	Filter string `ue:"filter"`
	Limit  int    `ue:"limit"`
}

// Actors lists level actors matching a label substring.
func (m *Module) Actors(ctx context.Context, input *ActorsInput) (any, error) {
	refs, err := m.directory.ListActors(input.Filter, input.Limit)
	if err != nil {
		return nil, err
	}

	actors := make([]map[string]any, 0, len(refs))
	for _, ref := range refs {
		actors = append(actors, map[string]any{
			"name":      ref.Name,
			"assetPath": ref.AssetPath,
			"folder":    ref.Folder,
			"location":  ref.Transform.Location.Array(),
			"rotation":  ref.Transform.Rotation.Array(),
			"scale":     ref.Transform.Scale.Array(),
		})
	}
	return map[string]any{
		"actors": actors,
		"count":  len(actors),
		"filter": input.Filter,
	}, nil
}

// OutlinerInput defines the parameters of level_get_outliner_structure.
type OutlinerInput struct{}

// Outliner returns the World Outliner folder tree as folder -> actor labels.
func (m *Module) Outliner(ctx context.Context, input *OutlinerInput) (any, error) {
	folders, err := m.level.OutlinerFolders()
	if err != nil {
		return nil, err
	}

	total := 0
	for _, names := range folders {
		total += len(names)
	}
	return map[string]any{
		"folders":     folders,
		"totalActors": total,
	}, nil
}
