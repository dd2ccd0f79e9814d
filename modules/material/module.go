// Package material implements the material_* authoring and inspection
// commands.
package material

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
	"github.com/vk/uebridge/internal/registry"
)

// Module implements the registry.Module interface for material commands.
type Module struct {
	author  engine.MaterialAuthor
	mutator engine.ActorMutator
}

func New(author engine.MaterialAuthor, mutator engine.ActorMutator) *Module {
	return &Module{author: author, mutator: mutator}
}

func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("MaterialList", &registry.RegisteredCommand{
		NewInput:  func() any { return new(ListInput) },
		InputType: reflect.TypeOf(ListInput{}),
		Fn:        m.List,
	})
	r.RegisterCommand("MaterialInfo", &registry.RegisteredCommand{
		NewInput:  func() any { return new(InfoInput) },
		InputType: reflect.TypeOf(InfoInput{}),
		Fn:        m.Info,
	})
	r.RegisterCommand("MaterialCreateInstance", &registry.RegisteredCommand{
		NewInput:  func() any { return new(CreateInstanceInput) },
		InputType: reflect.TypeOf(CreateInstanceInput{}),
		Fn:        m.CreateInstance,
	})
	r.RegisterCommand("MaterialApplyToActor", &registry.RegisteredCommand{
		NewInput:  func() any { return new(ApplyInput) },
		InputType: reflect.TypeOf(ApplyInput{}),
		Fn:        m.ApplyToActor,
	})
	r.RegisterCommand("MaterialCreateSimple", &registry.RegisteredCommand{
		NewInput:  func() any { return new(CreateSimpleInput) },
		InputType: reflect.TypeOf(CreateSimpleInput{}),
		Fn:        m.CreateSimple,
	})
}

// ListInput defines the parameters of material_list_materials.
type ListInput struct {
	Path    string `ue:"path"`
	Pattern string `ue:"pattern"`
	Limit   int    `ue:"limit"`
}

// List returns materials under a content path.
func (m *Module) List(ctx context.Context, input *ListInput) (any, error) {
	materials, err := m.author.ListMaterials(input.Path, input.Pattern, input.Limit)
	if err != nil {
		return nil, err
	}

	entries := make([]map[string]any, 0, len(materials))
	for _, mat := range materials {
		entries = append(entries, map[string]any{
			"path":   mat.Path,
			"domain": mat.Domain,
		})
	}
	return map[string]any{
		"materials": entries,
		"count":     len(entries),
	}, nil
}

// InfoInput defines the parameters of material_get_info.
type InfoInput struct {
	MaterialPath string `ue:"materialPath"`
}

// Info returns the parent, domain, and parameters of a material.
func (m *Module) Info(ctx context.Context, input *InfoInput) (any, error) {
	info, err := m.author.MaterialInfo(input.MaterialPath)
	if err != nil {
		return nil, fmt.Errorf("Material not found: %s", input.MaterialPath)
	}
	return map[string]any{
		"materialPath": info.Path,
		"parent":       info.Parent,
		"domain":       info.Domain,
		"parameters":   info.Parameters,
	}, nil
}

// CreateInstanceInput defines the parameters of material_create_instance.
// Parameters is a schemaless name -> value map forwarded to the instance.
type CreateInstanceInput struct {
	ParentPath string          `ue:"parentPath"`
	DestPath   string          `ue:"destPath"`
	Parameters json.RawMessage `ue:"parameters"`
}

// CreateInstance creates a material instance of a parent material.
func (m *Module) CreateInstance(ctx context.Context, input *CreateInstanceInput) (any, error) {
	var params map[string]any
	if len(input.Parameters) > 0 {
		if err := json.Unmarshal(input.Parameters, &params); err != nil {
			return nil, fmt.Errorf("parameters must be an object: %w", err)
		}
	}
	info, err := m.author.CreateMaterialInstance(input.ParentPath, input.DestPath, params)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Created material instance.",
		"parent", input.ParentPath, "dest", input.DestPath)
	return map[string]any{
		"materialPath": info.Path,
		"parent":       info.Parent,
		"message":      fmt.Sprintf("Created material instance %s", info.Path),
	}, nil
}

// ApplyInput defines the parameters of material_apply_to_actor.
type ApplyInput struct {
	ActorName    string `ue:"actorName"`
	MaterialPath string `ue:"materialPath"`
	SlotIndex    int    `ue:"slotIndex"`
}

// ApplyToActor assigns a material to one mesh slot of an actor.
func (m *Module) ApplyToActor(ctx context.Context, input *ApplyInput) (any, error) {
	if err := m.mutator.SetActorMaterial(input.ActorName, input.SlotIndex, input.MaterialPath); err != nil {
		return nil, err
	}
	return map[string]any{
		"actorName":    input.ActorName,
		"materialPath": input.MaterialPath,
		"slotIndex":    input.SlotIndex,
		"message": fmt.Sprintf("Applied %s to %s slot %d",
			input.MaterialPath, input.ActorName, input.SlotIndex),
	}, nil
}

// CreateSimpleInput defines the parameters of material_create_simple.
type CreateSimpleInput struct {
	DestPath  string    `ue:"destPath"`
	Color     []float64 `ue:"color"`
	Metallic  float64   `ue:"metallic"`
	Roughness float64   `ue:"roughness"`
}

// CreateSimple creates a flat-color material with the given PBR scalars.
func (m *Module) CreateSimple(ctx context.Context, input *CreateSimpleInput) (any, error) {
	info, err := m.author.CreateSimpleMaterial(
		input.DestPath, geometry.Vec3FromArray(input.Color), input.Metallic, input.Roughness)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"materialPath": info.Path,
		"message":      fmt.Sprintf("Created material %s", info.Path),
	}, nil
}
