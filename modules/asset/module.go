// Package asset implements the asset_* content-browser commands.
package asset

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/registry"
)

// Module implements the registry.Module interface for asset commands.
type Module struct {
	catalog engine.AssetCatalog
}

func New(catalog engine.AssetCatalog) *Module {
	return &Module{catalog: catalog}
}

func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("AssetList", &registry.RegisteredCommand{
		NewInput:  func() any { return new(ListInput) },
		InputType: reflect.TypeOf(ListInput{}),
		Fn:        m.List,
	})
	r.RegisterCommand("AssetInfo", &registry.RegisteredCommand{
		NewInput:  func() any { return new(InfoInput) },
		InputType: reflect.TypeOf(InfoInput{}),
		Fn:        m.Info,
	})
	r.RegisterCommand("AssetFindByType", &registry.RegisteredCommand{
		NewInput:  func() any { return new(FindByTypeInput) },
		InputType: reflect.TypeOf(FindByTypeInput{}),
		Fn:        m.FindByType,
	})
	r.RegisterCommand("AssetValidatePaths", &registry.RegisteredCommand{
		NewInput:  func() any { return new(ValidatePathsInput) },
		InputType: reflect.TypeOf(ValidatePathsInput{}),
		Fn:        m.ValidatePaths,
	})
}

// ListInput defines the parameters of asset_list_assets.
type ListInput struct {
	Path      string `ue:"path"`
	AssetType string `ue:"assetType"`
	Limit     int    `ue:"limit"`
}

// List returns the assets under a content path.
func (m *Module) List(ctx context.Context, input *ListInput) (any, error) {
	assets, err := m.catalog.ListAssets(input.Path, input.AssetType, input.Limit)
	if err != nil {
		return nil, err
	}

	entries := make([]map[string]any, 0, len(assets))
	for _, a := range assets {
		entries = append(entries, map[string]any{
			"path": a.Path,
			"type": a.Type,
		})
	}
	return map[string]any{
		"assets": entries,
		"count":  len(entries),
		"path":   input.Path,
	}, nil
}

// InfoInput defines the parameters of asset_get_asset_info.
type InfoInput struct {
	AssetPath string `ue:"assetPath"`
}

// Info returns the dimensions and sockets of a single asset.
func (m *Module) Info(ctx context.Context, input *InfoInput) (any, error) {
	info, err := m.catalog.AssetInfo(input.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("Could not load asset: %s", input.AssetPath)
	}

	result := map[string]any{
		"assetPath": info.Path,
		"assetType": info.Type,
	}
	if info.Extent != nil {
		size := info.Extent.Scale(2)
		result["bounds"] = map[string]any{
			"extent": info.Extent.Array(),
			"size":   size.Array(),
		}
	}
	if len(info.Sockets) > 0 {
		sockets := make([]map[string]any, 0, len(info.Sockets))
		for _, s := range info.Sockets {
			sockets = append(sockets, map[string]any{
				"name":     s.Name,
				"location": s.Location.Array(),
				"rotation": s.Rotation.Array(),
			})
		}
		result["sockets"] = sockets
		result["numSockets"] = len(sockets)
	}
	return result, nil
}

// FindByTypeInput defines the parameters of asset_find_by_type.
type FindByTypeInput struct {
	AssetType string `ue:"assetType"`
	Path      string `ue:"path"`
	Limit     int    `ue:"limit"`
}

// FindByType lists assets of one type across a content subtree.
func (m *Module) FindByType(ctx context.Context, input *FindByTypeInput) (any, error) {
	assets, err := m.catalog.ListAssets(input.Path, input.AssetType, input.Limit)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(assets))
	for _, a := range assets {
		paths = append(paths, a.Path)
	}
	return map[string]any{
		"assetType": input.AssetType,
		"paths":     paths,
		"count":     len(paths),
	}, nil
}

// ValidatePathsInput defines the parameters of asset_validate_paths.
type ValidatePathsInput struct {
	Paths []string `ue:"paths"`
}

// ValidatePaths partitions the given content paths into existing and
// missing.
func (m *Module) ValidatePaths(ctx context.Context, input *ValidatePathsInput) (any, error) {
	if len(input.Paths) == 0 {
		return nil, fmt.Errorf("paths list is empty")
	}

	valid := make([]string, 0, len(input.Paths))
	invalid := make([]string, 0)
	for _, p := range input.Paths {
		if m.catalog.AssetExists(p) {
			valid = append(valid, p)
		} else {
			invalid = append(invalid, p)
		}
	}
	return map[string]any{
		"validPaths":   valid,
		"invalidPaths": invalid,
		"allValid":     len(invalid) == 0,
	}, nil
}
