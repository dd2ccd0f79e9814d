package enginemem

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
)

// --- AssetCatalog ---

// ListAssets returns catalog assets under the given path prefix.
func (e *Engine) ListAssets(pathPrefix, assetType string, limit int) ([]engine.AssetInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []engine.AssetInfo
	for _, info := range e.assets {
		if pathPrefix != "" && !strings.HasPrefix(info.Path, pathPrefix) {
			continue
		}
		if assetType != "" && info.Type != assetType {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AssetInfo returns one catalog entry.
func (e *Engine) AssetInfo(assetPath string) (engine.AssetInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	info, ok := e.assets[assetPath]
	if !ok {
		return engine.AssetInfo{}, fmt.Errorf("%w: %s", engine.ErrAssetNotFound, assetPath)
	}
	return info, nil
}

// AssetExists reports catalog membership.
func (e *Engine) AssetExists(assetPath string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.assets[assetPath]
	return ok
}

// --- MaterialAuthor ---

// ListMaterials returns materials under the given path whose names contain
// pattern.
func (e *Engine) ListMaterials(pathPrefix, pattern string, limit int) ([]engine.MaterialInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []engine.MaterialInfo
	for _, info := range e.materials {
		if pathPrefix != "" && !strings.HasPrefix(info.Path, pathPrefix) {
			continue
		}
		if pattern != "" && !strings.Contains(path.Base(info.Path), pattern) {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MaterialInfo returns one material entry.
func (e *Engine) MaterialInfo(materialPath string) (engine.MaterialInfo, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	info, ok := e.materials[materialPath]
	if !ok {
		return engine.MaterialInfo{}, fmt.Errorf("%w: %s", engine.ErrMaterialNotFound, materialPath)
	}
	return info, nil
}

// CreateMaterialInstance derives an instance from a parent material.
func (e *Engine) CreateMaterialInstance(parentPath, destPath string, parameters map[string]any) (engine.MaterialInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.materials[parentPath]; !ok {
		return engine.MaterialInfo{}, fmt.Errorf("%w: %s", engine.ErrMaterialNotFound, parentPath)
	}
	if _, ok := e.materials[destPath]; ok {
		return engine.MaterialInfo{}, fmt.Errorf("material already exists: %s", destPath)
	}

	info := engine.MaterialInfo{
		Path:       destPath,
		Parent:     parentPath,
		Domain:     "Surface",
		Parameters: parameters,
	}
	e.materials[destPath] = info
	return info, nil
}

// CreateSimpleMaterial creates a constant-color material.
func (e *Engine) CreateSimpleMaterial(destPath string, color geometry.Vec3, metallic, roughness float64) (engine.MaterialInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.materials[destPath]; ok {
		return engine.MaterialInfo{}, fmt.Errorf("material already exists: %s", destPath)
	}
	info := engine.MaterialInfo{
		Path:   destPath,
		Domain: "Surface",
		Parameters: map[string]any{
			"BaseColor": color.Array(),
			"Metallic":  metallic,
			"Roughness": roughness,
		},
	}
	e.materials[destPath] = info
	return info, nil
}
