package actor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
)

// BatchSpawnInput defines the parameters of actor_batch_spawn. Actors is a
// schemaless JSON array; each element is decoded as a spawnSpec.
type BatchSpawnInput struct {
	Actors       json.RawMessage `ue:"actors"`
	CommonFolder string          `ue:"commonFolder"`
	Validate     bool            `ue:"validate"`
}

type spawnSpec struct {
	AssetPath string    `json:"assetPath"`
	Name      string    `json:"name"`
	Location  []float64 `json:"location"`
	Rotation  []float64 `json:"rotation"`
	Scale     []float64 `json:"scale"`
	Folder    string    `json:"folder"`
}

// BatchSpawn spawns a list of actors in one editor pass. Failures do not
// stop the batch; each spawn reports its own outcome.
func (m *Module) BatchSpawn(ctx context.Context, input *BatchSpawnInput) (any, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	var specs []spawnSpec
	if err := json.Unmarshal(input.Actors, &specs); err != nil {
		return nil, fmt.Errorf("actors must be a list of spawn descriptors: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("actors list is empty")
	}

	spawned := make([]map[string]any, 0, len(specs))
	failed := 0
	for i, spec := range specs {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("UEBridge_Batch_%d_%d", time.Now().Unix(), i)
		}
		folder := spec.Folder
		if folder == "" {
			folder = input.CommonFolder
		}

		ref, err := m.spawnOne(spec.AssetPath, name, folder, spec.Location, spec.Rotation, spec.Scale)
		if err != nil {
			logger.Warn("Batch spawn entry failed.", "index", i, "asset", spec.AssetPath, "error", err)
			failed++
			continue
		}
		spawned = append(spawned, map[string]any{
			"actorName": ref.Name,
			"assetPath": ref.AssetPath,
			"location":  ref.Transform.Location.Array(),
		})
	}

	result := map[string]any{
		"spawnedActors": spawned,
		"spawnedCount":  len(spawned),
		"failedCount":   failed,
		"executionTime": time.Since(start).Seconds(),
	}
	if input.Validate {
		var errs []string
		for _, s := range spawned {
			if _, err := m.directory.FindActor(s["actorName"].(string)); err != nil {
				errs = append(errs, fmt.Sprintf("actor %s not found after batch spawn", s["actorName"]))
			}
		}
		addValidation(result, errs)
	}
	return result, nil
}

func (m *Module) spawnOne(assetPath, name, folder string, location, rotation, scale []float64) (engine.ActorRef, error) {
	asset, err := m.assets.AssetInfo(assetPath)
	if err != nil {
		return engine.ActorRef{}, fmt.Errorf("Could not load asset: %s", assetPath)
	}
	if asset.Type != "StaticMesh" && asset.Type != "Blueprint" {
		return engine.ActorRef{}, fmt.Errorf("Unsupported asset type: %s", asset.Type)
	}

	t := engine.Transform{
		Location: geometry.Vec3FromArray(location),
		Rotation: geometry.Vec3FromArray(rotation),
		Scale:    geometry.Vec3FromArray(scale),
	}
	if scale == nil {
		t.Scale = geometry.Vec3{X: 1, Y: 1, Z: 1}
	}
	return m.mutator.SpawnActor(assetPath, name, folder, t)
}
