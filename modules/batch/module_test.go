package batch_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/uebridge/internal/dispatch"
	"github.com/vk/uebridge/internal/enginemem"
	"github.com/vk/uebridge/internal/testutil"
	"github.com/vk/uebridge/modules/actor"
	"github.com/vk/uebridge/modules/batch"
)

// deferredInvoker lets the batch module be constructed before the harness
// dispatcher exists.
type deferredInvoker struct {
	d *dispatch.Dispatcher
}

func (di *deferredInvoker) Dispatch(ctx context.Context, command string, params map[string]json.RawMessage) dispatch.Result {
	return di.d.Dispatch(ctx, command, params)
}

func newBatchHarness(t *testing.T) (*testutil.Harness, *enginemem.Engine) {
	t.Helper()
	eng := enginemem.New()
	eng.SeedDemoContent()

	invoker := &deferredInvoker{}
	h := testutil.NewHarness(t,
		testutil.ManifestFiles(t, "manifest.hcl", "../actor/manifest.hcl"),
		batch.New(invoker),
		actor.New(eng, eng, eng))
	invoker.d = h.Dispatcher
	return h, eng
}

func TestBatchOperationsRunInOrder(t *testing.T) {
	h, eng := newBatchHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "batch_operations", map[string]any{
		"operations": []map[string]any{
			{"command": "actor_spawn", "params": map[string]any{
				"assetPath": "/Game/ModularOldTown/Meshes/SM_Wall_300", "name": "W1",
			}},
			{"command": "actor_modify", "params": map[string]any{
				"actorName": "W1", "location": []float64{300, 0, 0},
			}},
		},
	}))
	require.Equal(t, 2, res["executedCount"])
	require.Equal(t, 2, res["succeededCount"])
	require.Equal(t, 0, res["failedCount"])

	ref, err := eng.FindActor("W1")
	require.NoError(t, err)
	require.Equal(t, 300.0, ref.Transform.Location.X, "later operations see earlier results")
}

func TestBatchOperationsCollectFailuresByDefault(t *testing.T) {
	h, _ := newBatchHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "batch_operations", map[string]any{
		"operations": []map[string]any{
			{"command": "actor_delete", "params": map[string]any{"actorName": "Ghost"}},
			{"command": "actor_spawn", "params": map[string]any{
				"assetPath": "/Game/ModularOldTown/Meshes/SM_Wall_300", "name": "W1",
			}},
		},
	}))
	require.Equal(t, 2, res["executedCount"], "failures do not stop the batch by default")
	require.Equal(t, 1, res["succeededCount"])
	require.Equal(t, 1, res["failedCount"])
}

func TestBatchOperationsStopOnError(t *testing.T) {
	h, eng := newBatchHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "batch_operations", map[string]any{
		"operations": []map[string]any{
			{"command": "actor_delete", "params": map[string]any{"actorName": "Ghost"}},
			{"command": "actor_spawn", "params": map[string]any{
				"assetPath": "/Game/ModularOldTown/Meshes/SM_Wall_300", "name": "W1",
			}},
		},
		"stopOnError": true,
	}))
	require.Equal(t, 1, res["executedCount"])
	require.Equal(t, 1, res["failedCount"])

	_, err := eng.FindActor("W1")
	require.Error(t, err, "second operation never ran")
}

func TestBatchOperationsRejectNesting(t *testing.T) {
	h, _ := newBatchHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "batch_operations", map[string]any{
		"operations": []map[string]any{
			{"command": "batch_operations", "params": map[string]any{"operations": []any{}}},
		},
	}))
	require.Equal(t, 1, res["failedCount"])

	entries := res["operations"].([]map[string]any)
	inner := entries[0]["result"].(dispatch.Result)
	require.Equal(t, false, inner["success"])
	require.Contains(t, inner["error"], "cannot be nested")
}

func TestBatchOperationsEmptyListFails(t *testing.T) {
	h, _ := newBatchHarness(t)

	msg := testutil.RequireFailure(t, h.Dispatch(t, "batch_operations", map[string]any{
		"operations": []any{},
	}))
	require.Equal(t, "operations list is empty", msg)
}
