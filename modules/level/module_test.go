package level_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/enginemem"
	"github.com/vk/uebridge/internal/testutil"
	"github.com/vk/uebridge/modules/level"
)

func newLevelHarness(t *testing.T) (*testutil.Harness, *enginemem.Engine) {
	t.Helper()
	eng := enginemem.New()
	eng.SeedDemoContent()
	h := testutil.NewHarness(t,
		testutil.ManifestFiles(t, "manifest.hcl"),
		level.New(eng, eng))
	return h, eng
}

func seedActor(eng *enginemem.Engine, name, folder string) {
	eng.SeedActor(engine.ActorRef{
		Name:      name,
		AssetPath: "/Game/ModularOldTown/Meshes/SM_Wall_300",
		Folder:    folder,
		Transform: engine.IdentityTransform(),
	})
}

func TestLevelSave(t *testing.T) {
	h, eng := newLevelHarness(t)
	require.False(t, eng.Saved())

	testutil.RequireSuccess(t, h.Dispatch(t, "level_save_level", nil))
	require.True(t, eng.Saved())
}

func TestLevelProjectInfo(t *testing.T) {
	h, _ := newLevelHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "level_get_project_info", nil))
	require.NotEmpty(t, res["projectName"])
	require.NotEmpty(t, res["projectDirectory"])
	require.NotEmpty(t, res["engineVersion"])
	require.NotEmpty(t, res["currentLevel"])
}

func TestLevelActorsFilterAndLimit(t *testing.T) {
	h, eng := newLevelHarness(t)
	seedActor(eng, "Wall_01", "")
	seedActor(eng, "Wall_02", "")
	seedActor(eng, "Floor_01", "")

	res := testutil.RequireSuccess(t, h.Dispatch(t, "level_get_level_actors", map[string]any{
		"filter": "Wall_",
	}))
	require.Equal(t, 2, res["count"])

	res = testutil.RequireSuccess(t, h.Dispatch(t, "level_get_level_actors", map[string]any{
		"limit": 1,
	}))
	require.Equal(t, 1, res["count"])
}

func TestLevelOutlinerGroupsByFolder(t *testing.T) {
	h, eng := newLevelHarness(t)
	seedActor(eng, "Wall_01", "Building/Walls")
	seedActor(eng, "Wall_02", "Building/Walls")
	seedActor(eng, "Loose", "")

	res := testutil.RequireSuccess(t, h.Dispatch(t, "level_get_outliner_structure", nil))
	folders := res["folders"].(map[string][]string)
	require.Len(t, folders["Building/Walls"], 2)
	require.Contains(t, folders[""], "Loose")
	require.Equal(t, 3, res["totalActors"])
}

func TestLegacyDottedAliases(t *testing.T) {
	h, _ := newLevelHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "project.info", nil))
	require.NotEmpty(t, res["projectName"], "project.info resolves to level_get_project_info")

	res = h.Dispatch(t, "level.save", nil)
	require.Equal(t, true, res["success"])
}
