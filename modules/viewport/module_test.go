package viewport_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/enginemem"
	"github.com/vk/uebridge/internal/geometry"
	"github.com/vk/uebridge/internal/testutil"
	"github.com/vk/uebridge/modules/viewport"
)

func newViewportHarness(t *testing.T) (*testutil.Harness, *enginemem.Engine) {
	t.Helper()
	eng := enginemem.New()
	eng.SeedDemoContent()
	h := testutil.NewHarness(t,
		testutil.ManifestFiles(t, "manifest.hcl"),
		viewport.New(eng))
	return h, eng
}

func TestViewportSetCameraPartial(t *testing.T) {
	h, eng := newViewportHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "viewport_set_camera", map[string]any{
		"location": []float64{1000, 0, 500},
	}))
	loc := res["location"].([]float64)
	require.Equal(t, 1000.0, loc[0])

	before := eng.Camera().Rotation
	testutil.RequireSuccess(t, h.Dispatch(t, "viewport_set_camera", map[string]any{
		"rotation": []float64{0, -45, 0},
	}))
	after := eng.Camera()
	require.Equal(t, 1000.0, after.Location.X, "location untouched by rotation-only update")
	require.NotEqual(t, before, after.Rotation)
}

func TestViewportFocusOnActor(t *testing.T) {
	h, eng := newViewportHarness(t)
	eng.SeedActor(engine.ActorRef{
		Name:      "Wall_01",
		AssetPath: "/Game/ModularOldTown/Meshes/SM_Wall_300",
		Transform: engine.Transform{
			Location: geometry.Vec3{X: 600},
			Scale:    geometry.Vec3{X: 1, Y: 1, Z: 1},
		},
	})

	res := testutil.RequireSuccess(t, h.Dispatch(t, "viewport_focus_on_actor", map[string]any{
		"actorName": "Wall_01",
	}))
	require.Equal(t, "Wall_01", res["actorName"])

	msg := testutil.RequireFailure(t, h.Dispatch(t, "viewport_focus_on_actor", map[string]any{
		"actorName": "Ghost",
	}))
	require.Equal(t, "Actor not found: Ghost", msg)
}

func TestViewportRenderModeValidation(t *testing.T) {
	h, _ := newViewportHarness(t)

	testutil.RequireSuccess(t, h.Dispatch(t, "viewport_set_render_mode", map[string]any{
		"mode": "wireframe",
	}))

	msg := testutil.RequireFailure(t, h.Dispatch(t, "viewport_set_render_mode", map[string]any{
		"mode": "xray",
	}))
	require.Contains(t, msg, "xray")
}

func TestViewportScreenshotDefaults(t *testing.T) {
	h, _ := newViewportHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "viewport_screenshot", nil))
	require.Equal(t, 640, res["width"], "default resolution from manifest")
	require.Equal(t, 360, res["height"])
	require.NotEmpty(t, res["filepath"])
}

func TestViewportLookAtTarget(t *testing.T) {
	h, eng := newViewportHarness(t)

	res := testutil.RequireSuccess(t, h.Dispatch(t, "viewport_look_at_target", map[string]any{
		"target":   []float64{300, 300, 0},
		"distance": 500,
	}))
	require.NotNil(t, res["rotation"])

	cam := eng.Camera()
	require.NotEqual(t, geometry.Vec3{}, cam.Location, "camera moved toward the target")
}

func TestViewportFitActorsRequiresNames(t *testing.T) {
	h, _ := newViewportHarness(t)

	msg := testutil.RequireFailure(t, h.Dispatch(t, "viewport_fit_actors", map[string]any{
		"actors": []string{},
	}))
	require.Equal(t, "actors list is empty", msg)
}
