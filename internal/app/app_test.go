package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/uebridge/internal/app"
	"github.com/vk/uebridge/internal/enginemem"
	"github.com/vk/uebridge/internal/hcl"
	"github.com/vk/uebridge/internal/testutil"
)

func newAppConfig() *app.AppConfig {
	return &app.AppConfig{
		ManifestPaths:  []string{"../../modules"},
		Host:           "127.0.0.1",
		Port:           0,
		TickInterval:   5 * time.Millisecond,
		RequestTimeout: 5 * time.Second,
		LogFormat:      "text",
		LogLevel:       "debug",
	}
}

func startApp(t *testing.T) (*app.App, string) {
	t.Helper()

	eng := enginemem.New()
	eng.SeedDemoContent()

	buf := &testutil.SafeBuffer{}
	bridgeApp := app.NewApp(buf, newAppConfig(), hcl.NewLoader(), eng)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = bridgeApp.Run(ctx) }()

	require.Eventually(t, func() bool { return bridgeApp.Server().Addr() != "" },
		2*time.Second, 5*time.Millisecond)
	return bridgeApp, "http://" + bridgeApp.Server().Addr()
}

func send(t *testing.T, url, command string, params map[string]any) map[string]any {
	t.Helper()

	body, err := json.Marshal(map[string]any{"type": command, "params": params})
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// TestAppStartupValidatesAllManifests is the broadest wiring check: NewApp
// panics unless every shipped manifest matches its registered handler.
func TestAppStartupValidatesAllManifests(t *testing.T) {
	bridgeApp, _ := startApp(t)

	names := bridgeApp.Registry().CommandNames()
	require.Contains(t, names, "actor_spawn")
	require.Contains(t, names, "actor_placement_validate")
	require.Contains(t, names, "asset_list_assets")
	require.Contains(t, names, "level_save_level")
	require.Contains(t, names, "material_create_instance")
	require.Contains(t, names, "viewport_screenshot")
	require.Contains(t, names, "system_help")
	require.Contains(t, names, "batch_operations")
}

func TestAppEndToEndSpawnAndValidate(t *testing.T) {
	_, url := startApp(t)

	res := send(t, url, "actor_spawn", map[string]any{
		"assetPath": "/Game/ModularOldTown/Meshes/SM_Wall_300",
		"name":      "Wall_01",
		"location":  []float64{0, 0, 0},
	})
	require.Equal(t, true, res["success"], "spawn failed: %v", res)

	res = send(t, url, "actor_spawn", map[string]any{
		"assetPath": "/Game/ModularOldTown/Meshes/SM_Wall_300",
		"name":      "Wall_02",
		"location":  []float64{350, 0, 0},
	})
	require.Equal(t, true, res["success"])

	res = send(t, url, "actor_placement_validate", map[string]any{
		"actors": []string{"Wall_01", "Wall_02"},
	})
	require.Equal(t, true, res["success"])
	summary := res["summary"].(map[string]any)
	require.Equal(t, float64(1), summary["gapCount"])
}

func TestAppEndToEndUnknownCommand(t *testing.T) {
	_, url := startApp(t)

	res := send(t, url, "no_such_thing", nil)
	require.Equal(t, false, res["success"])
	require.Equal(t, "Unknown command: no_such_thing", res["error"])
}

func TestAppEndToEndLegacyAlias(t *testing.T) {
	_, url := startApp(t)

	res := send(t, url, "system.test", nil)
	require.Equal(t, true, res["success"])
	require.Equal(t, "Connection OK", res["message"])
}

func TestAppPanicsOnBadManifestPath(t *testing.T) {
	cfg := newAppConfig()
	cfg.ManifestPaths = []string{"/does/not/exist"}

	require.Panics(t, func() {
		app.NewApp(&testutil.SafeBuffer{}, cfg, hcl.NewLoader(), enginemem.New())
	})
}
