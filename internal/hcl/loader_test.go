package hcl

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uebridge/internal/config"
)

const sampleManifest = `
command "actor_spawn" {
  category    = "actor"
  description = "Spawn an actor."
  handler     = "ActorSpawn"

  input "assetPath" {
    type = string
  }
  input "location" {
    type     = list(number)
    default  = [0, 0, 100]
    optional = true
  }
  input "validate" {
    type     = bool
    default  = true
    optional = true
  }
}
`

func loadManifest(t *testing.T, content string) (*config.Model, config.Converter) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.hcl"), []byte(content), 0644))

	model, converter, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	return model, converter
}

func TestLoadManifest(t *testing.T) {
	model, _ := loadManifest(t, sampleManifest)

	require.Len(t, model.Commands, 1)
	cmd := model.Commands["actor_spawn"]
	require.NotNil(t, cmd)
	require.Equal(t, "actor", cmd.Category)
	require.Equal(t, "ActorSpawn", cmd.Handler)
	require.Len(t, cmd.Inputs, 3)

	asset := cmd.Inputs["assetPath"]
	require.True(t, asset.Type.Equals(cty.String))
	require.False(t, asset.Optional)
	require.Nil(t, asset.Default)

	loc := cmd.Inputs["location"]
	require.True(t, loc.Type.Equals(cty.List(cty.Number)))
	require.True(t, loc.Optional, "a non-null default implies optional")
	require.NotNil(t, loc.Default)
}

func TestLoadRejectsDuplicateCommandNames(t *testing.T) {
	dir := t.TempDir()
	one := "command \"x\" {\n  category = \"test\"\n  handler  = \"X\"\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(one), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(one), 0644))

	_, _, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "declared more than once")
}

func TestLoadMissingPathFails(t *testing.T) {
	_, _, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

type spawnInput struct {
	AssetPath string    `ue:"assetPath"`
	Location  []float64 `ue:"location"`
	Validate  bool      `ue:"validate"`
}

func raw(t *testing.T, params map[string]any) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage, len(params))
	for k, v := range params {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		out[k] = b
	}
	return out
}

func TestDecodeParamsAppliesValuesAndDefaults(t *testing.T) {
	model, converter := loadManifest(t, sampleManifest)
	defs := model.Commands["actor_spawn"].Inputs

	var input spawnInput
	err := converter.DecodeParams(context.Background(), &input,
		raw(t, map[string]any{"assetPath": "/Game/SM_Wall"}), defs)
	require.NoError(t, err)

	require.Equal(t, "/Game/SM_Wall", input.AssetPath)
	require.Equal(t, []float64{0, 0, 100}, input.Location, "default applied")
	require.True(t, input.Validate, "default applied")
}

func TestDecodeParamsDropsUndeclaredKeys(t *testing.T) {
	model, converter := loadManifest(t, sampleManifest)
	defs := model.Commands["actor_spawn"].Inputs

	var input spawnInput
	err := converter.DecodeParams(context.Background(), &input,
		raw(t, map[string]any{
			"assetPath":  "/Game/SM_Wall",
			"bogusParam": 42,
			"alsoBogus":  "ignored",
		}), defs)
	require.NoError(t, err)
	require.Equal(t, "/Game/SM_Wall", input.AssetPath)
}

func TestDecodeParamsReportsMissingRequired(t *testing.T) {
	model, converter := loadManifest(t, sampleManifest)
	defs := model.Commands["actor_spawn"].Inputs

	var input spawnInput
	err := converter.DecodeParams(context.Background(), &input, nil, defs)
	require.Error(t, err)

	var missing *config.MissingParamsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"assetPath"}, missing.Missing)
	require.Equal(t, []string{"assetPath", "location", "validate"}, missing.Expected)
	require.Contains(t, missing.Error(), "Missing required parameters")
}

func TestDecodeParamsNeverTreatsValidateAsMissing(t *testing.T) {
	manifest := `
command "c" {
  category = "test"
  handler  = "C"
  input "validate" {
    type = bool
  }
}
`
	model, converter := loadManifest(t, manifest)
	defs := model.Commands["c"].Inputs

	var input struct {
		Validate bool `ue:"validate"`
	}
	err := converter.DecodeParams(context.Background(), &input, nil, defs)
	require.NoError(t, err, "validate is exempt from the missing check")
	require.False(t, input.Validate)
}

func TestDecodeParamsConvertsNumbers(t *testing.T) {
	manifest := `
command "c" {
  category = "test"
  handler  = "C"
  input "limit" {
    type     = number
    default  = 20
    optional = true
  }
}
`
	model, converter := loadManifest(t, manifest)
	defs := model.Commands["c"].Inputs

	var input struct {
		Limit int `ue:"limit"`
	}
	err := converter.DecodeParams(context.Background(), &input,
		raw(t, map[string]any{"limit": 5}), defs)
	require.NoError(t, err)
	require.Equal(t, 5, input.Limit)

	input.Limit = 0
	err = converter.DecodeParams(context.Background(), &input, nil, defs)
	require.NoError(t, err)
	require.Equal(t, 20, input.Limit)
}

func TestDecodeParamsRawMessagePassthrough(t *testing.T) {
	manifest := `
command "c" {
  category = "test"
  handler  = "C"
  input "operations" {
    type = any
  }
}
`
	model, converter := loadManifest(t, manifest)
	defs := model.Commands["c"].Inputs

	var input struct {
		Operations json.RawMessage `ue:"operations"`
	}
	payload := `[{"command":"actor_spawn","params":{"assetPath":"/Game/X"}}]`
	err := converter.DecodeParams(context.Background(), &input,
		map[string]json.RawMessage{"operations": json.RawMessage(payload)}, defs)
	require.NoError(t, err)
	require.JSONEq(t, payload, string(input.Operations))
}

func TestDecodeParamsRejectsWrongTypes(t *testing.T) {
	model, converter := loadManifest(t, sampleManifest)
	defs := model.Commands["actor_spawn"].Inputs

	var input spawnInput
	err := converter.DecodeParams(context.Background(), &input,
		raw(t, map[string]any{"assetPath": "/Game/X", "location": "not-a-list"}), defs)
	require.Error(t, err)
	require.Contains(t, err.Error(), "location")
}
