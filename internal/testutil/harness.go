// Package testutil provides shared helpers for bridge tests: a manifest
// harness, an engine double seeded with demo content, and dispatch helpers.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/uebridge/internal/config"
	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/dispatch"
	"github.com/vk/uebridge/internal/hcl"
	"github.com/vk/uebridge/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Harness bundles a loaded manifest model, a populated registry, and a
// dispatcher over them.
type Harness struct {
	Ctx        context.Context
	Model      *config.Model
	Registry   *registry.Registry
	Dispatcher *dispatch.Dispatcher
	LogBuffer  *SafeBuffer
}

// NewHarness writes the given manifest files into a temp directory, loads
// them, registers the modules, and validates the registry.
func NewHarness(t *testing.T, files map[string]string, modules ...registry.Module) *Harness {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	loader := hcl.NewLoader()
	model, converter, err := loader.Load(ctx, tmpDir)
	require.NoError(t, err)

	reg := registry.New()
	for _, mod := range modules {
		mod.Register(reg)
	}
	reg.PopulateDefinitionsFromModel(model)
	require.NoError(t, reg.ValidateRegistry(ctx))

	return &Harness{
		Ctx:        ctx,
		Model:      model,
		Registry:   reg,
		Dispatcher: dispatch.New(reg, converter),
		LogBuffer:  buf,
	}
}

// Dispatch sends one command through the harness dispatcher. Params may be
// any JSON-marshalable map.
func (h *Harness) Dispatch(t *testing.T, command string, params map[string]any) dispatch.Result {
	t.Helper()
	return h.Dispatcher.Dispatch(h.Ctx, command, RawParams(t, params))
}

// RawParams converts a plain map into the wire-shaped parameter map.
func RawParams(t *testing.T, params map[string]any) map[string]json.RawMessage {
	t.Helper()
	if params == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(params))
	for k, v := range params {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		out[k] = raw
	}
	return out
}

// RequireSuccess asserts the result is a success and returns it for further
// inspection.
func RequireSuccess(t *testing.T, res dispatch.Result) dispatch.Result {
	t.Helper()
	require.Equal(t, true, res["success"], "expected success, got: %v", res)
	return res
}

// RequireFailure asserts the result is a failure and returns the error
// message.
func RequireFailure(t *testing.T, res dispatch.Result) string {
	t.Helper()
	require.Equal(t, false, res["success"], "expected failure, got: %v", res)
	msg, _ := res["error"].(string)
	require.NotEmpty(t, msg, "failure results carry an error message")
	return msg
}

// ManifestFiles reads on-disk manifest files into a harness file map.
// Module tests use it to load their package's manifest.hcl, and names are
// made unique so several modules' manifests can be combined.
func ManifestFiles(t *testing.T, paths ...string) map[string]string {
	t.Helper()
	files := make(map[string]string, len(paths))
	for i, p := range paths {
		content, err := os.ReadFile(p)
		require.NoError(t, err)
		files[fmt.Sprintf("%02d_%s", i, filepath.Base(p))] = string(content)
	}
	return files
}
