// Package system implements the system_* commands: connection checks, the
// command catalog, log access, and listener restarts.
package system

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/registry"
)

// Restarter schedules a tear-down and relaunch of the command listener.
type Restarter interface {
	ScheduleRestart()
}

// Module implements the registry.Module interface for system commands. It
// keeps the registry it registers into so system_help can list it.
type Module struct {
	registry  *registry.Registry
	info      engine.SystemInfo
	restarter Restarter
	version   string
}

func New(info engine.SystemInfo, restarter Restarter, version string) *Module {
	return &Module{info: info, restarter: restarter, version: version}
}

func (m *Module) Register(r *registry.Registry) {
	m.registry = r
	r.RegisterCommand("SystemHelp", &registry.RegisteredCommand{
		NewInput:  func() any { return new(HelpInput) },
		InputType: reflect.TypeOf(HelpInput{}),
		Fn:        m.Help,
	})
	r.RegisterCommand("SystemTestConnection", &registry.RegisteredCommand{
		NewInput:  func() any { return new(TestConnectionInput) },
		InputType: reflect.TypeOf(TestConnectionInput{}),
		Fn:        m.TestConnection,
	})
	r.RegisterCommand("SystemRestartListener", &registry.RegisteredCommand{
		NewInput:  func() any { return new(RestartInput) },
		InputType: reflect.TypeOf(RestartInput{}),
		Fn:        m.RestartListener,
	})
	r.RegisterCommand("SystemLogs", &registry.RegisteredCommand{
		NewInput:  func() any { return new(LogsInput) },
		InputType: reflect.TypeOf(LogsInput{}),
		Fn:        m.Logs,
	})
}

// HelpInput defines the parameters of system_help.
type HelpInput struct {
	Category string `ue:"category"`
}

// Help lists the registered commands grouped by category, optionally
// restricted to one category.
func (m *Module) Help(ctx context.Context, input *HelpInput) (any, error) {
	byCategory := m.registry.CommandsByCategory()
	if input.Category != "" {
		names, ok := byCategory[input.Category]
		if !ok {
			return nil, fmt.Errorf("Unknown category: %s", input.Category)
		}
		byCategory = map[string][]string{input.Category: names}
	}

	categories := make(map[string][]map[string]any, len(byCategory))
	total := 0
	for category, names := range byCategory {
		entries := make([]map[string]any, 0, len(names))
		for _, name := range names {
			def := m.registry.Definition(name)
			if def == nil {
				continue
			}
			entries = append(entries, map[string]any{
				"name":        def.Name,
				"description": def.Description,
				"parameters":  def.ParameterNames(),
			})
			total++
		}
		categories[category] = entries
	}
	return map[string]any{
		"categories":    categories,
		"totalCommands": total,
		"version":       m.version,
	}, nil
}

// TestConnectionInput defines the parameters of system_test_connection.
type TestConnectionInput struct{}

// TestConnection reports the bridge and engine versions with a timestamp.
func (m *Module) TestConnection(ctx context.Context, input *TestConnectionInput) (any, error) {
	return map[string]any{
		"message":       "Connection OK",
		"version":       m.version,
		"engineVersion": m.info.EngineVersion(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// RestartInput defines the parameters of system_restart_listener.
type RestartInput struct{}

// RestartListener schedules a listener restart. The response goes out over
// the current connection before the listener goes down.
func (m *Module) RestartListener(ctx context.Context, input *RestartInput) (any, error) {
	ctxlog.FromContext(ctx).Info("Listener restart requested.")
	m.restarter.ScheduleRestart()
	return map[string]any{
		"message": "Restart scheduled",
	}, nil
}

// LogsInput defines the parameters of system_ue_logs.
type LogsInput struct {
	Lines int `ue:"lines"`
}

// Logs returns the last N lines of engine log output.
func (m *Module) Logs(ctx context.Context, input *LogsInput) (any, error) {
	lines, err := m.info.LogTail(input.Lines)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"lines": lines,
		"count": len(lines),
	}, nil
}
