// Package batch implements batch_operations, which runs a list of commands
// in one request.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/dispatch"
	"github.com/vk/uebridge/internal/registry"
)

// Module implements the registry.Module interface for batched dispatch.
type Module struct {
	invoker dispatch.Invoker
}

func New(invoker dispatch.Invoker) *Module {
	return &Module{invoker: invoker}
}

func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("BatchOperations", &registry.RegisteredCommand{
		NewInput:  func() any { return new(OperationsInput) },
		InputType: reflect.TypeOf(OperationsInput{}),
		Fn:        m.Operations,
	})
}

// OperationsInput defines the parameters of batch_operations. Operations is
// a schemaless JSON array of {command, params} pairs.
type OperationsInput struct {
	Operations  json.RawMessage `ue:"operations"`
	StopOnError bool            `ue:"stopOnError"`
}

type operation struct {
	Command string                     `json:"command"`
	Params  map[string]json.RawMessage `json:"params"`
}

// Operations dispatches each listed command in order and collects per-entry
// results. With stopOnError set, the first failed entry aborts the rest.
func (m *Module) Operations(ctx context.Context, input *OperationsInput) (any, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	var ops []operation
	if err := json.Unmarshal(input.Operations, &ops); err != nil {
		return nil, fmt.Errorf("operations must be a list of {command, params} objects: %w", err)
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("operations list is empty")
	}

	results := make([]map[string]any, 0, len(ops))
	succeeded, failed := 0, 0
	for i, op := range ops {
		if op.Command == "batch_operations" {
			// No recursive batches.
			failed++
			results = append(results, map[string]any{
				"index":   i,
				"command": op.Command,
				"result":  dispatch.Failure("batch_operations cannot be nested"),
			})
			if input.StopOnError {
				break
			}
			continue
		}

		res := m.invoker.Dispatch(ctx, op.Command, op.Params)
		ok, _ := res["success"].(bool)
		if ok {
			succeeded++
		} else {
			failed++
		}
		results = append(results, map[string]any{
			"index":   i,
			"command": op.Command,
			"result":  res,
		})
		if !ok && input.StopOnError {
			logger.Warn("Batch stopped on failed operation.", "index", i, "command", op.Command)
			break
		}
	}

	return map[string]any{
		"operations":     results,
		"executedCount":  len(results),
		"succeededCount": succeeded,
		"failedCount":    failed,
		"executionTime":  time.Since(start).Seconds(),
	}, nil
}
