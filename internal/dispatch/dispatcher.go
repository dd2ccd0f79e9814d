package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/uebridge/internal/config"
	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/registry"
)

// Invoker is the narrow dispatch capability handed to modules that issue
// sub-commands (e.g. batch operations).
type Invoker interface {
	Dispatch(ctx context.Context, command string, params map[string]json.RawMessage) Result
}

// Dispatcher routes command names to registered handlers. It is safe for use
// from a single goroutine; the bridge's tick loop is the only caller.
type Dispatcher struct {
	registry  *registry.Registry
	converter config.Converter
}

// New creates a Dispatcher over a populated registry.
func New(reg *registry.Registry, converter config.Converter) *Dispatcher {
	return &Dispatcher{registry: reg, converter: converter}
}

// Dispatch resolves and invokes one command. The returned Result is always
// structured; handler errors and panics are converted into failures, never
// propagated.
func (d *Dispatcher) Dispatch(ctx context.Context, command string, params map[string]json.RawMessage) Result {
	logger := ctxlog.FromContext(ctx)

	name := resolveAlias(command)
	def := d.registry.Definition(name)
	if def == nil {
		return Failure(fmt.Sprintf("Unknown command: %s", command))
	}

	handler, ok := d.registry.HandlerRegistry[def.Handler]
	if !ok {
		// Startup validation makes this unreachable; guard anyway.
		return Failure(fmt.Sprintf("Unknown command: %s", command))
	}

	var input any
	if handler.NewInput != nil {
		input = handler.NewInput()
		if err := d.converter.DecodeParams(ctx, input, params, def.Inputs); err != nil {
			var missing *config.MissingParamsError
			if errors.As(err, &missing) {
				return Result{
					"success":  false,
					"error":    missing.Error(),
					"expected": missing.Expected,
				}
			}
			return Failure(err.Error())
		}
	}

	value, err := d.invoke(ctx, handler, input)
	if err != nil {
		logger.Error("Command failed.", "command", name, "error", err)
		return Failure(err.Error())
	}

	return shapeSuccess(value)
}

// invoke calls the handler function through reflection, recovering any panic
// into an error.
func (d *Dispatcher) invoke(ctx context.Context, handler *registry.RegisteredCommand, input any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	fn := reflect.ValueOf(handler.Fn)
	callArgs := []reflect.Value{reflect.ValueOf(ctx)}
	if fn.Type().NumIn() > 1 {
		if input == nil {
			callArgs = append(callArgs, reflect.Zero(fn.Type().In(1)))
		} else {
			callArgs = append(callArgs, reflect.ValueOf(input))
		}
	}

	results := fn.Call(callArgs)
	value, errResult := results[0].Interface(), results[1].Interface()
	if errResult != nil {
		return nil, errResult.(error)
	}
	return value, nil
}
