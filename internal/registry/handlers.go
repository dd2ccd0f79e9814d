package registry

import (
	"fmt"
	"log/slog"
	"reflect"
)

// RegisteredCommand holds the compiled Go parts of a command handler. Fn
// must be a func(context.Context, *Input) (any, error) where *Input matches
// the value produced by NewInput; handlers that take no parameters may use a
// nil NewInput.
type RegisteredCommand struct {
	NewInput  func() any
	InputType reflect.Type
	Fn        any
}

// RegisterCommand registers a Go function under a handler name. Registering
// the same name twice is a programmer error and panics at startup: command
// tables are built once and immutable afterwards, so a collision can never
// be a legitimate overwrite.
func (r *Registry) RegisterCommand(name string, handler *RegisteredCommand) {
	if _, exists := r.HandlerRegistry[name]; exists {
		panic(fmt.Sprintf("command handler with name '%s' already registered", name))
	}
	slog.Debug("Registering command handler.", "name", name)
	r.HandlerRegistry[name] = handler
}
