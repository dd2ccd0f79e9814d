package config

import (
	"context"
	"encoding/json"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads command manifests from the given paths, translates them
	// into the format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter is the interface for binding raw JSON command parameters to the
// Go input structs handlers consume. It is the bridge between the wire
// protocol and module code.
type Converter interface {
	// DecodeParams populates inputStruct from the raw JSON parameter map,
	// applying declared defaults and type conversions. Parameter keys not
	// present in defs are silently dropped. Declared inputs that are
	// absent, have no default, and are not optional are reported together
	// via *MissingParamsError.
	DecodeParams(
		ctx context.Context,
		inputStruct any,
		params map[string]json.RawMessage,
		defs map[string]*InputDefinition,
	) error
}
