package hcl

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/uebridge/internal/config"
	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// rawMessageType is the reflect type of json.RawMessage, used to pass
// schemaless parameters (e.g. batch sub-operations) through untouched.
var rawMessageType = reflect.TypeOf(json.RawMessage(nil))

// Converter is the HCL/CTY-backed implementation of the config.Converter
// interface. Incoming JSON parameter values are lifted into cty, converted
// to the manifest-declared type, and bound to the handler's input struct.
type Converter struct{}

// NewConverter creates a new parameter converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeParams populates inputStruct from raw JSON parameters, applying
// manifest defaults and type conversions. Keys absent from defs are dropped
// without error; declared inputs that are absent with no default and not
// optional are collected into a single *config.MissingParamsError. The
// "validate" input never counts as missing.
func (c *Converter) DecodeParams(
	ctx context.Context,
	inputStruct any,
	params map[string]json.RawMessage,
	defs map[string]*config.InputDefinition,
) error {
	logger := ctxlog.FromContext(ctx)

	structVal := reflect.ValueOf(inputStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("inputStruct must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	var missing []string

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		lookupName := field.Name
		if tag := field.Tag.Get("ue"); tag != "" {
			lookupName = strings.Split(tag, ",")[0]
		}

		inputDef, defExists := defs[lookupName]
		if !defExists {
			continue
		}

		raw, provided := params[lookupName]

		// Schemaless passthrough fields take the raw JSON verbatim.
		if field.Type == rawMessageType {
			switch {
			case provided:
				fieldVal.Set(reflect.ValueOf(json.RawMessage(raw)))
			case inputDef.Default != nil:
				encoded, err := ctyjson.Marshal(*inputDef.Default, inputDef.Default.Type())
				if err != nil {
					return fmt.Errorf("failed to encode default for %q: %w", lookupName, err)
				}
				fieldVal.Set(reflect.ValueOf(json.RawMessage(encoded)))
			case !inputDef.Optional && lookupName != "validate":
				missing = append(missing, lookupName)
			}
			continue
		}

		if provided {
			val, err := jsonToCty(raw, inputDef.Type)
			if err != nil {
				return fmt.Errorf("invalid value for parameter %q: %w", lookupName, err)
			}
			if err := c.decode(ctx, val, fieldVal.Addr().Interface()); err != nil {
				return fmt.Errorf("failed to decode parameter %q: %w", lookupName, err)
			}
			continue
		}

		if inputDef.Default != nil {
			if err := c.decode(ctx, *inputDef.Default, fieldVal.Addr().Interface()); err != nil {
				return fmt.Errorf("failed to apply default for %q: %w", lookupName, err)
			}
			continue
		}

		if !inputDef.Optional && lookupName != "validate" {
			missing = append(missing, lookupName)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		expected := make([]string, 0, len(defs))
		for name := range defs {
			expected = append(expected, name)
		}
		sort.Strings(expected)
		return &config.MissingParamsError{Missing: missing, Expected: expected}
	}

	logger.Debug("Finished parameter decoding.")
	return nil
}

// jsonToCty lifts a raw JSON value into cty, converting to the declared
// manifest type when one was given.
func jsonToCty(raw json.RawMessage, declared cty.Type) (cty.Value, error) {
	impliedType, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, err
	}
	val, err := ctyjson.Unmarshal(raw, impliedType)
	if err != nil {
		return cty.NilVal, err
	}
	if declared.Equals(cty.DynamicPseudoType) {
		return val, nil
	}
	converted, err := convert.Convert(val, declared)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot convert %s to required type %s: %w",
			val.Type().FriendlyName(), declared.FriendlyName(), err)
	}
	return converted, nil
}

// decode handles the conversion and binding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)

	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.",
			"go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w",
			val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}
