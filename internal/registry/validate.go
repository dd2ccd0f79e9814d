package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry performs a strict parity check between manifests and Go
// code. Every manifest handler must resolve to a registered Go handler, the
// manifest inputs must match the handler's input struct field for field, and
// declared types must be compatible.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for commandName, def := range r.DefinitionRegistry {
		handler, ok := r.HandlerRegistry[def.Handler]
		if !ok {
			errs = append(errs, fmt.Sprintf("command '%s': manifest names handler '%s' which is not registered", commandName, def.Handler))
			continue
		}

		if handler.InputType == nil {
			if len(def.Inputs) > 0 {
				errs = append(errs, fmt.Sprintf("command '%s': manifest declares inputs, but Go handler has no input struct", commandName))
			}
			continue
		}

		manifestInputs := make(map[string]struct{})
		for name := range def.Inputs {
			manifestInputs[name] = struct{}{}
		}

		goInputs := make(map[string]reflect.StructField)
		inputType := handler.InputType
		for i := 0; i < inputType.NumField(); i++ {
			field := inputType.Field(i)
			if !field.IsExported() {
				continue
			}
			tag := field.Tag.Get("ue")
			tagName := strings.Split(tag, ",")[0]
			if tagName != "" && tagName != "-" {
				goInputs[tagName] = field
			}
		}

		for name := range goInputs {
			if _, ok := manifestInputs[name]; !ok {
				errs = append(errs, fmt.Sprintf("command '%s': Go struct has field for input '%s' which is not declared in manifest", commandName, name))
			}
		}
		for name := range manifestInputs {
			if _, ok := goInputs[name]; !ok {
				errs = append(errs, fmt.Sprintf("command '%s': manifest declares input '%s' which is not found in Go struct", commandName, name))
			}
		}

		for name, inputDef := range def.Inputs {
			goField, ok := goInputs[name]
			if !ok {
				continue // Already handled by presence check.
			}

			manifestType := inputDef.Type
			if manifestType.Equals(cty.DynamicPseudoType) {
				continue // `type = any` disables static checking.
			}

			goFieldType := goField.Type
			for goFieldType.Kind() == reflect.Ptr {
				goFieldType = goFieldType.Elem()
			}
			impliedGoType, err := gocty.ImpliedType(reflect.Zero(goFieldType).Interface())
			if err != nil {
				errs = append(errs, fmt.Sprintf("command '%s', input '%s': could not imply cty type from Go field type %s: %v", commandName, name, goField.Type, err))
				continue
			}

			if !manifestType.Equals(impliedGoType) {
				errs = append(errs, fmt.Sprintf("command '%s', input '%s': type mismatch. Manifest requires '%s' but Go struct field '%s' provides '%s'",
					commandName, name, manifestType.FriendlyName(), goField.Name, impliedGoType.FriendlyName()))
			}
		}
	}

	// Handlers with no manifest are dead code; surface them too.
	referenced := make(map[string]struct{})
	for _, def := range r.DefinitionRegistry {
		referenced[def.Handler] = struct{}{}
	}
	for handlerName := range r.HandlerRegistry {
		if _, ok := referenced[handlerName]; !ok {
			errs = append(errs, fmt.Sprintf("handler '%s' is registered but no manifest references it", handlerName))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "commands", len(r.DefinitionRegistry))
	return nil
}
