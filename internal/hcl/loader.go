package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/uebridge/internal/config"
	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/fsutil"
	"github.com/vk/uebridge/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl manifest under the given paths (files or
// directories), translates them into the format-agnostic model, and returns
// the JSON parameter converter that pairs with it. A command name declared
// in more than one manifest is a load error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("manifest path %q: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindByExt(path, ".hcl")
			if err != nil {
				return nil, nil, fmt.Errorf("scanning manifest directory %q: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	model := &config.Model{Commands: make(map[string]*config.CommandDefinition)}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("parsing manifest %q: %w", file, diags)
		}

		var manifest schema.ManifestConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
			return nil, nil, fmt.Errorf("decoding manifest %q: %w", file, diags)
		}

		for _, cmd := range manifest.Commands {
			if _, exists := model.Commands[cmd.Name]; exists {
				return nil, nil, fmt.Errorf("command %q declared more than once (second declaration in %q)", cmd.Name, file)
			}
			translated, err := translateCommandDefinition(ctx, cmd)
			if err != nil {
				return nil, nil, fmt.Errorf("in manifest %q: %w", file, err)
			}
			model.Commands[cmd.Name] = translated
			logger.Debug("Loaded command manifest.", "command", cmd.Name, "inputs", len(cmd.Inputs))
		}
	}

	return model, NewConverter(), nil
}

// translateCommandDefinition converts the HCL-specific command schema into
// the agnostic model.
func translateCommandDefinition(ctx context.Context, s *schema.CommandDefinition) (*config.CommandDefinition, error) {
	d := &config.CommandDefinition{
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		Handler:     s.Handler,
		Inputs:      make(map[string]*config.InputDefinition),
	}
	for _, in := range s.Inputs {
		translated, err := translateInputDefinition(ctx, in, s.Name)
		if err != nil {
			return nil, err
		}
		d.Inputs[in.Name] = translated
	}
	return d, nil
}

// translateInputDefinition processes a single HCL input block, handling its
// default value and type expression.
func translateInputDefinition(ctx context.Context, in *schema.InputDefinition, commandName string) (*config.InputDefinition, error) {
	var defaultVal *cty.Value
	isOptional := in.Optional

	if in.Default != nil {
		val, diags := in.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value for input %q in command %q: %w", in.Name, commandName, diags)
		}
		if !val.IsNull() {
			defaultVal = &val
			isOptional = true
		}
	}

	parsedType, err := typeExprToCtyType(ctx, in.Type)
	if err != nil {
		return nil, fmt.Errorf("in command %q, input %q: %w", commandName, in.Name, err)
	}

	return &config.InputDefinition{
		Name:        in.Name,
		Type:        parsedType,
		Description: in.Description,
		Default:     defaultVal,
		Optional:    isOptional,
	}, nil
}
