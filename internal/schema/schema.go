package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// ManifestConfig is the top-level structure of one command manifest file.
type ManifestConfig struct {
	Commands []*CommandDefinition `hcl:"command,block"`
}

// CommandDefinition represents the HCL manifest for a single dispatchable
// command: its wire name, category, the registered Go handler it binds to,
// and its declared inputs.
type CommandDefinition struct {
	Name        string             `hcl:"name,label"`
	Category    string             `hcl:"category"`
	Description string             `hcl:"description,optional"`
	Handler     string             `hcl:"handler"`
	Inputs      []*InputDefinition `hcl:"input,block"`
}

// InputDefinition defines a single input parameter for a command.
type InputDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Optional    bool           `hcl:"optional,optional"`
}
