package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of every command
// manifest loaded at startup.
type Model struct {
	Commands map[string]*CommandDefinition
}

// CommandDefinition is the format-agnostic representation of one command's
// manifest: its wire name, the Go handler it binds to, and its declared
// inputs.
type CommandDefinition struct {
	Name        string
	Category    string
	Description string
	Handler     string
	Inputs      map[string]*InputDefinition
}

// HasValidate reports whether the command declares the post-mutation
// "validate" input. The dispatcher never counts it among missing required
// parameters.
func (d *CommandDefinition) HasValidate() bool {
	_, ok := d.Inputs["validate"]
	return ok
}

// ParameterNames returns the declared input names in sorted order, the form
// used in diagnostics.
func (d *CommandDefinition) ParameterNames() []string {
	names := make([]string, 0, len(d.Inputs))
	for name := range d.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InputDefinition defines a single input parameter for a command.
type InputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool
}

// MissingParamsError reports declared, non-optional inputs absent from a
// dispatch call. The dispatcher shapes it into the structured failure the
// protocol promises.
type MissingParamsError struct {
	Missing  []string
	Expected []string
}

// Error implements the error interface.
func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("Missing required parameters: [%s]", strings.Join(e.Missing, ", "))
}
