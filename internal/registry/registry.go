package registry

import (
	"sort"

	"github.com/vk/uebridge/internal/config"
)

// Module is the interface that all command modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered handlers and command definitions for a
// single bridge instance.
type Registry struct {
	HandlerRegistry    map[string]*RegisteredCommand
	DefinitionRegistry map[string]*config.CommandDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		HandlerRegistry:    make(map[string]*RegisteredCommand),
		DefinitionRegistry: make(map[string]*config.CommandDefinition),
	}
}

// PopulateDefinitionsFromModel copies the loaded command definitions from
// the config model into the registry for easy access during dispatch.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Commands {
		r.DefinitionRegistry[key] = val
	}
}

// Definition returns the manifest definition for a command name, or nil when
// the command is unknown.
func (r *Registry) Definition(name string) *config.CommandDefinition {
	return r.DefinitionRegistry[name]
}

// CommandsByCategory groups registered command names by their manifest
// category, each group sorted. Used by the status endpoint and system_help.
func (r *Registry) CommandsByCategory() map[string][]string {
	byCategory := make(map[string][]string)
	for name, def := range r.DefinitionRegistry {
		byCategory[def.Category] = append(byCategory[def.Category], name)
	}
	for _, names := range byCategory {
		sort.Strings(names)
	}
	return byCategory
}

// CommandNames returns every registered command name, sorted.
func (r *Registry) CommandNames() []string {
	names := make([]string, 0, len(r.DefinitionRegistry))
	for name := range r.DefinitionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
