// Package registry provides the central "glue" for the command system.
//
// The Registry is responsible for storing mappings between the handler
// identifiers used in command manifests (e.g., "ActorSpawn") and the actual
// compiled Go functions and types that implement the command's logic. It
// also holds the parsed, format-agnostic command definitions from the
// manifests themselves.
//
// During bridge startup, the registry is populated and then validated to
// ensure that the Go code and the public-facing manifests are perfectly in
// sync, preventing a wide class of runtime errors.
package registry
