// Package config defines the format-agnostic command manifest model for the
// bridge, along with the core interfaces (Loader, Converter) for loading
// manifests and binding incoming JSON parameters to handler input structs.
//
// The `config.Model` is the single source of truth for the `registry` and
// `dispatch` packages. Concrete implementations of the interfaces, such as
// for HCL, are provided in separate packages.
package config
