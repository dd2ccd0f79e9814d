// Package hcl provides the concrete HCL implementation for the command
// manifest loading and parameter conversion interfaces defined in the
// `config` package. It is responsible for all file parsing, HCL-to-model
// translation, and JSON/CTY-to-Go data binding.
package hcl
