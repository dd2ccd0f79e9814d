// Package dispatch routes named commands to their registered handlers. It
// owns the full dispatch contract: alias resolution for legacy dotted
// command names, parameter filtering and default application through the
// config.Converter, structured shaping of missing-parameter and handler
// failures, and recovery from handler panics. No handler error ever escapes
// a dispatch unstructured.
package dispatch
