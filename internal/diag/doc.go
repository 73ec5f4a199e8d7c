// Package diag defines the failure model shared by every pipeline phase.
//
// # Data model
//
// Diagnostic is the single failure value. It carries:
//
//   - Kind – Fatal, Problem, Plain, NotFound or DecodeFailure (kind.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short human oriented text.
//   - Solutions – ordered suggestions, only meaningful for Problem. An empty list
//     is valid and means that no fix is known yet.
//   - Path – optional subject (file or module) the diagnostic talks about.
//
// Diagnostics are created through the constructors and are never mutated
// afterwards; accessors hand out copies of slices.
//
// # Propagation
//
// Phases return a *Diagnostic as their error. Chains propagate it unchanged, so
// the value a caller receives is exactly the one the failing phase produced.
// Foreign errors are converted with Wrap at the pipeline boundary.
//
// # Scope
//
// Package diag does not format or print anything. Rendering lives in
// internal/diagfmt and is consumed by the CLI.
package diag
