// Package diag defines the diagnostic model shared by the lexer, the grammar
// drivers and the layout generator.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric error kind with a stable string ID (codes.go).
//   - Message – short human oriented hint.
//   - Primary – source.Span of the offending symbol.
//   - Notes – optional secondary spans.
//
// # Emitting diagnostics
//
// Producers never abort on bad input. They report through a Reporter and
// carry on (or unwind with an error value). BagReporter collects into a
// bounded Bag, DedupReporter filters repeats, MultiReporter fans out.
//
// Rendering lives in internal/diagfmt; this package does no IO.
package diag
