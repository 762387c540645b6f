// Package token defines the Symbol Stream consumed by the parser.
// Invariants:
//   - Symbol.Text is the exact source text of the symbol.
//   - Symbol.Pos is the index of the symbol inside its Stream.
//   - Built-in type names (float3, uint, float4x4, ...) are identifiers;
//     the type registry recognizes them, not the lexer.
//   - Stream.At never faults: positions past the end yield the EOF sentinel.
package token
