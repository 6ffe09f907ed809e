// Package domain defines the core business entities for Ansa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentUnit: A bounded span of extracted text, the unit of retrieval
//   - Answer: A generated answer with its contributing sources
//   - CorpusStatus: A snapshot of the retrieval engine state
//   - Session / Message / Feedback: Chat bookkeeping entities
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
