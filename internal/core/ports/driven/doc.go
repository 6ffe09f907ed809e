// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CorpusLoader: Ingests the corpus directory into content units
//   - Extractor: Converts one file format into content units
//   - Chunker: Splits raw text into bounded overlapping units
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Stores vectors and serves nearest-neighbour search
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be unavailable - the application degrades gracefully:
//
//   - LLMService: Answer generation. Without it, retrieval still works.
//   - Captioner: Image descriptions. Without it, image units carry only
//     the file name.
//   - Transcriber: Speech recognition. Without it, video units are
//     visual-only.
//   - MediaProcessor: Local frame/duration tooling. Without it, video
//     files are skipped.
//   - MediaCache: Memoises expensive media analysis between rebuilds.
//   - SessionStore: Chat history persistence.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
