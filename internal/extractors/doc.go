// Package extractors provides implementations of the Extractor interface
// for various file formats. Each extractor knows how to turn one file type
// into content units ready for indexing.
//
// Extractors are registered with the Registry at startup; the corpus
// loader dispatches on file extension.
package extractors
