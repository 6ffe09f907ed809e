package domain

import "time"

// Answer is the result of answering a question over the corpus.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources lists the distinct source documents that contributed
	// retrieved context, in first-retrieved order.
	Sources []string
}

// CorpusStatus is a point-in-time snapshot of the retrieval engine.
// Produced by status queries; reading it has no side effects.
type CorpusStatus struct {
	// Ready reports whether an index has been built and queries
	// can be served.
	Ready bool

	// UnitCount is the number of indexed content units.
	UnitCount int

	// Sources is the sorted list of successfully loaded source documents.
	Sources []string

	// LastBuildTime is when the index was last built successfully.
	// Zero if the index has never been built.
	LastBuildTime time.Time
}

// SourceCount returns the number of loaded source documents.
func (s CorpusStatus) SourceCount() int {
	return len(s.Sources)
}
