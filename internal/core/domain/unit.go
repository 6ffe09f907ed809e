package domain

import (
	"fmt"
	"strings"
)

// UnitKind identifies the modality a content unit was extracted from.
type UnitKind string

// Available unit kinds.
const (
	// UnitKindText is text extracted from a textual document (txt, pdf, docx).
	UnitKindText UnitKind = "text"

	// UnitKindImage is a generated description of an image file.
	UnitKindImage UnitKind = "image"

	// UnitKindVideo is a time-bucketed description of a video file,
	// combining sampled frame descriptions and transcript segments.
	UnitKindVideo UnitKind = "video"
)

// IsValid returns true if the unit kind is recognised.
func (k UnitKind) IsValid() bool {
	switch k {
	case UnitKindText, UnitKindImage, UnitKindVideo:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k UnitKind) String() string {
	return string(k)
}

// ContentUnit is the unit of retrieval: a bounded span of text extracted
// from one source document during ingestion. Units are immutable once
// created and are owned by the vector index after a build.
type ContentUnit struct {
	// Text is the extracted text. Non-empty after trimming.
	Text string

	// Source is the originating document name within the corpus.
	Source string

	// Kind records the modality the unit was extracted from.
	Kind UnitKind

	// TimeRange is the covered span for video units, e.g. "0.0s-30.0s".
	// Empty for text and image units.
	TimeRange string
}

// Validate checks that the unit is well formed.
func (u ContentUnit) Validate() error {
	if strings.TrimSpace(u.Text) == "" {
		return fmt.Errorf("%w: unit text is empty", ErrInvalidInput)
	}
	if u.Source == "" {
		return fmt.Errorf("%w: unit source is empty", ErrInvalidInput)
	}
	if !u.Kind.IsValid() {
		return fmt.Errorf("%w: unknown unit kind %q", ErrInvalidInput, u.Kind)
	}
	if u.Kind != UnitKindVideo && u.TimeRange != "" {
		return fmt.Errorf("%w: time range is only valid for video units", ErrInvalidInput)
	}
	return nil
}
