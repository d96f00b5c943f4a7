package script

import (
	"errors"
	"fmt"
)

// Common errors for script extraction.
var (
	// ErrNoAnchors means the document contains no timecode anchors and
	// therefore has no recoverable structure. No partial result is produced.
	ErrNoAnchors = errors.New("no timecode anchors found in document")

	// ErrNoConverter is returned when entries are built without a timecode
	// conversion function.
	ErrNoConverter = errors.New("no timecode converter provided")
)

// DiagnosticKind classifies a non-fatal anomaly found during extraction.
type DiagnosticKind int

const (
	// DiagOrphanLine marks a line on a page with no preceding anchor. The
	// line is excluded from every entry rather than merged into a
	// neighboring page's region.
	DiagOrphanLine DiagnosticKind = iota

	// DiagDuplicateAnchor marks a second timecode found at the same visual
	// height as an existing anchor.
	DiagDuplicateAnchor

	// DiagOutOfOrderAnchor marks an anchor whose timecode value is not
	// greater than its predecessor's. The entry is still built.
	DiagOutOfOrderAnchor

	// DiagDroppedNoNarration marks an anchor whose entry was dropped
	// because its region produced no narration while the configuration
	// requires it.
	DiagDroppedNoNarration
)

// String returns a short name for the diagnostic kind.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagOrphanLine:
		return "orphan-line"
	case DiagDuplicateAnchor:
		return "duplicate-anchor"
	case DiagOutOfOrderAnchor:
		return "out-of-order-anchor"
	case DiagDroppedNoNarration:
		return "dropped-no-narration"
	default:
		return "unknown"
	}
}

// Diagnostic records one recoverable anomaly. Diagnostics are accumulated
// and returned as data; they never abort the pipeline.
type Diagnostic struct {
	Kind DiagnosticKind
	Page int
	Y    float64
	Text string
}

// String renders the diagnostic for logs and reports.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s page=%d y=%.1f %q", d.Kind, d.Page, d.Y, d.Text)
}
