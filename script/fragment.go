package script

import (
	"encoding/json"
	"fmt"
	"io"
)

// TextFragment is one positioned piece of text from a page, as produced by
// the page-reading collaborator. Coordinates are in page units with the
// origin at the top-left corner, so Y0 is the top edge and Y1 the bottom.
type TextFragment struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	Page int     `json:"page"`
}

// Line is an ordered run of fragments sharing a visual row. Fragments are
// sorted left to right; Y is the top of the topmost fragment.
type Line struct {
	Page      int
	Y         float64
	Text      string
	Fragments []TextFragment
}

// Anchor is a line whose entire trimmed text is a timecode. Seq is the
// anchor's order of appearance across the whole document.
type Anchor struct {
	Raw  string
	Seq  int
	Page int
	Y    float64
}

// Region owns the content lines between an anchor and the next anchor on
// the same page. The last anchor on a page extends to the bottom of the
// page.
type Region struct {
	Anchor Anchor
	Lines  []Line
}

// Entry is one timed unit of the finished script: a normalized timecode,
// an optional bracketed instruction, and the narration text to synthesize.
// Entries are immutable once built and are never reordered or merged.
type Entry struct {
	Seq         int    `json:"seq"`
	Raw         string `json:"raw"`
	Timecode    string `json:"timecode"`
	StartMillis int64  `json:"start_ms"`
	Instruction string `json:"instruction,omitempty"`
	Narration   string `json:"narration"`
}

// LoadFragments reads a JSON array of text fragments, the interchange form
// emitted by the page-reading collaborator.
func LoadFragments(r io.Reader) ([]TextFragment, error) {
	var fragments []TextFragment
	if err := json.NewDecoder(r).Decode(&fragments); err != nil {
		return nil, fmt.Errorf("unable to decode fragments: %w", err)
	}
	return fragments, nil
}
