package script

import (
	"sort"
	"sync"

	"github.com/voxscript/voxscript/timecode"
)

// Result is a complete extraction: the ordered entries plus every
// recoverable anomaly found along the way.
type Result struct {
	Entries     []Entry
	Diagnostics []Diagnostic
}

// DefaultConverter formats raw timecodes as HH:MM:SS:FF at the given frame
// rate.
func DefaultConverter(fps float64) ConvertFunc {
	return func(raw string) (string, int64, error) {
		tc, err := timecode.ParseRaw(raw)
		if err != nil {
			return "", 0, err
		}
		return tc.Format(fps), tc.Millis(), nil
	}
}

// Parse runs the whole extraction pipeline: fragments to lines to anchors
// to regions to classified entries. Extraction has no cross-page
// dependency, so pages are clustered concurrently and the per-page line
// sequences concatenated in page order.
//
// A document with no anchors returns ErrNoAnchors and no partial result.
// Everything else recoverable arrives as diagnostics on the result.
func Parse(fragments []TextFragment, cfg Config, conv ConvertFunc) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrNoConverter
	}

	lines := extractAllLines(fragments, cfg)

	anchors, content, diags := ScanAnchors(lines, cfg)
	if len(anchors) == 0 {
		return nil, ErrNoAnchors
	}

	regions, orphanDiags := AssignRegions(anchors, content)
	diags = append(diags, orphanDiags...)

	entries, dropDiags, err := BuildEntries(regions, cfg, conv)
	if err != nil {
		return nil, err
	}
	diags = append(diags, dropDiags...)

	return &Result{Entries: entries, Diagnostics: diags}, nil
}

// extractAllLines clusters each page independently and concatenates the
// results in page order.
func extractAllLines(fragments []TextFragment, cfg Config) []Line {
	byPage := make(map[int][]TextFragment)
	for _, f := range fragments {
		byPage[f.Page] = append(byPage[f.Page], f)
	}

	pages := make([]int, 0, len(byPage))
	for p := range byPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	perPage := make([][]Line, len(pages))
	var wg sync.WaitGroup
	for i, p := range pages {
		wg.Add(1)
		go func(i, p int) {
			defer wg.Done()
			perPage[i] = ExtractLines(byPage[p], cfg)
		}(i, p)
	}
	wg.Wait()

	var lines []Line
	for _, pl := range perPage {
		lines = append(lines, pl...)
	}
	return lines
}
