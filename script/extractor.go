package script

import (
	"sort"
	"strings"
)

// ExtractLines groups a page's fragments into visual lines by vertical
// proximity. Clustering is single-linkage and transitive: a fragment joins
// the current line when its top is within YLineThreshold of the previous
// fragment's top, so a chain of near fragments forms one line even when its
// endpoints are farther apart than the threshold. Input order does not
// matter; fragments may span multiple pages.
//
// Lines are returned ordered by (page, y). A fragment set with no fragments
// yields no lines.
func ExtractLines(fragments []TextFragment, cfg Config) []Line {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Y0 != b.Y0 {
			return a.Y0 < b.Y0
		}
		return a.X0 < b.X0
	})

	var lines []Line
	cluster := []TextFragment{sorted[0]}
	// Chain against the previous fragment's top, not the cluster's first.
	// Comparing to the first fragment reintroduces a merge defect where a
	// gradual drift splits one printed line in two.
	prevY := sorted[0].Y0
	prevPage := sorted[0].Page

	flush := func() {
		lines = append(lines, assembleLine(cluster, cfg))
	}

	for _, f := range sorted[1:] {
		if f.Page != prevPage || f.Y0-prevY >= cfg.YLineThreshold {
			flush()
			cluster = cluster[:0:0]
		}
		cluster = append(cluster, f)
		prevY = f.Y0
		prevPage = f.Page
	}
	flush()

	return lines
}

// assembleLine orders a cluster left to right and concatenates its text,
// inserting a space only where the horizontal gap exceeds GapEpsilon.
func assembleLine(cluster []TextFragment, cfg Config) Line {
	frags := make([]TextFragment, len(cluster))
	copy(frags, cluster)
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].X0 < frags[j].X0 })

	top := frags[0].Y0
	for _, f := range frags[1:] {
		if f.Y0 < top {
			top = f.Y0
		}
	}

	var b strings.Builder
	for i, f := range frags {
		if i > 0 && f.X0-frags[i-1].X1 > cfg.GapEpsilon {
			b.WriteByte(' ')
		}
		b.WriteString(f.Text)
	}

	return Line{
		Page:      frags[0].Page,
		Y:         top,
		Text:      b.String(),
		Fragments: frags,
	}
}
