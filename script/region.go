package script

import "sort"

// AssignRegions partitions each page vertically at its anchors and assigns
// every content line to the region of the nearest preceding anchor on the
// same page. The last anchor's region on a page extends to the bottom of
// the page. A line whose y equals an anchor's y belongs to that anchor's
// region; the anchor line itself is never content.
//
// Lines on a page with no preceding anchor are orphans: they are reported
// and excluded from every entry rather than silently merged into another
// page's last region.
//
// One region is returned per anchor, in anchor sequence order, including
// regions that own no lines.
func AssignRegions(anchors []Anchor, lines []Line) ([]Region, []Diagnostic) {
	regions := make([]Region, len(anchors))
	for i, a := range anchors {
		regions[i] = Region{Anchor: a}
	}

	// Anchors arrive in (page, y) order already; index them per page for
	// the interval search.
	byPage := make(map[int][]int)
	for i, a := range anchors {
		byPage[a.Page] = append(byPage[a.Page], i)
	}

	var diags []Diagnostic
	for _, line := range lines {
		idxs := byPage[line.Page]
		// Last anchor on the page with anchor.Y <= line.Y.
		pos := sort.Search(len(idxs), func(i int) bool {
			return anchors[idxs[i]].Y > line.Y
		}) - 1
		if pos < 0 {
			diags = append(diags, Diagnostic{
				Kind: DiagOrphanLine,
				Page: line.Page,
				Y:    line.Y,
				Text: line.Text,
			})
			continue
		}
		owner := idxs[pos]
		regions[owner].Lines = append(regions[owner].Lines, line)
	}

	return regions, diags
}
