package script

import (
	"math"
	"strings"

	"github.com/voxscript/voxscript/timecode"
)

// ScanAnchors promotes lines whose entire trimmed text is a valid timecode
// to anchors. A line containing a timecode embedded in other text never
// qualifies; stray page numbers and codes share the digit pattern but not
// the whole-line form. Anchors receive a monotonically increasing sequence
// index in scan order, which is reading order because ExtractLines already
// sorted by (page, y).
//
// A second timecode at the same visual height is kept as a content line and
// reported as a duplicate; an anchor whose value does not increase is still
// promoted but reported as out of order.
func ScanAnchors(lines []Line, cfg Config) (anchors []Anchor, content []Line, diags []Diagnostic) {
	prevStart := timecode.Timecode(-1)
	for _, line := range lines {
		raw := strings.TrimSpace(line.Text)
		if !isAnchorText(raw, cfg) {
			content = append(content, line)
			continue
		}

		if n := len(anchors); n > 0 {
			prev := anchors[n-1]
			if prev.Page == line.Page && sameBucket(prev.Y, line.Y, cfg.AnchorDedupeBucket) {
				diags = append(diags, Diagnostic{
					Kind: DiagDuplicateAnchor,
					Page: line.Page,
					Y:    line.Y,
					Text: raw,
				})
				content = append(content, line)
				continue
			}
		}

		start, _ := timecode.ParseRaw(raw)
		if prevStart >= 0 && start <= prevStart {
			diags = append(diags, Diagnostic{
				Kind: DiagOutOfOrderAnchor,
				Page: line.Page,
				Y:    line.Y,
				Text: raw,
			})
		}
		anchors = append(anchors, Anchor{Raw: raw, Seq: len(anchors), Page: line.Page, Y: line.Y})
		prevStart = start
	}
	return anchors, content, diags
}

// isAnchorText reports whether s, already trimmed, is an anchor: all digits,
// within the configured width bounds, and a valid timecode value.
func isAnchorText(s string, cfg Config) bool {
	if len(s) < cfg.MinTimecodeDigits || len(s) > cfg.MaxTimecodeDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return timecode.ValidRaw(s)
}

func sameBucket(a, b, bucket float64) bool {
	if bucket <= 0 {
		return a == b
	}
	return math.Round(a/bucket) == math.Round(b/bucket)
}
