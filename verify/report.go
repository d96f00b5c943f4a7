package verify

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const (
	reportWidth   = 60
	narrationCols = 50
)

// WriteText renders a report as a plain-text summary suitable for
// editors. Every flagged entry shows its overlap in milliseconds,
// seconds, and frames.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	rule := strings.Repeat("=", reportWidth)
	thin := strings.Repeat("-", reportWidth)

	b.WriteString(rule + "\n")
	b.WriteString("Audio description timing report\n")
	b.WriteString(rule + "\n\n")

	var flagged []Row
	for _, row := range r.Rows {
		if row.Status != StatusOK {
			flagged = append(flagged, row)
		}
	}

	if len(flagged) == 0 {
		b.WriteString("All entries fit their windows.\n\n")
	} else {
		fmt.Fprintf(&b, "Flagged entries: %d\n\n", len(flagged))
		for _, row := range flagged {
			fmt.Fprintf(&b, "[%s] #%d %s\n", row.Entry.Timecode, row.Entry.Seq, row.Status)
			if text := rowText(row); text != "" {
				fmt.Fprintf(&b, "  text:    %s\n", runewidth.Truncate(text, narrationCols, "..."))
			}
			if row.Status == StatusUnverified {
				b.WriteString("  audio:   missing\n\n")
				continue
			}
			fmt.Fprintf(&b, "  audio:   %.1fs\n", row.ActualDuration.Seconds())
			if row.OpenEnded {
				b.WriteString("  window:  open-ended\n")
			} else {
				fmt.Fprintf(&b, "  window:  %.1fs\n", row.NominalDuration.Seconds())
			}
			fmt.Fprintf(&b, "  overlap: %s ms / %.1fs / %d frames\n\n",
				humanize.Comma(row.Overlap.Millis()), row.Overlap.Seconds(), row.Overlap.Frames(r.FPS))
		}
	}

	s := r.Summarize()
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "Entries: %d\n", s.Total)
	fmt.Fprintf(&b, "  ok:         %d\n", s.OK)
	fmt.Fprintf(&b, "  minor:      %d\n", s.Minor)
	fmt.Fprintf(&b, "  severe:     %d\n", s.Severe)
	fmt.Fprintf(&b, "  unverified: %d\n", s.Unverified)
	if s.TotalOverlap > 0 {
		fmt.Fprintf(&b, "  total overlap: %.1fs\n", s.TotalOverlap.Seconds())
	}
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func rowText(r Row) string {
	if r.Entry.Narration != "" {
		return r.Entry.Narration
	}
	return r.Entry.Instruction
}
