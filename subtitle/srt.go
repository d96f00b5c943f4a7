// Package subtitle serializes timed script entries to SubRip (SRT) files
// and parses them back. The instruction text rides along as a bracketed
// first line so the (timecode, instruction, narration) tuple survives a
// round trip.
package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/voxscript/voxscript/script"
	"github.com/voxscript/voxscript/timecode"
)

// Common errors for SRT handling.
var (
	ErrNoCues = errors.New("no subtitle cues found")
)

// Cue is one SRT block: an index, a start/end time, and the text payload.
type Cue struct {
	Index int
	Start timecode.Timecode
	End   timecode.Timecode
	Text  string
}

// DefaultTailDuration pads the open-ended last entry, which has no
// following start time to borrow.
const DefaultTailDuration = 5 * time.Second

// Both comma and period millisecond separators occur in the wild.
var blockRe = regexp.MustCompile(
	`(\d+)\s*\n` +
		`(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*\n` +
		`((?s:.*?))(?:\n\n|\n*$)`)

// FromEntries converts script entries to cues. Each cue ends where the next
// entry starts; the last runs for tail (DefaultTailDuration when zero). An
// entry's instruction becomes a bracketed first line of the cue text.
func FromEntries(entries []script.Entry, tail time.Duration) []Cue {
	if tail <= 0 {
		tail = DefaultTailDuration
	}
	cues := make([]Cue, 0, len(entries))
	for i, e := range entries {
		start := timecode.Timecode(e.StartMillis)
		var end timecode.Timecode
		if i+1 < len(entries) {
			end = timecode.Timecode(entries[i+1].StartMillis)
		} else {
			end = start + timecode.FromDuration(tail)
		}

		var text strings.Builder
		if e.Instruction != "" {
			text.WriteString("(" + e.Instruction + ")")
			if e.Narration != "" {
				text.WriteByte('\n')
			}
		}
		text.WriteString(e.Narration)

		cues = append(cues, Cue{Index: i + 1, Start: start, End: end, Text: text.String()})
	}
	return cues
}

// ToEntries rebuilds script entries from parsed cues, inverting
// FromEntries. The formatted timecode is rendered at the given fps.
func ToEntries(cues []Cue, fps float64) []script.Entry {
	entries := make([]script.Entry, 0, len(cues))
	for i, cue := range cues {
		instruction, narration := splitInstruction(cue.Text)
		entries = append(entries, script.Entry{
			Seq:         i,
			Timecode:    cue.Start.Format(fps),
			StartMillis: cue.Start.Millis(),
			Instruction: instruction,
			Narration:   narration,
		})
	}
	return entries
}

// splitInstruction peels a fully bracketed first line off the cue text.
func splitInstruction(text string) (instruction, narration string) {
	line, rest, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")") && len(line) > 2 {
		return line[1 : len(line)-1], strings.TrimSpace(rest)
	}
	return "", strings.TrimSpace(text)
}

// Write renders cues as an SRT document.
func Write(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	for i, cue := range cues {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return fmt.Errorf("unable to write cue separator: %w", err)
			}
		}
		_, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n",
			cue.Index, formatSRTTime(cue.Start), formatSRTTime(cue.End), cue.Text)
		if err != nil {
			return fmt.Errorf("unable to write cue %d: %w", cue.Index, err)
		}
	}
	return bw.Flush()
}

// Parse reads an SRT document into cues.
func Parse(r io.Reader) ([]Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read subtitle file: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	matches := blockRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil, ErrNoCues
	}

	cues := make([]Cue, 0, len(matches))
	for _, m := range matches {
		index, _ := strconv.Atoi(m[1])
		start, err := parseSRTTime(m[2])
		if err != nil {
			return nil, err
		}
		end, err := parseSRTTime(m[3])
		if err != nil {
			return nil, err
		}
		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(m[4]),
		})
	}
	return cues, nil
}

// formatSRTTime renders HH:MM:SS,mmm.
func formatSRTTime(tc timecode.Timecode) string {
	ms := tc.Millis()
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		ms/3_600_000, ms%3_600_000/60_000, ms%60_000/1000, ms%1000)
}

// parseSRTTime accepts HH:MM:SS,mmm or HH:MM:SS.mmm.
func parseSRTTime(s string) (timecode.Timecode, error) {
	s = strings.ReplaceAll(s, ".", ",")
	var h, m, sec, ms int
	if _, err := fmt.Sscanf(s, "%d:%d:%d,%d", &h, &m, &sec, &ms); err != nil {
		return 0, fmt.Errorf("invalid subtitle time %q: %w", s, err)
	}
	return timecode.Timecode(int64(h)*3_600_000 + int64(m)*60_000 + int64(sec)*1000 + int64(ms)), nil
}
