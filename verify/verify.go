package verify

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/voxscript/voxscript/script"
	"github.com/voxscript/voxscript/tts"
)

// ErrNoEntries is returned when there is nothing to verify.
var ErrNoEntries = errors.New("verify: no entries")

// Status grades a single entry's timing.
type Status int

// Entry timing grades, from harmless to unusable.
const (
	// StatusOK means the audio fits inside the entry's window.
	StatusOK Status = iota
	// StatusMinor means the audio spills into the next entry by no more
	// than the configured minor threshold.
	StatusMinor
	// StatusSevere means the spill exceeds the minor threshold.
	StatusSevere
	// StatusUnverified means no audio duration was available for the
	// entry, so nothing could be checked.
	StatusUnverified
)

// String returns the grade name as it appears in reports.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusMinor:
		return "MINOR"
	case StatusSevere:
		return "SEVERE"
	case StatusUnverified:
		return "UNVERIFIED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Config holds the verifier's tunables.
type Config struct {
	// FPS is the frame rate used to express overlaps in frames.
	FPS float64 `yaml:"fps" env:"FPS"`

	// MinorThreshold separates MINOR from SEVERE overlaps.
	MinorThreshold time.Duration `yaml:"minor_threshold" env:"MINOR_THRESHOLD"`
}

// DefaultConfig returns the verifier defaults.
func DefaultConfig() Config {
	return Config{
		FPS:            24,
		MinorThreshold: 500 * time.Millisecond,
	}
}

// Validate checks the configuration for impossible values.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("verify: fps must be positive, got %v", c.FPS)
	}
	if c.MinorThreshold < 0 {
		return fmt.Errorf("verify: minor threshold must not be negative, got %v", c.MinorThreshold)
	}
	return nil
}

// Overlap is a signed spill amount. Positive means the audio runs past
// the next entry's start; negative means it ends early by that margin.
type Overlap time.Duration

// Millis returns the overlap in whole milliseconds.
func (o Overlap) Millis() int64 { return time.Duration(o).Milliseconds() }

// Seconds returns the overlap in seconds.
func (o Overlap) Seconds() float64 { return time.Duration(o).Seconds() }

// Frames returns the overlap as a rounded frame count at the given rate.
func (o Overlap) Frames(fps float64) int {
	return int(math.Round(o.Seconds() * fps))
}

// Row is the verification result for one entry.
type Row struct {
	Entry script.Entry `json:"entry"`

	NominalStart    time.Duration `json:"nominal_start"`
	NominalDuration time.Duration `json:"nominal_duration"`
	// OpenEnded marks the last entry, whose window has no end and which
	// therefore cannot overlap anything.
	OpenEnded bool `json:"open_ended"`

	ActualDuration time.Duration `json:"actual_duration"`
	ActualEnd      time.Duration `json:"actual_end"`

	// Overlap is the typed spill amount; the three unit fields below carry
	// the same value pre-converted so serialized reports hold all three
	// units per entry, like the text report.
	Overlap        Overlap `json:"-"`
	OverlapMillis  int64   `json:"overlap_ms"`
	OverlapSeconds float64 `json:"overlap_seconds"`
	OverlapFrames  int     `json:"overlap_frames"`

	Status Status `json:"status"`
}

// Report is the verifier's output: one row per entry, in entry order.
type Report struct {
	Rows []Row   `json:"rows"`
	FPS  float64 `json:"fps"`

	// Partial is set when at least one entry could not be verified.
	Partial bool `json:"partial"`
}

// Summary aggregates a report's row grades.
type Summary struct {
	Total        int
	OK           int
	Minor        int
	Severe       int
	Unverified   int
	TotalOverlap time.Duration
}

// Summarize counts rows by grade and totals the positive overlaps.
func (r *Report) Summarize() Summary {
	var s Summary
	s.Total = len(r.Rows)
	for _, row := range r.Rows {
		switch row.Status {
		case StatusOK:
			s.OK++
		case StatusMinor:
			s.Minor++
		case StatusSevere:
			s.Severe++
		case StatusUnverified:
			s.Unverified++
		}
		if row.Overlap > 0 {
			s.TotalOverlap += time.Duration(row.Overlap)
		}
	}
	return s
}

// Clean reports whether every row is OK.
func (r *Report) Clean() bool {
	for _, row := range r.Rows {
		if row.Status != StatusOK {
			return false
		}
	}
	return true
}

// Check verifies entries against their synthesized audio durations.
// durations maps entry sequence numbers to measured audio lengths;
// entries without a mapping are graded UNVERIFIED and the report is
// marked partial, but every other entry is still checked.
func Check(entries []script.Entry, durations map[int]time.Duration, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	report := &Report{
		Rows: make([]Row, 0, len(entries)),
		FPS:  cfg.FPS,
	}

	for i, entry := range entries {
		row := Row{
			Entry:        entry,
			NominalStart: time.Duration(entry.StartMillis) * time.Millisecond,
		}

		if i+1 < len(entries) {
			next := time.Duration(entries[i+1].StartMillis) * time.Millisecond
			row.NominalDuration = next - row.NominalStart
		} else {
			row.OpenEnded = true
		}

		actual, ok := durations[entry.Seq]
		if !ok {
			row.Status = StatusUnverified
			report.Partial = true
			report.Rows = append(report.Rows, row)
			continue
		}

		row.ActualDuration = actual
		row.ActualEnd = row.NominalStart + actual

		if !row.OpenEnded {
			row.Overlap = Overlap(row.ActualDuration - row.NominalDuration)
		}
		row.OverlapMillis = row.Overlap.Millis()
		row.OverlapSeconds = row.Overlap.Seconds()
		row.OverlapFrames = row.Overlap.Frames(cfg.FPS)

		switch {
		case row.OpenEnded || row.Overlap <= 0:
			row.Status = StatusOK
		case time.Duration(row.Overlap) <= cfg.MinorThreshold:
			row.Status = StatusMinor
		default:
			row.Status = StatusSevere
		}

		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// DurationsFromResults extracts per-entry durations from a synthesis
// batch. Failed items get no mapping, which Check grades UNVERIFIED.
func DurationsFromResults(results []tts.ItemResult) map[int]time.Duration {
	durations := make(map[int]time.Duration, len(results))
	for _, res := range results {
		if res.Err != nil || res.Audio == nil {
			continue
		}
		durations[res.Seq] = res.Audio.Duration
	}
	return durations
}
