// Package verify checks synthesized audio durations against the timing
// windows implied by a script's entries. Each entry's window runs from
// its own start to the next entry's start; audio that runs past the
// window overlaps the following entry. Overlaps are reported in
// milliseconds, seconds, and frames at once, with a severity grade per
// entry.
package verify
