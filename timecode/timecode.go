// Package timecode converts between the raw numeric timecodes found in
// printed audio-description scripts, SMPTE-style HH:MM:SS:FF strings,
// milliseconds, and frame counts.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Common errors for timecode parsing.
var (
	ErrInvalidRaw      = errors.New("invalid raw timecode")
	ErrInvalidTimecode = errors.New("invalid timecode string")
	ErrInvalidFPS      = errors.New("frame rate must be positive")
)

// Timecode is a position on the program timeline, stored in milliseconds.
// Frame-rate-dependent representations (FF fields, frame counts) are
// computed on demand so the same value can be rendered at any fps.
type Timecode int64

// FromDuration converts a time.Duration to a Timecode.
func FromDuration(d time.Duration) Timecode {
	return Timecode(d.Milliseconds())
}

// FromFrames converts a frame count at the given fps to a Timecode.
func FromFrames(frames int, fps float64) Timecode {
	if fps <= 0 {
		return 0
	}
	return Timecode(float64(frames) / fps * 1000)
}

// Millis returns the timecode position in milliseconds.
func (t Timecode) Millis() int64 {
	return int64(t)
}

// Seconds returns the timecode position in seconds.
func (t Timecode) Seconds() float64 {
	return float64(t) / 1000
}

// Duration returns the timecode position as a time.Duration.
func (t Timecode) Duration() time.Duration {
	return time.Duration(t) * time.Millisecond
}

// Frames returns the timecode position as a whole frame count at fps.
func (t Timecode) Frames(fps float64) int {
	return int(float64(t) / 1000 * fps)
}

// Format renders the timecode as HH:MM:SS:FF at the given fps.
func (t Timecode) Format(fps float64) string {
	h, m, s, f := t.split(fps)
	return fmt.Sprintf("%02d:%02d:%02d:%02d", h, m, s, f)
}

// Filename renders the timecode in the underscore-separated form used for
// per-entry audio file names (HH_MM_SS_FF).
func (t Timecode) Filename(fps float64) string {
	return strings.ReplaceAll(t.Format(fps), ":", "_")
}

func (t Timecode) split(fps float64) (h, m, s, f int) {
	total := t.Seconds()
	h = int(total) / 3600
	m = (int(total) % 3600) / 60
	s = int(total) % 60
	frac := total - float64(int(total))
	f = int(frac * fps)
	return h, m, s, f
}

// ValidRaw reports whether raw is a well-formed script timecode. Accepted
// widths and their field layout:
//
//	4 digits  MMSS    minutes 00-99, seconds 00-59
//	5 digits  HMMSS   hours 0-9, minutes 00-59, seconds 00-59
//	6 digits  HHMMSS  hours 00-99, minutes 00-59, seconds 00-59
func ValidRaw(raw string) bool {
	_, err := ParseRaw(raw)
	return err == nil
}

// ParseRaw converts a raw 4-6 digit script timecode to a Timecode. Four
// digit codes are MMSS with minutes allowed past 59 (a 90-minute program
// marks 01:30:00 as "9000").
func ParseRaw(raw string) (Timecode, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 4 || len(raw) > 6 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRaw, raw)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRaw, raw)
		}
	}

	var h, m, s int
	switch len(raw) {
	case 4:
		m, _ = strconv.Atoi(raw[:2])
		s, _ = strconv.Atoi(raw[2:])
		h = m / 60
		m %= 60
	case 5:
		h, _ = strconv.Atoi(raw[:1])
		m, _ = strconv.Atoi(raw[1:3])
		s, _ = strconv.Atoi(raw[3:])
	case 6:
		h, _ = strconv.Atoi(raw[:2])
		m, _ = strconv.Atoi(raw[2:4])
		s, _ = strconv.Atoi(raw[4:])
	}

	if s > 59 || (len(raw) > 4 && m > 59) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRaw, raw)
	}

	return Timecode((h*3600 + m*60 + s) * 1000), nil
}

// Parse converts an HH:MM:SS:FF string (drop-frame ";" separators are
// accepted) back to a Timecode at the given fps.
func Parse(s string, fps float64) (Timecode, error) {
	if fps <= 0 {
		return 0, ErrInvalidFPS
	}
	parts := strings.Split(strings.ReplaceAll(s, ";", ":"), ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimecode, s)
	}
	nums := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimecode, s)
		}
		nums[i] = n
	}
	h, m, sec, f := nums[0], nums[1], nums[2], nums[3]
	total := float64(h*3600+m*60+sec) + float64(f)/fps
	return Timecode(total * 1000), nil
}
