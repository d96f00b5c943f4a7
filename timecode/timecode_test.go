package timecode

import (
	"errors"
	"testing"
	"time"
)

// TestParseRaw tests raw script timecode parsing across all accepted widths.
func TestParseRaw(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64 // milliseconds
		wantErr bool
	}{
		{"four digit MMSS", "0036", 36_000, false},
		{"four digit minutes over 59", "3400", 2_040_000, false},
		{"four digit rolls into hours", "9000", 5_400_000, false},
		{"five digit HMMSS", "11111", 4_271_000, false},
		{"six digit HHMMSS", "015628", 6_988_000, false},
		{"seconds out of range", "0061", 0, true},
		{"five digit minutes out of range", "16059", 0, true},
		{"too short", "123", 0, true},
		{"too long", "1234567", 0, true},
		{"non-digit", "12a4", 0, true},
		{"embedded whitespace trimmed", " 0036 ", 36_000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRaw(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRaw(%q) expected error, got %v", tt.raw, got)
				}
				if !errors.Is(err, ErrInvalidRaw) {
					t.Errorf("ParseRaw(%q) error = %v, want ErrInvalidRaw", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRaw(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Millis() != tt.want {
				t.Errorf("ParseRaw(%q) = %dms, want %dms", tt.raw, got.Millis(), tt.want)
			}
		})
	}
}

// TestFormat tests HH:MM:SS:FF rendering at various frame rates.
func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		fps  float64
		want string
	}{
		{"zero", 0, 24, "00:00:00:00"},
		{"whole seconds", 36_000, 24, "00:00:36:00"},
		{"half second at 24fps", 10_500, 24, "00:00:10:12"},
		{"half second at 30fps", 10_500, 30, "00:00:10:15"},
		{"hours", 7_028_000, 24, "01:57:08:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Timecode(tt.ms).Format(tt.fps)
			if got != tt.want {
				t.Errorf("Timecode(%d).Format(%v) = %q, want %q", tt.ms, tt.fps, got, tt.want)
			}
		})
	}
}

// TestParseRoundTrip verifies Format and Parse invert each other on frame
// boundaries.
func TestParseRoundTrip(t *testing.T) {
	const fps = 24.0
	for _, frames := range []int{0, 1, 23, 24, 100, 86400} {
		tc := FromFrames(frames, fps)
		parsed, err := Parse(tc.Format(fps), fps)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", tc.Format(fps), err)
		}
		if parsed.Frames(fps) != frames {
			t.Errorf("round trip of %d frames gave %d", frames, parsed.Frames(fps))
		}
	}
}

// TestParseRejectsMalformed tests malformed timecode strings.
func TestParseRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "00:00:00", "1:2:3:4:5", "aa:bb:cc:dd", "00:00:-1:00"} {
		if _, err := Parse(s, 24); err == nil {
			t.Errorf("Parse(%q) expected error", s)
		}
	}
	if _, err := Parse("00:00:01:00", 0); !errors.Is(err, ErrInvalidFPS) {
		t.Errorf("Parse with zero fps: got %v, want ErrInvalidFPS", err)
	}
}

// TestFilename tests the underscore-separated filename form.
func TestFilename(t *testing.T) {
	got := Timecode(36_000).Filename(24)
	if got != "00_00_36_00" {
		t.Errorf("Filename = %q, want %q", got, "00_00_36_00")
	}
}

// TestDurationConversions tests Duration and FromDuration.
func TestDurationConversions(t *testing.T) {
	d := 2500 * time.Millisecond
	tc := FromDuration(d)
	if tc.Millis() != 2500 {
		t.Errorf("FromDuration = %d, want 2500", tc.Millis())
	}
	if tc.Duration() != d {
		t.Errorf("Duration = %v, want %v", tc.Duration(), d)
	}
	if tc.Seconds() != 2.5 {
		t.Errorf("Seconds = %v, want 2.5", tc.Seconds())
	}
}
