package script

import "testing"

func lineAt(text string, page int, y float64) Line {
	return Line{Page: page, Y: y, Text: text}
}

// TestScanAnchorsExactMatch tests that only lines whose entire trimmed text
// is a timecode are promoted.
func TestScanAnchorsExactMatch(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		anchor bool
	}{
		{"four digits", "0036", true},
		{"leading and trailing space", "  0142  ", true},
		{"embedded in text", "scene 0036 opens", false},
		{"digits with suffix", "0036a", false},
		{"page number", "12", false},
		{"five digits rejected at default width", "11111", false},
		{"invalid seconds field", "0061", false},
		{"plain narration", "the door opens", false},
	}

	cfg := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchors, content, _ := ScanAnchors([]Line{lineAt(tt.text, 0, 100)}, cfg)
			if got := len(anchors) == 1; got != tt.anchor {
				t.Errorf("anchor(%q) = %v, want %v", tt.text, got, tt.anchor)
			}
			if !tt.anchor && len(content) != 1 {
				t.Errorf("non-anchor line %q not kept as content", tt.text)
			}
		})
	}
}

// TestScanAnchorsWideTimecodes tests the widened digit bounds used for
// feature-length scripts.
func TestScanAnchorsWideTimecodes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTimecodeDigits = 6

	lines := []Line{
		lineAt("0036", 0, 10),
		lineAt("11111", 0, 40),
		lineAt("015628", 0, 70),
	}
	anchors, _, diags := ScanAnchors(lines, cfg)
	if len(anchors) != 3 {
		t.Fatalf("got %d anchors, want 3", len(anchors))
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

// TestScanAnchorsSequenceIndex tests that anchors receive sequence indexes
// in scan order.
func TestScanAnchorsSequenceIndex(t *testing.T) {
	lines := []Line{
		lineAt("0010", 0, 10),
		lineAt("narration", 0, 30),
		lineAt("0020", 0, 60),
		lineAt("0030", 1, 10),
	}
	anchors, content, _ := ScanAnchors(lines, DefaultConfig())
	if len(anchors) != 3 {
		t.Fatalf("got %d anchors, want 3", len(anchors))
	}
	for i, a := range anchors {
		if a.Seq != i {
			t.Errorf("anchor %d has seq %d", i, a.Seq)
		}
	}
	if len(content) != 1 || content[0].Text != "narration" {
		t.Errorf("content lines = %v, want the narration line only", content)
	}
}

// TestScanAnchorsDuplicateHeight tests that a second timecode at the same
// visual height is demoted to content and reported.
func TestScanAnchorsDuplicateHeight(t *testing.T) {
	lines := []Line{
		lineAt("0010", 0, 100),
		lineAt("0011", 0, 103), // same 10-unit bucket
	}
	anchors, content, diags := ScanAnchors(lines, DefaultConfig())
	if len(anchors) != 1 {
		t.Fatalf("got %d anchors, want 1", len(anchors))
	}
	if len(diags) != 1 || diags[0].Kind != DiagDuplicateAnchor {
		t.Fatalf("diags = %v, want one duplicate-anchor", diags)
	}
	if len(content) != 1 {
		t.Errorf("duplicate was not kept as content")
	}
}

// TestScanAnchorsOutOfOrder tests that a non-increasing timecode is still
// promoted but flagged.
func TestScanAnchorsOutOfOrder(t *testing.T) {
	lines := []Line{
		lineAt("0030", 0, 10),
		lineAt("0020", 0, 60),
	}
	anchors, _, diags := ScanAnchors(lines, DefaultConfig())
	if len(anchors) != 2 {
		t.Fatalf("got %d anchors, want 2 (anomaly is non-fatal)", len(anchors))
	}
	if len(diags) != 1 || diags[0].Kind != DiagOutOfOrderAnchor {
		t.Errorf("diags = %v, want one out-of-order-anchor", diags)
	}
}
