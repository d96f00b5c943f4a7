package script

import (
	"testing"
)

func frag(text string, page int, x0, y0, x1 float64) TextFragment {
	return TextFragment{Text: text, Page: page, X0: x0, Y0: y0, X1: x1, Y1: y0 + 10}
}

// TestExtractLinesGroupsByProximity tests basic vertical clustering.
func TestExtractLinesGroupsByProximity(t *testing.T) {
	cfg := DefaultConfig()
	fragments := []TextFragment{
		frag("world", 0, 40, 101, 70),
		frag("hello", 0, 10, 100, 38),
		frag("below", 0, 10, 120, 40),
	}

	lines := ExtractLines(fragments, cfg)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "hello world" {
		t.Errorf("first line = %q, want %q", lines[0].Text, "hello world")
	}
	if lines[1].Text != "below" {
		t.Errorf("second line = %q, want %q", lines[1].Text, "below")
	}
	if lines[0].Y != 100 {
		t.Errorf("line y = %v, want top of topmost fragment (100)", lines[0].Y)
	}
}

// TestExtractLinesTransitiveChaining tests that clustering chains through
// intermediate fragments: A joins B and B joins C, so A, B, and C form one
// line even though A and C alone exceed the threshold.
func TestExtractLinesTransitiveChaining(t *testing.T) {
	cfg := DefaultConfig() // threshold 8
	fragments := []TextFragment{
		frag("a", 0, 10, 100, 20),
		frag("b", 0, 30, 106, 40), // 6 from a
		frag("c", 0, 50, 112, 60), // 6 from b, 12 from a
	}

	lines := ExtractLines(fragments, cfg)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (chained cluster)", len(lines))
	}
	if lines[0].Text != "a b c" {
		t.Errorf("line = %q, want %q", lines[0].Text, "a b c")
	}
}

// TestExtractLinesThresholdBoundary tests that a gap exactly equal to the
// threshold starts a new line: fragments join only when strictly closer.
func TestExtractLinesThresholdBoundary(t *testing.T) {
	cfg := DefaultConfig()
	fragments := []TextFragment{
		frag("one", 0, 10, 100, 30),
		frag("two", 0, 10, 108, 30), // exactly threshold away
	}

	lines := ExtractLines(fragments, cfg)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (boundary gap splits)", len(lines))
	}
}

// TestExtractLinesInputOrderIndependent tests that shuffled input yields the
// same grouping as sorted input.
func TestExtractLinesInputOrderIndependent(t *testing.T) {
	cfg := DefaultConfig()
	ordered := []TextFragment{
		frag("alpha", 0, 10, 50, 40),
		frag("beta", 0, 50, 52, 80),
		frag("gamma", 0, 10, 90, 45),
	}
	shuffled := []TextFragment{ordered[2], ordered[0], ordered[1]}

	want := ExtractLines(ordered, cfg)
	got := ExtractLines(shuffled, cfg)

	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text != want[i].Text {
			t.Errorf("line %d = %q, want %q", i, got[i].Text, want[i].Text)
		}
	}
}

// TestExtractLinesPageBoundary tests that fragments on different pages never
// share a line, regardless of y proximity.
func TestExtractLinesPageBoundary(t *testing.T) {
	cfg := DefaultConfig()
	fragments := []TextFragment{
		frag("page zero", 0, 10, 100, 60),
		frag("page one", 1, 10, 100, 60),
	}

	lines := ExtractLines(fragments, cfg)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

// TestExtractLinesGapEpsilon tests that a space is inserted only when the
// horizontal gap between fragments exceeds the epsilon.
func TestExtractLinesGapEpsilon(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want string
	}{
		{"glyph split joins directly", 0.5, "helloworld"},
		{"word gap gets a space", 4, "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			fragments := []TextFragment{
				frag("hello", 0, 10, 100, 40),
				frag("world", 0, 40+tt.gap, 100, 70+tt.gap),
			}
			lines := ExtractLines(fragments, cfg)
			if len(lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(lines))
			}
			if lines[0].Text != tt.want {
				t.Errorf("line = %q, want %q", lines[0].Text, tt.want)
			}
		})
	}
}

// TestExtractLinesEmpty tests that no fragments yield no lines, not an
// error.
func TestExtractLinesEmpty(t *testing.T) {
	if lines := ExtractLines(nil, DefaultConfig()); lines != nil {
		t.Errorf("got %v, want nil", lines)
	}
}
