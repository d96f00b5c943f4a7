package script

import "testing"

func regionWith(texts ...string) Region {
	r := Region{Anchor: Anchor{Raw: "0010", Page: 0, Y: 100}}
	for i, text := range texts {
		r.Lines = append(r.Lines, lineAt(text, 0, 120+float64(i)*20))
	}
	return r
}

// TestClassifySeparatesBrackets tests the instruction/narration split.
func TestClassifySeparatesBrackets(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name        string
		lines       []string
		instruction string
		narration   string
	}{
		{
			"instruction then narration",
			[]string{"(slowly) the door creaks open"},
			"slowly", "the door creaks open",
		},
		{
			"multiple bracketed spans concatenate",
			[]string{"(soft) she turns", "(urgent) and runs"},
			"soft urgent", "she turns and runs",
		},
		{
			"narration across lines joins with one space",
			[]string{"rain falls on", "the empty street"},
			"", "rain falls on the empty street",
		},
		{
			"instruction only region",
			[]string{"(hold for music)"},
			"hold for music", "",
		},
		{
			"bracket mid-line",
			[]string{"she pauses (beat) then speaks"},
			"beat", "she pauses then speaks",
		},
		{
			"empty brackets ignored",
			[]string{"() nothing to see"},
			"", "nothing to see",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(regionWith(tt.lines...), cfg)
			if got.Instruction != tt.instruction {
				t.Errorf("instruction = %q, want %q", got.Instruction, tt.instruction)
			}
			if got.Narration != tt.narration {
				t.Errorf("narration = %q, want %q", got.Narration, tt.narration)
			}
		})
	}
}

// TestClassifySoundKeywords tests that bracketed sound-effect notes are
// dropped from the instruction string.
func TestClassifySoundKeywords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SoundKeywords = []string{"thunder", "laughter"}

	got := Classify(regionWith("(distant thunder) lightning splits the sky (calm)"), cfg)
	if got.Instruction != "calm" {
		t.Errorf("instruction = %q, want %q", got.Instruction, "calm")
	}
	if got.Narration != "lightning splits the sky" {
		t.Errorf("narration = %q", got.Narration)
	}
}

// TestClassifyStripsLeadingTimecode tests removal of a raw timecode merged
// onto the first content line.
func TestClassifyStripsLeadingTimecode(t *testing.T) {
	cfg := DefaultConfig()
	got := Classify(regionWith("0036 the hallway stretches ahead"), cfg)
	if got.Narration != "the hallway stretches ahead" {
		t.Errorf("narration = %q, leading timecode not stripped", got.Narration)
	}

	cfg.StripLeadingTimecode = false
	got = Classify(regionWith("0036 the hallway stretches ahead"), cfg)
	if got.Narration != "0036 the hallway stretches ahead" {
		t.Errorf("narration = %q, timecode stripped despite config", got.Narration)
	}
}

// TestClassifyCleanupOptions tests slash and period removal.
func TestClassifyCleanupOptions(t *testing.T) {
	cfg := DefaultConfig() // slashes removed by default
	got := Classify(regionWith("she walks / she stops."), cfg)
	if got.Narration != "she walks she stops." {
		t.Errorf("narration = %q, want slashes collapsed", got.Narration)
	}

	cfg.RemovePeriods = true
	got = Classify(regionWith("she walks / she stops."), cfg)
	if got.Narration != "she walks she stops" {
		t.Errorf("narration = %q, want periods removed", got.Narration)
	}
}

// TestClassifyAlternateBrackets tests configurable bracket characters.
func TestClassifyAlternateBrackets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenBracket = "["
	cfg.CloseBracket = "]"

	got := Classify(regionWith("[quietly] the lights dim (not an instruction)"), cfg)
	if got.Instruction != "quietly" {
		t.Errorf("instruction = %q, want %q", got.Instruction, "quietly")
	}
	if got.Narration != "the lights dim (not an instruction)" {
		t.Errorf("narration = %q", got.Narration)
	}
}
