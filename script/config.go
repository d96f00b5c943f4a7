package script

import (
	"fmt"
)

// Config holds the extraction constants. Every threshold is explicit so
// tests can vary them; nothing is read from ambient state.
type Config struct {
	// YLineThreshold is the maximum vertical distance, in page units,
	// between the tops of two fragments for them to chain into the same
	// visual line. Clustering is transitive.
	YLineThreshold float64 `yaml:"y_line_threshold" env:"VOXSCRIPT_Y_LINE_THRESHOLD" envDefault:"8"`

	// GapEpsilon is the horizontal gap above which a space is inserted
	// between adjacent fragments of a line. Smaller gaps are glyph-level
	// splits and concatenate directly.
	GapEpsilon float64 `yaml:"gap_epsilon" env:"VOXSCRIPT_GAP_EPSILON" envDefault:"1"`

	// MinTimecodeDigits and MaxTimecodeDigits bound the width of a line
	// that can qualify as a timecode anchor. The whole trimmed line must
	// consist of digits; embedded digits never qualify.
	MinTimecodeDigits int `yaml:"min_timecode_digits" env:"VOXSCRIPT_MIN_TIMECODE_DIGITS" envDefault:"4"`
	MaxTimecodeDigits int `yaml:"max_timecode_digits" env:"VOXSCRIPT_MAX_TIMECODE_DIGITS" envDefault:"4"`

	// AnchorDedupeBucket is the y-bucket size, in page units, used to
	// detect a second timecode at the same visual height.
	AnchorDedupeBucket float64 `yaml:"anchor_dedupe_bucket" env:"VOXSCRIPT_ANCHOR_DEDUPE_BUCKET" envDefault:"10"`

	// OpenBracket and CloseBracket delimit instruction text.
	OpenBracket  string `yaml:"open_bracket" env:"VOXSCRIPT_OPEN_BRACKET" envDefault:"("`
	CloseBracket string `yaml:"close_bracket" env:"VOXSCRIPT_CLOSE_BRACKET" envDefault:")"`

	// SoundKeywords lists substrings that mark a bracketed span as a sound
	// effect note rather than a delivery instruction. Matching spans are
	// dropped from the instruction string.
	SoundKeywords []string `yaml:"sound_keywords" env:"VOXSCRIPT_SOUND_KEYWORDS" envSeparator:","`

	// StripLeadingTimecode removes a raw timecode that the layout merged
	// onto the first content line of its region.
	StripLeadingTimecode bool `yaml:"strip_leading_timecode" env:"VOXSCRIPT_STRIP_LEADING_TIMECODE" envDefault:"true"`

	// RemoveSlashes and RemovePeriods replace breath marks in narration
	// text with spaces before synthesis.
	RemoveSlashes bool `yaml:"remove_slashes" env:"VOXSCRIPT_REMOVE_SLASHES" envDefault:"true"`
	RemovePeriods bool `yaml:"remove_periods" env:"VOXSCRIPT_REMOVE_PERIODS" envDefault:"false"`

	// InlineInstructions prepends the instruction string, in brackets, to
	// the narration text of each entry.
	InlineInstructions bool `yaml:"inline_instructions" env:"VOXSCRIPT_INLINE_INSTRUCTIONS" envDefault:"false"`

	// RequireNarration drops entries whose region produced no narration
	// text. Off by default: instruction-only entries are preserved.
	RequireNarration bool `yaml:"require_narration" env:"VOXSCRIPT_REQUIRE_NARRATION" envDefault:"false"`
}

// DefaultConfig returns the extraction constants used for production
// scripts.
func DefaultConfig() Config {
	return Config{
		YLineThreshold:       8,
		GapEpsilon:           1,
		MinTimecodeDigits:    4,
		MaxTimecodeDigits:    4,
		AnchorDedupeBucket:   10,
		OpenBracket:          "(",
		CloseBracket:         ")",
		StripLeadingTimecode: true,
		RemoveSlashes:        true,
	}
}

// Validate checks the configuration for values the pipeline cannot work
// with.
func (c Config) Validate() error {
	if c.YLineThreshold <= 0 {
		return fmt.Errorf("y_line_threshold must be positive, got %v", c.YLineThreshold)
	}
	if c.GapEpsilon < 0 {
		return fmt.Errorf("gap_epsilon must not be negative, got %v", c.GapEpsilon)
	}
	if c.MinTimecodeDigits < 4 || c.MaxTimecodeDigits > 6 || c.MinTimecodeDigits > c.MaxTimecodeDigits {
		return fmt.Errorf("timecode digit bounds must satisfy 4 <= min <= max <= 6, got %d..%d",
			c.MinTimecodeDigits, c.MaxTimecodeDigits)
	}
	if c.OpenBracket == "" || c.CloseBracket == "" {
		return fmt.Errorf("bracket characters must not be empty")
	}
	return nil
}
