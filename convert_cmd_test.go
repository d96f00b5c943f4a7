package main

import (
	"testing"

	"github.com/spf13/viper"
)

// TestScriptConfigLayering tests that config-file values survive the
// environment layer and that the file wins over environment defaults.
func TestScriptConfigLayering(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("file values kept", func(t *testing.T) {
		viper.Set("script.y_line_threshold", 12.0)
		viper.Set("script.strip_leading_timecode", false)

		cfg, err := scriptConfig()
		if err != nil {
			t.Fatalf("scriptConfig: %v", err)
		}
		if cfg.YLineThreshold != 12 {
			t.Errorf("y threshold = %v, want 12 from config file", cfg.YLineThreshold)
		}
		if cfg.StripLeadingTimecode {
			t.Error("strip_leading_timecode = true, want false from config file")
		}
	})

	t.Run("file wins over environment", func(t *testing.T) {
		t.Setenv("VOXSCRIPT_Y_LINE_THRESHOLD", "9")
		viper.Set("script.y_line_threshold", 12.0)

		cfg, err := scriptConfig()
		if err != nil {
			t.Fatalf("scriptConfig: %v", err)
		}
		if cfg.YLineThreshold != 12 {
			t.Errorf("y threshold = %v, want config file to override environment", cfg.YLineThreshold)
		}
	})

	t.Run("environment applies without file", func(t *testing.T) {
		viper.Reset()
		t.Setenv("VOXSCRIPT_Y_LINE_THRESHOLD", "9")

		cfg, err := scriptConfig()
		if err != nil {
			t.Fatalf("scriptConfig: %v", err)
		}
		if cfg.YLineThreshold != 9 {
			t.Errorf("y threshold = %v, want 9 from environment", cfg.YLineThreshold)
		}
	})
}
