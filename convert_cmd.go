package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxscript/voxscript/script"
	"github.com/voxscript/voxscript/subtitle"
)

var (
	convertOut          string
	convertJSON         bool
	convertLineGap      float64
	convertMaxDigits    int
	convertRequireText  bool
	convertInlineInstr  bool
	convertTailDuration = subtitle.DefaultTailDuration

	convertCmd = &cobra.Command{
		Use:   "convert [FRAGMENTS|-]",
		Short: "Convert extracted script fragments into subtitle entries",
		Long: paragraph(
			fmt.Sprintf("\nRead positioned text fragments from a PDF extraction (JSON), reconstruct the script's %s, and emit timed subtitle entries as SRT or JSON.", keyword("timecoded entries")),
		),
		Example: "  voxscript convert script.json -o script.srt\n  pdftotext-frags script.pdf | voxscript convert - --json",
		Args:    cobra.ExactArgs(1),
		RunE:    runConvert,
	}
)

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output file (default stdout)")
	convertCmd.Flags().BoolVar(&convertJSON, "json", false, "emit entries as JSON instead of SRT")
	convertCmd.Flags().Float64Var(&convertLineGap, "line-gap", 0, "vertical distance that separates lines (default from config)")
	convertCmd.Flags().IntVar(&convertMaxDigits, "max-digits", 0, "widest raw timecode to accept as an anchor (4-6)")
	convertCmd.Flags().BoolVar(&convertRequireText, "require-narration", false, "drop entries that have no narration")
	convertCmd.Flags().BoolVar(&convertInlineInstr, "inline-instructions", false, "prepend instructions to the narration text")
	convertCmd.Flags().DurationVar(&convertTailDuration, "tail", subtitle.DefaultTailDuration, "display duration of the last entry")
}

// scriptConfig layers the extraction settings: defaults and environment
// variables first, then the config file, then flags. env.Parse re-applies
// every envDefault tag for unset variables, so it must run before the
// config-file layer or it wipes those values out.
func scriptConfig() (script.Config, error) {
	cfg := script.DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse script environment: %w", err)
	}

	if viper.IsSet("script.y_line_threshold") {
		cfg.YLineThreshold = viper.GetFloat64("script.y_line_threshold")
	}
	if viper.IsSet("script.gap_epsilon") {
		cfg.GapEpsilon = viper.GetFloat64("script.gap_epsilon")
	}
	if viper.IsSet("script.min_timecode_digits") {
		cfg.MinTimecodeDigits = viper.GetInt("script.min_timecode_digits")
	}
	if viper.IsSet("script.max_timecode_digits") {
		cfg.MaxTimecodeDigits = viper.GetInt("script.max_timecode_digits")
	}
	if viper.IsSet("script.open_bracket") {
		cfg.OpenBracket = viper.GetString("script.open_bracket")
	}
	if viper.IsSet("script.close_bracket") {
		cfg.CloseBracket = viper.GetString("script.close_bracket")
	}
	if viper.IsSet("script.sound_keywords") {
		cfg.SoundKeywords = viper.GetStringSlice("script.sound_keywords")
	}
	if viper.IsSet("script.strip_leading_timecode") {
		cfg.StripLeadingTimecode = viper.GetBool("script.strip_leading_timecode")
	}
	if viper.IsSet("script.remove_slashes") {
		cfg.RemoveSlashes = viper.GetBool("script.remove_slashes")
	}
	if viper.IsSet("script.remove_periods") {
		cfg.RemovePeriods = viper.GetBool("script.remove_periods")
	}
	if viper.IsSet("script.require_narration") {
		cfg.RequireNarration = viper.GetBool("script.require_narration")
	}

	if convertLineGap > 0 {
		cfg.YLineThreshold = convertLineGap
	}
	if convertMaxDigits > 0 {
		cfg.MaxTimecodeDigits = convertMaxDigits
	}
	if convertRequireText {
		cfg.RequireNarration = true
	}
	if convertInlineInstr {
		cfg.InlineInstructions = true
	}

	return cfg, cfg.Validate()
}

func runConvert(_ *cobra.Command, args []string) error {
	cfg, err := scriptConfig()
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("unable to open fragments: %w", err)
		}
		defer f.Close() //nolint:errcheck
		in = f
	}

	fragments, err := script.LoadFragments(in)
	if err != nil {
		return fmt.Errorf("unable to load fragments: %w", err)
	}

	result, err := script.Parse(fragments, cfg, script.DefaultConverter(currentFPS()))
	if err != nil {
		return err
	}

	for _, d := range result.Diagnostics {
		log.Warn("Script anomaly", "kind", d.Kind, "page", d.Page, "y", d.Y, "text", d.Text)
	}
	log.Info("Converted script", "entries", len(result.Entries), "anomalies", len(result.Diagnostics))

	out := os.Stdout
	if convertOut != "" {
		f, err := os.Create(convertOut)
		if err != nil {
			return fmt.Errorf("unable to create output: %w", err)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	if convertJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Entries)
	}

	return subtitle.Write(out, subtitle.FromEntries(result.Entries, convertTailDuration))
}
