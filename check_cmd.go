package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxscript/voxscript/timecode"
	"github.com/voxscript/voxscript/tts"
	"github.com/voxscript/voxscript/verify"
)

var (
	checkAudioDir  string
	checkOut       string
	checkJSON      bool
	checkMinorOver time.Duration
	checkStrict    bool
	checkFormat    string

	checkCmd = &cobra.Command{
		Use:   "check SCRIPT.srt",
		Short: "Check synthesized audio against entry timing windows",
		Long: paragraph(
			fmt.Sprintf("\nMeasure each entry's synthesized audio and report where it %s the next entry's start. Overlaps are reported in milliseconds, seconds, and frames.", keyword("runs past")),
		),
		Example: "  voxscript check script.srt --audio takes/\n  voxscript check script.srt --audio takes/ --json -o report.json",
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
)

func init() {
	checkCmd.Flags().StringVar(&checkAudioDir, "audio", "takes", "directory holding synthesized audio files")
	checkCmd.Flags().StringVarP(&checkOut, "out", "o", "", "report file (default stdout)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit the report as JSON")
	checkCmd.Flags().DurationVar(&checkMinorOver, "minor-threshold", 500*time.Millisecond, "largest overlap still graded MINOR")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit with an error when any entry is SEVERE")
	checkCmd.Flags().StringVar(&checkFormat, "format", "wav", "audio container the takes were synthesized in")
}

// resolveTakeFormat returns the audio file extension to probe. The flag
// wins when set; otherwise the configured synthesis format applies, so
// check looks for the same files synth wrote.
func resolveTakeFormat(flagChanged bool) string {
	if !flagChanged && viper.IsSet("tts.format") {
		return viper.GetString("tts.format")
	}
	return checkFormat
}

func runCheck(cmd *cobra.Command, args []string) error {
	entries, err := loadEntries(args[0])
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("minor-threshold") && viper.IsSet("verify.minor_threshold") {
		checkMinorOver = viper.GetDuration("verify.minor_threshold")
	}

	vfps := currentFPS()
	format := resolveTakeFormat(cmd.Flags().Changed("format"))
	durations := make(map[int]time.Duration, len(entries))
	for _, entry := range entries {
		tc := timecode.Timecode(entry.StartMillis)
		path := filepath.Join(checkAudioDir, tc.Filename(vfps)+"."+format)

		data, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			log.Warn("Audio file missing", "seq", entry.Seq, "timecode", entry.Timecode, "path", path)
			continue
		}
		d, err := tts.WAVDuration(data)
		if err != nil {
			log.Warn("Unreadable audio file", "seq", entry.Seq, "path", path, "err", err)
			continue
		}
		durations[entry.Seq] = d
	}

	cfg := verify.Config{FPS: vfps, MinorThreshold: checkMinorOver}
	report, err := verify.Check(entries, durations, cfg)
	if err != nil {
		return err
	}

	out := os.Stdout
	if checkOut != "" {
		f, err := os.Create(checkOut)
		if err != nil {
			return fmt.Errorf("unable to create report file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	if checkJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if err := report.WriteText(out); err != nil {
		return err
	}

	s := report.Summarize()
	log.Info("Check complete",
		"ok", s.OK, "minor", s.Minor, "severe", s.Severe, "unverified", s.Unverified)

	if checkStrict && s.Severe > 0 {
		return errors.New("severe overlaps found")
	}
	return nil
}
