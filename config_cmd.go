package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# frame rate for timecode arithmetic
fps: 24

# Script extraction
script:
  # vertical distance (PDF units) that separates two lines
  y_line_threshold: 8
  # horizontal gap that inserts a space between fragments
  gap_epsilon: 1
  # accepted raw timecode widths (4 = MMSS only, up to 6 = HHMMSS)
  min_timecode_digits: 4
  max_timecode_digits: 4
  # bracket pair marking instruction text
  open_bracket: "("
  close_bracket: ")"
  # strip a stray timecode repeated at the start of narration
  strip_leading_timecode: true
  # remove reading-pause slashes from narration
  remove_slashes: true
  # drop entries that carry no narration
  require_narration: false

# Speech synthesis
tts:
  # engine: clova or mock
  engine: "clova"
  voice: "vdain"
  # -5..5
  speed: 0
  pitch: 0
  volume: 0
  format: "wav"
  concurrency: 4
  # requests per second against the remote service
  rate_limit: 3
  retries: 2

  clova:
    # client_id: "your-client-id"
    # client_secret: "your-client-secret"
    timeout: "30s"

  mock:
    generation_delay: "0s"
    words_per_minute: 150

# Timing verification
verify:
  # largest overlap still graded MINOR
  minor_threshold: "500ms"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the voxscript config file",
	Long:    paragraph(fmt.Sprintf("\n%s the voxscript config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: "  voxscript config\n  voxscript config --config path/to/config.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("voxscript", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
