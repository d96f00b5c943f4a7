package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxscript/voxscript/internal/cache"
	"github.com/voxscript/voxscript/script"
	"github.com/voxscript/voxscript/subtitle"
	"github.com/voxscript/voxscript/timecode"
	"github.com/voxscript/voxscript/tts"
	"github.com/voxscript/voxscript/tts/engines"
)

var (
	synthOut         string
	synthEngine      string
	synthVoice       string
	synthSpeed       int
	synthPitch       int
	synthVolume      int
	synthConcurrency int
	synthNoCache     bool
	synthCacheDir    string

	synthCmd = &cobra.Command{
		Use:   "synth SCRIPT.srt",
		Short: "Synthesize narration audio for every entry",
		Long: paragraph(
			fmt.Sprintf("\nSend each entry's narration to the configured %s and write one audio file per entry, named after its timecode. Instruction-only entries are skipped. Previously synthesized audio is reused from the local cache.", keyword("speech engine")),
		),
		Example: "  voxscript synth script.srt -o takes/\n  voxscript synth script.srt --engine mock --voice mock-voice",
		Args:    cobra.ExactArgs(1),
		RunE:    runSynth,
	}
)

func init() {
	synthCmd.Flags().StringVarP(&synthOut, "out", "o", "takes", "directory for synthesized audio files")
	synthCmd.Flags().StringVar(&synthEngine, "engine", "", fmt.Sprintf("speech engine (%v)", engines.Names()))
	synthCmd.Flags().StringVar(&synthVoice, "voice", "", "voice identifier")
	synthCmd.Flags().IntVar(&synthSpeed, "speed", 0, "speaking speed (-5..5)")
	synthCmd.Flags().IntVar(&synthPitch, "pitch", 0, "voice pitch (-5..5)")
	synthCmd.Flags().IntVar(&synthVolume, "volume", 0, "output volume (-5..5)")
	synthCmd.Flags().IntVar(&synthConcurrency, "concurrency", 0, "concurrent synthesis requests")
	synthCmd.Flags().BoolVar(&synthNoCache, "no-cache", false, "bypass the audio cache")
	synthCmd.Flags().StringVar(&synthCacheDir, "cache-dir", "", "audio cache directory")
}

// synthTTSConfig layers the synthesis settings: defaults and environment
// via LoadConfig, then the config file, then flags.
func synthTTSConfig(cmd *cobra.Command) (tts.Config, error) {
	cfg, err := tts.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if viper.IsSet("tts.engine") {
		cfg.Engine = viper.GetString("tts.engine")
	}
	if viper.IsSet("tts.voice") {
		cfg.Voice = viper.GetString("tts.voice")
	}
	if viper.IsSet("tts.speed") {
		cfg.Speed = viper.GetInt("tts.speed")
	}
	if viper.IsSet("tts.pitch") {
		cfg.Pitch = viper.GetInt("tts.pitch")
	}
	if viper.IsSet("tts.volume") {
		cfg.Volume = viper.GetInt("tts.volume")
	}
	if viper.IsSet("tts.format") {
		cfg.Format = viper.GetString("tts.format")
	}
	if viper.IsSet("tts.concurrency") {
		cfg.Concurrency = viper.GetInt("tts.concurrency")
	}
	if viper.IsSet("tts.rate_limit") {
		cfg.RateLimit = viper.GetFloat64("tts.rate_limit")
	}
	if viper.IsSet("tts.retries") {
		cfg.Retries = viper.GetInt("tts.retries")
	}
	if viper.IsSet("tts.clova.client_id") {
		cfg.Clova.ClientID = viper.GetString("tts.clova.client_id")
	}
	if viper.IsSet("tts.clova.client_secret") {
		cfg.Clova.ClientSecret = viper.GetString("tts.clova.client_secret")
	}
	if viper.IsSet("tts.clova.timeout") {
		cfg.Clova.Timeout = viper.GetDuration("tts.clova.timeout")
	}
	if viper.IsSet("tts.mock.generation_delay") {
		cfg.Mock.GenerationDelay = viper.GetDuration("tts.mock.generation_delay")
	}
	if viper.IsSet("tts.mock.words_per_minute") {
		cfg.Mock.WordsPerMinute = viper.GetInt("tts.mock.words_per_minute")
	}

	if synthEngine != "" {
		cfg.Engine = synthEngine
	}
	if synthVoice != "" {
		cfg.Voice = synthVoice
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = synthSpeed
	}
	if cmd.Flags().Changed("pitch") {
		cfg.Pitch = synthPitch
	}
	if cmd.Flags().Changed("volume") {
		cfg.Volume = synthVolume
	}
	if synthConcurrency > 0 {
		cfg.Concurrency = synthConcurrency
	}

	return cfg, cfg.Validate()
}

func runSynth(cmd *cobra.Command, args []string) error {
	cfg, err := synthTTSConfig(cmd)
	if err != nil {
		return err
	}

	engine, err := engines.New(cfg)
	if err != nil {
		return err
	}
	if err := engine.Available(); err != nil {
		return fmt.Errorf("engine %s unavailable: %w", engine.Name(), err)
	}

	entries, err := loadEntries(args[0])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(synthOut, 0o755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	var store *cache.Store
	if !synthNoCache {
		cacheCfg := cache.DefaultConfig()
		cacheCfg.Dir = synthCacheDir
		if cacheCfg.Dir == "" {
			cacheCfg.Dir = defaultCacheDir()
		}
		if cacheCfg.Dir != "" {
			store, err = cache.Open(cacheCfg)
			if err != nil {
				log.Warn("Audio cache unavailable", "err", err)
				store = nil
			} else {
				defer store.Close() //nolint:errcheck
				if pruned := store.Prune(); pruned > 0 {
					log.Debug("Pruned stale cache entries", "count", pruned)
				}
			}
		}
	}

	bySeq := make(map[int]script.Entry, len(entries))
	var items []tts.Item
	cached := 0

	for _, entry := range entries {
		if entry.Narration == "" {
			log.Debug("Skipping instruction-only entry", "seq", entry.Seq, "timecode", entry.Timecode)
			continue
		}
		bySeq[entry.Seq] = entry

		if store != nil {
			key := cache.Key(engine.Name(), cfg.Request(entry.Narration))
			if audio, err := store.Get(key); err == nil {
				if err := writeTake(entry, audio); err != nil {
					return err
				}
				cached++
				continue
			}
		}

		items = append(items, tts.Item{Seq: entry.Seq, Text: entry.Narration})
	}

	if len(items) == 0 {
		log.Info("Nothing to synthesize", "cached", cached)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	batch := tts.NewBatch(engine, cfg)
	batch.OnResult = func(res tts.ItemResult) {
		entry := bySeq[res.Seq]
		if res.Err != nil {
			log.Error("Synthesis failed", "seq", res.Seq, "timecode", entry.Timecode, "attempts", res.Attempts, "err", res.Err)
			return
		}
		log.Info("Synthesized", "seq", res.Seq, "timecode", entry.Timecode, "duration", res.Audio.Duration)
	}

	results := batch.Run(ctx, items)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		entry := bySeq[res.Seq]
		if store != nil {
			key := cache.Key(engine.Name(), cfg.Request(entry.Narration))
			if err := store.Put(key, res.Audio); err != nil {
				log.Warn("Unable to cache audio", "seq", res.Seq, "err", err)
			}
		}
		if err := writeTake(entry, res.Audio); err != nil {
			return err
		}
	}

	log.Info("Synthesis complete",
		"ok", len(results)-failed, "failed", failed, "cached", cached)

	if failed == len(results) {
		return errors.New("all synthesis requests failed")
	}
	return nil
}

// loadEntries reads an SRT script file back into entries.
func loadEntries(path string) ([]script.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open script: %w", err)
	}
	defer f.Close() //nolint:errcheck

	cues, err := subtitle.Parse(f)
	if err != nil {
		return nil, err
	}
	return subtitle.ToEntries(cues, currentFPS()), nil
}

// takePath names an entry's audio file after its start timecode.
func takePath(entry script.Entry, format string) string {
	tc := timecode.Timecode(entry.StartMillis)
	return filepath.Join(synthOut, tc.Filename(currentFPS())+"."+format)
}

func writeTake(entry script.Entry, audio *tts.Audio) error {
	path := takePath(entry, audio.Format)
	if err := os.WriteFile(path, audio.Data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("unable to write audio file: %w", err)
	}
	return nil
}
