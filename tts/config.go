package tts

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all synthesis configuration options.
type Config struct {
	// Engine selects the backend: "clova" or "mock".
	Engine string `yaml:"engine" env:"VOXSCRIPT_TTS_ENGINE" envDefault:"clova"`

	// Voice parameters applied to every request.
	Voice  string `yaml:"voice" env:"VOXSCRIPT_TTS_VOICE" envDefault:"vdain"`
	Speed  int    `yaml:"speed" env:"VOXSCRIPT_TTS_SPEED" envDefault:"0"`
	Pitch  int    `yaml:"pitch" env:"VOXSCRIPT_TTS_PITCH" envDefault:"0"`
	Volume int    `yaml:"volume" env:"VOXSCRIPT_TTS_VOLUME" envDefault:"0"`
	Format string `yaml:"format" env:"VOXSCRIPT_TTS_FORMAT" envDefault:"wav"`

	// Batch settings.
	Concurrency int           `yaml:"concurrency" env:"VOXSCRIPT_TTS_CONCURRENCY" envDefault:"4"`
	RateLimit   float64       `yaml:"rate_limit" env:"VOXSCRIPT_TTS_RATE_LIMIT" envDefault:"3"`
	RateBurst   int           `yaml:"rate_burst" env:"VOXSCRIPT_TTS_RATE_BURST" envDefault:"1"`
	Retries     int           `yaml:"retries" env:"VOXSCRIPT_TTS_RETRIES" envDefault:"2"`
	RetryDelay  time.Duration `yaml:"retry_delay" env:"VOXSCRIPT_TTS_RETRY_DELAY" envDefault:"1s"`

	// Engine-specific configurations.
	Clova ClovaConfig `yaml:"clova" envPrefix:"VOXSCRIPT_TTS_CLOVA_"`
	Mock  MockConfig  `yaml:"mock" envPrefix:"VOXSCRIPT_TTS_MOCK_"`
}

// ClovaConfig contains CLOVA Voice engine settings.
type ClovaConfig struct {
	ClientID     string        `yaml:"client_id" env:"CLIENT_ID"`
	ClientSecret string        `yaml:"client_secret" env:"CLIENT_SECRET"`
	URL          string        `yaml:"url" env:"URL" envDefault:"https://naveropenapi.apigw.ntruss.com/tts-premium/v1/tts"`
	Timeout      time.Duration `yaml:"timeout" env:"TIMEOUT" envDefault:"30s"`
	MaxTextLen   int           `yaml:"max_text_len" env:"MAX_TEXT_LEN" envDefault:"5000"`
}

// MockConfig contains mock engine settings for testing.
type MockConfig struct {
	GenerationDelay time.Duration `yaml:"generation_delay" env:"GENERATION_DELAY" envDefault:"0"`
	WordsPerMinute  int           `yaml:"words_per_minute" env:"WORDS_PER_MINUTE" envDefault:"150"`
	SampleRate      int           `yaml:"sample_rate" env:"SAMPLE_RATE" envDefault:"22050"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine:      "clova",
		Voice:       "vdain",
		Format:      "wav",
		Concurrency: 4,
		RateLimit:   3,
		RateBurst:   1,
		Retries:     2,
		RetryDelay:  time.Second,
		Clova: ClovaConfig{
			URL:        "https://naveropenapi.apigw.ntruss.com/tts-premium/v1/tts",
			Timeout:    30 * time.Second,
			MaxTextLen: 5000,
		},
		Mock: MockConfig{
			WordsPerMinute: 150,
			SampleRate:     22050,
		},
	}
}

// LoadConfig builds the configuration from defaults overridden by
// environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("error parsing TTS config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values the batch runner cannot work with.
func (c Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %v", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1, got %d", c.RateBurst)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	for _, v := range []int{c.Speed, c.Pitch, c.Volume} {
		if v < -5 || v > 5 {
			return fmt.Errorf("voice parameters must be in -5..5")
		}
	}
	return nil
}

// Request builds the per-entry synthesis request for the given text.
func (c Config) Request(text string) Request {
	return Request{
		Text:   text,
		Voice:  c.Voice,
		Speed:  c.Speed,
		Pitch:  c.Pitch,
		Volume: c.Volume,
		Format: c.Format,
	}
}
