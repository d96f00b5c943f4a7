// Package mock provides a deterministic TTS engine for testing.
package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/voxscript/voxscript/tts"
)

// Engine implements tts.Engine without any I/O. Durations derive from the
// configured speaking rate, so tests can predict them exactly.
type Engine struct {
	cfg tts.MockConfig

	mu        sync.Mutex
	callCount int

	// FailTexts maps texts to the error their synthesis should return.
	FailTexts map[string]error
}

// New creates a mock engine.
func New(cfg tts.MockConfig) *Engine {
	if cfg.WordsPerMinute <= 0 {
		cfg.WordsPerMinute = 150
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 22050
	}
	return &Engine{cfg: cfg, FailTexts: make(map[string]error)}
}

// Name returns the engine identifier.
func (e *Engine) Name() string { return "mock" }

// Available always succeeds.
func (e *Engine) Available() error { return nil }

// Voices returns a single synthetic voice.
func (e *Engine) Voices() []tts.Voice {
	return []tts.Voice{{ID: "mock-voice", Name: "Mock Voice", Gender: "neutral", Style: "flat"}}
}

// CallCount returns how many synthesis calls the engine has served.
func (e *Engine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callCount
}

// FailWith makes synthesis of the given text return err.
func (e *Engine) FailWith(text string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.FailTexts[text] = err
}

// Synthesize produces silent PCM16 audio whose duration matches the
// configured speaking rate.
func (e *Engine) Synthesize(ctx context.Context, req tts.Request) (*tts.Audio, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.callCount++
	failErr := e.FailTexts[req.Text]
	e.mu.Unlock()

	if failErr != nil {
		return nil, failErr
	}

	if e.cfg.GenerationDelay > 0 {
		select {
		case <-time.After(e.cfg.GenerationDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	duration := e.EstimateDuration(req.Text)
	samples := make([]byte, int(duration.Seconds()*float64(e.cfg.SampleRate))*2)
	data := tts.EncodeWAV(samples, e.cfg.SampleRate, 1)

	return &tts.Audio{Data: data, Format: "wav", Duration: duration}, nil
}

// EstimateDuration returns the speaking time for text at the configured
// words-per-minute rate.
func (e *Engine) EstimateDuration(text string) time.Duration {
	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	seconds := float64(words) * 60.0 / float64(e.cfg.WordsPerMinute)
	return time.Duration(seconds * float64(time.Second))
}
