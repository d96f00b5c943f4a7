// Package tts provides speech synthesis for timed script entries: the
// engine abstraction, request validation, WAV duration probing, and a
// concurrent batch runner with rate limiting and per-entry failure
// reporting.
package tts

import (
	"context"
	"time"
)

// Engine defines the interface for speech-synthesis backends. The core
// treats synthesis as an opaque function from text and voice parameters to
// audio bytes plus a duration; retry policy lives at the call site.
type Engine interface {
	// Name returns the engine identifier used in configuration.
	Name() string

	// Available reports whether the engine is ready for use, returning a
	// descriptive error when it is not.
	Available() error

	// Voices returns the voices the engine can speak with.
	Voices() []Voice

	// Synthesize converts text to audio. It honors ctx for cancellation
	// and returns the audio bytes with their playback duration.
	Synthesize(ctx context.Context, req Request) (*Audio, error)
}

// Voice describes one synthesis voice.
type Voice struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Gender          string `json:"gender"`
	Style           string `json:"style"`
	Description     string `json:"description"`
	SupportsEmotion bool   `json:"supports_emotion"`
}

// Request is one synthesis call. Speed, Pitch, and Volume are bounded
// integers in -5..5, the range the remote service documents; 0 is neutral.
type Request struct {
	Text   string
	Voice  string
	Speed  int
	Pitch  int
	Volume int

	// Emotion and EmotionStrength apply only to voices that support them
	// and are ignored otherwise. Zero disables emotion.
	Emotion         int
	EmotionStrength int

	// Format is the requested container, "wav" by default.
	Format string
}

// Validate checks the request bounds before any network traffic happens.
func (r Request) Validate() error {
	if r.Text == "" {
		return ErrEmptyText
	}
	for _, v := range []int{r.Speed, r.Pitch, r.Volume} {
		if v < -5 || v > 5 {
			return ErrParamOutOfRange
		}
	}
	return nil
}

// Audio is the result of one synthesis call.
type Audio struct {
	Data     []byte
	Format   string
	Duration time.Duration
}
