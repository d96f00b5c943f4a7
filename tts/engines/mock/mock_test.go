package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/voxscript/voxscript/tts"
)

// TestSynthesizeDeterministic tests predictable durations at the
// configured speaking rate.
func TestSynthesizeDeterministic(t *testing.T) {
	engine := New(tts.MockConfig{WordsPerMinute: 120, SampleRate: 8000})

	audio, err := engine.Synthesize(context.Background(), tts.Request{Text: "one two three four"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	// 4 words at 120 wpm = 2 seconds.
	if audio.Duration != 2*time.Second {
		t.Errorf("duration = %v, want 2s", audio.Duration)
	}

	probed, err := tts.WAVDuration(audio.Data)
	if err != nil {
		t.Fatalf("WAVDuration: %v", err)
	}
	if diff := probed - audio.Duration; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("probed duration %v disagrees with reported %v", probed, audio.Duration)
	}
}

// TestFailureInjection tests per-text failure configuration.
func TestFailureInjection(t *testing.T) {
	engine := New(tts.MockConfig{})
	engine.FailWith("bad", tts.ErrTransport)

	if _, err := engine.Synthesize(context.Background(), tts.Request{Text: "bad"}); !errors.Is(err, tts.ErrTransport) {
		t.Errorf("err = %v, want injected ErrTransport", err)
	}
	if _, err := engine.Synthesize(context.Background(), tts.Request{Text: "good"}); err != nil {
		t.Errorf("unexpected err for clean text: %v", err)
	}
	if engine.CallCount() != 2 {
		t.Errorf("call count = %d, want 2", engine.CallCount())
	}
}

// TestGenerationDelayCancel tests that the simulated delay honors context
// cancellation.
func TestGenerationDelayCancel(t *testing.T) {
	engine := New(tts.MockConfig{GenerationDelay: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := engine.Synthesize(ctx, tts.Request{Text: "slow"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}
