package tts_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/voxscript/voxscript/tts"
	"github.com/voxscript/voxscript/tts/engines/mock"
)

func batchConfig() tts.Config {
	cfg := tts.DefaultConfig()
	cfg.Engine = "mock"
	cfg.Concurrency = 4
	cfg.RateLimit = 10_000 // effectively unlimited in tests
	cfg.RateBurst = 100
	cfg.Retries = 0
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func makeItems(n int) []tts.Item {
	items := make([]tts.Item, n)
	for i := range items {
		items[i] = tts.Item{Seq: i, Text: fmt.Sprintf("entry number %d text", i)}
	}
	return items
}

// TestBatchAllSucceed tests the happy path.
func TestBatchAllSucceed(t *testing.T) {
	cfg := batchConfig()
	engine := mock.New(cfg.Mock)
	batch := tts.NewBatch(engine, cfg)

	results := batch.Run(context.Background(), makeItems(10))
	if len(results) != 10 {
		t.Fatalf("got %d results, want 10", len(results))
	}
	for i, res := range results {
		if res.Seq != i {
			t.Errorf("result %d has seq %d", i, res.Seq)
		}
		if res.Err != nil {
			t.Errorf("result %d error: %v", i, res.Err)
		}
		if res.Audio == nil || res.Audio.Duration <= 0 {
			t.Errorf("result %d has no audio", i)
		}
	}
}

// TestBatchPartialFailure tests that one transport failure yields nine
// verified and one failed result, never an aborted batch.
func TestBatchPartialFailure(t *testing.T) {
	cfg := batchConfig()
	engine := mock.New(cfg.Mock)
	items := makeItems(10)
	engine.FailWith(items[3].Text, tts.ErrTransport)

	results := tts.NewBatch(engine, cfg).Run(context.Background(), items)

	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			if i != 3 {
				t.Errorf("unexpected failure at %d: %v", i, res.Err)
			}
			if !errors.Is(res.Err, tts.ErrTransport) {
				t.Errorf("failure error = %v, want ErrTransport", res.Err)
			}
		}
	}
	if failed != 1 {
		t.Errorf("got %d failures, want exactly 1", failed)
	}
}

// TestBatchRetries tests that retryable errors are retried and terminal
// errors are not.
func TestBatchRetries(t *testing.T) {
	t.Run("retryable exhausts attempts", func(t *testing.T) {
		cfg := batchConfig()
		cfg.Retries = 2
		engine := mock.New(cfg.Mock)
		engine.FailWith("doomed", tts.ErrQuotaExceeded)

		results := tts.NewBatch(engine, cfg).Run(context.Background(),
			[]tts.Item{{Seq: 0, Text: "doomed"}})

		if results[0].Attempts != 3 {
			t.Errorf("attempts = %d, want 3 (1 + 2 retries)", results[0].Attempts)
		}
		if !errors.Is(results[0].Err, tts.ErrQuotaExceeded) {
			t.Errorf("err = %v, want ErrQuotaExceeded", results[0].Err)
		}
	})

	t.Run("auth failure is terminal", func(t *testing.T) {
		cfg := batchConfig()
		cfg.Retries = 5
		engine := mock.New(cfg.Mock)
		engine.FailWith("locked out", tts.ErrAuthFailed)

		results := tts.NewBatch(engine, cfg).Run(context.Background(),
			[]tts.Item{{Seq: 0, Text: "locked out"}})

		if results[0].Attempts != 1 {
			t.Errorf("attempts = %d, want 1 (no retry on auth failure)", results[0].Attempts)
		}
	})
}

// TestBatchCancellation tests that cancelling mid-batch stops new requests
// and marks unstarted items with the context error.
func TestBatchCancellation(t *testing.T) {
	cfg := batchConfig()
	cfg.Concurrency = 1
	cfg.Mock.GenerationDelay = 20 * time.Millisecond
	engine := mock.New(cfg.Mock)

	ctx, cancel := context.WithCancel(context.Background())
	batch := tts.NewBatch(engine, cfg)

	var once sync.Once
	batch.OnResult = func(tts.ItemResult) {
		once.Do(cancel)
	}

	results := batch.Run(ctx, makeItems(20))

	canceled := 0
	for _, res := range results {
		if errors.Is(res.Err, context.Canceled) {
			canceled++
		}
	}
	if canceled == 0 {
		t.Errorf("no items were canceled")
	}
	if engine.CallCount() >= 20 {
		t.Errorf("all items were synthesized despite cancellation")
	}
}

// TestBatchProgress tests that OnResult fires once per item.
func TestBatchProgress(t *testing.T) {
	cfg := batchConfig()
	engine := mock.New(cfg.Mock)
	batch := tts.NewBatch(engine, cfg)

	var mu sync.Mutex
	seen := make(map[int]int)
	batch.OnResult = func(res tts.ItemResult) {
		mu.Lock()
		seen[res.Seq]++
		mu.Unlock()
	}

	batch.Run(context.Background(), makeItems(8))

	if len(seen) != 8 {
		t.Fatalf("progress for %d items, want 8", len(seen))
	}
	for seq, count := range seen {
		if count != 1 {
			t.Errorf("item %d reported %d times", seq, count)
		}
	}
}
