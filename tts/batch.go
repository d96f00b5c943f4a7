package tts

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Item is one unit of batch work: the entry sequence index and the text to
// speak.
type Item struct {
	Seq  int
	Text string
}

// ItemResult is the outcome for one item. Err is non-nil when every attempt
// failed; the item is then reported unverified downstream instead of
// aborting the batch.
type ItemResult struct {
	Seq      int
	Audio    *Audio
	Err      error
	Attempts int
}

// Batch runs synthesis for many items concurrently while respecting the
// remote service's rate limit. Failures are per-item: one failing call
// never aborts the rest.
type Batch struct {
	engine  Engine
	cfg     Config
	limiter *rate.Limiter

	// OnResult, when set, is called once per finished item, in completion
	// order. Calls are serialized.
	OnResult func(ItemResult)
}

// NewBatch creates a batch runner for the given engine. The rate limiter is
// the only shared resource between workers.
func NewBatch(engine Engine, cfg Config) *Batch {
	return &Batch{
		engine:  engine,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// Run synthesizes all items and returns one result per item, in item order.
// Cancelling ctx stops new requests from being issued; items never started
// are marked with ctx's error. In-flight calls see the same ctx and abort
// cleanly.
func (b *Batch) Run(ctx context.Context, items []Item) []ItemResult {
	results := make([]ItemResult, len(items))

	jobs := make(chan int)
	var wg sync.WaitGroup
	var resultMu sync.Mutex

	workers := b.cfg.Concurrency
	if workers > len(items) {
		workers = len(items)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res := b.runOne(ctx, items[i])
				results[i] = res
				if b.OnResult != nil {
					resultMu.Lock()
					b.OnResult(res)
					resultMu.Unlock()
				}
			}
		}()
	}

feed:
	for i := range items {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Everything from i on was never handed to a worker.
			for j := i; j < len(items); j++ {
				results[j] = ItemResult{Seq: items[j].Seq, Err: ctx.Err()}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// runOne performs the rate-limited, retried synthesis of a single item.
func (b *Batch) runOne(ctx context.Context, item Item) ItemResult {
	res := ItemResult{Seq: item.Seq}
	req := b.cfg.Request(item.Text)

	for attempt := 0; attempt <= b.cfg.Retries; attempt++ {
		if err := b.limiter.Wait(ctx); err != nil {
			res.Err = err
			return res
		}

		res.Attempts++
		audio, err := b.engine.Synthesize(ctx, req)
		if err == nil {
			res.Audio = audio
			res.Err = nil
			return res
		}
		res.Err = err

		if !IsRetryable(err) || ctx.Err() != nil {
			return res
		}
		if attempt < b.cfg.Retries {
			delay := b.cfg.RetryDelay * time.Duration(attempt+1)
			log.Warn("synthesis failed, retrying",
				"seq", item.Seq, "attempt", res.Attempts, "delay", delay, "err", err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return res
			}
		}
	}
	return res
}
