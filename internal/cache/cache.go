// Package cache stores synthesized audio on disk so repeated runs over
// the same script do not re-bill the TTS service. Entries are keyed by
// the full synthesis request (engine, voice, parameters, text) and
// compressed with zstd; an index file makes the cache survive restarts.
package cache

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/voxscript/voxscript/tts"
)

// Common cache errors.
var (
	// ErrMiss is returned when a key is not present.
	ErrMiss = errors.New("cache miss")

	// ErrTooLarge is returned when an item exceeds the cache capacity.
	ErrTooLarge = errors.New("item too large for cache")
)

const indexName = "audio.index"

// Config holds the audio cache settings.
type Config struct {
	// Dir is the cache directory. Empty disables the cache.
	Dir string `yaml:"dir" env:"DIR"`

	// Capacity bounds the on-disk size in bytes.
	Capacity int64 `yaml:"capacity" env:"CAPACITY"`

	// CompressionLevel is the zstd level; zero disables compression.
	CompressionLevel int `yaml:"compression_level" env:"COMPRESSION_LEVEL"`

	// TTL expires entries by age during Prune. Zero keeps everything.
	TTL time.Duration `yaml:"ttl" env:"TTL"`
}

// DefaultConfig returns the audio cache defaults.
func DefaultConfig() Config {
	return Config{
		Capacity:         512 * 1024 * 1024,
		CompressionLevel: 3,
		TTL:              7 * 24 * time.Hour,
	}
}

// Key derives the cache key for a synthesis request. Any parameter that
// changes the audible output participates in the hash.
func Key(engine string, req tts.Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%d|%d|%d|%d|%s|%s",
		engine, req.Voice, req.Speed, req.Pitch, req.Volume,
		req.Emotion, req.EmotionStrength, req.Format, req.Text)
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// entry is one record in the on-disk index.
type entry struct {
	Key        string
	Size       int64 // bytes on disk, after compression
	RawSize    int64
	Duration   time.Duration
	Format     string
	Stored     time.Time
	LastAccess time.Time
	Compressed bool
}

// Store is a size-bounded disk cache for synthesized audio.
type Store struct {
	dir      string
	capacity int64
	ttl      time.Duration

	encoder *zstd.Encoder
	decoder *zstd.Decoder

	mu    sync.Mutex
	index map[string]*entry
	size  int64

	hits, misses int64
}

// Open creates or reopens the audio cache at cfg.Dir.
func Open(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("cache: no directory configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory: %w", err)
	}

	s := &Store{
		dir:      cfg.Dir,
		capacity: cfg.Capacity,
		ttl:      cfg.TTL,
		index:    make(map[string]*entry),
	}

	if cfg.CompressionLevel > 0 {
		var err error
		s.encoder, err = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(cfg.CompressionLevel)))
		if err != nil {
			return nil, fmt.Errorf("cache: zstd encoder: %w", err)
		}
		s.decoder, err = zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("cache: zstd decoder: %w", err)
		}
	}

	// A broken index just means a cold start.
	if err := s.loadIndex(); err != nil {
		s.index = make(map[string]*entry)
	}
	for _, e := range s.index {
		s.size += e.Size
	}

	return s, nil
}

// Get returns the cached audio for key, or ErrMiss.
func (s *Store) Get(key string) (*tts.Audio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.index[key]
	if !ok {
		s.misses++
		return nil, ErrMiss
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		s.drop(key)
		s.misses++
		return nil, ErrMiss
	}

	if e.Compressed {
		if s.decoder == nil {
			s.drop(key)
			s.misses++
			return nil, ErrMiss
		}
		data, err = s.decoder.DecodeAll(data, nil)
		if err != nil {
			s.drop(key)
			s.misses++
			return nil, ErrMiss
		}
	}

	e.LastAccess = time.Now()
	s.hits++

	return &tts.Audio{Data: data, Format: e.Format, Duration: e.Duration}, nil
}

// Put stores audio under key, evicting least recently used entries if
// the cache is over capacity.
func (s *Store) Put(key string, audio *tts.Audio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := audio.Data
	compressed := false
	if s.encoder != nil && len(data) > 1024 {
		packed := s.encoder.EncodeAll(data, nil)
		if len(packed) < len(data) {
			data = packed
			compressed = true
		}
	}

	diskSize := int64(len(data))
	if diskSize > s.capacity {
		return ErrTooLarge
	}

	if old, ok := s.index[key]; ok {
		s.size -= old.Size
		os.Remove(s.path(key))
		delete(s.index, key)
	}

	for s.size+diskSize > s.capacity && len(s.index) > 0 {
		s.evictOldest()
	}

	if err := writeAtomic(s.path(key), data); err != nil {
		return fmt.Errorf("cache: write: %w", err)
	}

	now := time.Now()
	s.index[key] = &entry{
		Key:        key,
		Size:       diskSize,
		RawSize:    int64(len(audio.Data)),
		Duration:   audio.Duration,
		Format:     audio.Format,
		Stored:     now,
		LastAccess: now,
		Compressed: compressed,
	}
	s.size += diskSize

	return nil
}

// Delete removes a single entry. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drop(key)
	return nil
}

// Clear removes every entry and resets the index.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.index {
		os.Remove(s.path(key))
	}
	s.index = make(map[string]*entry)
	s.size = 0
	return s.saveIndex()
}

// Prune removes entries older than the configured TTL and returns how
// many were removed.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-s.ttl)
	removed := 0
	for key, e := range s.index {
		if e.Stored.Before(cutoff) {
			s.drop(key)
			removed++
		}
	}
	return removed
}

// Stats reports the cache's current footprint and hit counts.
type Stats struct {
	Items  int
	Size   int64
	Hits   int64
	Misses int64
}

// Stats returns a snapshot of the cache state.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Items: len(s.index), Size: s.size, Hits: s.hits, Misses: s.misses}
}

// Close persists the index.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveIndex()
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".zst")
}

// drop removes an entry and its file. Caller holds the lock.
func (s *Store) drop(key string) {
	if e, ok := s.index[key]; ok {
		os.Remove(s.path(key))
		s.size -= e.Size
		delete(s.index, key)
	}
}

// evictOldest removes the least recently used entry. Caller holds the
// lock.
func (s *Store) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range s.index {
		if oldestKey == "" || e.LastAccess.Before(oldest) {
			oldestKey = key
			oldest = e.LastAccess
		}
	}
	if oldestKey != "" {
		s.drop(oldestKey)
	}
}

func (s *Store) loadIndex() error {
	file, err := os.Open(filepath.Join(s.dir, indexName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()
	return gob.NewDecoder(file).Decode(&s.index)
}

func (s *Store) saveIndex() error {
	path := filepath.Join(s.dir, indexName)
	tmp := path + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	err = gob.NewEncoder(file).Encode(s.index)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// writeAtomic writes to a temp file and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
