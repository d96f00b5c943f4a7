// Package clova implements the NAVER CLOVA Voice premium TTS engine.
package clova

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/voxscript/voxscript/tts"
)

// Engine calls the CLOVA Voice HTTP API. Requests are form-encoded posts
// authenticated with the API gateway key headers.
type Engine struct {
	cfg    tts.ClovaConfig
	client *http.Client
}

// New creates a CLOVA engine from its configuration.
func New(cfg tts.ClovaConfig) *Engine {
	return &Engine{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the engine identifier.
func (e *Engine) Name() string { return "clova" }

// Available reports whether API credentials are present.
func (e *Engine) Available() error {
	if e.cfg.ClientID == "" || e.cfg.ClientSecret == "" {
		return tts.ErrNotConfigured
	}
	return nil
}

// Voices returns the stock CLOVA voice list.
func (e *Engine) Voices() []tts.Voice {
	return []tts.Voice{
		{ID: "vdain", Name: "Dain", Gender: "female", Style: "calm", SupportsEmotion: true, Description: "suited to AD narration"},
		{ID: "vhyeri", Name: "Hyeri", Gender: "female", Style: "bright"},
		{ID: "vyuna", Name: "Yuna", Gender: "female", Style: "clear", SupportsEmotion: true},
		{ID: "vmijin", Name: "Mijin", Gender: "female", Style: "soft"},
		{ID: "vdaeseong", Name: "Daeseong", Gender: "male", Style: "calm"},
		{ID: "nara", Name: "Nara", Gender: "female", Style: "standard"},
		{ID: "nminsang", Name: "Minsang", Gender: "male", Style: "standard"},
		{ID: "njihun", Name: "Jihun", Gender: "male", Style: "news"},
		{ID: "njiyun", Name: "Jiyun", Gender: "female", Style: "news"},
		{ID: "nsujin", Name: "Sujin", Gender: "female", Style: "bright"},
	}
}

// Synthesize posts one synthesis request and probes the returned WAV for
// its duration.
func (e *Engine) Synthesize(ctx context.Context, req tts.Request) (*tts.Audio, error) {
	if err := e.Available(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if e.cfg.MaxTextLen > 0 && len(req.Text) > e.cfg.MaxTextLen {
		return nil, fmt.Errorf("%w: %d bytes", tts.ErrTextTooLong, len(req.Text))
	}

	format := req.Format
	if format == "" {
		format = "wav"
	}

	form := url.Values{}
	form.Set("speaker", req.Voice)
	form.Set("text", req.Text)
	form.Set("volume", strconv.Itoa(req.Volume))
	form.Set("speed", strconv.Itoa(req.Speed))
	form.Set("pitch", strconv.Itoa(req.Pitch))
	form.Set("format", format)
	if req.Emotion > 0 {
		form.Set("emotion", strconv.Itoa(req.Emotion))
		form.Set("emotion-strength", strconv.Itoa(req.EmotionStrength))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("unable to build request: %w", err)
	}
	httpReq.Header.Set("X-NCP-APIGW-API-KEY-ID", e.cfg.ClientID)
	httpReq.Header.Set("X-NCP-APIGW-API-KEY", e.cfg.ClientSecret)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrTransport, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, tts.ErrAuthFailed
	case http.StatusTooManyRequests:
		return nil, tts.ErrQuotaExceeded
	default:
		return nil, fmt.Errorf("%w: HTTP %d", tts.ErrTransport, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrTransport, err)
	}

	audio := &tts.Audio{Data: data, Format: format}
	if format == "wav" {
		duration, err := tts.WAVDuration(data)
		if err != nil {
			return nil, err
		}
		audio.Duration = duration
	}
	return audio, nil
}
