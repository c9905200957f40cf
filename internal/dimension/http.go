package dimension

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout bounds a single remote lookup.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxBytes caps how much of a remote image is read while looking for its
	// header. JPEG metadata segments can put the frame header far into the file.
	DefaultMaxBytes = 8 << 20
	// DefaultUserAgent identifies remote lookups.
	DefaultUserAgent = "imgtag"
)

// HTTPConfig holds the configuration for remote lookups.
type HTTPConfig struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// HTTP reads image headers over http and https.
type HTTP struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// NewHTTP creates a remote lookup, filling unset fields with defaults.
func NewHTTP(cfg HTTPConfig) *HTTP {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &HTTP{
		client:    &http.Client{Timeout: timeout},
		maxBytes:  maxBytes,
		userAgent: userAgent,
	}
}

// Lookup implements Lookup.
func (h *HTTP) Lookup(ctx context.Context, url string) (Size, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Size{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return Size{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Size{}, fmt.Errorf("failed to fetch image: %s returned status %d", url, resp.StatusCode)
	}

	size, format, err := Decode(io.LimitReader(resp.Body, h.maxBytes))
	if err != nil {
		return Size{}, fmt.Errorf("%s: %w", url, err)
	}

	log.Debug().Str("url", url).Str("format", format).
		Int("width", size.Width).Int("height", size.Height).Msg("measured remote image")
	return size, nil
}
