// Package dimension determines the pixel size of an image by reading only its header.
package dimension

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	// Decoders registered for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when the image header matches no registered decoder.
var ErrUnknownFormat = errors.New("unknown image format")

// Size is the pixel size of an image.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Lookup determines the pixel size of the image at path, which may be a URL or a
// filesystem path. Implementations own their timeouts.
type Lookup interface {
	Lookup(ctx context.Context, path string) (Size, error)
}

// Func adapts a function to the Lookup interface.
type Func func(ctx context.Context, path string) (Size, error)

// Lookup calls f(ctx, path).
func (f Func) Lookup(ctx context.Context, path string) (Size, error) {
	return f(ctx, path)
}

// Decode reads an image header from r.
func Decode(r io.Reader) (Size, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Size{}, "", ErrUnknownFormat
		}
		return Size{}, "", fmt.Errorf("failed to decode image header: %w", err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, format, nil
}

// IsRemote reports whether path is an http or https URL.
func IsRemote(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Auto dispatches remote URLs to HTTP and everything else to File.
type Auto struct {
	File *File
	HTTP *HTTP
}

// NewAuto creates a dispatching lookup whose HTTP client uses the given timeout.
func NewAuto(cfg HTTPConfig) *Auto {
	return &Auto{
		File: &File{},
		HTTP: NewHTTP(cfg),
	}
}

// Lookup implements Lookup.
func (a *Auto) Lookup(ctx context.Context, path string) (Size, error) {
	if IsRemote(path) {
		if a.HTTP == nil {
			return Size{}, fmt.Errorf("no http lookup configured for %s", path)
		}
		return a.HTTP.Lookup(ctx, path)
	}
	if a.File == nil {
		return Size{}, fmt.Errorf("no file lookup configured for %s", path)
	}
	return a.File.Lookup(ctx, path)
}
