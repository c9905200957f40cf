package dimension

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// File reads image headers from the local filesystem.
type File struct{}

// Lookup implements Lookup.
func (f *File) Lookup(ctx context.Context, path string) (Size, error) {
	if err := ctx.Err(); err != nil {
		return Size{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	size, format, err := Decode(file)
	if err != nil {
		return Size{}, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().Str("path", path).Str("format", format).
		Int("width", size.Width).Int("height", size.Height).Msg("measured local image")
	return size, nil
}
