// Package page processes site page sources: tag expansion followed by optional
// markdown conversion.
package page

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roboco-io/imgtag/internal/liquid"
)

// Format represents a page source format.
type Format int

const (
	FormatUnknown Format = iota
	FormatHTML
	FormatMarkdown
	FormatText // plain text or raw Liquid templates
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "markdown"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// DetectFormat detects the page format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".html", ".htm":
		return FormatHTML
	case ".md", ".markdown", ".mkd":
		return FormatMarkdown
	case ".txt", ".liquid":
		return FormatText
	default:
		return FormatUnknown
	}
}

// Options contains page processing options.
type Options struct {
	Markdown bool // convert markdown pages to HTML after tag expansion
}

// DefaultOptions returns default page options.
func DefaultOptions() Options {
	return Options{
		Markdown: false,
	}
}

// Process expands tags in src and, for markdown pages with opts.Markdown set,
// converts the result to HTML.
func Process(ctx context.Context, exp *liquid.Expander, src string, format Format, opts Options) (string, error) {
	out, err := exp.Expand(ctx, src)
	if err != nil {
		return "", fmt.Errorf("failed to expand tags: %w", err)
	}

	if opts.Markdown && format == FormatMarkdown {
		out, err = MarkdownToHTML(out)
		if err != nil {
			return "", err
		}
	}

	return out, nil
}
