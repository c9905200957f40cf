// Package liquid expands Liquid-style tag directives ({% name markup %}) in page source.
package liquid

import (
	"context"

	"github.com/roboco-io/imgtag/internal/dimension"
)

// Tag is one parsed directive occurrence, ready to render.
type Tag interface {
	// Render returns the markup that replaces the directive in the page.
	Render(ctx context.Context, env Env) string
}

// Factory builds a Tag from the raw markup following the tag name.
type Factory func(markup string) Tag

// Env carries the site collaborators available to tags at render time.
type Env struct {
	SiteRoot string           // prefix for relative image paths
	Lookup   dimension.Lookup // may be nil when dimension lookup is disabled
}
