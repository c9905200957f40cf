package imgtag

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/roboco-io/imgtag/internal/dimension"
)

// SyntaxError is rendered in place of a tag whose markup could not be parsed.
const SyntaxError = "Error processing input, expected syntax: {% img [class name(s)] /url/to/image [width height] [title text] %}"

// DefaultSiteRoot is prepended to relative image sources.
const DefaultSiteRoot = "source"

const captionClass = "caption"

var absoluteURLPattern = regexp.MustCompile(`https?://\S+`)

// Renderer turns parsed attributes into HTML.
type Renderer struct {
	SiteRoot string           // prefix for sources that are not absolute http(s) URLs
	Lookup   dimension.Lookup // consulted for caption width when none is given; may be nil
}

// ResolveSource returns the URL an image source is served from.
func (r *Renderer) ResolveSource(src string) string {
	if absoluteURLPattern.MatchString(src) {
		return src
	}
	return r.SiteRoot + src
}

// Render returns the HTML for a, or SyntaxError when a is nil.
func (r *Renderer) Render(ctx context.Context, a *Attributes) string {
	if a == nil {
		return SyntaxError
	}

	src := r.ResolveSource(a.Src)
	if a.Class != nil && strings.Contains(*a.Class, captionClass) {
		return r.renderCaption(ctx, a, src)
	}
	return "<img " + joinAttrs(a.pairs(src, true)) + ">"
}

func (r *Renderer) renderCaption(ctx context.Context, a *Attributes, src string) string {
	width := value(a.Width)
	if a.Width == nil {
		if size, ok := r.measure(ctx, src); ok {
			width = strconv.Itoa(size.Width)
		}
	}

	remaining := strings.Replace(*a.Class, captionClass, "", 1)
	wrapper := strings.TrimRight("caption-wrapper "+remaining, " \t\n\r\f\v")

	var sb strings.Builder
	sb.WriteString(`<span class="` + wrapper + `" style="width: ` + width + `px">`)
	sb.WriteString(`<img class="caption" ` + joinAttrs(a.pairs(src, false)) + `>`)
	sb.WriteString(`<span class="caption-text">` + value(a.Alt) + `</span>`)
	sb.WriteString(`</span>`)
	return sb.String()
}

// measure asks the lookup for the image size. Every failure means "no size".
func (r *Renderer) measure(ctx context.Context, src string) (dimension.Size, bool) {
	if r.Lookup == nil {
		return dimension.Size{}, false
	}
	size, err := r.Lookup.Lookup(ctx, src)
	if err != nil {
		log.Debug().Err(err).Str("src", src).Msg("image size unavailable")
		return dimension.Size{}, false
	}
	return size, true
}
