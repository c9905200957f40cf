package imgtag

import (
	"context"

	"github.com/roboco-io/imgtag/internal/liquid"
)

// Name is the directive name the tag registers under.
const Name = "img"

// Tag is one {% img %} occurrence. Markup is parsed once, at construction.
type Tag struct {
	markup string
	attrs  *Attributes
}

// NewTag parses markup into a tag.
func NewTag(markup string) *Tag {
	return &Tag{markup: markup, attrs: Parse(markup)}
}

// Markup returns the raw markup the tag was built from.
func (t *Tag) Markup() string { return t.markup }

// Attributes returns the parsed attributes, or nil if the markup did not parse.
func (t *Tag) Attributes() *Attributes { return t.attrs }

// Render implements liquid.Tag.
func (t *Tag) Render(ctx context.Context, env liquid.Env) string {
	r := &Renderer{SiteRoot: env.SiteRoot, Lookup: env.Lookup}
	return r.Render(ctx, t.attrs)
}

// Register installs the img tag in reg.
func Register(reg *liquid.Registry) error {
	return reg.Register(Name, func(markup string) liquid.Tag {
		return NewTag(markup)
	})
}
