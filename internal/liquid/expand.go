package liquid

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// directivePattern matches a single-line {% name markup %} directive.
var directivePattern = regexp.MustCompile(`\{%[ \t]*([A-Za-z_][\w-]*)(?:[ \t]+([^\n]*?))?[ \t]*%\}`)

// Directive is one {% … %} occurrence found in page source.
type Directive struct {
	Name   string `json:"name"`
	Markup string `json:"markup"`
	Start  int    `json:"start"` // byte offset of "{%"
	End    int    `json:"end"`   // byte offset just past "%}"
}

// Directives returns every directive in src, in source order.
func Directives(src string) []Directive {
	matches := directivePattern.FindAllStringSubmatchIndex(src, -1)
	out := make([]Directive, 0, len(matches))
	for _, m := range matches {
		d := Directive{
			Name:  src[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		}
		if m[4] >= 0 {
			d.Markup = src[m[4]:m[5]]
		}
		out = append(out, d)
	}
	return out
}

// Expander replaces registered directives in page source with their rendered output.
type Expander struct {
	Registry    *Registry
	Env         Env
	Concurrency int // maximum concurrent renders; <= 0 means unbounded
}

// NewExpander creates an expander over reg.
func NewExpander(reg *Registry, env Env) *Expander {
	return &Expander{Registry: reg, Env: env}
}

type pending struct {
	directive Directive
	tag       Tag
	output    string
}

// Expand renders every registered directive in src. Unregistered directives are
// copied through unchanged. Renders run concurrently; output keeps source order.
func (e *Expander) Expand(ctx context.Context, src string) (string, error) {
	var jobs []*pending
	for _, d := range Directives(src) {
		f, err := e.Registry.Get(d.Name)
		if err != nil {
			continue
		}
		jobs = append(jobs, &pending{directive: d, tag: f(d.Markup)})
	}

	if len(jobs) == 0 {
		return src, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if e.Concurrency > 0 {
		g.SetLimit(e.Concurrency)
	}
	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			job.output = job.tag.Render(gctx, e.Env)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	log.Debug().Int("tags", len(jobs)).Msg("expanded directives")

	var sb strings.Builder
	sb.Grow(len(src))
	last := 0
	for _, job := range jobs {
		sb.WriteString(src[last:job.directive.Start])
		sb.WriteString(job.output)
		last = job.directive.End
	}
	sb.WriteString(src[last:])
	return sb.String(), nil
}
