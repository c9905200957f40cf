// Package imgtag implements the {% img %} tag: a compact markup syntax that renders an
// HTML <img> element, or a captioned wrapper around one.
//
// Syntax:
//
//	{% img [class name(s)] [http[s]:/]/path/to/image [width [height]] [title text | "title text" ["alt text"]] %}
package imgtag

import (
	"strings"
)

// Attributes is the parsed form of one tag occurrence. Nil fields are absent and are
// never emitted.
type Attributes struct {
	Class  *string `json:"class,omitempty"`
	Src    string  `json:"src"`
	Width  *string `json:"width,omitempty"`
	Height *string `json:"height,omitempty"`
	Title  *string `json:"title,omitempty"`
	Alt    *string `json:"alt,omitempty"`
}

// attr is one emitted key/value pair.
type attr struct {
	key   string
	value string
}

// pairs returns the present attributes in emission order, with src replaced by the
// effective URL. Class is skipped when withClass is false.
func (a *Attributes) pairs(src string, withClass bool) []attr {
	out := make([]attr, 0, 6)
	if withClass && a.Class != nil {
		out = append(out, attr{"class", *a.Class})
	}
	out = append(out, attr{"src", src})
	for _, kv := range []struct {
		key   string
		value *string
	}{
		{"width", a.Width},
		{"height", a.Height},
		{"title", a.Title},
		{"alt", a.Alt},
	} {
		if kv.value != nil {
			out = append(out, attr{kv.key, *kv.value})
		}
	}
	return out
}

func joinAttrs(attrs []attr) string {
	parts := make([]string, len(attrs))
	for i, kv := range attrs {
		parts[i] = kv.key + `="` + kv.value + `"`
	}
	return strings.Join(parts, " ")
}

func ptr(s string) *string { return &s }

// value returns *s, or "" when s is nil.
func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
